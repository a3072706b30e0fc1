package repositories

import (
	"context"
	"testing"

	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_Skills_GetOrCreate_ReusesNormalizedName(t *testing.T) {
	repo := NewSkillsRepository(newTestDb(t).DB)
	ctx := context.Background()

	first, err := repo.GetOrCreate(ctx, "Node.js")
	require.NoError(t, err)
	second, err := repo.GetOrCreate(ctx, " node.JS ")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Node.js", second.Name)

	found, err := repo.GetByName(ctx, "NODE.JS")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first.ID, found.ID)

	missing, err := repo.GetByName(ctx, "Cobol")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

type skillRepositoryMock struct {
	mock.Mock
}

func (m *skillRepositoryMock) GetByName(ctx context.Context, name string) (*models.Skill, error) {
	args := m.Called(ctx, name)
	skill, _ := args.Get(0).(*models.Skill)
	return skill, args.Error(1)
}

func Test_CachedSkills_RepeatedLookup_HitsRepositoryOnce(t *testing.T) {
	repo := &skillRepositoryMock{}
	repo.On("GetByName", mock.Anything, "Go").Return(&models.Skill{ID: 7, Name: "Go", NormalizedName: "go"}, nil).Once()
	cached := NewCachedSkills(repo)

	for i := 0; i < 3; i++ {
		skill, err := cached.GetByName(context.Background(), "Go")
		require.NoError(t, err)
		assert.Equal(t, 7, skill.ID)
	}

	repo.AssertExpectations(t)
}

func Test_CachedSkills_UnknownSkill_IsNotCached(t *testing.T) {
	repo := &skillRepositoryMock{}
	repo.On("GetByName", mock.Anything, "Cobol").Return(nil, nil).Twice()
	cached := NewCachedSkills(repo)

	for i := 0; i < 2; i++ {
		skill, err := cached.GetByName(context.Background(), "Cobol")
		require.NoError(t, err)
		assert.Nil(t, skill)
	}

	repo.AssertExpectations(t)
}
