package services

import (
	"context"
	"errors"
	"testing"

	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSavedSearchRepository struct {
	mock.Mock
}

func (m *mockSavedSearchRepository) Add(ctx context.Context, search *models.SavedSearch) error {
	return m.Called(ctx, search).Error(0)
}

func (m *mockSavedSearchRepository) UpdateWithSkills(ctx context.Context, search *models.SavedSearch, skills []models.Skill) error {
	return m.Called(ctx, search, skills).Error(0)
}

func (m *mockSavedSearchRepository) GetByID(ctx context.Context, ID int) (*models.SavedSearch, error) {
	args := m.Called(ctx, ID)
	search, _ := args.Get(0).(*models.SavedSearch)
	return search, args.Error(1)
}

func (m *mockSavedSearchRepository) GetByOwner(ctx context.Context, ownerID int64) ([]models.SavedSearch, error) {
	args := m.Called(ctx, ownerID)
	searches, _ := args.Get(0).([]models.SavedSearch)
	return searches, args.Error(1)
}

func (m *mockSavedSearchRepository) SetActive(ctx context.Context, ID int, active bool) error {
	return m.Called(ctx, ID, active).Error(0)
}

func (m *mockSavedSearchRepository) Remove(ctx context.Context, ID int) error {
	return m.Called(ctx, ID).Error(0)
}

type stubSkills map[string]models.Skill

func (s stubSkills) GetByName(_ context.Context, name string) (*models.Skill, error) {
	if skill, ok := s[models.NormalizeSkillName(name)]; ok {
		return &skill, nil
	}
	return nil, nil
}

var knownSkills = stubSkills{"go": skillGo, "python": skillPython, "react": skillReact}

type stubOwnerProfiles map[int64]models.Profile

func (s stubOwnerProfiles) GetByUser(_ context.Context, userID int64) (*models.Profile, error) {
	if profile, ok := s[userID]; ok {
		return &profile, nil
	}
	return nil, nil
}

var noProfiles = stubOwnerProfiles{}

func Test_SavedSearches_Create_ResolvesSkillsAndStartsActive(t *testing.T) {

	repo := &mockSavedSearchRepository{}
	repo.On("Add", mock.Anything, mock.MatchedBy(func(s *models.SavedSearch) bool {
		return s.OwnerID == 9 && s.Name == "Go devs" && s.IsActive && len(s.Skills) == 2
	})).Return(nil).Once()

	service := NewSavedSearches(repo, knownSkills, noProfiles)

	search, err := service.Create(context.Background(), 9, SavedSearchInput{
		Name:   "  Go devs ",
		Skills: []string{"go", "Python", "GO"},
		City:   "Atlanta",
	})

	require.NoError(t, err)
	assert.Equal(t, "Go devs", search.Name)
	assert.Equal(t, []int{1, 2}, models.SkillIDs(search.Skills))
	repo.AssertExpectations(t)
}

func Test_SavedSearches_Create_WhenOwnerIsJobSeeker_ReturnsErrNotRecruiter(t *testing.T) {

	seeker := seekerProfile(1, "alice", skillGo)
	recruiter := seekerProfile(2, "hiring", skillGo)
	recruiter.AccountType = models.AccountRecruiter

	repo := &mockSavedSearchRepository{}
	repo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	service := NewSavedSearches(repo, knownSkills, stubOwnerProfiles{seeker.UserID: seeker, recruiter.UserID: recruiter})

	_, err := service.Create(context.Background(), seeker.UserID, SavedSearchInput{Name: "Go devs"})
	assert.ErrorIs(t, err, ErrNotRecruiter)

	_, err = service.Create(context.Background(), recruiter.UserID, SavedSearchInput{Name: "Go devs"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func Test_SavedSearches_Update_WhenStorageFails_ReturnsError(t *testing.T) {

	search := savedSearch(3, 9, "Go", skillGo)
	repo := &mockSavedSearchRepository{}
	repo.On("GetByID", mock.Anything, 3).Return(&search, nil)
	repo.On("UpdateWithSkills", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("locked")).Once()

	service := NewSavedSearches(repo, knownSkills, noProfiles)

	_, err := service.Update(context.Background(), 9, 3, SavedSearchInput{Name: "Frontend", Skills: []string{"react"}})

	assert.ErrorContains(t, err, "locked")
}

func Test_SavedSearches_Create_RejectsInvalidInput(t *testing.T) {

	service := NewSavedSearches(&mockSavedSearchRepository{}, knownSkills, noProfiles)

	tests := []struct {
		name  string
		input SavedSearchInput
	}{
		{"missing name", SavedSearchInput{Name: "   "}},
		{"blank skill", SavedSearchInput{Name: "x", Skills: []string{""}}},
		{"query too long", SavedSearchInput{Name: "x", Query: string(make([]byte, 201))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), 9, tt.input)
			assert.ErrorContains(t, err, "invalid saved search")
		})
	}
}

func Test_SavedSearches_Create_UnknownSkill_ReturnsErrUnknownSkill(t *testing.T) {

	service := NewSavedSearches(&mockSavedSearchRepository{}, knownSkills, noProfiles)

	_, err := service.Create(context.Background(), 9, SavedSearchInput{Name: "x", Skills: []string{"Cobol"}})

	assert.ErrorIs(t, err, ErrUnknownSkill)
	assert.ErrorContains(t, err, "Cobol")
}

func Test_SavedSearches_Toggle_OnlyOwnerFlipsState(t *testing.T) {

	search := savedSearch(3, 9, "Go", skillGo)
	repo := &mockSavedSearchRepository{}
	repo.On("GetByID", mock.Anything, 3).Return(&search, nil)
	repo.On("SetActive", mock.Anything, 3, false).Return(nil).Once()

	service := NewSavedSearches(repo, knownSkills, noProfiles)

	_, err := service.Toggle(context.Background(), 10, 3)
	assert.ErrorIs(t, err, ErrNotSearchOwner)

	toggled, err := service.Toggle(context.Background(), 9, 3)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)
	repo.AssertExpectations(t)
}

func Test_SavedSearches_Delete_MissingSearch_ReturnsErrSearchNotFound(t *testing.T) {

	repo := &mockSavedSearchRepository{}
	repo.On("GetByID", mock.Anything, 3).Return(nil, nil)
	service := NewSavedSearches(repo, knownSkills, noProfiles)

	err := service.Delete(context.Background(), 9, 3)

	assert.ErrorIs(t, err, ErrSearchNotFound)
	repo.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func Test_SavedSearches_Update_KeepsActiveFlagAndReplacesSkills(t *testing.T) {

	search := savedSearch(3, 9, "Go", skillGo)
	search.IsActive = false
	repo := &mockSavedSearchRepository{}
	repo.On("GetByID", mock.Anything, 3).Return(&search, nil)
	repo.On("UpdateWithSkills", mock.Anything, mock.MatchedBy(func(s *models.SavedSearch) bool {
		return s.Name == "Frontend" && s.Query == "ui" && !s.IsActive
	}), []models.Skill{skillReact}).Return(nil).Once()

	service := NewSavedSearches(repo, knownSkills, noProfiles)

	updated, err := service.Update(context.Background(), 9, 3, SavedSearchInput{Name: "Frontend", Query: "ui", Skills: []string{"react"}})

	require.NoError(t, err)
	assert.Equal(t, []models.Skill{skillReact}, updated.Skills)
	repo.AssertExpectations(t)
}
