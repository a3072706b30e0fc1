package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/stretchr/testify/require"
)

func newTestDb(t *testing.T) *DbContext {
	t.Helper()

	dbCtx, err := NewDbContext(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())

	t.Cleanup(func() { _ = dbCtx.Close() })
	return dbCtx
}

func ptr[T any](v T) *T {
	return &v
}

func addUser(t *testing.T, dbCtx *DbContext, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, NewUsersRepository(dbCtx.DB).Add(context.Background(), user))
	return user
}

func addSkills(t *testing.T, dbCtx *DbContext, names ...string) []models.Skill {
	t.Helper()
	repo := NewSkillsRepository(dbCtx.DB)
	skills := make([]models.Skill, 0, len(names))
	for _, name := range names {
		skill, err := repo.GetOrCreate(context.Background(), name)
		require.NoError(t, err)
		skills = append(skills, *skill)
	}
	return skills
}

func addProfile(t *testing.T, dbCtx *DbContext, profile *models.Profile) *models.Profile {
	t.Helper()
	require.NoError(t, NewProfilesRepository(dbCtx.DB).Add(context.Background(), profile))
	return profile
}
