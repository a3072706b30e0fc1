package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/maxaizer/jobbridge/internal/repositories"
	"github.com/maxaizer/jobbridge/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type environment struct {
	stores        Stores
	users         *repositories.Users
	profiles      *repositories.Profiles
	searches      *repositories.Searches
	notifications *repositories.Notifications
}

func upEnvironment(t *testing.T) *environment {
	t.Helper()

	dbCtx, err := repositories.NewDbContext(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())
	t.Cleanup(func() { _ = dbCtx.Close() })

	env := &environment{
		users:         repositories.NewUsersRepository(dbCtx.DB),
		profiles:      repositories.NewProfilesRepository(dbCtx.DB),
		searches:      repositories.NewSearchRepository(dbCtx.DB),
		notifications: repositories.NewNotificationsRepository(dbCtx.DB),
	}
	skills := repositories.NewSkillsRepository(dbCtx.DB)

	env.stores = Stores{
		Users:     env.users,
		Skills:    skills,
		Profiles:  env.profiles,
		Jobs:      repositories.NewJobsRepository(dbCtx.DB),
		Searches:  services.NewSavedSearches(env.searches, skills, env.profiles),
		Evaluator: services.NewMatchEvaluator(EventBus.New(), env.searches, env.notifications, env.profiles, 10),
	}
	return env
}

func Test_Load_WhenFixtureValid_ShouldDecode(t *testing.T) {

	fixture, err := Load("testdata/fixture.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"Go", "Python", "PostgreSQL"}, fixture.Skills)
	require.Len(t, fixture.Users, 3)
	require.NotNil(t, fixture.Users[1].Profile)
	assert.Equal(t, 33.749, *fixture.Users[1].Profile.Location.Latitude)
	assert.Equal(t, 25, *fixture.Users[1].Profile.CommuteRadius)
	assert.Nil(t, fixture.Users[0].Profile)
	assert.True(t, fixture.SavedSearches[1].Paused)
}

func Test_Load_WhenUnknownField_ShouldFail(t *testing.T) {

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("users:\n  - login: alice\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func Test_Seed_WhenFixtureLoaded_ShouldInsertAndNotify(t *testing.T) {

	env := upEnvironment(t)
	ctx := context.Background()

	fixture, err := Load("testdata/fixture.yaml")
	require.NoError(t, err)

	report, err := NewSeeder(env.stores).Seed(ctx, fixture)
	require.NoError(t, err)

	assert.Equal(t, Report{Skills: 3, Users: 3, Profiles: 2, Jobs: 1, SavedSearches: 2, Notifications: 1}, report)

	recruiter, err := env.users.GetByUsername(ctx, "recruiter")
	require.NoError(t, err)

	unread, err := env.notifications.GetUnreadByOwner(ctx, recruiter.ID)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, models.KindNewMatch, unread[0].Kind)
	assert.Equal(t, "alice", unread[0].Profile.User.Username)
	assert.Equal(t, "Go devs", unread[0].Search.Name)

	searches, err := env.searches.GetActiveByOwner(ctx, recruiter.ID)
	require.NoError(t, err)
	require.Len(t, searches, 1)

	alice, err := env.users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	profile, err := env.profiles.GetByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, profile.Skills, 2)
	assert.Equal(t, 25, *profile.CommuteRadius)
}

func Test_Seed_WhenUsersExist_ShouldSkipThem(t *testing.T) {

	env := upEnvironment(t)
	ctx := context.Background()

	fixture := &Fixture{Users: []UserFixture{{
		Username: "alice",
		Profile:  &ProfileFixture{Headline: "Gopher", Skills: []string{"Go"}},
	}}}

	_, err := NewSeeder(env.stores).Seed(ctx, fixture)
	require.NoError(t, err)

	report, err := NewSeeder(env.stores).Seed(ctx, fixture)
	require.NoError(t, err)
	assert.Equal(t, Report{Skills: 1}, report)
}

func Test_Seed_WhenReferenceUnknown_ShouldFail(t *testing.T) {

	tests := []struct {
		name    string
		fixture Fixture
	}{
		{"unknown owner", Fixture{SavedSearches: []SearchFixture{{Owner: "ghost", Name: "x"}}}},
		{"unknown poster", Fixture{Jobs: []JobFixture{{Title: "x", PostedBy: "ghost"}}}},
		{"bad work type", Fixture{Jobs: []JobFixture{{Title: "x", WorkType: "sometimes"}}}},
		{"bad visibility", Fixture{Users: []UserFixture{{Username: "a", Profile: &ProfileFixture{Visibility: "friends"}}}}},
		{"missing username", Fixture{Users: []UserFixture{{Email: "a@b.c"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := upEnvironment(t)
			_, err := NewSeeder(env.stores).Seed(context.Background(), &tt.fixture)
			assert.Error(t, err)
		})
	}
}
