package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/maxaizer/jobbridge/internal/matching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEvaluator struct {
	mock.Mock
}

func (m *mockEvaluator) EvaluateAndNotify(ctx context.Context, profile models.Profile, trigger matching.Trigger) (int, error) {
	args := m.Called(ctx, profile.ID, trigger)
	return args.Int(0), args.Error(1)
}

func Test_ProfileFeed_Poll_ShouldPickTriggerByCreationTime(t *testing.T) {

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	now := start
	since := start

	fresh := seekerProfile(1, "alice", skillGo)
	fresh.CreatedAt = start.Add(10 * time.Second)
	old := seekerProfile(2, "bob", skillGo)
	old.CreatedAt = start.Add(-24 * time.Hour)

	profiles := &mockProfiles{}
	profiles.On("GetUpdatedSince", mock.Anything, &since, 2, 0).Return([]models.Profile{fresh, old}, nil).Once()
	profiles.On("GetUpdatedSince", mock.Anything, &since, 2, 2).Return([]models.Profile{}, nil).Once()

	evaluator := &mockEvaluator{}
	evaluator.On("EvaluateAndNotify", mock.Anything, 1, matching.ProfileCreated).Return(2, nil).Once()
	evaluator.On("EvaluateAndNotify", mock.Anything, 2, matching.ProfileUpdated).Return(1, nil).Once()

	feed := NewProfileFeed(profiles, evaluator, 2)
	feed.SetClock(func() time.Time { return now })
	now = start.Add(time.Minute)

	created, err := feed.Poll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, created)
	assert.Equal(t, start.Add(time.Minute), feed.since)
	profiles.AssertExpectations(t)
	evaluator.AssertExpectations(t)
}

func Test_ProfileFeed_Poll_WhenEvaluationFails_ShouldKeepWindow(t *testing.T) {

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	now := start
	since := start

	profiles := &mockProfiles{}
	profiles.On("GetUpdatedSince", mock.Anything, &since, 10, 0).
		Return([]models.Profile{seekerProfile(1, "alice", skillGo), seekerProfile(2, "bob", skillGo)}, nil)

	evaluator := &mockEvaluator{}
	evaluator.On("EvaluateAndNotify", mock.Anything, 1, matching.ProfileUpdated).Return(0, errors.New("db is down"))
	evaluator.On("EvaluateAndNotify", mock.Anything, 2, matching.ProfileUpdated).Return(1, nil)

	feed := NewProfileFeed(profiles, evaluator, 10)
	feed.SetClock(func() time.Time { return now })
	now = start.Add(time.Minute)

	created, err := feed.Poll(context.Background())

	assert.Error(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, start, feed.since)
}

func Test_ProfileFeed_Poll_WhenQueryFails_ShouldReturnError(t *testing.T) {

	profiles := &mockProfiles{}
	profiles.On("GetUpdatedSince", mock.Anything, mock.Anything, 10, 0).Return(nil, errors.New("db is down"))

	feed := NewProfileFeed(profiles, &mockEvaluator{}, 10)

	_, err := feed.Poll(context.Background())
	assert.Error(t, err)
}
