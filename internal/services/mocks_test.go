package services

import (
	"context"
	"sync"
	"time"

	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/stretchr/testify/mock"
)

type mockSearches struct {
	mock.Mock
}

func (m *mockSearches) GetActive(ctx context.Context, afterID, limit int) ([]models.SavedSearch, error) {
	args := m.Called(ctx, afterID, limit)
	searches, _ := args.Get(0).([]models.SavedSearch)
	return searches, args.Error(1)
}

func (m *mockSearches) GetActiveByOwner(ctx context.Context, ownerID int64) ([]models.SavedSearch, error) {
	args := m.Called(ctx, ownerID)
	searches, _ := args.Get(0).([]models.SavedSearch)
	return searches, args.Error(1)
}

func (m *mockSearches) UpdateLastChecked(ctx context.Context, ID int, checkedAt time.Time) error {
	return m.Called(ctx, ID, checkedAt).Error(0)
}

type mockProfiles struct {
	mock.Mock
}

func (m *mockProfiles) GetByID(ctx context.Context, ID int) (*models.Profile, error) {
	args := m.Called(ctx, ID)
	profile, _ := args.Get(0).(*models.Profile)
	return profile, args.Error(1)
}

func (m *mockProfiles) GetByUser(ctx context.Context, userID int64) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*models.Profile)
	return profile, args.Error(1)
}

func (m *mockProfiles) GetUpdatedSince(ctx context.Context, since *time.Time, limit, offset int) ([]models.Profile, error) {
	args := m.Called(ctx, since, limit, offset)
	profiles, _ := args.Get(0).([]models.Profile)
	return profiles, args.Error(1)
}

type notificationKey struct {
	searchID  int
	profileID int
	kind      models.NotificationKind
}

// memoryNotifications enforces the (search, profile, kind) uniqueness the
// database index provides.
type memoryNotifications struct {
	mu      sync.Mutex
	created map[notificationKey]models.MatchNotification
	err     error
}

func newMemoryNotifications() *memoryNotifications {
	return &memoryNotifications{created: map[notificationKey]models.MatchNotification{}}
}

func (m *memoryNotifications) CreateIfAbsent(_ context.Context, n *models.MatchNotification) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return false, m.err
	}
	key := notificationKey{n.SearchID, n.ProfileID, n.Kind}
	if _, ok := m.created[key]; ok {
		return false, nil
	}
	n.ID = len(m.created) + 1
	m.created[key] = *n
	return true, nil
}

func (m *memoryNotifications) count(kind models.NotificationKind) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for key := range m.created {
		if key.kind == kind {
			total++
		}
	}
	return total
}
