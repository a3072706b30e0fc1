package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/jobbridge/internal/domain/events"
	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/maxaizer/jobbridge/internal/logger"
	"github.com/maxaizer/jobbridge/internal/matching"
	"github.com/maxaizer/jobbridge/internal/metrics"
	log "github.com/sirupsen/logrus"
)

type activeSearchRepository interface {
	GetActive(ctx context.Context, afterID, limit int) ([]models.SavedSearch, error)
}

type notificationRepository interface {
	CreateIfAbsent(ctx context.Context, notification *models.MatchNotification) (bool, error)
}

type profileRepository interface {
	GetByID(ctx context.Context, ID int) (*models.Profile, error)
}

// MatchEvaluator runs a changed profile against every active saved search and
// records one notification per (search, profile, kind).
type MatchEvaluator struct {
	bus           EventBus.Bus
	searches      activeSearchRepository
	notifications notificationRepository
	profiles      profileRepository
	pageSize      int
}

func NewMatchEvaluator(bus EventBus.Bus, searches activeSearchRepository, notifications notificationRepository,
	profiles profileRepository, pageSize int) *MatchEvaluator {

	if pageSize <= 0 {
		pageSize = 100
	}
	return &MatchEvaluator{
		bus:           bus,
		searches:      searches,
		notifications: notifications,
		profiles:      profiles,
		pageSize:      pageSize,
	}
}

// OnProfileSaved is the hook for the profile write path.
func (e *MatchEvaluator) OnProfileSaved(ctx context.Context, profileID int, created bool) (int, error) {
	trigger := matching.ProfileUpdated
	if created {
		trigger = matching.ProfileCreated
	}
	return e.evaluateByID(ctx, profileID, trigger)
}

// OnSkillsChanged is the hook for profile skill set changes.
func (e *MatchEvaluator) OnSkillsChanged(ctx context.Context, profileID int) (int, error) {
	return e.evaluateByID(ctx, profileID, matching.SkillsChanged)
}

func (e *MatchEvaluator) evaluateByID(ctx context.Context, profileID int, trigger matching.Trigger) (int, error) {
	profile, err := e.profiles.GetByID(ctx, profileID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get profile %v: %v", profileID, err)
		return 0, err
	}
	if profile == nil {
		return 0, ErrProfileNotFound
	}
	return e.EvaluateAndNotify(ctx, *profile, trigger)
}

// EvaluateAndNotify returns the number of notifications created. Ineligible
// profiles are skipped without touching storage. A failure on one search does
// not stop evaluation of the others; all failures are returned joined.
func (e *MatchEvaluator) EvaluateAndNotify(ctx context.Context, profile models.Profile, trigger matching.Trigger) (int, error) {

	if !matching.IsEligible(profile) {
		metrics.MatchEvaluationsCounter.WithLabelValues("ineligible").Inc()
		return 0, nil
	}

	kind := matching.KindFor(trigger)
	created := 0
	var errs []error

	for afterID := 0; ; {

		if err := ctx.Err(); err != nil {
			return created, err
		}

		searches, err := e.searches.GetActive(ctx, afterID, e.pageSize)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get active searches: %v", err)
			return created, fmt.Errorf("failed to get active searches: %w", err)
		}

		for _, search := range searches {
			afterID = search.ID
			notified, err := e.notifyIfMatches(ctx, profile, search, kind)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if notified {
				created++
			}
		}

		if len(searches) < e.pageSize {
			break
		}
	}

	if created > 0 {
		log.Infof("profile %v (%v): %v new %v notifications", profile.ID, trigger, created, kind)
	}
	return created, errors.Join(errs...)
}

func (e *MatchEvaluator) notifyIfMatches(ctx context.Context, profile models.Profile, search models.SavedSearch,
	kind models.NotificationKind) (bool, error) {

	if !matching.Matches(profile, search) {
		metrics.MatchEvaluationsCounter.WithLabelValues("no_match").Inc()
		return false, nil
	}
	metrics.MatchEvaluationsCounter.WithLabelValues("match").Inc()

	notification := &models.MatchNotification{
		SearchID:  search.ID,
		ProfileID: profile.ID,
		Kind:      kind,
		Message:   matching.NotificationMessage(search, profile, kind),
	}

	created, err := e.notifications.CreateIfAbsent(ctx, notification)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to create notification for search %v and profile %v: %v", search.ID, profile.ID, err)
		return false, err
	}
	if !created {
		return false, nil
	}

	metrics.NotificationsCounter.WithLabelValues(string(kind)).Inc()
	notification.Search = search
	notification.Profile = profile
	e.bus.Publish(events.MatchFoundTopic, events.MatchFound{
		Notification: *notification,
		Search:       search,
		Profile:      profile,
	})
	return true, nil
}
