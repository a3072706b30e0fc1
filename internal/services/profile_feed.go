package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/maxaizer/jobbridge/internal/logger"
	"github.com/maxaizer/jobbridge/internal/matching"
	log "github.com/sirupsen/logrus"
)

type profileEvaluator interface {
	EvaluateAndNotify(ctx context.Context, profile models.Profile, trigger matching.Trigger) (int, error)
}

// ProfileFeed evaluates profiles written by other processes sharing the
// database. Each poll covers changes since the previous one; the first poll
// covers changes since the feed was created.
type ProfileFeed struct {
	profiles  updatedProfileRepository
	evaluator profileEvaluator
	pageSize  int
	now       func() time.Time
	since     time.Time
}

func NewProfileFeed(profiles updatedProfileRepository, evaluator profileEvaluator, pageSize int) *ProfileFeed {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &ProfileFeed{profiles: profiles, evaluator: evaluator, pageSize: pageSize, now: time.Now, since: time.Now().UTC()}
}

func (f *ProfileFeed) SetClock(now func() time.Time) {
	f.now = now
	f.since = now().UTC()
}

// Poll returns the number of notifications created. A profile created after
// the previous poll counts as new, any other change as an update. The window
// only advances when every profile was evaluated.
func (f *ProfileFeed) Poll(ctx context.Context) (int, error) {

	at := f.now().UTC()
	since := f.since
	created := 0
	var errs []error

	for offset := 0; ; offset += f.pageSize {

		profiles, err := f.profiles.GetUpdatedSince(ctx, &since, f.pageSize, offset)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get updated profiles: %v", err)
			return created, err
		}

		for _, profile := range profiles {
			trigger := matching.ProfileUpdated
			if profile.CreatedAt.After(since) {
				trigger = matching.ProfileCreated
			}

			notified, err := f.evaluator.EvaluateAndNotify(ctx, profile, trigger)
			created += notified
			if err != nil {
				errs = append(errs, fmt.Errorf("profile %v: %w", profile.ID, err))
			}
		}

		if len(profiles) < f.pageSize {
			break
		}
	}

	if len(errs) > 0 {
		return created, errors.Join(errs...)
	}

	f.since = at
	return created, nil
}
