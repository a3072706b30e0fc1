package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/jobbridge/internal/domain/events"
	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/maxaizer/jobbridge/internal/logger"
	"github.com/maxaizer/jobbridge/internal/matching"
	"github.com/maxaizer/jobbridge/internal/metrics"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type checkedSearchRepository interface {
	GetActive(ctx context.Context, afterID, limit int) ([]models.SavedSearch, error)
	GetActiveByOwner(ctx context.Context, ownerID int64) ([]models.SavedSearch, error)
	UpdateLastChecked(ctx context.Context, ID int, checkedAt time.Time) error
}

type updatedProfileRepository interface {
	GetUpdatedSince(ctx context.Context, since *time.Time, limit, offset int) ([]models.Profile, error)
}

// SearchCheck holds the profiles that matched a search since its previous
// check.
type SearchCheck struct {
	Search   models.SavedSearch
	Profiles []models.Profile
}

type SearchesChecker struct {
	bus      EventBus.Bus
	searches checkedSearchRepository
	profiles updatedProfileRepository
	pageSize int
	now      func() time.Time
}

func NewSearchesChecker(bus EventBus.Bus, searches checkedSearchRepository, profiles updatedProfileRepository,
	pageSize int) *SearchesChecker {

	if pageSize <= 0 {
		pageSize = 100
	}
	return &SearchesChecker{bus: bus, searches: searches, profiles: profiles, pageSize: pageSize, now: time.Now}
}

func (c *SearchesChecker) SetClock(now func() time.Time) {
	c.now = now
}

// NewMatchesSinceLastCheck returns eligible profiles matching search that
// changed after its last check, or every matching profile if it was never
// checked. It does not stamp the search.
func (c *SearchesChecker) NewMatchesSinceLastCheck(ctx context.Context, search models.SavedSearch) ([]models.Profile, error) {

	var matched []models.Profile

	for offset := 0; ; offset += c.pageSize {

		profiles, err := c.profiles.GetUpdatedSince(ctx, search.LastCheckedAt, c.pageSize, offset)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get updated profiles: %v", err)
			return nil, err
		}

		matched = append(matched, lo.Filter(profiles, func(profile models.Profile, _ int) bool {
			return matching.IsEligible(profile) && matching.Matches(profile, search)
		})...)

		if len(profiles) < c.pageSize {
			break
		}
	}

	return matched, nil
}

// MarkChecked stamps the search as checked at the given time.
func (c *SearchesChecker) MarkChecked(ctx context.Context, searchID int, at time.Time) error {
	if err := c.searches.UpdateLastChecked(ctx, searchID, at.UTC()); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to mark search %v checked: %v", searchID, err)
		return err
	}
	return nil
}

// CheckOwner runs every active search of owner ("check now").
func (c *SearchesChecker) CheckOwner(ctx context.Context, ownerID int64) ([]SearchCheck, error) {

	searches, err := c.searches.GetActiveByOwner(ctx, ownerID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get searches of %v: %v", ownerID, err)
		return nil, err
	}

	results := make([]SearchCheck, 0, len(searches))
	for _, search := range searches {
		result, err := c.check(ctx, search)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// CheckAll runs every active search and returns the number of new matches.
// Searches without matches are stamped right away. Matches are published as
// SearchMatchesFound and the search stays unstamped until the subscriber that
// delivers them calls MarkChecked.
func (c *SearchesChecker) CheckAll(ctx context.Context) (int, error) {

	start := time.Now()
	defer func() { metrics.SearchCheckDuration.Observe(time.Since(start).Seconds()) }()

	total, checked := 0, 0
	var errs []error

	for afterID := 0; ; {

		if err := ctx.Err(); err != nil {
			return total, err
		}

		searches, err := c.searches.GetActive(ctx, afterID, c.pageSize)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get active searches: %v", err)
			return total, err
		}

		for _, search := range searches {
			afterID = search.ID
			found, err := c.checkAndPublish(ctx, search)
			if err != nil {
				errs = append(errs, fmt.Errorf("search %v: %w", search.ID, err))
				continue
			}
			checked++
			total += found
		}

		if len(searches) < c.pageSize {
			break
		}
	}

	log.Infof("checked %v saved searches, %v new matches", checked, total)
	return total, errors.Join(errs...)
}

func (c *SearchesChecker) checkAndPublish(ctx context.Context, search models.SavedSearch) (int, error) {
	at := c.now().UTC()

	profiles, err := c.NewMatchesSinceLastCheck(ctx, search)
	if err != nil {
		return 0, err
	}

	if len(profiles) == 0 {
		return 0, c.MarkChecked(ctx, search.ID, at)
	}

	c.bus.Publish(events.SearchMatchesFoundTopic, events.SearchMatchesFound{
		Search:    search,
		Profiles:  profiles,
		CheckedAt: at,
	})
	return len(profiles), nil
}

// check takes the timestamp before querying so that a profile changed while
// the check runs is reported again next time rather than lost.
func (c *SearchesChecker) check(ctx context.Context, search models.SavedSearch) (SearchCheck, error) {
	at := c.now().UTC()

	profiles, err := c.NewMatchesSinceLastCheck(ctx, search)
	if err != nil {
		return SearchCheck{}, err
	}

	if err = c.MarkChecked(ctx, search.ID, at); err != nil {
		return SearchCheck{}, err
	}
	search.LastCheckedAt = &at

	return SearchCheck{Search: search, Profiles: profiles}, nil
}
