package services

import (
	"context"

	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/maxaizer/jobbridge/internal/geo"
	"github.com/maxaizer/jobbridge/internal/logger"
	log "github.com/sirupsen/logrus"
)

type nearProfileRepository interface {
	GetNear(ctx context.Context, box *geo.Box) ([]models.Profile, error)
}

// NearbyProfile has a nil DistanceMiles when the search origin is not a
// valid point.
type NearbyProfile struct {
	Profile       models.Profile
	DistanceMiles *float64
}

// ProfileSearch finds candidates around a point for recruiters.
type ProfileSearch struct {
	profiles nearProfileRepository
}

func NewProfileSearch(profiles nearProfileRepository) *ProfileSearch {
	return &ProfileSearch{profiles: profiles}
}

// Near returns visible geocoded profiles within radius miles of origin,
// closest first, with distances rounded for display.
func (s *ProfileSearch) Near(ctx context.Context, origin geo.Point, radius float64) ([]NearbyProfile, error) {

	var box *geo.Box
	if b, ok := geo.BoundingBoxAround(origin, radius); ok {
		box = &b
	}

	profiles, err := s.profiles.GetNear(ctx, box)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get profiles near origin: %v", err)
		return nil, err
	}

	profiles = geo.FilterWithinRadius(profiles, origin, radius)
	distances := geo.AnnotateDistances(profiles, origin)
	geo.SortByDistance(profiles, distances)

	nearby := make([]NearbyProfile, 0, len(profiles))
	for _, profile := range profiles {
		item := NearbyProfile{Profile: profile}
		if miles, ok := distances[profile.ID]; ok {
			miles = geo.RoundMiles(miles)
			item.DistanceMiles = &miles
		}
		nearby = append(nearby, item)
	}
	return nearby, nil
}
