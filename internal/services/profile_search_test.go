package services

import (
	"context"
	"testing"

	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/maxaizer/jobbridge/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNearProfiles []models.Profile

func (s stubNearProfiles) GetNear(_ context.Context, _ *geo.Box) ([]models.Profile, error) {
	return append([]models.Profile(nil), s...), nil
}

func locatedProfile(id int, lat, lon float64) models.Profile {
	profile := seekerProfile(id, "p")
	profile.Latitude = ptr(lat)
	profile.Longitude = ptr(lon)
	return profile
}

func Test_ProfileSearch_Near_ReturnsClosestFirstWithinRadius(t *testing.T) {

	profiles := stubNearProfiles{
		locatedProfile(1, 41.8781, -87.6298),
		locatedProfile(2, 33.7490, -84.3880),
		locatedProfile(3, 33.9526, -84.5499),
	}

	nearby, err := NewProfileSearch(profiles).Near(context.Background(), geo.NewPoint(33.7490, -84.3880), 50)

	require.NoError(t, err)
	require.Len(t, nearby, 2)
	assert.Equal(t, 2, nearby[0].Profile.ID)
	assert.Equal(t, 0.0, *nearby[0].DistanceMiles)
	assert.Equal(t, 3, nearby[1].Profile.ID)
	assert.Equal(t, 16.9, *nearby[1].DistanceMiles)
}

func Test_ProfileSearch_Near_InvalidOrigin_ReturnsAllWithoutDistances(t *testing.T) {

	profiles := stubNearProfiles{locatedProfile(1, 41.8781, -87.6298), locatedProfile(2, 33.7490, -84.3880)}

	nearby, err := NewProfileSearch(profiles).Near(context.Background(), geo.Point{}, 50)

	require.NoError(t, err)
	require.Len(t, nearby, 2)
	assert.Nil(t, nearby[0].DistanceMiles)
	assert.Equal(t, 1, nearby[0].Profile.ID)
}
