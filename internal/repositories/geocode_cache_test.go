package repositories

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/maxaizer/jobbridge/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_MemoryGeocodeCache_KeyIgnoresCaseAndSpacing(t *testing.T) {
	cache := NewMemoryGeocodeCache(time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "Atlanta,  GA", geo.NewPoint(33.749, -84.388)))

	point, found, err := cache.Get(ctx, "atlanta, ga")
	require.NoError(t, err)
	assert.True(t, found)
	assert.InDelta(t, 33.749, *point.Latitude, 1e-9)
}

func Test_MemoryGeocodeCache_NegativeEntry_IsFoundButInvalid(t *testing.T) {
	cache := NewMemoryGeocodeCache(time.Hour)
	ctx := context.Background()

	_, found, err := cache.Get(ctx, "Atlantis")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, "Atlantis", geo.Point{}))

	point, found, err := cache.Get(ctx, "Atlantis")
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, point.Valid())
}

func Test_NewRedisClient_WhenURLInvalid_ShouldFail(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not-a-redis-url")
	assert.Error(t, err)
}

// Runs only when REDIS_URL points to a disposable instance.
func Test_RedisGeocodeCache_RoundTrip(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL is not set")
	}

	ctx := context.Background()
	client, err := NewRedisClient(ctx, redisURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	cache := NewRedisGeocodeCache(client, time.Minute)
	query := "Test City " + t.Name()
	t.Cleanup(func() { client.Del(ctx, geocodeKey(query)) })

	_, found, err := cache.Get(ctx, query)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, query, geo.NewPoint(33.749, -84.388)))

	point, found, err := cache.Get(ctx, strings.ToUpper(query))
	require.NoError(t, err)
	assert.True(t, found)
	assert.InDelta(t, -84.388, *point.Longitude, 1e-9)
}
