package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/maxaizer/jobbridge/internal/geo"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// GeocodeCache remembers lookups by query. A stored invalid point records
// that the query resolved to nothing.
type GeocodeCache interface {
	Get(ctx context.Context, query string) (point geo.Point, found bool, err error)
	Set(ctx context.Context, query string, point geo.Point) error
}

func geocodeKey(query string) string {
	return "geocode:" + strings.ToLower(strings.Join(strings.Fields(query), " "))
}

type cachedPoint struct {
	Latitude  *float64 `json:"lat"`
	Longitude *float64 `json:"lon"`
}

type MemoryGeocodeCache struct {
	cache *gocache.Cache
}

func NewMemoryGeocodeCache(ttl time.Duration) *MemoryGeocodeCache {
	return &MemoryGeocodeCache{cache: gocache.New(ttl, 2*ttl)}
}

func (c *MemoryGeocodeCache) Get(_ context.Context, query string) (geo.Point, bool, error) {
	if value, found := c.cache.Get(geocodeKey(query)); found {
		return value.(geo.Point), true, nil
	}
	return geo.Point{}, false, nil
}

func (c *MemoryGeocodeCache) Set(_ context.Context, query string, point geo.Point) error {
	c.cache.SetDefault(geocodeKey(query), point)
	return nil
}

type RedisGeocodeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{client: client, ttl: ttl}
}

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

func (c *RedisGeocodeCache) Get(ctx context.Context, query string) (geo.Point, bool, error) {
	raw, err := c.client.Get(ctx, geocodeKey(query)).Bytes()
	if errors.Is(err, redis.Nil) {
		return geo.Point{}, false, nil
	}
	if err != nil {
		return geo.Point{}, false, err
	}

	var cached cachedPoint
	if err = json.Unmarshal(raw, &cached); err != nil {
		return geo.Point{}, false, fmt.Errorf("corrupted geocode cache entry: %w", err)
	}
	return geo.Point{Latitude: cached.Latitude, Longitude: cached.Longitude}, true, nil
}

func (c *RedisGeocodeCache) Set(ctx context.Context, query string, point geo.Point) error {
	raw, err := json.Marshal(cachedPoint{Latitude: point.Latitude, Longitude: point.Longitude})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, geocodeKey(query), raw, c.ttl).Err()
}
