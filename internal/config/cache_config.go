package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// CacheConfig selects the geocode cache backend: redis when RedisURL is set,
// in-process memory otherwise.
type CacheConfig struct {
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

func (config CacheConfig) validate() error {
	if config.TTL <= 0 {
		return fmt.Errorf("ttl must be positive")
	}
	return nil
}

func (config CacheConfig) bindEnvironmentVariables() error {
	return viper.BindEnv("cache.redis_url", "REDIS_URL")
}
