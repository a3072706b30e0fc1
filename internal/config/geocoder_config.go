package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type GeocoderConfig struct {
	URL                  string  `mapstructure:"url"`
	UserAgent            string  `mapstructure:"user_agent"`
	MaxRequestsPerSecond float32 `mapstructure:"max_requests_per_second"`
	Cron                 string  `mapstructure:"cron"`
}

func (config GeocoderConfig) validate() error {

	var missingFields []string

	if config.URL == "" {
		missingFields = append(missingFields, "url")
	}

	if config.UserAgent == "" {
		missingFields = append(missingFields, "user_agent")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	if config.MaxRequestsPerSecond <= 0 {
		return fmt.Errorf("max_requests_per_second must be positive")
	}

	if _, err := cron.ParseStandard(config.Cron); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", config.Cron, err)
	}

	return nil
}

func (config GeocoderConfig) bindEnvironmentVariables() error {
	var errs []error
	if err := viper.BindEnv("geocoder.url", "GEOCODER_URL"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("geocoder.user_agent", "GEOCODER_USER_AGENT"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("geocoder.max_requests_per_second", "GEOCODER_MAX_REQUESTS_PER_SECOND"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
