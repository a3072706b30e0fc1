package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type MatchingConfig struct {
	CheckCron string `mapstructure:"check_cron"`
	FeedCron  string `mapstructure:"feed_cron"`
	PageSize  int    `mapstructure:"page_size"`
}

func (config MatchingConfig) validate() error {
	if config.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive")
	}
	if _, err := cron.ParseStandard(config.CheckCron); err != nil {
		return fmt.Errorf("invalid check_cron spec %q: %w", config.CheckCron, err)
	}
	if _, err := cron.ParseStandard(config.FeedCron); err != nil {
		return fmt.Errorf("invalid feed_cron spec %q: %w", config.FeedCron, err)
	}
	return nil
}

func (config MatchingConfig) bindEnvironmentVariables() error {
	var errs []error
	if err := viper.BindEnv("matching.check_cron", "MATCHING_CHECK_CRON"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("matching.feed_cron", "MATCHING_FEED_CRON"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
