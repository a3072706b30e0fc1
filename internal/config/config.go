package config

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger"`
	Bot      BotConfig      `mapstructure:"bot"`
	DB       DBConfig       `mapstructure:"db"`
	Geocoder GeocoderConfig `mapstructure:"geocoder"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Matching MatchingConfig `mapstructure:"matching"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

var configFile = "./configs/config.yaml"

func Get() *Config {

	file := configFile
	if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
		file = value
	}

	config, err := loadConfig(file)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func loadConfig(file string) (*Config, error) {

	viper.Reset()
	viper.SetConfigFile(file)
	viper.AutomaticEnv()

	setDefaults()

	err := bindEnvironmentVariables()
	if err != nil {
		return nil, err
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", file, err)
	}

	config := Config{}
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("logger.log_level", string(LevelInfo))
	viper.SetDefault("logger.app_name", "jobbridge")
	viper.SetDefault("logger.output_file", "./logs/errors.log")

	viper.SetDefault("geocoder.url", "https://nominatim.openstreetmap.org")
	viper.SetDefault("geocoder.user_agent", "JobBridge/1.0")
	viper.SetDefault("geocoder.max_requests_per_second", 1)
	viper.SetDefault("geocoder.cron", "0 3 * * *")

	viper.SetDefault("cache.ttl", "24h")

	viper.SetDefault("matching.check_cron", "@every 1h")
	viper.SetDefault("matching.feed_cron", "@every 1m")
	viper.SetDefault("matching.page_size", 100)

	viper.SetDefault("metrics.address", ":8080")
}

func bindEnvironmentVariables() error {
	var errs []error

	binders := map[string]interface{ bindEnvironmentVariables() error }{
		"BotConfig":      BotConfig{},
		"DBConfig":       DBConfig{},
		"LoggerConfig":   LoggerConfig{},
		"GeocoderConfig": GeocoderConfig{},
		"CacheConfig":    CacheConfig{},
		"MatchingConfig": MatchingConfig{},
		"MetricsConfig":  MetricsConfig{},
	}

	for name, binder := range binders {
		if err := binder.bindEnvironmentVariables(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	if err := config.DB.validate(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := config.Geocoder.validate(); err != nil {
		errs = append(errs, fmt.Errorf("GeocoderConfig: %w", err))
	}

	if err := config.Cache.validate(); err != nil {
		errs = append(errs, fmt.Errorf("CacheConfig: %w", err))
	}

	if err := config.Matching.validate(); err != nil {
		errs = append(errs, fmt.Errorf("MatchingConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func createMultiError(errs []error) error {
	return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
}
