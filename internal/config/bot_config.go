package config

import (
	"github.com/spf13/viper"
)

// BotConfig is optional: an empty token disables the Telegram notifier.
type BotConfig struct {
	Token string `mapstructure:"token"`
}

func (config BotConfig) Enabled() bool {
	return config.Token != ""
}

func (config BotConfig) bindEnvironmentVariables() error {
	return viper.BindEnv("bot.token", "TG_TOKEN")
}
