package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API APIConfig
	Log LogConfig
	UI  UIConfig
}

// APIConfig holds the remote ordering service settings.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// LogConfig holds file logging settings. The TUI owns stdout, so logs
// always go to a file.
type LogConfig struct {
	Path  string
	Level string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

// Load reads configuration from file and env. Env var overrides use prefix JASKEATS_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("api.base_url", "http://localhost:8080/api")
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "jaskeats", "jaskeats.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.currency_symbol", "$")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("JASKEATS_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "jaskeats"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("JASKEATS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
