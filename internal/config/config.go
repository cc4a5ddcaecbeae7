// Package config provides configuration loading for dappbotctl and the
// request middleware.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration.
type Config struct {
	Log  LogConfig  `mapstructure:"log"`
	CORS CORSConfig `mapstructure:"cors"`
	Body BodyConfig `mapstructure:"body"`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// SlogLevel maps Level onto a slog level; unknown names mean info.
func (c LogConfig) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// CORSConfig holds cross-origin settings for the CORS middleware.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
	MaxAge         int      `mapstructure:"max_age"`
}

// BodyConfig limits request bodies read by the body gate.
type BodyConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
}

// Validate checks values viper cannot.
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	if c.Body.MaxBytes <= 0 {
		return errors.New("body.max_bytes must be positive")
	}
	return nil
}

// Load reads configuration from files and environment variables.
func Load() (*Config, error) {
	return load(viper.New())
}

// LoadFile reads configuration from path instead of the search paths.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/dappbot")
	}

	v.SetEnvPrefix("DAPPBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we use defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all settings.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Same origin policy the API has always sent
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Authorization", "Content-Type"})
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("body.max_bytes", 1<<20)
}
