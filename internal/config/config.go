package config

import (
	"os"
	"strconv"
	"time"

	"topicreview/internal/errors"
	"topicreview/internal/theme"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Display DisplayConfig
	Upload  UploadConfig
	Session SessionConfig
	Log     LogConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DisplayConfig holds the light/dark preference; it only changes colors
type DisplayConfig struct {
	Theme string
}

// UploadConfig limits accepted spreadsheets
type UploadConfig struct {
	MaxBytes int64
}

// SessionConfig controls how long an idle review session is kept in memory
type SessionConfig struct {
	TTL time.Duration
}

// LogConfig holds the LOG_LEVEL value
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Display: DisplayConfig{
			Theme: getEnvOrDefault("DISPLAY_THEME", theme.Light),
		},
		Upload: UploadConfig{
			MaxBytes: int64(getEnvIntOrDefault("MAX_UPLOAD_MB", 50)) * 1024 * 1024,
		},
		Session: SessionConfig{
			TTL: getEnvDurationOrDefault("SESSION_TTL", 2*time.Hour),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "INFO"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if _, ok := theme.Lookup(config.Display.Theme); !ok {
		return errors.ConfigInvalid("DISPLAY_THEME must be 'light' or 'dark'")
	}
	if config.Upload.MaxBytes <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if config.Session.TTL <= 0 {
		return errors.ConfigInvalid("SESSION_TTL must be positive")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
