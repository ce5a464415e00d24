package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/forgo/divisions/internal/model"
)

// Config holds all application configuration
type Config struct {
	Store StoreConfig
	Jobs  JobsConfig

	// Language selects the message catalog for user-facing text.
	Language string
}

// StoreConfig holds division storage settings
type StoreConfig struct {
	DataDir         string
	MaxDivisionSize int

	// WatchEnabled turns on cache invalidation from external edits to
	// the data directory.
	WatchEnabled bool
}

// JobsConfig holds background job settings
type JobsConfig struct {
	ChatFlushInterval time.Duration
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	return &Config{
		Store: StoreConfig{
			DataDir:         getEnv("DIVISIONS_DATA_DIR", "./data/divisions"),
			MaxDivisionSize: getIntEnv("DIVISIONS_MAX_SIZE", 100),
			WatchEnabled:    getBoolEnv("DIVISIONS_WATCH", false),
		},
		Jobs: JobsConfig{
			ChatFlushInterval: getDurationEnv("DIVISIONS_CHAT_FLUSH_INTERVAL", time.Minute),
		},
		Language: getEnv("DIVISIONS_LANGUAGE", "en"),
	}, nil
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Store.DataDir == "" {
		errs = append(errs, errors.New("DIVISIONS_DATA_DIR is required"))
	}
	if c.Store.MaxDivisionSize <= 0 {
		errs = append(errs, errors.New("DIVISIONS_MAX_SIZE must be positive"))
	}
	if c.Store.MaxDivisionSize > model.MaxPlayers {
		errs = append(errs, fmt.Errorf("DIVISIONS_MAX_SIZE must not exceed %d", model.MaxPlayers))
	}
	if c.Jobs.ChatFlushInterval <= 0 {
		errs = append(errs, errors.New("DIVISIONS_CHAT_FLUSH_INTERVAL must be positive"))
	}
	if c.Language == "" {
		errs = append(errs, errors.New("DIVISIONS_LANGUAGE is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// getEnv gets an environment variable with a fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
