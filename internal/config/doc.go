// Package config handles application configuration for divisions.
//
// Configuration is loaded from environment variables with sensible
// defaults, then validated once at startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Environment Variables
//
//   - DIVISIONS_DATA_DIR: root directory for division storage
//   - DIVISIONS_MAX_SIZE: member cap per division
//   - DIVISIONS_LANGUAGE: message catalog language code
//   - DIVISIONS_CHAT_FLUSH_INTERVAL: chat flusher tick interval
//   - DIVISIONS_WATCH: enable data directory watching
package config
