// Package config loads runtime settings for the pocketvine CLI.
package config

import "time"

// Config holds runtime settings.
//
// Fields:
//   - DatabasePath: path of the SQLite file backing the key-value store.
//   - StoreQuotaBytes: byte quota of the store; 0 disables the cap.
//   - SessionSecret: HMAC secret for session tokens.
//   - SessionTTL: how long a session token stays valid.
//   - LogLevel: slog level name (debug, info, warn, error).
type Config struct {
	DatabasePath    string
	StoreQuotaBytes int64
	SessionSecret   string
	SessionTTL      time.Duration
	LogLevel        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "pocketvine.db"
	c.StoreQuotaBytes = 10 * 1024 * 1024
	c.SessionSecret = "pocketvine-demo-secret"
	c.SessionTTL = 24 * time.Hour
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
