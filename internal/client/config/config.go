package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the lembretes CLI.
//
// Fields:
//   - ServerURL: base URL of the HTTP API (no trailing slash needed).
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - PersistSession: restore the logged-in user on the next start.
//   - DBFile: SQLite file backing the persisted session.
//   - RequestTimeout: deadline for each API call; 0 means none.
type Config struct {
	ServerURL           string
	OnlineCheckInterval time.Duration
	PersistSession      bool
	DBFile              string
	RequestTimeout      time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3006"
	c.OnlineCheckInterval = 3 * time.Second
	c.PersistSession = false
	c.DBFile = "lembretes.db"
	c.RequestTimeout = 0
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
