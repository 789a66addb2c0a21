package config

import "time"

// Config holds runtime settings for the argentctl CLI.
//
// Fields:
//   - APIBaseURL: base address of the backend HTTP API, including /api/v1.
//   - RequestTimeout: end-to-end bound on each backend call.
//   - DatabasePath: location of the local SQLite credential database.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	DatabasePath   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3001/api/v1"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "argentbank.db"
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
