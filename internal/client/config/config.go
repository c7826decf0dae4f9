// Package config holds runtime settings for the VidTube client and the
// layered loading that populates them: defaults, then a JSON file, then
// environment variables. Later sources take precedence.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API, including the /api prefix.
//   - RequestTimeout: per-request timeout applied by the HTTP adapter.
//   - StorePath: SQLite DSN/path for the persisted session store.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	StorePath      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080/api"
	c.RequestTimeout = 30 * time.Second
	c.StorePath = "session.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a JSON file (if configured) and the environment (if set).
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
