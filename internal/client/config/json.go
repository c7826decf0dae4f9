package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Durations are
// strings like "30s" so config files stay readable.
type jsonConfig struct {
	APIBaseURL     string `json:"api_base_url"`
	RequestTimeout string `json:"request_timeout"`
	StorePath      string `json:"store_path"`
}

// parseJSON overlays cfg with values from the file named by the
// VIDTUBE_CONFIG environment variable. When the variable is unset, no JSON
// is loaded and cfg is left untouched. Only fields present in the file
// override earlier values.
func parseJSON(cfg *Config) error {
	path := os.Getenv("VIDTUBE_CONFIG")
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout != "" {
		d, err := time.ParseDuration(jc.RequestTimeout)
		if err != nil {
			return fmt.Errorf("parsing request_timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if jc.StorePath != "" {
		cfg.StorePath = jc.StorePath
	}
	return nil
}
