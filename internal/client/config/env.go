package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays cfg with values from the environment. A .env file in the
// working directory is loaded first if present (it never overrides variables
// already exported in the process environment).
//
// Recognized variables:
//
//	VIDTUBE_API_BASE_URL
//	VIDTUBE_REQUEST_TIMEOUT   (time.ParseDuration syntax, e.g. "45s")
//	VIDTUBE_STORE_PATH
func parseEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	if v := os.Getenv("VIDTUBE_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("VIDTUBE_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing VIDTUBE_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv("VIDTUBE_STORE_PATH"); v != "" {
		cfg.StorePath = v
	}
	return nil
}
