// Package config holds user preferences for the vecino client and the
// resolution order for the API base URL: built-in default, config file,
// .env file, then environment variables.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const defaultAPIBase = "http://localhost:5000"

// Config holds user preferences.
type Config struct {
	APIBaseURL            string `json:"api_base_url"`
	Theme                 string `json:"theme"` // "light" or "dark"
	LogFile               string `json:"log_file"`
	Verbose               bool   `json:"verbose"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		APIBaseURL:            defaultAPIBase,
		Theme:                 "light",
		RequestTimeoutSeconds: 20,
	}
}

// Dir returns the directory where config and session state are stored.
// A project-local .vecino directory wins over the home-level one.
func Dir() (string, error) {
	if cwd, err := os.Getwd(); err == nil {
		localDir := filepath.Join(cwd, ".vecino")
		if stat, err := os.Stat(localDir); err == nil && stat.IsDir() {
			return localDir, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".vecino"), nil
}

// File returns the full path to the config file.
func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the configuration from disk and applies .env and environment
// overrides on top. A missing file is not an error.
func Load() (Config, error) {
	cfg := DefaultConfig()

	path, err := File()
	if err != nil {
		return applyEnv(cfg), err
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if jsonErr := json.Unmarshal(data, &cfg); jsonErr != nil {
			cfg = DefaultConfig()
		}
	} else if !os.IsNotExist(err) {
		return applyEnv(cfg), err
	}

	return applyEnv(cfg), nil
}

// applyEnv layers .env and process environment over cfg.
func applyEnv(cfg Config) Config {
	_ = godotenv.Load() // optional .env in cwd

	if v := os.Getenv("VECINO_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("VECINO_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("VECINO_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RequestTimeoutSeconds = n
		}
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBase
	}
	return cfg
}

// Save writes the configuration to disk.
func Save(cfg Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := File()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
