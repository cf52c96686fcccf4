package config

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.APIBaseURL != "http://localhost:5000" {
		t.Errorf("default api base = %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeoutSeconds != 20 {
		t.Errorf("default timeout = %d", cfg.RequestTimeoutSeconds)
	}
	if cfg.Theme != "light" {
		t.Errorf("default theme = %q", cfg.Theme)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VECINO_API_URL", "http://10.0.0.5:8080")
	t.Setenv("VECINO_THEME", "dark")
	t.Setenv("VECINO_TIMEOUT_SECONDS", "5")

	cfg := applyEnv(DefaultConfig())
	if cfg.APIBaseURL != "http://10.0.0.5:8080" {
		t.Errorf("api override not applied: %q", cfg.APIBaseURL)
	}
	if cfg.Theme != "dark" {
		t.Errorf("theme override not applied: %q", cfg.Theme)
	}
	if cfg.RequestTimeoutSeconds != 5 {
		t.Errorf("timeout override not applied: %d", cfg.RequestTimeoutSeconds)
	}
}

func TestEnvTimeoutIgnoresGarbage(t *testing.T) {
	t.Setenv("VECINO_TIMEOUT_SECONDS", "not-a-number")
	cfg := applyEnv(DefaultConfig())
	if cfg.RequestTimeoutSeconds != 20 {
		t.Errorf("garbage timeout should keep default, got %d", cfg.RequestTimeoutSeconds)
	}

	t.Setenv("VECINO_TIMEOUT_SECONDS", "-3")
	cfg = applyEnv(DefaultConfig())
	if cfg.RequestTimeoutSeconds != 20 {
		t.Errorf("non-positive timeout should keep default, got %d", cfg.RequestTimeoutSeconds)
	}
}

func TestEmptyAPIBaseFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIBaseURL = ""
	cfg = applyEnv(cfg)
	if cfg.APIBaseURL != "http://localhost:5000" {
		t.Errorf("empty base should fall back to default, got %q", cfg.APIBaseURL)
	}
}
