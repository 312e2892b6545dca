package config

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.URL != "" {
		t.Fatalf("default server URL must be empty, got %q", cfg.Server.URL)
	}
	if cfg.UI.Theme != "default" {
		t.Fatalf("theme = %q", cfg.UI.Theme)
	}
	if cfg.Logging.Level != "INFO" {
		t.Fatalf("level = %q", cfg.Logging.Level)
	}
	if cfg.Logging.File == "" {
		t.Fatalf("default log path must be set")
	}
}

func TestIsConfigured(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.IsConfigured() {
		t.Fatalf("default config must not count as configured")
	}

	cfg.Server.URL = "http://localhost:5000"
	if !cfg.IsConfigured() {
		t.Fatalf("config with a server URL must count as configured")
	}
}
