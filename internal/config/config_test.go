package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PLANDECK_API_URL", "")
	t.Setenv("PLANDECK_TOKEN", "")
	t.Setenv("PLANDECK_DEV", "")
	t.Setenv("PLANDECK_THEME", "")

	cfg := Load()
	if cfg.APIBaseURL != "http://localhost:3001/api" {
		t.Errorf("APIBaseURL = %q, want default", cfg.APIBaseURL)
	}
	if cfg.Token != "" {
		t.Errorf("Token = %q, want empty", cfg.Token)
	}
	if cfg.DevMode {
		t.Error("DevMode = true, want false")
	}
	if cfg.Theme != "default" {
		t.Errorf("Theme = %q, want default", cfg.Theme)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PLANDECK_API_URL", "https://plan.example.com/api")
	t.Setenv("PLANDECK_TOKEN", "secret")
	t.Setenv("PLANDECK_DEV", "true")
	t.Setenv("PLANDECK_DEBUG", "1")

	cfg := Load()
	if cfg.APIBaseURL != "https://plan.example.com/api" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.Token != "secret" {
		t.Errorf("Token = %q", cfg.Token)
	}
	if !cfg.DevMode {
		t.Error("DevMode = false, want true")
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
}

func TestInvalidBoolFallsBack(t *testing.T) {
	t.Setenv("PLANDECK_DEV", "maybe")

	cfg := Load()
	if cfg.DevMode {
		t.Error("DevMode = true, want false for unparseable value")
	}
}
