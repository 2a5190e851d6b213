package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GJW_ACCESS_TOKEN", "tok")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "https://api.ganjingworld.com/v1" {
		t.Fatalf("api base = %q", cfg.APIBaseURL)
	}
	if cfg.UploadBaseURL != "https://upload.ganjingworld.com/v1" {
		t.Fatalf("upload base = %q", cfg.UploadBaseURL)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Fatalf("poll interval = %v", cfg.PollInterval)
	}
	if cfg.MaxWait != 10*time.Minute {
		t.Fatalf("max wait = %v", cfg.MaxWait)
	}
	if cfg.Language != "en" {
		t.Fatalf("language = %q", cfg.Language)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GJW_ACCESS_TOKEN", "tok")
	t.Setenv("GJW_API_BASE_URL", "http://localhost:9999/v1")
	t.Setenv("GJW_POLL_INTERVAL", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:9999/v1" {
		t.Fatalf("api base = %q", cfg.APIBaseURL)
	}
	if cfg.PollInterval != 250*time.Millisecond {
		t.Fatalf("poll interval = %v", cfg.PollInterval)
	}
}

func TestLoadRequiresAccessToken(t *testing.T) {
	t.Setenv("GJW_ACCESS_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when GJW_ACCESS_TOKEN is unset")
	}
}
