package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LINKS_API_BASE_URL", "https://api.sho.rt/v1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Console.ShortLinkOrigin != "https://api.sho.rt" {
		t.Errorf("origin = %q, want %q", cfg.Console.ShortLinkOrigin, "https://api.sho.rt")
	}
	if cfg.Console.CopyFeedbackDelay != 2*time.Second {
		t.Errorf("copy delay = %v, want 2s", cfg.Console.CopyFeedbackDelay)
	}
	if cfg.Admin.Enabled {
		t.Error("admin server should be disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LINKS_API_BASE_URL", "http://localhost:3000")
	t.Setenv("SHORT_LINK_ORIGIN", "https://sho.rt")
	t.Setenv("ADMIN_ENABLED", "true")
	t.Setenv("ADMIN_API_KEYS", "k1, k2,,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Console.ShortLinkOrigin != "https://sho.rt" {
		t.Errorf("origin = %q", cfg.Console.ShortLinkOrigin)
	}
	if !cfg.Admin.Enabled {
		t.Error("expected admin server enabled")
	}
	if len(cfg.Admin.APIKeys) != 2 {
		t.Errorf("got %d admin keys, want 2", len(cfg.Admin.APIKeys))
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantKey string
	}{
		{"api base url without scheme", "LINKS_API_BASE_URL", "api.sho.rt", "LINKS_API_BASE_URL"},
		{"ftp origin", "SHORT_LINK_ORIGIN", "ftp://sho.rt", "SHORT_LINK_ORIGIN"},
		{"zero breaker threshold", "LINKS_API_BREAKER_FAILURES", "0", "LINKS_API_BREAKER_FAILURES"},
		{"negative copy delay", "COPY_FEEDBACK_DELAY", "-1s", "COPY_FEEDBACK_DELAY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantKey) {
				t.Errorf("error %q does not mention %s", err, tt.wantKey)
			}
		})
	}
}
