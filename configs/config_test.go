package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("PUBLISH_TIMEOUT", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("DISPATCH_CONCURRENCY", "")

	cfg := LoadConfig()

	if cfg.Port != "4000" {
		t.Fatalf("Port: got %q want %q", cfg.Port, "4000")
	}
	if cfg.DispatchEvery != "@every 0h1m0s" {
		t.Fatalf("DispatchEvery: got %q", cfg.DispatchEvery)
	}
	if cfg.PublishTimeout != time.Minute {
		t.Fatalf("PublishTimeout: got %v", cfg.PublishTimeout)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("SessionTTL: got %v", cfg.SessionTTL)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("Concurrency: got %d", cfg.Concurrency)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("PUBLISH_TIMEOUT", "30s")
	t.Setenv("DISPATCH_CONCURRENCY", "3")

	cfg := LoadConfig()

	if cfg.Port != "8080" {
		t.Fatalf("Port: got %q want %q", cfg.Port, "8080")
	}
	if cfg.PublishTimeout != 30*time.Second {
		t.Fatalf("PublishTimeout: got %v", cfg.PublishTimeout)
	}
	if cfg.Concurrency != 3 {
		t.Fatalf("Concurrency: got %d", cfg.Concurrency)
	}
}

func TestLoadConfigIgnoresBadDuration(t *testing.T) {
	t.Setenv("PUBLISH_TIMEOUT", "soon")

	cfg := LoadConfig()
	if cfg.PublishTimeout != time.Minute {
		t.Fatalf("PublishTimeout: got %v want default", cfg.PublishTimeout)
	}
}
