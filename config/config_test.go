package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("expected default environment development, got %q", cfg.Server.Environment)
	}
	if cfg.AI.Model != "gemini-2.5-flash-lite" {
		t.Errorf("unexpected default model %q", cfg.AI.Model)
	}
	if cfg.AI.Timeout != 30*time.Second {
		t.Errorf("expected 30s AI timeout, got %v", cfg.AI.Timeout)
	}
	if cfg.Auth.AccessTokenExpiry != 24*time.Hour {
		t.Errorf("expected 24h token expiry, got %v", cfg.Auth.AccessTokenExpiry)
	}
	if cfg.Ingestion.RateLimitMaxAttempts != 30 {
		t.Errorf("expected 30 ingest attempts per window, got %d", cfg.Ingestion.RateLimitMaxAttempts)
	}
	if cfg.Ingestion.RateLimitWindow != time.Minute {
		t.Errorf("expected 1m ingest window, got %v", cfg.Ingestion.RateLimitWindow)
	}

	// Optional integrations default to disabled.
	if cfg.Redis.Addr != "" {
		t.Errorf("expected Redis disabled by default, got addr %q", cfg.Redis.Addr)
	}
	if cfg.AI.GeminiAPIKey != "" {
		t.Error("expected the oracle disabled by default")
	}
	if cfg.Email.ResendAPIKey != "" {
		t.Error("expected email delivery disabled by default")
	}
	if cfg.Auth.IngestAPIKey != "" {
		t.Error("expected the ingest webhook disabled by default")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("AI_TIMEOUT", "10s")
	t.Setenv("INGEST_RATE_LIMIT_MAX", "5")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Server.Environment != "production" {
		t.Errorf("expected environment production, got %q", cfg.Server.Environment)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("expected Redis addr localhost:6379, got %q", cfg.Redis.Addr)
	}
	if cfg.AI.Timeout != 10*time.Second {
		t.Errorf("expected 10s AI timeout, got %v", cfg.AI.Timeout)
	}
	if cfg.Ingestion.RateLimitMaxAttempts != 5 {
		t.Errorf("expected 5 ingest attempts per window, got %d", cfg.Ingestion.RateLimitMaxAttempts)
	}
}

func TestLoad_IgnoresUnparseableValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("AI_TIMEOUT", "soon")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected fallback to default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.AI.Timeout != 30*time.Second {
		t.Errorf("expected fallback to default 30s timeout, got %v", cfg.AI.Timeout)
	}
}
