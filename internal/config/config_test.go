package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.DBURL != "" {
		t.Fatalf("expected empty DBURL default, got %q", cfg.DBURL)
	}
	if !cfg.CacheEnabled {
		t.Fatalf("expected CacheEnabled=true by default")
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}
	if cfg.RecomputeWorkers != 4 {
		t.Fatalf("unexpected RecomputeWorkers: %d", cfg.RecomputeWorkers)
	}
	if cfg.SessionDir == "" {
		t.Fatalf("expected non-empty SessionDir default")
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_ScoreAPIConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SCORE_API_BASE_URL", "https://scores.example.com")
	t.Setenv("SCORE_API_TIMEOUT", "4s")
	t.Setenv("SCORE_API_MAX_RETRIES", "3")
	t.Setenv("SCORE_API_CIRCUIT_FAILURE_COUNT", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ScoreAPIBaseURL != "https://scores.example.com" {
		t.Fatalf("unexpected ScoreAPIBaseURL: %q", cfg.ScoreAPIBaseURL)
	}
	if cfg.ScoreAPITimeout != 4*time.Second {
		t.Fatalf("unexpected ScoreAPITimeout: %s", cfg.ScoreAPITimeout)
	}
	if cfg.ScoreAPIMaxRetries != 3 {
		t.Fatalf("unexpected ScoreAPIMaxRetries: %d", cfg.ScoreAPIMaxRetries)
	}
	if cfg.ScoreAPICircuitFailureCount != 7 {
		t.Fatalf("unexpected ScoreAPICircuitFailureCount: %d", cfg.ScoreAPICircuitFailureCount)
	}
}

func TestLoad_RejectsInvalidDurations(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CACHE_TTL", "soon")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid CACHE_TTL")
	}
}

func TestLoad_RecomputeWorkersMustBePositive(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("RECOMPUTE_WORKERS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for RECOMPUTE_WORKERS=0")
	}
}
