package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/eugenenazirov/envguard/internal/envconfig"
)

func requiredOnly() envconfig.MapSource {
	return envconfig.MapSource{
		KeyDatabaseURL: "postgres://app:pw@db:5432/app",
		KeyJWTSecret:   "s3cr3t",
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(requiredOnly())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != 5000 {
		t.Fatalf("expected default port 5000, got %d", cfg.Port)
	}
	if cfg.Environment != "development" || cfg.LogLevel != "info" || cfg.Debug {
		t.Fatalf("unexpected application defaults: %+v", cfg)
	}
	if cfg.RedisPort != 6379 || cfg.RedisAddr() != "" {
		t.Fatalf("unexpected cache defaults: port=%d addr=%q", cfg.RedisPort, cfg.RedisAddr())
	}
	if !cfg.EnableRequestLogging {
		t.Fatalf("expected request logging enabled by default")
	}
	if cfg.RateLimitRPS != 25 || cfg.RateLimitBurst != 50 {
		t.Fatalf("unexpected rate limit defaults: %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.ShutdownGracePeriod != 10*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", cfg.ShutdownGracePeriod)
	}
	if cfg.Addr() != ":5000" {
		t.Fatalf("unexpected addr %s", cfg.Addr())
	}
	if cfg.Settings == nil {
		t.Fatalf("expected resolved settings to be retained")
	}
}

func TestLoadOverrides(t *testing.T) {
	src := requiredOnly()
	src[KeyPort] = "8080"
	src[KeyDebug] = "YES"
	src[KeyRedisHost] = "cache"
	src[KeyRedisPort] = "6380"
	src[KeyRateLimitRPS] = "0"
	src[KeyShutdownGraceSeconds] = "3"

	cfg, err := Load(src)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != 8080 {
		t.Fatalf("expected overridden port, got %d", cfg.Port)
	}
	if !cfg.Debug || cfg.LogLevel != "debug" {
		t.Fatalf("expected DEBUG to force debug level, got %v/%s", cfg.Debug, cfg.LogLevel)
	}
	if cfg.RedisAddr() != "cache:6380" {
		t.Fatalf("unexpected redis addr %s", cfg.RedisAddr())
	}
	if cfg.RateLimitRPS != 0 {
		t.Fatalf("expected rate limiting disabled")
	}
	if cfg.ShutdownGracePeriod != 3*time.Second {
		t.Fatalf("unexpected grace period %s", cfg.ShutdownGracePeriod)
	}
}

func TestLoadReportsAllMissingRequired(t *testing.T) {
	_, err := Load(envconfig.MapSource{})

	var resErr *envconfig.ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("expected resolution error, got %v", err)
	}
	if diff := cmp.Diff([]string{KeyDatabaseURL, KeyJWTSecret}, resErr.Keys()); diff != "" {
		t.Fatalf("unexpected failing keys (-want +got):\n%s", diff)
	}
}

func TestLoadRedactsSecretDatabaseURL(t *testing.T) {
	src := requiredOnly()
	src[KeyDatabaseURL] = "db-password-123"
	src[KeyPort] = "http"

	_, err := Load(src)
	if err == nil {
		t.Fatalf("expected error")
	}
	if strings.Contains(err.Error(), "db-password-123") {
		t.Fatalf("secret leaked: %v", err)
	}
	if !strings.Contains(err.Error(), `"http"`) {
		t.Fatalf("expected non-secret value in error: %v", err)
	}
}

func TestLoadRangeChecks(t *testing.T) {
	tests := []struct {
		name string
		key  string
		raw  string
	}{
		{name: "port zero", key: KeyPort, raw: "0"},
		{name: "port too large", key: KeyPort, raw: "70000"},
		{name: "redis port", key: KeyRedisPort, raw: "-1"},
		{name: "negative rps", key: KeyRateLimitRPS, raw: "-5"},
		{name: "negative burst", key: KeyRateLimitBurst, raw: "-1"},
		{name: "negative grace", key: KeyShutdownGraceSeconds, raw: "-1"},
		{name: "log level", key: KeyLogLevel, raw: "chatty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := requiredOnly()
			src[tt.key] = tt.raw

			_, err := Load(src)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Fatalf("expected error to name %s: %v", tt.key, err)
			}
		})
	}
}

func TestSchemaIsValidAndLintClean(t *testing.T) {
	schema := Schema()
	if err := schema.Validate(); err != nil {
		t.Fatalf("schema invalid: %v", err)
	}
	if warnings := schema.Lint(); len(warnings) != 0 {
		t.Fatalf("unexpected lint warnings: %v", warnings)
	}
}

func TestSourcePrecedence(t *testing.T) {
	t.Setenv(KeyPort, "7000")
	t.Setenv(KeyAppEnv, "staging")

	src := Source(map[string]string{KeyPort: "9000"}, nil)
	if v, _ := src.Lookup(KeyPort); v != "9000" {
		t.Fatalf("expected CLI override, got %s", v)
	}
	if v, _ := src.Lookup(KeyAppEnv); v != "staging" {
		t.Fatalf("expected environment fallback, got %s", v)
	}

	if v, _ := Source(nil, nil).Lookup(KeyPort); v != "7000" {
		t.Fatalf("expected environment value without overrides, got %s", v)
	}

	base := envconfig.MapSource{KeyPort: "6000"}
	if v, _ := Source(map[string]string{KeyAppEnv: "prod"}, base).Lookup(KeyPort); v != "6000" {
		t.Fatalf("expected injected base source, got %s", v)
	}
}
