package application

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/envguard/internal/config"
	"github.com/eugenenazirov/envguard/internal/envconfig"
)

func TestNewInitializesDependencies(t *testing.T) {
	cfg := baseTestConfig(t, 8085)
	logger := zaptest.NewLogger(t)

	app, err := New(cfg, logger)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if app.server == nil || app.router == nil || app.handler == nil {
		t.Fatalf("expected server, router, and handler to be initialized")
	}
	if app.Server() != app.server {
		t.Fatalf("Server accessor did not return underlying instance")
	}
	if app.Server().Addr != ":8085" {
		t.Fatalf("expected addr :8085, got %s", app.Server().Addr)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected config endpoint to respond 200, got %d", rec.Code)
	}
}

func TestNewServerAppliesConfig(t *testing.T) {
	cfg := baseTestConfig(t, 9090)
	handler := http.NewServeMux()

	server := NewServer(cfg, handler)
	if server.Addr != ":9090" {
		t.Fatalf("expected address :9090, got %s", server.Addr)
	}
	if server.Handler != handler {
		t.Fatalf("expected handler to be applied")
	}
	if server.ReadHeaderTimeout != cfg.ReadHeaderTimeout ||
		server.WriteTimeout != cfg.WriteTimeout ||
		server.IdleTimeout != cfg.IdleTimeout {
		t.Fatalf("server timeouts do not match configuration")
	}
}

func TestNewRejectsUnresolvedConfig(t *testing.T) {
	cfg := baseTestConfig(t, 8080)
	cfg.Settings = nil

	if _, err := New(cfg, zaptest.NewLogger(t)); err == nil {
		t.Fatalf("expected error for unresolved configuration")
	}
}

func TestNewRequiresLogger(t *testing.T) {
	if _, err := New(baseTestConfig(t, 8080), nil); err == nil {
		t.Fatalf("expected error for missing logger")
	}
}

func baseTestConfig(t *testing.T, port int) config.Config {
	t.Helper()

	settings, err := envconfig.Resolve(config.Schema(), envconfig.MapSource{
		config.KeyDatabaseURL: "postgres://h/db",
		config.KeyJWTSecret:   "s3cr3t",
	})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	return config.Config{
		Port:                 port,
		Environment:          "test",
		ShutdownGracePeriod:  50 * time.Millisecond,
		ReadHeaderTimeout:    20 * time.Millisecond,
		WriteTimeout:         30 * time.Millisecond,
		IdleTimeout:          40 * time.Millisecond,
		EnableRequestLogging: false,
		RateLimitRPS:         0,
		RateLimitBurst:       0,
		Settings:             settings,
	}
}
