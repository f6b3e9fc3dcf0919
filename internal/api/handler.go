package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/eugenenazirov/envguard/internal/envconfig"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler exposes service health and the resolved configuration over HTTP.
type Handler struct {
	settings    *envconfig.Config
	environment string
	startedAt   time.Time

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithEnvironment sets the deployment environment reported by the handlers.
func WithEnvironment(env string) HandlerOption {
	return func(h *Handler) {
		h.environment = env
	}
}

// NewHandler constructs a Handler serving the provided resolved settings.
func NewHandler(settings *envconfig.Config, opts ...HandlerOption) *Handler {
	h := &Handler{
		settings: settings,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.startedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	now := h.clock()
	resp := healthResponse{
		Status:      "ok",
		Environment: h.environment,
		Timestamp:   now,
		Uptime:      now.Sub(h.startedAt).Round(time.Second).String(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	_ = r
	if h.settings == nil {
		writeError(w, http.StatusServiceUnavailable, "Configuration unavailable", "settings have not been resolved")
		return
	}

	redacted := h.settings.Redacted()
	names := h.settings.Names()
	secrets := make([]string, 0)
	for _, name := range names {
		if h.settings.IsSecret(name) {
			secrets = append(secrets, name)
		}
	}

	resp := configResponse{
		Environment: h.environment,
		Order:       names,
		Settings:    redacted,
		Secrets:     secrets,
	}
	writeJSON(w, http.StatusOK, resp)
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type configResponse struct {
	Environment string            `json:"environment,omitempty"`
	Order       []string          `json:"order"`
	Settings    map[string]string `json:"settings"`
	Secrets     []string          `json:"secrets"`
}

type healthResponse struct {
	Status      string    `json:"status"`
	Environment string    `json:"environment,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Uptime      string    `json:"uptime"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
