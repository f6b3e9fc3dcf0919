package config

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/eugenenazirov/envguard/internal/envconfig"
)

// Setting names.
const (
	KeyPort                 = "PORT"
	KeyAppEnv               = "APP_ENV"
	KeyDebug                = "DEBUG"
	KeyLogLevel             = "LOG_LEVEL"
	KeyDatabaseURL          = "DATABASE_URL"
	KeyRedisHost            = "REDIS_HOST"
	KeyRedisPort            = "REDIS_PORT"
	KeyJWTSecret            = "JWT_SECRET"
	KeySessionSecret        = "SESSION_SECRET"
	KeyStripeAPIKey         = "STRIPE_API_KEY"
	KeySendgridAPIKey       = "SENDGRID_API_KEY"
	KeyPublicBaseURL        = "PUBLIC_BASE_URL"
	KeyRequestLogging       = "REQUEST_LOGGING"
	KeyRateLimitRPS         = "RATE_LIMIT_RPS"
	KeyRateLimitBurst       = "RATE_LIMIT_BURST"
	KeyShutdownGraceSeconds = "SHUTDOWN_GRACE_SECONDS"
)

const (
	defaultPort           = "5000"
	defaultRateLimitRPS   = "25"
	defaultRateLimitBurst = "50"
)

// ErrInvalidConfig is returned when resolved values violate range constraints.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config aggregates the typed runtime configuration. It is built once at
// startup and treated as read-only afterwards.
type Config struct {
	Port                 int
	Environment          string
	Debug                bool
	LogLevel             string
	DatabaseURL          string
	RedisHost            string
	RedisPort            int
	JWTSecret            string
	SessionSecret        string
	StripeAPIKey         string
	SendgridAPIKey       string
	PublicBaseURL        string
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration

	// Settings keeps the resolved values for redacted reporting and logging.
	Settings *envconfig.Config
}

// Schema returns the settings consumed by the service, in reporting order.
func Schema() envconfig.Schema {
	return envconfig.Schema{
		{Name: KeyPort, Kind: envconfig.Int, Default: defaultPort, Description: "HTTP port exposed by the service"},
		{Name: KeyAppEnv, Kind: envconfig.String, Default: "development", Description: "Deployment environment name"},
		{Name: KeyDebug, Kind: envconfig.Bool, Default: "false", Description: "Enable debug logging"},
		{Name: KeyLogLevel, Kind: envconfig.String, Default: "info", Description: "Minimum log level (debug, info, warn, error)"},
		{Name: KeyDatabaseURL, Required: true, Kind: envconfig.URL, Secret: true, Description: "Database connection string; may embed credentials"},
		{Name: KeyRedisHost, Kind: envconfig.String, Description: "Cache host name"},
		{Name: KeyRedisPort, Kind: envconfig.Int, Default: "6379", Description: "Cache port"},
		{Name: KeyJWTSecret, Required: true, Kind: envconfig.String, Secret: true, Description: "Secret used to sign access tokens"},
		{Name: KeySessionSecret, Kind: envconfig.String, Secret: true, Description: "Secret used to sign session cookies"},
		{Name: KeyStripeAPIKey, Kind: envconfig.String, Secret: true, Description: "Stripe API key"},
		{Name: KeySendgridAPIKey, Kind: envconfig.String, Secret: true, Description: "SendGrid API key"},
		{Name: KeyPublicBaseURL, Kind: envconfig.URL, Description: "Externally visible base URL"},
		{Name: KeyRequestLogging, Kind: envconfig.Bool, Default: "true", Description: "Emit access logs"},
		{Name: KeyRateLimitRPS, Kind: envconfig.Int, Default: defaultRateLimitRPS, Description: "Requests per second allowed (0 disables limiting)"},
		{Name: KeyRateLimitBurst, Kind: envconfig.Int, Default: defaultRateLimitBurst, Description: "Burst capacity for the rate limiter"},
		{Name: KeyShutdownGraceSeconds, Kind: envconfig.Int, Default: "10", Description: "Seconds to wait for in-flight requests on shutdown"},
	}
}

// Source layers CLI overrides over env. A nil env reads the process
// environment.
func Source(overrides map[string]string, env envconfig.Source) envconfig.Source {
	if env == nil {
		env = envconfig.EnvSource{}
	}
	if len(overrides) == 0 {
		return env
	}
	return envconfig.Chain(envconfig.MapSource(overrides), env)
}

// Load resolves Schema against src and maps the result onto Config. Resolution
// failures are returned as *envconfig.ResolutionError so callers can report
// every problem in one pass.
func Load(src envconfig.Source) (Config, error) {
	settings, err := envconfig.Resolve(Schema(), src)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:                 settings.Int(KeyPort),
		Environment:          settings.String(KeyAppEnv),
		Debug:                settings.Bool(KeyDebug),
		LogLevel:             settings.String(KeyLogLevel),
		DatabaseURL:          settings.URL(KeyDatabaseURL),
		RedisHost:            settings.String(KeyRedisHost),
		RedisPort:            settings.Int(KeyRedisPort),
		JWTSecret:            settings.String(KeyJWTSecret),
		SessionSecret:        settings.String(KeySessionSecret),
		StripeAPIKey:         settings.String(KeyStripeAPIKey),
		SendgridAPIKey:       settings.String(KeySendgridAPIKey),
		PublicBaseURL:        settings.URL(KeyPublicBaseURL),
		EnableRequestLogging: settings.Bool(KeyRequestLogging),
		RateLimitRPS:         float64(settings.Int(KeyRateLimitRPS)),
		RateLimitBurst:       settings.Int(KeyRateLimitBurst),
		ShutdownGracePeriod:  time.Duration(settings.Int(KeyShutdownGraceSeconds)) * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		Settings:             settings,
	}
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// RedisAddr returns host:port for the cache, or "" when no host is set.
func (c Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// validateConfig checks constraints coercion cannot express. Messages name
// the key and the bound, never the value, since some keys are secret.
func validateConfig(cfg Config) error {
	var errs []error
	if cfg.Port < 1 || cfg.Port > 65535 {
		errs = append(errs, fmt.Errorf("%s must be between 1 and 65535", KeyPort))
	}
	if cfg.RedisPort < 1 || cfg.RedisPort > 65535 {
		errs = append(errs, fmt.Errorf("%s must be between 1 and 65535", KeyRedisPort))
	}
	if cfg.RateLimitRPS < 0 {
		errs = append(errs, fmt.Errorf("%s must be >= 0", KeyRateLimitRPS))
	}
	if cfg.RateLimitBurst < 0 {
		errs = append(errs, fmt.Errorf("%s must be >= 0", KeyRateLimitBurst))
	}
	if cfg.ShutdownGracePeriod < 0 {
		errs = append(errs, fmt.Errorf("%s must be >= 0", KeyShutdownGraceSeconds))
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%s must be one of debug, info, warn, error, dpanic, panic, fatal", KeyLogLevel))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
