package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/IgorGrieder/encurtador-console/internal/infrastructure/validation"
	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Console ConsoleConfig
	Admin   AdminConfig
	OTel    OTelConfig
	Sentry  SentryConfig
}

type AppConfig struct {
	Name     string
	Version  string
	Env      string
	LogLevel string
	LogFile  string
}

type APIConfig struct {
	BaseURL         string `validate:"required,http_url"`
	APIKey          string
	Timeout         time.Duration
	BreakerFailures int
	BreakerCooldown time.Duration
}

type ConsoleConfig struct {
	// ShortLinkOrigin prefixes codes when building short and detail URLs.
	ShortLinkOrigin   string `validate:"required,http_url"`
	CopyFeedbackDelay time.Duration
}

type AdminConfig struct {
	Enabled     bool
	Host        string
	Port        string
	APIKeys     []string
	CORSOrigins []string
}

type OTelConfig struct {
	Enabled  bool
	Endpoint string
}

type SentryConfig struct {
	DSN string
}

func Load() (*Config, error) {
	// A missing .env is fine; the environment is authoritative.
	_ = godotenv.Load()

	apiBase := GetEnv("LINKS_API_BASE_URL", "http://localhost:8080")

	cfg := &Config{
		App: AppConfig{
			Name:     GetEnv("APP_NAME", "encurtador-console"),
			Version:  GetEnv("APP_VERSION", "0.1.0"),
			Env:      GetEnv("APP_ENV", "development"),
			LogLevel: GetEnv("LOG_LEVEL", "info"),
			LogFile:  GetEnv("LOG_FILE", "logs/console.log"),
		},
		API: APIConfig{
			BaseURL:         apiBase,
			APIKey:          GetEnv("LINKS_API_KEY", ""),
			Timeout:         GetEnvDuration("LINKS_API_TIMEOUT", 10*time.Second),
			BreakerFailures: GetEnvInt("LINKS_API_BREAKER_FAILURES", 5),
			BreakerCooldown: GetEnvDuration("LINKS_API_BREAKER_COOLDOWN", 30*time.Second),
		},
		Console: ConsoleConfig{
			ShortLinkOrigin:   GetEnv("SHORT_LINK_ORIGIN", originOf(apiBase)),
			CopyFeedbackDelay: GetEnvDuration("COPY_FEEDBACK_DELAY", 2*time.Second),
		},
		Admin: AdminConfig{
			Enabled:     GetEnvBool("ADMIN_ENABLED", false),
			Host:        GetEnv("ADMIN_HOST", "localhost"),
			Port:        GetEnv("ADMIN_PORT", "9090"),
			APIKeys:     SplitCSV(GetEnv("ADMIN_API_KEYS", "")),
			CORSOrigins: SplitCSV(GetEnv("ADMIN_CORS_ORIGINS", "")),
		},
		OTel: OTelConfig{
			Enabled:  GetEnvBool("OTEL_ENABLED", false),
			Endpoint: GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
		},
		Sentry: SentryConfig{
			DSN: GetEnv("SENTRY_DSN", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if err := validation.Validate(c.API); err != nil {
		return fmt.Errorf("LINKS_API_BASE_URL must be an http(s) URL (got %q)", c.API.BaseURL)
	}
	if err := validation.Validate(c.Console); err != nil {
		return fmt.Errorf("SHORT_LINK_ORIGIN must be an http(s) URL (got %q)", c.Console.ShortLinkOrigin)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("LINKS_API_TIMEOUT must be positive (got %s)", c.API.Timeout)
	}
	if c.API.BreakerFailures < 1 {
		return fmt.Errorf("LINKS_API_BREAKER_FAILURES must be at least 1 (got %d)", c.API.BreakerFailures)
	}
	if c.Console.CopyFeedbackDelay <= 0 {
		return fmt.Errorf("COPY_FEEDBACK_DELAY must be positive (got %s)", c.Console.CopyFeedbackDelay)
	}
	return nil
}

// originOf reduces a URL to scheme://host. The short links live on the same
// origin as the API unless SHORT_LINK_ORIGIN says otherwise.
func originOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}
	return u.Scheme + "://" + u.Host
}
