package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Global singleton for packages that cannot take injected config.
var globalConfig *Config

// Config holds all environment backed configuration for web-frontend.
type Config struct {
	// HTTP Server
	HTTPPort    int `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int `env:"METRICS_PORT" envDefault:"9091"`

	// Platform API (models, runs, auth)
	APIBase         string        `env:"API_BASE" envDefault:"http://localhost:8000"`
	PlatformTimeout time.Duration `env:"PLATFORM_TIMEOUT" envDefault:"15s"`

	// Form engine
	RunTimeout           time.Duration `env:"RUN_TIMEOUT" envDefault:"5m"`
	UploadSessionTTL     time.Duration `env:"UPLOAD_SESSION_TTL" envDefault:"30m"`
	MaxUploadBytes       int64         `env:"MAX_UPLOAD_BYTES" envDefault:"52428800"`
	SweepIntervalMinutes int           `env:"SWEEP_INTERVAL_MINUTES" envDefault:"5"`

	// Observability / Logging
	OTLPEndpoint     string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders      string `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName      string `env:"SERVICE_NAME" envDefault:"web-frontend"`
	ServiceNamespace string `env:"SERVICE_NAMESPACE" envDefault:"genhub"`
	Environment      string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string `env:"LOG_FORMAT" envDefault:"console"`

	// Templates / assets
	TemplateGlob string `env:"TEMPLATE_GLOB" envDefault:"web/templates/*.tmpl"`
	StaticDir    string `env:"STATIC_DIR" envDefault:"web/static"`

	// Internal
	EnvReloadedAt time.Time
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	// Optional .env for local development, ignored when missing.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.APIBase = strings.TrimRight(strings.TrimSpace(cfg.APIBase), "/")
	if _, err := url.ParseRequestURI(cfg.APIBase); err != nil {
		return nil, fmt.Errorf("invalid API_BASE: %w", err)
	}

	if cfg.RunTimeout <= 0 {
		return nil, fmt.Errorf("RUN_TIMEOUT must be positive, got %s", cfg.RunTimeout)
	}
	if cfg.UploadSessionTTL <= 0 {
		return nil, fmt.Errorf("UPLOAD_SESSION_TTL must be positive, got %s", cfg.UploadSessionTTL)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.EnvReloadedAt = time.Now()

	globalConfig = cfg
	return cfg, nil
}

// GetGlobal returns the last loaded configuration, or nil when Load has not run.
func GetGlobal() *Config {
	return globalConfig
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.HTTPPort)
}

// RunEndpoint returns the platform run URL for a model.
func (c *Config) RunEndpoint(modelID string) string {
	return fmt.Sprintf("%s/api/v1/models/%s/run", c.APIBase, modelID)
}

// OAuthLoginURL returns the platform OAuth login URL for a provider.
func (c *Config) OAuthLoginURL(provider string) string {
	return fmt.Sprintf("%s/api/v1/auth/oauth/%s/login", c.APIBase, provider)
}

// LogoutURL returns the platform logout URL.
func (c *Config) LogoutURL() string {
	return c.APIBase + "/api/v1/auth/logout"
}
