package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/nomadia/site-messages/internal/i18n"
)

const (
	// EnvDevelopment enables miss diagnostics and the debug endpoints.
	EnvDevelopment = "development"
	// EnvProduction is the default environment.
	EnvProduction = "production"
)

// Config describes runtime configuration for site-messages.
type Config struct {
	// ServiceName is a human-friendly service name for logs.
	ServiceName string `env:"SITE_MESSAGES_SERVICE_NAME" envDefault:"site-messages"`
	// HTTPHost is the HTTP listen host.
	HTTPHost string `env:"SITE_MESSAGES_HTTP_HOST" envDefault:"0.0.0.0"`
	// HTTPPort is the HTTP listen port.
	HTTPPort int `env:"SITE_MESSAGES_HTTP_PORT" envDefault:"8080"`
	// LogLevel controls log verbosity (debug, info, warn, error).
	LogLevel string `env:"SITE_MESSAGES_LOG_LEVEL" envDefault:"info"`
	// LogFormat selects the log handler (text, json, tint).
	LogFormat string `env:"SITE_MESSAGES_LOG_FORMAT" envDefault:"text"`
	// Environment is development or production.
	Environment string `env:"SITE_MESSAGES_ENVIRONMENT" envDefault:"production"`
	// DefaultLocale is used when a request names no supported locale.
	DefaultLocale string `env:"SITE_MESSAGES_DEFAULT_LOCALE" envDefault:"en"`
	// MessagesDir overrides the embedded message documents.
	MessagesDir string `env:"SITE_MESSAGES_MESSAGES_DIR"`
	// CatalogMode selects full catalog failure handling (isolated or strict).
	CatalogMode string `env:"SITE_MESSAGES_CATALOG_MODE" envDefault:"isolated"`
	// ShutdownTimeout is the graceful shutdown timeout.
	ShutdownTimeout time.Duration `env:"SITE_MESSAGES_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// TelegramToken enables missing translation reports to Telegram.
	TelegramToken string `env:"SITE_MESSAGES_TELEGRAM_TOKEN"`
	// TelegramChatID is the chat receiving missing translation reports.
	TelegramChatID int64 `env:"SITE_MESSAGES_TELEGRAM_CHAT_ID"`
}

// Load reads an optional .env file, then parses configuration from
// environment variables.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read .env: %w", err)
	}
	return Parse()
}

// Parse parses and validates configuration from environment variables only.
func Parse() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	switch cfg.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return Config{}, fmt.Errorf("environment must be %s or %s", EnvDevelopment, EnvProduction)
	}

	locale, err := i18n.ParseLocale(cfg.DefaultLocale)
	if err != nil {
		return Config{}, fmt.Errorf("default locale: %w", err)
	}
	cfg.DefaultLocale = locale.String()

	if _, err := i18n.ParseCatalogMode(cfg.CatalogMode); err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(cfg.HTTPHost) == "" {
		return Config{}, fmt.Errorf("http host is required")
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return Config{}, fmt.Errorf("http port must be between 1 and 65535")
	}
	if cfg.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("shutdown timeout must be positive")
	}

	if (cfg.TelegramToken == "") != (cfg.TelegramChatID == 0) {
		return Config{}, fmt.Errorf("telegram token and chat id must be set together")
	}

	return cfg, nil
}

// HTTPAddr returns a listen address for the HTTP server.
func (c Config) HTTPAddr() string {
	return net.JoinHostPort(strings.TrimSpace(c.HTTPHost), fmt.Sprintf("%d", c.HTTPPort))
}

// Development reports whether the service runs in development mode.
func (c Config) Development() bool {
	return c.Environment == EnvDevelopment
}

// Locale returns the validated default locale.
func (c Config) Locale() i18n.Locale {
	return i18n.ParseLocaleOr(c.DefaultLocale, i18n.English)
}

// Mode returns the validated catalog mode.
func (c Config) Mode() i18n.CatalogMode {
	mode, err := i18n.ParseCatalogMode(c.CatalogMode)
	if err != nil {
		return i18n.CatalogIsolated
	}
	return mode
}

// TelegramEnabled reports whether missing translation reports go to Telegram.
func (c Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
