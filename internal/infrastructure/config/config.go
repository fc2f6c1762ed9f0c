package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists (ignores error if not found)
	godotenv.Load()
}

type Config struct {
	Port        string   `env:"PORT" envDefault:"8005"`
	BaseURL     string   `env:"BASE_URL" envDefault:"http://localhost:8005"`
	FrontendURL string   `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	// Database
	DBDriver     string `env:"DB_DRIVER" envDefault:"sqlite"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./data/adsmanager.db"`
	DatabaseURL  string `env:"DATABASE_URL"`
	DBLogLevel   string `env:"DB_LOG_LEVEL" envDefault:"warn"`

	// JWT
	JWTSecret    string        `env:"JWT_SECRET" envDefault:"change-me"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN" envDefault:"24h"`

	// Google OAuth
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleCertsURL     string `env:"GOOGLE_CERTS_URL" envDefault:"https://www.googleapis.com/oauth2/v3/certs"`

	// Google Ads
	GoogleAdsDeveloperToken  string `env:"GOOGLE_ADS_DEVELOPER_TOKEN"`
	GoogleAdsLoginCustomerID string `env:"GOOGLE_ADS_LOGIN_CUSTOMER_ID"`
	GoogleAdsAPIVersion      string `env:"GOOGLE_ADS_API_VERSION" envDefault:"v17"`
	GoogleAdsBaseURL         string `env:"GOOGLE_ADS_BASE_URL" envDefault:"https://googleads.googleapis.com"`

	// Events
	RabbitURL      string `env:"RABBIT_URL"`
	EventsExchange string `env:"EVENTS_EXCHANGE" envDefault:"adsmanager.events"`

	// Tracing
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"adsmanager"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")
	cfg.CORSOrigins = trimCSV(cfg.CORSOrigins)
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{cfg.FrontendURL}
	}

	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.DBDriver == "postgres" && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when DB_DRIVER=postgres")
	}
	return cfg, nil
}

// LoginCallbackURL is the redirect URI registered for the sign-in flow.
func (c *Config) LoginCallbackURL() string {
	return c.BaseURL + "/auth/google/callback"
}

// LinkCallbackURL is the redirect URI registered for managed account linking.
func (c *Config) LinkCallbackURL() string {
	return c.BaseURL + "/api/managed-accounts/callback"
}

// GoogleEnabled reports whether Google OAuth credentials are configured.
func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

func trimCSV(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimRight(strings.TrimSpace(v), "/"); v != "" {
			out = append(out, v)
		}
	}
	return out
}
