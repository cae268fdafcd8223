package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full service configuration, loaded from the environment.
type Config struct {
	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Port                int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	DatabaseFile string `env:"DASH_DATABASE_FILE" envDefault:"dash.db"`

	// JWTSecret signs HS256 access tokens. Required; there is no safe
	// default for a signing secret.
	JWTSecret string `env:"DASH_JWT_SECRET"`
	Issuer    string `env:"DASH_ISSUER" envDefault:"crmdash"`

	CRM CRMConfig `envPrefix:"CRM_"`
}

// CRMConfig holds the upstream CRM integration credentials.
type CRMConfig struct {
	LoginURL      string        `env:"LOGIN_URL"`
	Username      string        `env:"USERNAME"`
	Password      string        `env:"PASSWORD"`
	SecurityToken string        `env:"SECURITY_TOKEN"`
	ClientID      string        `env:"CLIENT_ID"`
	ClientSecret  string        `env:"CLIENT_SECRET"`
	AuthTimeout   time.Duration `env:"AUTH_TIMEOUT" envDefault:"15s"`
}

// LoadConfig reads configuration from the environment and validates the
// fields that have no workable default.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("DASH_JWT_SECRET is required")
	}

	return cfg, nil
}
