// Package config loads the server configuration.
//
// Values start from Default, are replaced by an optional YAML file, and are
// finally overridden by SPLITLEDGER_* environment variables. Unset variables
// leave the file value in place.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// MinSecretLength is the shortest accepted JWT signing secret, in bytes.
const MinSecretLength = 32

// Config is the complete server configuration.
type Config struct {
	// Addr is the listen address.
	// Default: :8080
	Addr string `yaml:"addr" env:"SPLITLEDGER_ADDR"`

	// DBPath is the sqlite file holding the event journal.
	// Default: ./data/ledger.db
	DBPath string `yaml:"db_path" env:"SPLITLEDGER_DB_PATH"`

	// JWTSecret signs session tokens. Required.
	JWTSecret string `yaml:"jwt_secret" env:"SPLITLEDGER_JWT_SECRET"`

	// TokenTTL is the lifetime of an issued session token.
	// Default: 24h
	TokenTTL time.Duration `yaml:"token_ttl" env:"SPLITLEDGER_TOKEN_TTL"`

	// LoginWindow bounds the clock skew accepted on a signed login.
	// Default: 5m
	LoginWindow time.Duration `yaml:"login_window" env:"SPLITLEDGER_LOGIN_WINDOW"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"SPLITLEDGER_LOG_LEVEL"`

	// LogFormat is text (colored) or json.
	LogFormat string `yaml:"log_format" env:"SPLITLEDGER_LOG_FORMAT"`

	// OTelEndpoint is the OTLP/HTTP traces endpoint. Empty disables tracing.
	OTelEndpoint string `yaml:"otel_endpoint" env:"SPLITLEDGER_OTEL_ENDPOINT"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Addr:        ":8080",
		DBPath:      "./data/ledger.db",
		TokenTTL:    24 * time.Hour,
		LoginWindow: 5 * time.Minute,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// Load builds the configuration from path (skipped when empty) and the
// environment. The result is not validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate reports every problem with c at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is empty"))
	}
	if len(c.JWTSecret) < MinSecretLength {
		errs = append(errs, fmt.Errorf("jwt_secret must be at least %d bytes", MinSecretLength))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("token_ttl %s must be positive", c.TokenTTL))
	}
	if c.LoginWindow <= 0 {
		errs = append(errs, fmt.Errorf("login_window %s must be positive", c.LoginWindow))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format %q must be text or json", c.LogFormat))
	}
	return errors.Join(errs...)
}
