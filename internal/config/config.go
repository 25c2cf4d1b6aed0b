// Package config loads application configuration from environment variables.
package config

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Prefix is prepended to every variable name read by Load.
const Prefix = "JOBTRACKER_"

// secretBytes is the size of a generated session secret.
const secretBytes = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR, default=127.0.0.1:8080"`
	DBPath     string `env:"DB_PATH, default=jobtracker.db"`

	AdminUsername string `env:"ADMIN_USERNAME, default=admin"`
	AdminPassword string `env:"ADMIN_PASSWORD, default=admin"`

	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL, default=24h"`
	SecureCookies bool          `env:"SECURE_COOKIES, default=false"`

	StrictValidation bool `env:"STRICT_VALIDATION, default=false"`
	MetricsEnabled   bool `env:"METRICS_ENABLED, default=true"`

	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogFormat string `env:"LOG_FORMAT, default=text"`

	// GeneratedSecret is set when SessionSecret was empty and a random
	// per-process secret was generated. Sessions do not survive a restart.
	GeneratedSecret bool
}

// DefaultAdminPassword reports whether the seeded admin still uses the
// built-in password.
func (c *Config) DefaultAdminPassword() bool {
	return c.AdminPassword == "admin"
}

// Level returns LogLevel as a slog level.
func (c *Config) Level() slog.Level {
	var level slog.Level
	// LogLevel is checked by Load; an unknown value falls back to info.
	_ = level.UnmarshalText([]byte(c.LogLevel))
	return level
}

// Load reads configuration from JOBTRACKER_* environment variables and
// returns a validated Config.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

// LoadFrom is Load reading from the given variables instead of the process
// environment. Keys include the JOBTRACKER_ prefix.
func LoadFrom(ctx context.Context, vars map[string]string) (*Config, error) {
	return load(ctx, envconfig.MapLookuper(vars))
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.PrefixLookuper(Prefix, lookuper),
	})
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.SessionSecret = secret
		cfg.GeneratedSecret = true
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	if strings.TrimSpace(c.ListenAddr) == "" {
		errs = append(errs, fmt.Errorf("%sLISTEN_ADDR must not be empty", Prefix))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, fmt.Errorf("%sDB_PATH must not be empty", Prefix))
	}
	if strings.TrimSpace(c.AdminUsername) == "" {
		errs = append(errs, fmt.Errorf("%sADMIN_USERNAME must not be empty", Prefix))
	}
	if c.AdminPassword == "" {
		errs = append(errs, fmt.Errorf("%sADMIN_PASSWORD must not be empty", Prefix))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("%sSESSION_TTL must be positive, got %s", Prefix, c.SessionTTL))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("%sLOG_LEVEL has invalid value %q", Prefix, c.LogLevel))
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%sLOG_FORMAT has invalid value %q", Prefix, c.LogFormat))
	}

	return errors.Join(errs...)
}

func randomSecret() (string, error) {
	b := make([]byte, secretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session secret: %w", err)
	}
	return fmt.Sprintf("%x", b), nil
}
