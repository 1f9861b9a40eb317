// Package config holds process settings read from SAILSITE_* environment
// variables. Command-line flags override them.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/keepchen/go-sail-website/pkg/i18n"
)

// Prefix is prepended to every environment variable name.
const Prefix = "SAILSITE_"

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// Config holds the settings shared by every command.
type Config struct {
	Addr            string        `env:"ADDR"             envDefault:":8080"`
	ContentDir      string        `env:"CONTENT_DIR"`
	OutDir          string        `env:"OUT_DIR"          envDefault:"public"`
	DefaultLocale   string        `env:"DEFAULT_LOCALE"   envDefault:"en"`
	LogLevel        string        `env:"LOG_LEVEL"        envDefault:"info"`
	LogJSON         bool          `env:"LOG_JSON"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	NegotiateRoot   bool          `env:"NEGOTIATE_ROOT"`
}

// Load reads the configuration from the process environment. The result is
// not validated; callers apply their overrides first and then call Validate.
func Load() (Config, error) {
	return parse(env.Options{Prefix: Prefix})
}

// LoadFrom reads the configuration from vars instead of the process
// environment. Keys include the prefix.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Prefix: Prefix, Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks values the environment parser cannot.
func (c Config) Validate() error {
	var errs []error
	if _, err := i18n.Canonical(c.DefaultLocale); err != nil {
		errs = append(errs, fmt.Errorf("default locale: %w", err))
	}
	if !slices.Contains(logLevels, strings.ToLower(c.LogLevel)) {
		errs = append(errs, fmt.Errorf("log level %q: want one of %s", c.LogLevel, strings.Join(logLevels, ", ")))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout))
	}
	return errors.Join(errs...)
}
