// Package config loads the admin panel server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvDevelopment marks debug builds. Diagnostics are only rendered there.
const EnvDevelopment = "development"

// Config holds the server settings.
type Config struct {
	Addr        string `env:"PANEL_ADDR" envDefault:":8080"`
	BasePath    string `env:"PANEL_BASE_PATH" envDefault:"/admin"`
	Environment string `env:"APP_ENV" envDefault:"production"`
	ContentPath string `env:"PANEL_CONTENT_PATH"`
	LogLevel    string `env:"PANEL_LOG_LEVEL" envDefault:"info"`
	AdminModule string `env:"PANEL_ADMIN_MODULE" envDefault:"admin"`

	// TrustProxyHeaders accepts X-User-Name/X-User-Modules from an upstream auth proxy.
	TrustProxyHeaders bool `env:"PANEL_TRUST_PROXY_HEADERS" envDefault:"false"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("config: PANEL_ADDR is required")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// DebugBuild reports whether the panel runs as a development build.
func (c Config) DebugBuild() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), EnvDevelopment)
}

// Level parses LogLevel.
func (c Config) Level() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(strings.TrimSpace(c.LogLevel))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("config: PANEL_LOG_LEVEL: %w", err)
	}
	return level, nil
}

// Logger builds the process logger. Debug builds use the development encoder.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if c.DebugBuild() {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
