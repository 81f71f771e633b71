package config

import (
	"fmt"
	"net/url"
	"time"

	apperrors "github.com/NomadCrew/trcs2-health/errors"
)

// DashboardAPIConfig points the dashboard at a health API server.
type DashboardAPIConfig struct {
	BaseURL   string `mapstructure:"BASE_URL" yaml:"base_url"`
	TimeoutMs int    `mapstructure:"TIMEOUT" yaml:"timeout"`
}

// Timeout returns the per-request timeout.
func (c DashboardAPIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

type DashboardAppConfig struct {
	Name        string `mapstructure:"NAME" yaml:"name"`
	Version     string `mapstructure:"VERSION" yaml:"version"`
	Environment string `mapstructure:"ENVIRONMENT" yaml:"environment"`
}

type DashboardFeatures struct {
	HealthCheckIntervalMs int `mapstructure:"HEALTH_CHECK_INTERVAL" yaml:"health_check_interval"`
}

// HealthCheckInterval returns the poll interval.
func (f DashboardFeatures) HealthCheckInterval() time.Duration {
	return time.Duration(f.HealthCheckIntervalMs) * time.Millisecond
}

// DashboardConfig is the configuration of the polling dashboard.
type DashboardConfig struct {
	API      DashboardAPIConfig `mapstructure:"API" yaml:"api"`
	App      DashboardAppConfig `mapstructure:"APP" yaml:"app"`
	Features DashboardFeatures  `mapstructure:"FEATURES" yaml:"features"`
}

// LoadDashboardConfig loads the dashboard configuration from environment variables.
func LoadDashboardConfig() (*DashboardConfig, error) {
	v := newViper()

	v.SetDefault("API.BASE_URL", "http://localhost:4000")
	v.SetDefault("API.TIMEOUT", 10000)
	v.SetDefault("APP.NAME", "TRCS2")
	v.SetDefault("APP.VERSION", "1.0.0")
	v.SetDefault("APP.ENVIRONMENT", string(EnvDevelopment))
	v.SetDefault("FEATURES.HEALTH_CHECK_INTERVAL", 30000)

	envBindings := [][2]string{
		{"API.BASE_URL", "API_BASE_URL"},
		{"API.TIMEOUT", "API_TIMEOUT"},
		{"APP.NAME", "APP_NAME"},
		{"APP.VERSION", "APP_VERSION"},
		{"APP.ENVIRONMENT", "ENVIRONMENT"},
		{"FEATURES.HEALTH_CHECK_INTERVAL", "HEALTH_CHECK_INTERVAL"},
	}
	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg DashboardConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("dashboard config unmarshal failed: %w", err)
	}
	if err := validateDashboardConfig(&cfg); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ValidationError, "dashboard config validation failed")
	}
	return &cfg, nil
}

func validateDashboardConfig(cfg *DashboardConfig) error {
	u, err := url.ParseRequestURI(cfg.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid api base url '%s': %w", cfg.API.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api base url must be http or https, got %q", u.Scheme)
	}
	if cfg.API.TimeoutMs <= 0 {
		return fmt.Errorf("api timeout must be positive")
	}
	if cfg.Features.HealthCheckIntervalMs <= 0 {
		return fmt.Errorf("health check interval must be positive")
	}
	return nil
}
