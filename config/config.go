// Package config loads and validates the configuration of the health API server
// and of the dashboard from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/NomadCrew/trcs2-health/errors"
	"github.com/NomadCrew/trcs2-health/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"

	defaultHeapThresholdPercent = 90
	maxPercent                  = 100
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	// APIPrefix is prepended to every health route, e.g. "/api".
	APIPrefix string `mapstructure:"API_PREFIX" yaml:"api_prefix"`
	Version   string `mapstructure:"VERSION" yaml:"version"`
}

// HealthConfig holds the readiness policy and dependency probe settings.
type HealthConfig struct {
	// HeapThresholdPercent is the heap usage at or above which readiness is DEGRADED.
	HeapThresholdPercent int `mapstructure:"HEAP_THRESHOLD_PERCENT" yaml:"heap_threshold_percent"`
	DependencyTimeoutMs  int `mapstructure:"DEPENDENCY_TIMEOUT_MS" yaml:"dependency_timeout_ms"`
}

// DependencyTimeout returns the per-dependency ping timeout.
func (h HealthConfig) DependencyTimeout() time.Duration {
	return time.Duration(h.DependencyTimeoutMs) * time.Millisecond
}

// DatabaseConfig enables the postgres startup probe when URL is set.
type DatabaseConfig struct {
	URL            string `mapstructure:"URL" yaml:"url"`
	MaxConnections int32  `mapstructure:"MAX_CONNECTIONS" yaml:"max_connections"`
}

// Enabled reports whether a database is configured.
func (c DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// RedisConfig enables the redis startup probe when Address is set.
type RedisConfig struct {
	Address  string `mapstructure:"ADDRESS" yaml:"address"`
	Password string `mapstructure:"PASSWORD" yaml:"password"`
	DB       int    `mapstructure:"DB" yaml:"db"`
	UseTLS   bool   `mapstructure:"USE_TLS" yaml:"use_tls"`
}

// Enabled reports whether a redis server is configured.
func (c RedisConfig) Enabled() bool {
	return c.Address != ""
}

// Config aggregates all server configuration sections.
type Config struct {
	Server   ServerConfig   `mapstructure:"SERVER" yaml:"server"`
	Health   HealthConfig   `mapstructure:"HEALTH" yaml:"health"`
	Database DatabaseConfig `mapstructure:"DATABASE" yaml:"database"`
	Redis    RedisConfig    `mapstructure:"REDIS" yaml:"redis"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// LoadConfig loads the server configuration from environment variables using
// Viper, applies defaults and validates the result.
func LoadConfig() (*Config, error) {
	v := newViper()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "4000")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	v.SetDefault("SERVER.API_PREFIX", "")
	v.SetDefault("SERVER.VERSION", "1.0.0")
	v.SetDefault("HEALTH.HEAP_THRESHOLD_PERCENT", defaultHeapThresholdPercent)
	v.SetDefault("HEALTH.DEPENDENCY_TIMEOUT_MS", 2000)
	v.SetDefault("DATABASE.URL", "")
	v.SetDefault("DATABASE.MAX_CONNECTIONS", 2)
	v.SetDefault("REDIS.ADDRESS", "")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.USE_TLS", false)

	envBindings := [][2]string{
		{"SERVER.ENVIRONMENT", "ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.API_PREFIX", "API_PREFIX"},
		{"SERVER.VERSION", "VERSION"},
		{"HEALTH.HEAP_THRESHOLD_PERCENT", "HEAP_THRESHOLD_PERCENT"},
		{"HEALTH.DEPENDENCY_TIMEOUT_MS", "DEPENDENCY_TIMEOUT_MS"},
		{"DATABASE.URL", "DATABASE_URL"},
		{"DATABASE.MAX_CONNECTIONS", "DB_MAX_CONNECTIONS"},
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.USE_TLS", "REDIS_USE_TLS"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ValidationError, "config validation failed")
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"server_port", cfg.Server.Port,
		"api_prefix", cfg.Server.APIPrefix,
		"allowed_origins", cfg.Server.AllowedOrigins,
		"heap_threshold_percent", cfg.Health.HeapThresholdPercent,
		"database_probe", cfg.Database.Enabled(),
		"redis_probe", cfg.Redis.Enabled(),
	)
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	switch cfg.Server.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("unknown environment %q", cfg.Server.Environment)
	}
	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}
	if cfg.Server.APIPrefix != "" && !strings.HasPrefix(cfg.Server.APIPrefix, "/") {
		return fmt.Errorf("api prefix must start with '/': %q", cfg.Server.APIPrefix)
	}

	if cfg.Health.HeapThresholdPercent <= 0 || cfg.Health.HeapThresholdPercent > maxPercent {
		return fmt.Errorf("heap threshold percent must be within 1..%d, got %d",
			maxPercent, cfg.Health.HeapThresholdPercent)
	}
	if cfg.Health.DependencyTimeoutMs <= 0 {
		return fmt.Errorf("dependency timeout must be positive")
	}

	if cfg.Database.Enabled() {
		u, err := url.Parse(cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("invalid database url: %w", err)
		}
		if u.Scheme != "postgres" && u.Scheme != "postgresql" {
			return fmt.Errorf("database url must use the postgres scheme, got %q", u.Scheme)
		}
		if cfg.Database.MaxConnections <= 0 {
			return fmt.Errorf("database max connections must be positive")
		}
	}

	if cfg.Redis.Enabled() && cfg.Redis.Password == "" && cfg.Redis.UseTLS {
		logger.GetLogger().Warn("Redis password is not set, but TLS is enabled. Ensure this is correct for your Redis provider.")
	}

	return nil
}

// containsWildcard checks if the list of allowed origins contains the wildcard "*".
func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
