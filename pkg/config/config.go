// Package config provides unified configuration for the deskhive service.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (DESKHIVE_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import "time"

// Config holds all configuration for the deskhive service.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Mode          string              `yaml:"mode"` // "development" or "production", default: "development"
	Auth          AuthConfig          `yaml:"auth"`
	Tenants       TenantsConfig       `yaml:"tenants"`
	RateLimit     RateLimitConfig     `yaml:"ratelimit"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `yaml:"port"`          // default: 8080
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // default: 10s
	WriteTimeout time.Duration `yaml:"write_timeout"` // default: 30s
}

// AuthConfig holds credential verification settings.
type AuthConfig struct {
	Secret     string        `yaml:"secret"`      // shared HMAC secret
	SecretFile string        `yaml:"secret_file"` // _file variant for secret
	TokenTTL   time.Duration `yaml:"token_ttl"`   // default: 1h
	CookieName string        `yaml:"cookie_name"` // default: "deskhive_session"
}

// TenantsConfig holds tenant directory settings.
type TenantsConfig struct {
	Type     string         `yaml:"type"` // "memory" or "postgres", default: "memory"
	Seed     []TenantSeed   `yaml:"seed"` // records for the memory directory
	Postgres PostgresConfig `yaml:"postgres"`
}

// TenantSeed describes a tenant preloaded into the memory directory.
type TenantSeed struct {
	ID       string `yaml:"id"`
	Slug     string `yaml:"slug"`
	Name     string `yaml:"name"`
	PlanTier string `yaml:"plan_tier"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	DSN            string `yaml:"dsn"`
	DSNFile        string `yaml:"dsn_file"`         // _file variant for dsn
	MaxConns       int32  `yaml:"max_conns"`        // default: 25
	MigrateOnStart bool   `yaml:"migrate_on_start"` // default: false
}

// RateLimitConfig holds per-plan-tier request budgets.
type RateLimitConfig struct {
	Enabled    bool           `yaml:"enabled"`     // default: false
	DefaultRPM int            `yaml:"default_rpm"` // default: 600
	Tiers      map[string]int `yaml:"tiers"`       // plan tier -> requests per minute
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Mode: "development",
		Auth: AuthConfig{
			TokenTTL:   time.Hour,
			CookieName: "deskhive_session",
		},
		Tenants: TenantsConfig{
			Type: "memory",
			Postgres: PostgresConfig{
				MaxConns: 25,
			},
		},
		RateLimit: RateLimitConfig{
			DefaultRPM: 600,
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}
