package config

import (
	"errors"
	"fmt"

	"github.com/deskhive/deskhive/pkg/tenant"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	// server.port must be positive.
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be > 0, got %d", c.Server.Port))
	}

	// mode must be a known value.
	if _, ok := tenant.ParseMode(c.Mode); !ok {
		errs = append(errs, fmt.Errorf("mode must be \"development\" or \"production\", got %q", c.Mode))
	}

	// auth.secret is required (directly or via auth.secret_file).
	if c.Auth.Secret == "" && c.Auth.SecretFile == "" {
		errs = append(errs, fmt.Errorf("auth.secret or auth.secret_file is required"))
	}

	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("auth.token_ttl must be > 0, got %s", c.Auth.TokenTTL))
	}

	// tenants.type must be a known value.
	switch c.Tenants.Type {
	case "memory", "postgres":
		// valid
	default:
		errs = append(errs, fmt.Errorf("tenants.type must be \"memory\" or \"postgres\", got %q", c.Tenants.Type))
	}

	// If tenants.type is "postgres", DSN or DSNFile must be set.
	if c.Tenants.Type == "postgres" {
		if c.Tenants.Postgres.DSN == "" && c.Tenants.Postgres.DSNFile == "" {
			errs = append(errs, fmt.Errorf("tenants.postgres.dsn or tenants.postgres.dsn_file is required when tenants.type is \"postgres\""))
		}
	}

	// Seeded tenants need at least a slug.
	for i, s := range c.Tenants.Seed {
		if s.Slug == "" {
			errs = append(errs, fmt.Errorf("tenants.seed[%d].slug is required", i))
		}
	}

	if c.RateLimit.Enabled && c.RateLimit.DefaultRPM <= 0 {
		errs = append(errs, fmt.Errorf("ratelimit.default_rpm must be > 0 when ratelimit is enabled, got %d", c.RateLimit.DefaultRPM))
	}

	return errors.Join(errs...)
}

// TenantMode returns the parsed Mode. Call after Validate.
func (c *Config) TenantMode() tenant.Mode {
	m, _ := tenant.ParseMode(c.Mode)
	return m
}
