package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, DESKHIVE_CONFIG env, ./config.yaml, /etc/deskhive/config.yaml)
//  3. Environment variable overrides
//  4. File reference resolution (_file suffix)
//  5. Validation
func Load(configPath string) (*Config, error) {
	// Start with defaults.
	cfg := Defaults()

	// Discover and load YAML config file.
	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	// Apply environment variable overrides.
	applyEnvOverrides(&cfg)

	// Resolve _file references.
	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	// Validate.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. DESKHIVE_CONFIG environment variable
// 3. ./config.yaml in the current directory
// 4. /etc/deskhive/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	// Explicit path takes priority.
	if configPath != "" {
		return configPath
	}

	// Check DESKHIVE_CONFIG env var.
	if envPath := os.Getenv("DESKHIVE_CONFIG"); envPath != "" {
		return envPath
	}

	// Check common locations.
	candidates := []string{
		"config.yaml",
		"/etc/deskhive/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps DESKHIVE_* environment variables to config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DESKHIVE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("DESKHIVE_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv("DESKHIVE_AUTH_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("DESKHIVE_AUTH_SECRET_FILE"); v != "" {
		cfg.Auth.SecretFile = v
	}
	if v := os.Getenv("DESKHIVE_TOKEN_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil {
			cfg.Auth.TokenTTL = ttl
		}
	}
	if v := os.Getenv("DESKHIVE_TENANTS"); v != "" {
		cfg.Tenants.Type = v
	}
	if v := os.Getenv("DESKHIVE_TENANTS_DSN"); v != "" {
		cfg.Tenants.Postgres.DSN = v
	}
	if v := os.Getenv("DESKHIVE_TENANTS_DSN_FILE"); v != "" {
		cfg.Tenants.Postgres.DSNFile = v
	}
	if v := os.Getenv("DESKHIVE_RATELIMIT"); v != "" {
		cfg.RateLimit.Enabled = v == "true" || v == "1"
	}
}

// resolveFileReferences loads secret values from files referenced by
// _file fields. A _file field takes precedence over its inline
// counterpart so secrets can stay out of config files and env vars.
func resolveFileReferences(cfg *Config) error {
	if cfg.Auth.SecretFile != "" {
		v, err := readSecretFile(cfg.Auth.SecretFile)
		if err != nil {
			return fmt.Errorf("auth.secret_file: %w", err)
		}
		cfg.Auth.Secret = v
	}
	if cfg.Tenants.Postgres.DSNFile != "" {
		v, err := readSecretFile(cfg.Tenants.Postgres.DSNFile)
		if err != nil {
			return fmt.Errorf("tenants.postgres.dsn_file: %w", err)
		}
		cfg.Tenants.Postgres.DSN = v
	}
	return nil
}

// readSecretFile reads a secret from a file, trimming trailing whitespace.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
