// Command server runs the deskhive authorization service.
//
// Configuration is layered: built-in defaults, then a YAML config file
// (via -config, DESKHIVE_CONFIG, ./config.yaml, or
// /etc/deskhive/config.yaml), then DESKHIVE_* environment overrides:
//
//	DESKHIVE_PORT             - Listen port (default: 8080)
//	DESKHIVE_MODE             - "development" or "production" (default: development)
//	DESKHIVE_AUTH_SECRET      - Shared credential signing secret (required)
//	DESKHIVE_AUTH_SECRET_FILE - File to read the secret from instead
//	DESKHIVE_TENANTS          - Tenant directory: "memory" or "postgres" (default: memory)
//	DESKHIVE_TENANTS_DSN      - PostgreSQL DSN when tenants is "postgres"
//	DESKHIVE_RATELIMIT        - Enable per-plan rate limiting ("true"/"1")
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/deskhive/deskhive/pkg/auth"
	"github.com/deskhive/deskhive/pkg/authz"
	"github.com/deskhive/deskhive/pkg/config"
	"github.com/deskhive/deskhive/pkg/server"
	"github.com/deskhive/deskhive/pkg/tenant"
	"github.com/deskhive/deskhive/pkg/tenant/memory"
	"github.com/deskhive/deskhive/pkg/tenant/postgres"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	mode := cfg.TenantMode()

	// Tenant directory.
	var dir tenant.Directory
	switch cfg.Tenants.Type {
	case "postgres":
		startCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pg, err := postgres.New(startCtx, postgres.Config{
			DSN:            cfg.Tenants.Postgres.DSN,
			MaxConns:       cfg.Tenants.Postgres.MaxConns,
			MigrateOnStart: cfg.Tenants.Postgres.MigrateOnStart,
		})
		cancel()
		if err != nil {
			return fmt.Errorf("creating tenant directory: %w", err)
		}
		defer pg.Close()
		dir = pg
		logger.Info("tenant directory ready", "type", "postgres")
	default:
		mem := memory.New()
		for _, s := range cfg.Tenants.Seed {
			t := mem.Put(tenant.Tenant{ID: s.ID, Slug: s.Slug, Name: s.Name, PlanTier: s.PlanTier})
			logger.Info("seeded tenant", "slug", t.Slug, "id", t.ID, "tier", t.PlanTier)
		}
		dir = mem
		logger.Info("tenant directory ready", "type", "memory", "seeded", len(cfg.Tenants.Seed))
	}

	// Optional per-plan rate limiting.
	var limiter authz.RateLimiter
	if cfg.RateLimit.Enabled {
		tiers := make(map[string]authz.TierConfig, len(cfg.RateLimit.Tiers))
		for tier, rpm := range cfg.RateLimit.Tiers {
			tiers[tier] = authz.TierConfig{RequestsPerMinute: rpm}
		}
		limiter = authz.NewInProcessLimiter(tiers, cfg.RateLimit.DefaultRPM)
		logger.Info("rate limiting enabled", "default_rpm", cfg.RateLimit.DefaultRPM)
	}

	metricsPath := ""
	if cfg.Observability.Metrics.Enabled {
		metricsPath = cfg.Observability.Metrics.Path
	}

	handler := server.NewHandler(server.Deps{
		Verifier:    auth.NewVerifier([]byte(cfg.Auth.Secret)),
		Directory:   dir,
		Mode:        mode,
		CookieName:  cfg.Auth.CookieName,
		Limiter:     limiter,
		MetricsPath: metricsPath,
		Logger:      logger,
	})

	srv := server.NewServer(handler,
		server.WithAddr(fmt.Sprintf(":%d", cfg.Server.Port)),
		server.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
		server.WithLogger(logger),
	)

	logger.Info("deskhive starting",
		"port", cfg.Server.Port,
		"mode", string(mode),
		"tenants", cfg.Tenants.Type,
	)
	return srv.ListenAndServe()
}
