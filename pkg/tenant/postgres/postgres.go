// Package postgres provides a PostgreSQL implementation of tenant.Directory
// backed by a pgx/v5 connection pool. Lookups are read-only and honor
// context cancellation, so a lookup never outlives its request.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deskhive/deskhive/pkg/tenant"
)

// Directory is a PostgreSQL-backed tenant directory.
type Directory struct {
	pool *pgxpool.Pool
}

// Ensure Directory implements tenant.Directory at compile time.
var _ tenant.Directory = (*Directory)(nil)

// New creates a new PostgreSQL directory with the given configuration.
// If MigrateOnStart is true, schema migrations are applied automatically.
func New(ctx context.Context, cfg Config) (*Directory, error) {
	cfg.defaults()

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing DSN: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connectivity.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	d := &Directory{pool: pool}

	if cfg.MigrateOnStart {
		if err := d.migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	return d, nil
}

// FindBySlug returns the tenant with the given slug, or tenant.ErrNotFound.
func (d *Directory) FindBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	return d.findOne(ctx,
		"SELECT id, slug, name, plan_tier FROM tenants WHERE slug = $1", slug)
}

// FindByID returns the tenant with the given id, or tenant.ErrNotFound.
// A value that is not a valid UUID cannot match any row and short-circuits
// to ErrNotFound without touching the database.
func (d *Directory) FindByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, tenant.ErrNotFound
	}
	return d.findOne(ctx,
		"SELECT id, slug, name, plan_tier FROM tenants WHERE id = $1", id)
}

func (d *Directory) findOne(ctx context.Context, query, arg string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := d.pool.QueryRow(ctx, query, arg).Scan(&t.ID, &t.Slug, &t.Name, &t.PlanTier)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tenant.ErrNotFound
		}
		return nil, fmt.Errorf("querying tenant: %w", err)
	}
	return &t, nil
}

// Insert adds a tenant record. An empty ID is filled with a fresh UUID.
// Used by seeding and tests; registration flows live outside this core.
func (d *Directory) Insert(ctx context.Context, t tenant.Tenant) (tenant.Tenant, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.PlanTier == "" {
		t.PlanTier = "free"
	}

	_, err := d.pool.Exec(ctx,
		"INSERT INTO tenants (id, slug, name, plan_tier) VALUES ($1, $2, $3, $4)",
		t.ID, t.Slug, t.Name, t.PlanTier)
	if err != nil {
		return tenant.Tenant{}, fmt.Errorf("inserting tenant: %w", err)
	}
	return t, nil
}

// Close releases the connection pool.
func (d *Directory) Close() {
	d.pool.Close()
}
