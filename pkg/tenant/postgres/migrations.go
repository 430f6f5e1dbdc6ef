package postgres

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// migrationVersion extracts the numeric version prefix from a migration
// filename such as "001_create_tenants.sql". A file without a numeric
// prefix or a .sql suffix is not a migration.
func migrationVersion(name string) (int, bool) {
	if !strings.HasSuffix(name, ".sql") {
		return 0, false
	}
	prefix, _, ok := strings.Cut(name, "_")
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, false
	}
	return v, true
}

// appliedVersions returns the set of migration versions already recorded
// in schema_migrations. On a fresh database the table does not exist
// yet; that reads as nothing applied, and the first migration creates it.
func (d *Directory) appliedVersions(ctx context.Context) map[int]bool {
	rows, err := d.pool.Query(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err == nil {
			applied[v] = true
		}
	}
	return applied
}

// migrate applies the embedded SQL migrations that have not run yet, in
// version order, recording each one in schema_migrations.
func (d *Directory) migrate(ctx context.Context) error {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations: %w", err)
	}

	var pending []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := migrationVersion(entry.Name()); ok {
			pending = append(pending, entry.Name())
		}
	}
	// Version prefixes are zero-padded, so name order is version order.
	sort.Strings(pending)

	applied := d.appliedVersions(ctx)

	for _, name := range pending {
		version, _ := migrationVersion(name)
		if applied[version] {
			continue
		}

		sql, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		slog.Info("applying migration", "file", name, "version", version)

		if _, err := d.pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("applying migration %s: %w", name, err)
		}
		if _, err := d.pool.Exec(ctx,
			"INSERT INTO schema_migrations (version) VALUES ($1) ON CONFLICT DO NOTHING",
			version,
		); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
