package postgres

// Config holds the settings for the tenant directory pool. Only the
// knobs the service configuration actually exposes live here; lookups
// are single-row reads, so there is nothing to tune beyond pool size.
type Config struct {
	// DSN is the PostgreSQL connection string.
	DSN string

	// MaxConns caps the connection pool size.
	MaxConns int32

	// MigrateOnStart applies pending schema migrations before the
	// directory serves its first lookup.
	MigrateOnStart bool
}

func (c *Config) defaults() {
	if c.MaxConns <= 0 {
		c.MaxConns = 25
	}
}
