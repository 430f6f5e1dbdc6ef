package tenant

import (
	"context"
	"errors"
)

// Tenant is an isolated organization. Records are created at registration
// time and are read-only to the authorization pipeline.
type Tenant struct {
	// ID is the tenant's UUID, stable for the lifetime of the tenant.
	ID string

	// Slug is the URL-safe identifier used as the subdomain label.
	// Unique across tenants and immutable once assigned.
	Slug string

	// Name is the display name.
	Name string

	// PlanTier selects rate limits and feature gates (e.g. "free", "pro").
	PlanTier string
}

// Directory looks up tenant records. Implementations must be safe for
// concurrent use and must honor context cancellation on lookups.
type Directory interface {
	// FindBySlug returns the tenant with the given slug, or ErrNotFound.
	FindBySlug(ctx context.Context, slug string) (*Tenant, error)

	// FindByID returns the tenant with the given id, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*Tenant, error)
}

// ErrNotFound is returned when no tenant matches the lookup key.
var ErrNotFound = errors.New("tenant not found")
