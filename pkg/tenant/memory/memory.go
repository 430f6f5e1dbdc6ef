// Package memory provides an in-memory tenant directory for development
// deployments and tests. Records are seeded at construction or added
// with Put, and lost when the process restarts.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/deskhive/deskhive/pkg/tenant"
)

// Directory is an in-memory tenant.Directory.
type Directory struct {
	mu     sync.RWMutex
	bySlug map[string]*tenant.Tenant
	byID   map[string]*tenant.Tenant
}

// Ensure Directory implements tenant.Directory at compile time.
var _ tenant.Directory = (*Directory)(nil)

// New creates an empty directory.
func New() *Directory {
	return &Directory{
		bySlug: make(map[string]*tenant.Tenant),
		byID:   make(map[string]*tenant.Tenant),
	}
}

// Put adds or replaces a tenant record. An empty ID is filled with a
// fresh UUID. The stored record is a copy; callers keep ownership of t.
func (d *Directory) Put(t tenant.Tenant) tenant.Tenant {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	stored := t
	d.bySlug[t.Slug] = &stored
	d.byID[t.ID] = &stored
	return t
}

// FindBySlug returns the tenant with the given slug, or tenant.ErrNotFound.
func (d *Directory) FindBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	t, ok := d.bySlug[slug]
	if !ok {
		return nil, tenant.ErrNotFound
	}

	// Copy so callers cannot mutate the stored record.
	out := *t
	return &out, nil
}

// FindByID returns the tenant with the given id, or tenant.ErrNotFound.
func (d *Directory) FindByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	t, ok := d.byID[id]
	if !ok {
		return nil, tenant.ErrNotFound
	}

	out := *t
	return &out, nil
}
