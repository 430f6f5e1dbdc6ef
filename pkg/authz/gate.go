package authz

import (
	"context"
	"errors"
	"log/slog"

	"github.com/deskhive/deskhive/pkg/auth"
	"github.com/deskhive/deskhive/pkg/observability"
	"github.com/deskhive/deskhive/pkg/tenant"
)

// Gate produces the terminal authorization decision for a request.
// It holds no per-request state; one Gate serves all requests
// concurrently.
type Gate struct {
	dir  tenant.Directory
	mode tenant.Mode
}

// NewGate creates a gate over the given tenant directory.
func NewGate(dir tenant.Directory, mode tenant.Mode) *Gate {
	return &Gate{dir: dir, mode: mode}
}

// Authorize decides whether the request may proceed. min is the
// operation's role floor; the zero value means the operation has no role
// requirement (though it still needs a resolvable tenant).
//
// The check order is fixed and observable through the deny kinds:
// tenant resolution, then tenant existence, then principal-tenant
// membership, then role. Tenant existence comes before membership so a
// caller can't probe membership of a tenant that doesn't exist, and
// membership comes before role because a role is only meaningful within
// the matched tenant.
func (g *Gate) Authorize(ctx context.Context, rc auth.RequestContext, min auth.Role) Decision {
	d := g.authorize(ctx, rc, min)

	if d.Allowed {
		observability.DecisionsTotal.WithLabelValues("allowed", "").Inc()
	} else {
		observability.DecisionsTotal.WithLabelValues("denied", string(d.Kind)).Inc()
	}

	return d
}

func (g *Gate) authorize(ctx context.Context, rc auth.RequestContext, min auth.Role) Decision {
	var (
		t   *tenant.Tenant
		err error
	)

	switch {
	case rc.SlugOK:
		t, err = g.dir.FindBySlug(ctx, rc.Slug)

	case g.mode == tenant.ModeDevelopment && rc.Principal != nil:
		// Local-dev convenience: no subdomain, but the caller carries a
		// tenant binding. Treat the principal's own tenant as already
		// resolved and look it up by id.
		t, err = g.dir.FindByID(ctx, rc.Principal.TenantID)

	default:
		return deny(DenyMissingTenant, "tenant required")
	}

	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			observability.TenantLookupsTotal.WithLabelValues("miss").Inc()
			return deny(DenyTenantNotFound, "tenant not found")
		}
		observability.TenantLookupsTotal.WithLabelValues("error").Inc()
		slog.Error("tenant directory lookup failed", "slug", rc.Slug, "error", err)
		return deny(DenyInternal, "authorization unavailable")
	}
	observability.TenantLookupsTotal.WithLabelValues("hit").Inc()

	if rc.Principal != nil && rc.Principal.TenantID != t.ID {
		return deny(DenyCrossTenant, "credential is not valid for this tenant")
	}

	if min != "" {
		if rc.Principal == nil {
			return deny(DenyMissingCredential, "credential required")
		}
		if !rc.Principal.Role.AtLeast(min) {
			return deny(DenyInsufficientRole, string(min)+" role required")
		}
	}

	return allow(t, rc.Principal)
}
