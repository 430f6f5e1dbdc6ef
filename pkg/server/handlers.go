package server

import (
	"net/http"

	"github.com/deskhive/deskhive/pkg/api"
	"github.com/deskhive/deskhive/pkg/authz"
)

// tenantPayload is the public view of a tenant record.
type tenantPayload struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	PlanTier string `json:"plan_tier"`
}

// principalPayload is the public view of the authenticated caller.
type principalPayload struct {
	Subject  string `json:"subject"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
	TenantID string `json:"tenant_id"`
}

// decision pulls the allowed decision the gate stored for this request.
// The gate middleware guarantees it is present on protected routes.
func decision(w http.ResponseWriter, r *http.Request) (authz.Decision, bool) {
	d, ok := authz.DecisionFrom(r.Context())
	if !ok {
		api.WriteError(w, http.StatusInternalServerError,
			api.NewServerError("authorization unavailable"))
		return authz.Decision{}, false
	}
	return d, true
}

// handleTenant returns the tenant the request resolved to. No role
// floor: anonymous callers can discover which workspace a host serves.
func handleTenant(w http.ResponseWriter, r *http.Request) {
	d, ok := decision(w, r)
	if !ok {
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"tenant": tenantPayload{
			ID:       d.Tenant.ID,
			Slug:     d.Tenant.Slug,
			Name:     d.Tenant.Name,
			PlanTier: d.Tenant.PlanTier,
		},
	})
}

// handleMe returns the caller's identity within the resolved tenant.
func handleMe(w http.ResponseWriter, r *http.Request) {
	d, ok := decision(w, r)
	if !ok {
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"principal": principalPayload{
			Subject:  d.Principal.Subject,
			Email:    d.Principal.Email,
			Role:     string(d.Principal.Role),
			TenantID: d.Principal.TenantID,
		},
		"tenant": d.Tenant.Slug,
	})
}

// handleSettings returns tenant settings. Admin floor.
func handleSettings(w http.ResponseWriter, r *http.Request) {
	d, ok := decision(w, r)
	if !ok {
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"tenant": d.Tenant.Slug,
		"settings": map[string]any{
			"name":      d.Tenant.Name,
			"plan_tier": d.Tenant.PlanTier,
		},
	})
}

// handleBilling returns billing details. Owner floor.
func handleBilling(w http.ResponseWriter, r *http.Request) {
	d, ok := decision(w, r)
	if !ok {
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"tenant":    d.Tenant.Slug,
		"plan_tier": d.Tenant.PlanTier,
		"managed_by": principalPayload{
			Subject: d.Principal.Subject,
			Role:    string(d.Principal.Role),
		},
	})
}
