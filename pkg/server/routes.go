package server

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/deskhive/deskhive/pkg/auth"
	"github.com/deskhive/deskhive/pkg/authz"
	"github.com/deskhive/deskhive/pkg/observability"
	"github.com/deskhive/deskhive/pkg/tenant"
)

// Deps are the collaborators the HTTP surface is built from. Everything
// is injected so tests can run against fakes.
type Deps struct {
	Verifier  *auth.Verifier
	Directory tenant.Directory
	Mode      tenant.Mode

	// CookieName overrides the session cookie name (optional).
	CookieName string

	// Limiter enforces per-plan request budgets (optional).
	Limiter authz.RateLimiter

	// MetricsPath exposes Prometheus metrics when non-empty.
	MetricsPath string

	Logger *slog.Logger
}

// NewHandler builds the complete HTTP handler: health and metrics
// endpoints bypass authorization; everything under /v1 runs the edge
// stage and the gate with a per-route role floor.
func NewHandler(d Deps) http.Handler {
	gate := authz.NewGate(d.Directory, d.Mode)
	edge := auth.Edge(auth.EdgeConfig{
		Verifier:   d.Verifier,
		Mode:       d.Mode,
		CookieName: d.CookieName,
	})

	// protect wires the edge stage and the gate in front of a handler.
	protect := func(min auth.Role, h http.HandlerFunc) http.Handler {
		return edge(authz.Require(gate, min, d.Limiter)(h))
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	if d.MetricsPath != "" {
		mux.Handle("GET "+d.MetricsPath, promhttp.Handler())
	}

	mux.Handle("GET /v1/tenant", protect("", handleTenant))
	mux.Handle("GET /v1/me", protect(auth.RoleAgent, handleMe))
	mux.Handle("GET /v1/tenant/settings", protect(auth.RoleAdmin, handleSettings))
	mux.Handle("GET /v1/tenant/billing", protect(auth.RoleOwner, handleBilling))

	return Chain(
		Recovery(),
		RequestID(),
		Logging(d.Logger),
		observability.MetricsMiddleware,
	)(mux)
}
