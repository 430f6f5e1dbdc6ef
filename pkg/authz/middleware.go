package authz

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/deskhive/deskhive/pkg/api"
	"github.com/deskhive/deskhive/pkg/auth"
	"github.com/deskhive/deskhive/pkg/observability"
)

// decisionKey is a private type for the decision context key.
type decisionKey struct{}

// WithDecision stores an allowed decision in the context for handlers.
func WithDecision(ctx context.Context, d Decision) context.Context {
	return context.WithValue(ctx, decisionKey{}, d)
}

// DecisionFrom retrieves the allowed decision. The second return value is
// false when no gate ran for this request.
func DecisionFrom(ctx context.Context) (Decision, bool) {
	d, ok := ctx.Value(decisionKey{}).(Decision)
	return d, ok
}

// Require creates handler-stage middleware that runs the gate with the
// given role floor. Denied requests are answered with the kind's status
// code and a structured error body; allowed requests proceed with the
// decision stored in the context. A nil limiter disables rate limiting.
func Require(g *Gate, min auth.Role, limiter RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc, ok := auth.RequestContextFrom(r.Context())
			if !ok {
				// The edge middleware did not run; refuse rather than
				// guess at identity.
				slog.Error("authorization gate reached without edge context", "path", r.URL.Path)
				api.WriteError(w, http.StatusInternalServerError,
					api.NewServerError("authorization unavailable"))
				return
			}

			d := g.Authorize(r.Context(), rc, min)
			if !d.Allowed {
				writeDenied(w, r, d)
				return
			}

			if limiter != nil {
				if err := limiter.Allow(r.Context(), d); err != nil {
					slog.Warn("rate limit exceeded",
						"tenant", d.Tenant.Slug,
						"tier", d.Tenant.PlanTier,
					)
					observability.RateLimitRejectedTotal.WithLabelValues(d.Tenant.PlanTier).Inc()
					api.WriteError(w, http.StatusTooManyRequests,
						api.NewTooManyRequestsError("rate limit exceeded"))
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithDecision(r.Context(), d)))
		})
	}
}

// writeDenied maps a denied decision onto the HTTP response.
func writeDenied(w http.ResponseWriter, r *http.Request, d Decision) {
	status := d.Kind.HTTPStatus()

	slog.Warn("request denied",
		"kind", string(d.Kind),
		"path", r.URL.Path,
		"host", r.Host,
	)

	var apiErr *api.APIError
	switch status {
	case http.StatusUnauthorized:
		apiErr = api.NewUnauthorizedError(string(d.Kind), d.Detail)
	case http.StatusForbidden:
		apiErr = api.NewForbiddenError(string(d.Kind), d.Detail)
	case http.StatusNotFound:
		apiErr = api.NewNotFoundError(d.Detail)
	case http.StatusBadRequest:
		apiErr = api.NewInvalidRequestError(string(d.Kind), d.Detail)
	default:
		apiErr = api.NewServerError(d.Detail)
	}

	api.WriteError(w, status, apiErr)
}
