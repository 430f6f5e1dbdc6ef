package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/deskhive/deskhive/pkg/api"
	"github.com/deskhive/deskhive/pkg/observability"
	"github.com/deskhive/deskhive/pkg/tenant"
)

// TrustedHeaders are identity headers that only this process may set.
// The edge middleware strips any client-supplied value under these names
// before trusted values are established; otherwise a client could forge
// tenant or role context and bypass the gate.
var TrustedHeaders = []string{
	"X-Tenant-Slug",
	"X-Principal-Id",
	"X-Principal-Role",
}

// EdgeConfig configures the edge middleware.
type EdgeConfig struct {
	// Verifier checks session credentials. Required.
	Verifier *Verifier

	// Mode selects the host-parsing rules.
	Mode tenant.Mode

	// CookieName overrides the session cookie name. Defaults to
	// SessionCookieName.
	CookieName string
}

// Edge creates the edge-stage HTTP middleware. For every request it
// scrubs client-supplied identity headers, resolves the tenant slug from
// the Host header, verifies the bearer credential (header or cookie), and
// attaches the resulting RequestContext for the handler stage.
//
// An absent credential is not an error here: the request continues with a
// nil principal, and the gate decides whether the operation requires one.
// A present-but-invalid credential is rejected immediately with 401 and
// the specific failure kind.
func Edge(cfg EdgeConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Scrub spoofable identity headers before anything else.
			for _, h := range TrustedHeaders {
				r.Header.Del(h)
			}

			rc := RequestContext{}
			rc.Slug, rc.SlugOK = tenant.ResolveSlug(r.Host, cfg.Mode)

			raw, err := CredentialFromRequest(r, cfg.CookieName)
			switch {
			case err == nil:
				claims, verr := cfg.Verifier.Verify(raw)
				if verr != nil {
					kind := FailureKind(verr)
					slog.Warn("credential rejected",
						"kind", kind,
						"path", r.URL.Path,
						"remote_addr", r.RemoteAddr,
					)
					observability.AuthFailuresTotal.WithLabelValues(kind).Inc()
					api.WriteError(w, http.StatusUnauthorized,
						api.NewUnauthorizedError(kind, "invalid credential"))
					return
				}
				rc.Principal = claims.Principal()

				slog.Debug("credential verified",
					"subject", claims.Subject,
					"tenant_id", claims.TenantID,
					"role", string(claims.Role),
				)

			case errors.Is(err, ErrMissingCredential):
				// No credential presented; the gate judges whether the
				// operation allows anonymous access.

			default:
				// Present but not extractable (e.g. non-bearer scheme).
				kind := FailureKind(err)
				observability.AuthFailuresTotal.WithLabelValues(kind).Inc()
				api.WriteError(w, http.StatusUnauthorized,
					api.NewUnauthorizedError(kind, "invalid credential"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithRequestContext(r.Context(), rc)))
		})
	}
}
