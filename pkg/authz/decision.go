package authz

import (
	"net/http"

	"github.com/deskhive/deskhive/pkg/auth"
	"github.com/deskhive/deskhive/pkg/tenant"
)

// DenyKind identifies why a request was denied. Kinds are part of the
// API contract: clients and tests match on the kind, never on message
// text.
type DenyKind string

const (
	// DenyMissingCredential: the operation requires a principal and none
	// was presented.
	DenyMissingCredential DenyKind = "missing_credential"

	// DenyInvalidCredential: a credential was presented but failed
	// verification. Produced at the edge stage; listed here so the
	// status mapping covers the full taxonomy.
	DenyInvalidCredential DenyKind = "invalid_credential"

	// DenyMissingTenant: the request's host carried no tenant slug.
	DenyMissingTenant DenyKind = "missing_tenant"

	// DenyTenantNotFound: the slug does not match any tenant.
	DenyTenantNotFound DenyKind = "tenant_not_found"

	// DenyCrossTenant: the principal belongs to a different tenant than
	// the one the request addressed.
	DenyCrossTenant DenyKind = "cross_tenant"

	// DenyInsufficientRole: the principal's role ranks below the
	// operation's minimum.
	DenyInsufficientRole DenyKind = "insufficient_role"

	// DenyInternal: the tenant directory was unreachable. The only kind
	// whose cause is withheld from the client and logged instead.
	DenyInternal DenyKind = "internal"
)

// HTTPStatus maps a deny kind to its response status code.
func (k DenyKind) HTTPStatus() int {
	switch k {
	case DenyMissingCredential, DenyInvalidCredential:
		return http.StatusUnauthorized
	case DenyCrossTenant, DenyInsufficientRole:
		return http.StatusForbidden
	case DenyTenantNotFound:
		return http.StatusNotFound
	case DenyMissingTenant:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Decision is the terminal outcome of the gate for one request. Either
// Allowed is true and Tenant (plus Principal, when one was presented) is
// set, or Kind carries the deny reason.
type Decision struct {
	Allowed   bool
	Tenant    *tenant.Tenant
	Principal *auth.Principal
	Kind      DenyKind
	Detail    string
}

func allow(t *tenant.Tenant, p *auth.Principal) Decision {
	return Decision{Allowed: true, Tenant: t, Principal: p}
}

// deny builds a denied decision. Detail discloses only what the client
// needs to correct the request.
func deny(kind DenyKind, detail string) Decision {
	return Decision{Kind: kind, Detail: detail}
}
