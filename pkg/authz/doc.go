// Package authz implements the authorization gate: the terminal
// allow/deny decision that binds the resolved tenant, the verified
// principal, and the operation's role requirement.
//
// The gate consumes the request context established by the auth edge
// middleware and a tenant directory lookup. Every request passes the
// gate exactly once and receives a terminal Decision; denied requests
// are never retried within the same request.
package authz
