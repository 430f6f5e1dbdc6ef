package auth

import "context"

// RequestContext carries the facts the edge stage established for one
// request: the tenant slug resolved from the Host header and the verified
// principal, either of which may be absent. Built once per request and
// read-only afterwards. The slug and the principal's tenant binding are
// independent facts; whether they must agree is the gate's decision.
type RequestContext struct {
	// Slug is the tenant slug resolved from the host, empty when SlugOK
	// is false.
	Slug string

	// SlugOK reports whether the host carried a tenant slug.
	SlugOK bool

	// Principal is the verified caller, nil when no credential was
	// presented.
	Principal *Principal
}

// requestContextKey is a private type for the request context key.
type requestContextKey struct{}

// WithRequestContext stores the edge-stage result in the context.
func WithRequestContext(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// RequestContextFrom retrieves the edge-stage result. The second return
// value is false when the edge middleware did not run.
func RequestContextFrom(ctx context.Context) (RequestContext, bool) {
	rc, ok := ctx.Value(requestContextKey{}).(RequestContext)
	return rc, ok
}
