// Package auth provides the identity half of the deskhive authorization
// pipeline: the role hierarchy, signed-credential verification, and the
// edge middleware that attaches verified identity to the request context.
//
// The edge middleware runs before any handler logic. It scrubs
// client-supplied identity headers, resolves the tenant slug from the
// Host header, verifies the bearer credential, and stores the result as
// an in-process context value. Handlers read identity only from that
// context; the raw credential is never re-examined downstream.
package auth
