// Package server assembles the deskhive HTTP surface: the middleware
// chain (recovery, request ID, logging, metrics, auth edge stage), the
// gate-protected routes, and the http.Server lifecycle with graceful
// shutdown.
//
// Handlers here are thin glue: they read the authorization decision from
// the request context and serialize it. All authorization semantics live
// in pkg/auth and pkg/authz.
package server
