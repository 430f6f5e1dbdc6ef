// Package tenant defines the tenant record, the read-only directory
// contract used by the authorization gate, and host-based tenant
// resolution.
//
// The directory is a narrow lookup interface (by slug, by id) so the
// gate can be tested against fakes without touching a database. Host
// resolution is a pure function over the Host header; a host that
// carries no tenant slug is a normal outcome, not an error.
package tenant
