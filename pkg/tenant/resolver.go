package tenant

import "strings"

// Mode selects the host-parsing rules and the gate's development
// conveniences. The zero value is not valid; use ParseMode or the
// constants.
type Mode string

const (
	// ModeDevelopment expects hosts like "acme.localhost:3000".
	ModeDevelopment Mode = "development"

	// ModeProduction expects hosts like "acme.example.com".
	ModeProduction Mode = "production"
)

// ParseMode maps a configuration string to a Mode.
// Returns false for anything other than the two known modes.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeDevelopment, ModeProduction:
		return Mode(s), true
	}
	return "", false
}

// ResolveSlug extracts the tenant slug from an HTTP Host header.
//
// Development hosts have the shape "slug.localhost[:port]"; plain
// "localhost", loopback addresses, and single-label hosts carry no slug.
// Production hosts have the shape "slug.domain.tld[:port]"; hosts with
// fewer than three labels and the reserved "www" label carry no slug.
//
// The second return value reports whether a slug was found. A host
// without a slug is a normal, representable outcome; whether that is
// acceptable is decided later by the authorization gate.
func ResolveSlug(host string, mode Mode) (string, bool) {
	// Drop a trailing port, if any. IPv6 literals never carry a slug,
	// so the naive colon split is fine here.
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	if host == "" {
		return "", false
	}

	labels := strings.Split(host, ".")

	switch mode {
	case ModeDevelopment:
		if host == "localhost" || strings.HasPrefix(host, "127.0.0.1") {
			return "", false
		}
		if len(labels) < 2 {
			return "", false
		}
		if labels[0] == "localhost" || labels[0] == "" {
			return "", false
		}
		return labels[0], true

	case ModeProduction:
		if len(labels) < 3 {
			return "", false
		}
		if labels[0] == "www" || labels[0] == "" {
			return "", false
		}
		return labels[0], true
	}

	return "", false
}
