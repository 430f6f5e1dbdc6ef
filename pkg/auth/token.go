package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Credential verification failure kinds. Callers distinguish them with
// errors.Is; the string content is not part of the contract.
var (
	// ErrMissingCredential means no credential was presented at all.
	ErrMissingCredential = errors.New("credential required")

	// ErrMalformedCredential means the credential is not a parseable token.
	ErrMalformedCredential = errors.New("malformed credential")

	// ErrBadSignature means the token signature does not verify.
	ErrBadSignature = errors.New("credential signature invalid")

	// ErrExpired means the token is well-signed but past its expiry.
	ErrExpired = errors.New("credential expired")
)

// SessionCookieName is the cookie that carries the session credential.
// Stable across requests; the edge middleware reads it as a fallback to
// the Authorization header.
const SessionCookieName = "deskhive_session"

// DefaultTokenTTL is the session credential lifetime.
const DefaultTokenTTL = time.Hour

// Claims are the verified contents of a session credential. Immutable
// once parsed.
type Claims struct {
	Subject   string
	Email     string
	TenantID  string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Principal derives the request-scoped caller identity from the claims.
func (c *Claims) Principal() *Principal {
	return &Principal{
		Subject:  c.Subject,
		Email:    c.Email,
		Role:     c.Role,
		TenantID: c.TenantID,
	}
}

// Principal is the authenticated caller, bound to one tenant for the
// lifetime of a single request. Never persisted.
type Principal struct {
	Subject  string
	Email    string
	Role     Role
	TenantID string
}

// wireClaims is the JWT payload shape.
type wireClaims struct {
	Email    string `json:"email,omitempty"`
	TenantID string `json:"tid,omitempty"`
	Role     string `json:"role,omitempty"`
	jwtlib.RegisteredClaims
}

// Verifier checks session credentials against a shared HMAC secret.
// Verification is pure CPU work with no network or storage access, so the
// edge stage and any later re-derivation see identical outcomes as long
// as they share the same secret.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// NewVerifier creates a verifier for the given shared secret.
func NewVerifier(secret []byte) *Verifier {
	return &Verifier{secret: secret, now: time.Now}
}

// Verify parses and verifies a raw credential string, returning its
// claims. Failures are reported as exactly one of the kind errors:
// ErrMalformedCredential, ErrBadSignature, or ErrExpired. Signature and
// expiry are checked in one pass; a well-signed but expired credential
// reports ErrExpired, never ErrBadSignature.
func (v *Verifier) Verify(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrMissingCredential
	}

	var wire wireClaims
	_, err := jwtlib.ParseWithClaims(raw, &wire, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	},
		jwtlib.WithValidMethods([]string{"HS256"}),
		jwtlib.WithTimeFunc(v.now),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil {
		return nil, classifyTokenError(err)
	}

	claims := &Claims{
		Subject:  wire.Subject,
		Email:    wire.Email,
		TenantID: wire.TenantID,
		Role:     Role(wire.Role),
	}
	if wire.IssuedAt != nil {
		claims.IssuedAt = wire.IssuedAt.Time
	}
	if wire.ExpiresAt != nil {
		claims.ExpiresAt = wire.ExpiresAt.Time
	}

	if claims.Subject == "" || claims.TenantID == "" {
		return nil, fmt.Errorf("%w: missing subject or tenant claim", ErrMalformedCredential)
	}

	return claims, nil
}

// classifyTokenError maps golang-jwt parse errors onto the credential
// failure kinds. The library verifies the signature before validating
// claims, so an expired-and-tampered token surfaces as ErrBadSignature
// while a well-signed expired one surfaces as ErrExpired.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	case errors.Is(err, jwtlib.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	case errors.Is(err, jwtlib.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}
}

// FailureKind returns a short label for a verification failure, used as
// a metric label and machine-readable error code.
func FailureKind(err error) string {
	switch {
	case errors.Is(err, ErrMissingCredential):
		return "missing"
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrBadSignature):
		return "bad_signature"
	case errors.Is(err, ErrMalformedCredential):
		return "malformed"
	default:
		return "unknown"
	}
}

// Issue signs a credential for the given claims with the shared secret.
// Issuance is not part of the request pipeline; this exists for the mint
// tool, login flows living outside this core, and tests.
func Issue(secret []byte, claims Claims) (string, error) {
	if claims.IssuedAt.IsZero() {
		claims.IssuedAt = time.Now()
	}
	if claims.ExpiresAt.IsZero() {
		claims.ExpiresAt = claims.IssuedAt.Add(DefaultTokenTTL)
	}

	wire := wireClaims{
		Email:    claims.Email,
		TenantID: claims.TenantID,
		Role:     string(claims.Role),
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   claims.Subject,
			IssuedAt:  jwtlib.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwtlib.NewNumericDate(claims.ExpiresAt),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, wire)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing credential: %w", err)
	}
	return signed, nil
}

// CredentialFromRequest extracts the raw credential from the
// Authorization header (Bearer scheme) or, failing that, the session
// cookie. Returns ErrMissingCredential when neither is present.
func CredentialFromRequest(r *http.Request, cookieName string) (string, error) {
	if cookieName == "" {
		cookieName = SessionCookieName
	}

	if header := r.Header.Get("Authorization"); header != "" {
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return "", fmt.Errorf("%w: authorization header is not a bearer token", ErrMalformedCredential)
		}
		return token, nil
	}

	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}

	return "", ErrMissingCredential
}

// SessionCookie builds the session cookie carrying a signed credential.
// HTTP-only and SameSite strict always; Secure in production.
func SessionCookie(token string, ttl time.Duration, secure bool) *http.Cookie {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}
