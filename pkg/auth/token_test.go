package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var testSecret = []byte("test-secret-0123456789abcdef")

func testClaims() Claims {
	return Claims{
		Subject:  "usr_1",
		Email:    "alice@acme-corp.test",
		TenantID: "11111111-1111-4111-8111-111111111111",
		Role:     RoleAdmin,
	}
}

func TestVerify_RoundTrip(t *testing.T) {
	issued := testClaims()
	issued.IssuedAt = time.Now().Truncate(time.Second)
	issued.ExpiresAt = issued.IssuedAt.Add(time.Hour)

	token, err := Issue(testSecret, issued)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	got, err := NewVerifier(testSecret).Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if got.Subject != issued.Subject || got.Email != issued.Email ||
		got.TenantID != issued.TenantID || got.Role != issued.Role {
		t.Errorf("claims = %+v, want %+v", got, issued)
	}
	if !got.IssuedAt.Equal(issued.IssuedAt) || !got.ExpiresAt.Equal(issued.ExpiresAt) {
		t.Errorf("timestamps = %v/%v, want %v/%v",
			got.IssuedAt, got.ExpiresAt, issued.IssuedAt, issued.ExpiresAt)
	}
}

func TestVerify_Expired(t *testing.T) {
	token, err := Issue(testSecret, testClaims())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	v := NewVerifier(testSecret)
	// Move the verifier's clock past expiry: the same well-signed token
	// must now report Expired, never BadSignature.
	v.now = func() time.Time { return time.Now().Add(DefaultTokenTTL + time.Second) }

	_, err = v.Verify(token)
	if !errors.Is(err, ErrExpired) {
		t.Errorf("Verify(expired) = %v, want ErrExpired", err)
	}
	if errors.Is(err, ErrBadSignature) {
		t.Error("expired token must not report ErrBadSignature")
	}
}

func TestVerify_BadSignature(t *testing.T) {
	token, err := Issue([]byte("some-other-secret"), testClaims())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = NewVerifier(testSecret).Verify(token)
	if !errors.Is(err, ErrBadSignature) {
		t.Errorf("Verify(wrong secret) = %v, want ErrBadSignature", err)
	}
}

func TestVerify_TamperedPayload(t *testing.T) {
	token, err := Issue(testSecret, testClaims())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Swap the payload segment for a different (validly encoded) one.
	parts := strings.Split(token, ".")
	other, _ := Issue(testSecret, Claims{
		Subject:  "usr_2",
		TenantID: "22222222-2222-4222-8222-222222222222",
		Role:     RoleOwner,
	})
	otherParts := strings.Split(other, ".")
	tampered := parts[0] + "." + otherParts[1] + "." + parts[2]

	_, err = NewVerifier(testSecret).Verify(tampered)
	if !errors.Is(err, ErrBadSignature) {
		t.Errorf("Verify(tampered) = %v, want ErrBadSignature", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	v := NewVerifier(testSecret)

	for _, raw := range []string{"garbage", "a.b", "a.b.c.d"} {
		if _, err := v.Verify(raw); !errors.Is(err, ErrMalformedCredential) {
			t.Errorf("Verify(%q) = %v, want ErrMalformedCredential", raw, err)
		}
	}
}

func TestVerify_Missing(t *testing.T) {
	if _, err := NewVerifier(testSecret).Verify(""); !errors.Is(err, ErrMissingCredential) {
		t.Errorf("Verify(\"\") = %v, want ErrMissingCredential", err)
	}
}

func TestVerify_MissingTenantClaim(t *testing.T) {
	claims := testClaims()
	claims.TenantID = ""
	token, err := Issue(testSecret, claims)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := NewVerifier(testSecret).Verify(token); !errors.Is(err, ErrMalformedCredential) {
		t.Errorf("Verify(no tenant claim) = %v, want ErrMalformedCredential", err)
	}
}

func TestFailureKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrMissingCredential, "missing"},
		{ErrExpired, "expired"},
		{ErrBadSignature, "bad_signature"},
		{ErrMalformedCredential, "malformed"},
		{errors.New("other"), "unknown"},
	}
	for _, tt := range tests {
		if got := FailureKind(tt.err); got != tt.want {
			t.Errorf("FailureKind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestCredentialFromRequest_BearerHeader(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer tok123")

	raw, err := CredentialFromRequest(r, "")
	if err != nil || raw != "tok123" {
		t.Errorf("CredentialFromRequest = (%q, %v), want (tok123, nil)", raw, err)
	}
}

func TestCredentialFromRequest_Cookie(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tok456"})

	raw, err := CredentialFromRequest(r, "")
	if err != nil || raw != "tok456" {
		t.Errorf("CredentialFromRequest = (%q, %v), want (tok456, nil)", raw, err)
	}
}

func TestCredentialFromRequest_HeaderWinsOverCookie(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer fromheader")
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "fromcookie"})

	raw, _ := CredentialFromRequest(r, "")
	if raw != "fromheader" {
		t.Errorf("raw = %q, want fromheader", raw)
	}
}

func TestCredentialFromRequest_Absent(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)

	if _, err := CredentialFromRequest(r, ""); !errors.Is(err, ErrMissingCredential) {
		t.Errorf("CredentialFromRequest = %v, want ErrMissingCredential", err)
	}
}

func TestCredentialFromRequest_NonBearerScheme(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	if _, err := CredentialFromRequest(r, ""); !errors.Is(err, ErrMalformedCredential) {
		t.Errorf("CredentialFromRequest(basic) = %v, want ErrMalformedCredential", err)
	}
}

func TestSessionCookie(t *testing.T) {
	c := SessionCookie("tok", 0, true)

	if c.Name != SessionCookieName || c.Value != "tok" {
		t.Errorf("cookie = %s=%s", c.Name, c.Value)
	}
	if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteStrictMode {
		t.Errorf("cookie attributes = httponly:%v secure:%v samesite:%v", c.HttpOnly, c.Secure, c.SameSite)
	}
	if c.Path != "/" {
		t.Errorf("path = %q, want /", c.Path)
	}
	if c.MaxAge != int(DefaultTokenTTL.Seconds()) {
		t.Errorf("max-age = %d, want %d", c.MaxAge, int(DefaultTokenTTL.Seconds()))
	}

	if SessionCookie("tok", 0, false).Secure {
		t.Error("development cookie should not be secure")
	}
}
