package authz

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deskhive/deskhive/pkg/auth"
	"github.com/deskhive/deskhive/pkg/tenant"
)

func requestWith(rc auth.RequestContext) *http.Request {
	req := httptest.NewRequest("GET", "http://acme-corp.example.com/v1/me", nil)
	return req.WithContext(auth.WithRequestContext(req.Context(), rc))
}

func TestRequire_AllowedReachesHandler(t *testing.T) {
	g := NewGate(testDirectory(), tenant.ModeProduction)

	var got Decision
	handler := Require(g, auth.RoleAgent, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d, ok := DecisionFrom(r.Context())
		if !ok {
			t.Error("decision missing from handler context")
		}
		got = d
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWith(auth.RequestContext{
		Slug:      "acme-corp",
		SlugOK:    true,
		Principal: principal(acmeID, auth.RoleAgent),
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got.Tenant == nil || got.Tenant.Slug != "acme-corp" {
		t.Errorf("handler saw tenant %+v, want acme-corp", got.Tenant)
	}
}

func TestRequire_DeniedStatusMapping(t *testing.T) {
	g := NewGate(testDirectory(), tenant.ModeProduction)

	tests := []struct {
		name   string
		rc     auth.RequestContext
		min    auth.Role
		status int
		kind   string
	}{
		{
			name:   "missing tenant",
			rc:     auth.RequestContext{},
			min:    "",
			status: http.StatusBadRequest,
			kind:   "missing_tenant",
		},
		{
			name:   "tenant not found",
			rc:     auth.RequestContext{Slug: "ghost", SlugOK: true},
			min:    "",
			status: http.StatusNotFound,
		},
		{
			name:   "missing credential",
			rc:     auth.RequestContext{Slug: "acme-corp", SlugOK: true},
			min:    auth.RoleAgent,
			status: http.StatusUnauthorized,
			kind:   "missing_credential",
		},
		{
			name: "cross tenant",
			rc: auth.RequestContext{
				Slug: "techcorp", SlugOK: true,
				Principal: principal(acmeID, auth.RoleOwner),
			},
			min:    "",
			status: http.StatusForbidden,
			kind:   "cross_tenant",
		},
		{
			name: "insufficient role",
			rc: auth.RequestContext{
				Slug: "acme-corp", SlugOK: true,
				Principal: principal(acmeID, auth.RoleAgent),
			},
			min:    auth.RoleOwner,
			status: http.StatusForbidden,
			kind:   "insufficient_role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Require(g, tt.min, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler reached on a denied request")
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, requestWith(tt.rc))

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.kind != "" {
				var body struct {
					Error struct {
						Code string `json:"code"`
					} `json:"error"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("decoding body: %v", err)
				}
				if body.Error.Code != tt.kind {
					t.Errorf("code = %q, want %q", body.Error.Code, tt.kind)
				}
			}
		})
	}
}

func TestRequire_MissingEdgeContext_ServerError(t *testing.T) {
	g := NewGate(testDirectory(), tenant.ModeProduction)

	handler := Require(g, "", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without edge context")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/me", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestRequire_RateLimit(t *testing.T) {
	g := NewGate(testDirectory(), tenant.ModeProduction)
	limiter := NewInProcessLimiter(map[string]TierConfig{
		"pro": {RequestsPerMinute: 2},
	}, 100)

	handler := Require(g, auth.RoleAgent, limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rc := auth.RequestContext{
		Slug: "acme-corp", SlugOK: true,
		Principal: principal(acmeID, auth.RoleAgent),
	}

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWith(rc))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWith(rc))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}
}

func TestInProcessLimiter_DefaultBudget(t *testing.T) {
	limiter := NewInProcessLimiter(nil, 1)
	d := allow(&tenant.Tenant{ID: "t1", PlanTier: "unknown-tier"}, nil)

	if err := limiter.Allow(context.Background(), d); err != nil {
		t.Fatalf("first request: %v", err)
	}
	if err := limiter.Allow(context.Background(), d); err != ErrTooManyRequests {
		t.Errorf("second request = %v, want ErrTooManyRequests", err)
	}
}

func TestDenyKind_HTTPStatus(t *testing.T) {
	tests := []struct {
		kind   DenyKind
		status int
	}{
		{DenyMissingCredential, 401},
		{DenyInvalidCredential, 401},
		{DenyCrossTenant, 403},
		{DenyInsufficientRole, 403},
		{DenyTenantNotFound, 404},
		{DenyMissingTenant, 400},
		{DenyInternal, 500},
	}
	for _, tt := range tests {
		if got := tt.kind.HTTPStatus(); got != tt.status {
			t.Errorf("%s.HTTPStatus() = %d, want %d", tt.kind, got, tt.status)
		}
	}
}
