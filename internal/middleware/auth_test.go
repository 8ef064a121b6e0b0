package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fittrackhq/fittrack-backend/internal/domain"
)

const testSecret = "test-secret"

func authedRequest(t *testing.T, token string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/profile/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAuthMiddleware_RoundTrip(t *testing.T) {
	token, err := GenerateToken(42, 7, testSecret)
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	var gotUserID, gotTenantID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		gotTenantID = UserTenantIDFromContext(r.Context())
	})

	rec := httptest.NewRecorder()
	AuthMiddleware(testSecret)(next).ServeHTTP(rec, authedRequest(t, token))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if gotUserID != 42 || gotTenantID != 7 {
		t.Errorf("context ids = (%d, %d), want (42, 7)", gotUserID, gotTenantID)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	otherToken, err := GenerateToken(1, 1, "some-other-secret")
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong signing secret", "Bearer " + otherToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/profile/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			rec := httptest.NewRecorder()
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
			AuthMiddleware(testSecret)(next).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			if called {
				t.Error("next handler must not run for a rejected request")
			}
		})
	}
}

type fakeTenantLookup struct {
	tenants map[string]*domain.Tenant
	err     error
}

func (f *fakeTenantLookup) GetByAPIKey(apiKey string) (*domain.Tenant, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tenants[apiKey], nil
}

func TestAPIKeyMiddleware(t *testing.T) {
	lookup := &fakeTenantLookup{tenants: map[string]*domain.Tenant{
		"valid-key": {ID: 7, CompanyName: "Acme Fitness"},
	}}

	cases := []struct {
		name       string
		key        string
		lookupErr  error
		wantStatus int
	}{
		{"valid key", "valid-key", nil, http.StatusOK},
		{"missing key", "", nil, http.StatusUnauthorized},
		{"unknown key", "wrong-key", nil, http.StatusForbidden},
		{"lookup failure", "valid-key", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lookup.err = tc.lookupErr
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", nil)
			if tc.key != "" {
				req.Header.Set("X-API-Key", tc.key)
			}

			var gotTenant *domain.Tenant
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotTenant = TenantFromContext(r.Context())
			})

			rec := httptest.NewRecorder()
			APIKeyMiddleware(lookup)(next).ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if tc.wantStatus == http.StatusOK {
				if gotTenant == nil || gotTenant.ID != 7 {
					t.Errorf("tenant in context = %+v, want id 7", gotTenant)
				}
			} else if gotTenant != nil {
				t.Error("tenant must not reach the handler on rejection")
			}
		})
	}
}
