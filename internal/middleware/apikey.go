package middleware

import (
	"context"
	"net/http"

	"github.com/fittrackhq/fittrack-backend/internal/domain"
)

const TenantKey contextKey = "tenant"

// TenantLookup resolves an API key to the owning tenant; nil means no
// tenant holds that key.
type TenantLookup interface {
	GetByAPIKey(apiKey string) (*domain.Tenant, error)
}

// APIKeyMiddleware authenticates B2B client requests via the X-API-Key
// header and attaches the resolved tenant to the request context. Missing
// key is 401, unknown key is 403.
func APIKeyMiddleware(tenants TenantLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if key == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"API key is missing"}`))
				return
			}

			tenant, err := tenants.GetByAPIKey(key)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":"failed to verify API key"}`))
				return
			}
			if tenant == nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":"API key is invalid or unauthorized"}`))
				return
			}

			ctx := context.WithValue(r.Context(), TenantKey, tenant)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TenantFromContext returns the tenant attached by APIKeyMiddleware, or
// nil when the request did not pass through it.
func TenantFromContext(ctx context.Context) *domain.Tenant {
	tenant, _ := ctx.Value(TenantKey).(*domain.Tenant)
	return tenant
}
