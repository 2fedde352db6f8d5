package middleware

import (
	"net/http"
	"strings"

	"github.com/anodeen/HeadShot/api/responses"
	"github.com/anodeen/HeadShot/internal/sessions"
	"github.com/anodeen/HeadShot/pkg/logger"
)

// Auth resolves the bearer token to a tenant and seeds the request context.
func Auth(resolver sessions.Service, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)

			tenant, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithTenant(r.Context(), tenant)
			if logg != nil {
				ctx = logg.WithField(ctx, "tenant_id", tenant.ID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
