package middleware

import (
	"context"

	"github.com/anodeen/HeadShot/pkg/db/models"
)

type contextKey string

const (
	ctxTenant contextKey = "tenant"
)

// TenantFromContext returns the authenticated tenant seeded by Auth, or nil.
func TenantFromContext(ctx context.Context) *models.Tenant {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxTenant).(*models.Tenant); ok {
		return v
	}
	return nil
}

// WithTenant injects the tenant into the context.
func WithTenant(ctx context.Context, tenant *models.Tenant) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxTenant, tenant)
}
