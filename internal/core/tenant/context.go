// Package tenant carries the billing-isolation boundary through request context.
// Every document, payment, and cache entry is scoped to exactly one tenant.
package tenant

import (
	"context"
	"errors"

	"batibill/internal/core/id"
)

// Tenant is the company owning a set of documents.
// Immutable once documents exist.
type Tenant struct {
	ID id.ID
	// Name is the company display name.
	Name string
	// Language drives the amount-in-words rendering ("fr", "en").
	Language string
}

type tenantKey struct{}

// ErrNoTenantInContext is returned when a tenant-scoped operation runs
// without tenant resolution (missing middleware).
var ErrNoTenantInContext = errors.New("tenant not found in context")

// WithTenant stores tenant info in context.
func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, tenantKey{}, t)
}

// GetTenant retrieves tenant from context, nil when absent.
func GetTenant(ctx context.Context) *Tenant {
	t, _ := ctx.Value(tenantKey{}).(*Tenant)
	return t
}

// RequireTenant retrieves tenant from context or fails.
func RequireTenant(ctx context.Context) (*Tenant, error) {
	t := GetTenant(ctx)
	if t == nil {
		return nil, ErrNoTenantInContext
	}
	return t, nil
}

// GetTenantID returns the tenant ID or the nil UUID.
func GetTenantID(ctx context.Context) id.ID {
	if t := GetTenant(ctx); t != nil {
		return t.ID
	}
	return id.Nil()
}

// GetLanguage returns the tenant language or "fr", the default locale
// for official documents.
func GetLanguage(ctx context.Context) string {
	if t := GetTenant(ctx); t != nil && t.Language != "" {
		return t.Language
	}
	return "fr"
}
