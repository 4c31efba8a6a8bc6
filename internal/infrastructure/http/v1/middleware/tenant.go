package middleware

import (
	"github.com/gin-gonic/gin"

	"batibill/internal/core/apperror"
	appctx "batibill/internal/core/context"
	"batibill/internal/core/id"
	"batibill/internal/core/tenant"
)

const (
	// TenantHeader identifies the tenant owning the request.
	TenantHeader = "X-Tenant-ID"

	// TenantLanguageHeader overrides the document language ("fr", "en").
	TenantLanguageHeader = "X-Tenant-Language"

	// UserHeader carries the identity forwarded by the auth gateway.
	// Authentication itself happens upstream; the engine trusts it.
	UserHeader      = "X-User-ID"
	UserEmailHeader = "X-User-Email"
)

// Tenant middleware resolves the tenant from headers and injects it into
// the request context. It MUST run before any tenant-scoped operation.
func Tenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawTenantID := c.GetHeader(TenantHeader)
		if rawTenantID == "" {
			_ = c.Error(
				apperror.NewValidation("tenant is required").
					WithDetail("header", TenantHeader),
			)
			c.Abort()
			return
		}

		tenantID, err := id.Parse(rawTenantID)
		if err != nil {
			_ = c.Error(
				apperror.NewValidation("invalid tenant id").
					WithDetail("header", TenantHeader).
					WithDetail("value", rawTenantID),
			)
			c.Abort()
			return
		}

		ctx := tenant.WithTenant(c.Request.Context(), &tenant.Tenant{
			ID:       tenantID,
			Language: c.GetHeader(TenantLanguageHeader),
		})

		if userID := c.GetHeader(UserHeader); userID != "" {
			ctx = appctx.WithUser(ctx, &appctx.UserContext{
				UserID:   userID,
				TenantID: tenantID.String(),
				Email:    c.GetHeader(UserEmailHeader),
			})
		}

		c.Request = c.Request.WithContext(ctx)
		c.Set("tenant_id", tenantID.String())

		c.Next()
	}
}
