package handlers

import (
	"github.com/gin-gonic/gin"

	"batibill/internal/core/tenant"
	"batibill/internal/domain/analytics"
)

// AnalyticsHandler exposes the cached metric layer.
type AnalyticsHandler struct {
	*BaseHandler
	service *analytics.Service
}

// NewAnalyticsHandler creates an analytics handler.
func NewAnalyticsHandler(base *BaseHandler, service *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{BaseHandler: base, service: service}
}

// RegisterRoutes wires analytics endpoints on the group.
func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListMetrics)
	rg.GET("/:metric", h.GetMetric)
	rg.POST("/invalidate", h.Invalidate)
}

// ListMetrics handles GET /analytics.
func (h *AnalyticsHandler) ListMetrics(c *gin.Context) {
	h.OK(c, gin.H{"metrics": h.service.Metrics()})
}

// GetMetric handles GET /analytics/:metric. Unknown names are 404.
func (h *AnalyticsHandler) GetMetric(c *gin.Context) {
	metric := c.Param("metric")
	v, err := h.service.Get(c.Request.Context(), metric)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"metric": metric, "data": v})
}

// Invalidate handles POST /analytics/invalidate. Collaborators owning
// out-of-engine mutations call this to evict the tenant's cache.
func (h *AnalyticsHandler) Invalidate(c *gin.Context) {
	ctx := c.Request.Context()
	h.service.Invalidate(ctx, tenant.GetTenantID(ctx))
	h.Success(c, "analytics cache invalidated")
}
