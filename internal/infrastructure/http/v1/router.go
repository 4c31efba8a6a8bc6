// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"batibill/internal/domain/analytics"
	"batibill/internal/domain/catalogs/catalogitem"
	"batibill/internal/domain/catalogs/client"
	"batibill/internal/domain/catalogs/site"
	"batibill/internal/domain/documents"
	"batibill/internal/domain/expenses"
	"batibill/internal/domain/hr"
	"batibill/internal/domain/payments"
	"batibill/internal/infrastructure/http/v1/handlers"
	"batibill/internal/infrastructure/http/v1/middleware"
	"batibill/internal/infrastructure/storage/postgres"
	"batibill/pkg/logger"
)

// RouterConfig holds everything the router wires together.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	Documents *documents.Service
	Payments  *payments.Service
	Analytics *analytics.Service
	Items     *catalogitem.Service
	Clients   *client.Service
	Sites     *site.Service
	Expenses  *expenses.Service
	HR        *hr.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no tenant required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()

	// API v1, all tenant-scoped
	api := router.Group("/api/v1")
	api.Use(middleware.Tenant())
	{
		handlers.NewDocumentHandler(base, cfg.Documents).
			RegisterRoutes(api.Group("/documents"))
		handlers.NewPaymentHandler(base, cfg.Payments).
			RegisterRoutes(api.Group("/payments"))
		handlers.NewAnalyticsHandler(base, cfg.Analytics).
			RegisterRoutes(api.Group("/analytics"))

		catalog := api.Group("/catalog")
		handlers.NewItemHandler(base, cfg.Items).
			RegisterRoutes(catalog.Group("/items"))
		handlers.NewClientHandler(base, cfg.Clients).
			RegisterRoutes(catalog.Group("/clients"))
		handlers.NewSiteHandler(base, cfg.Sites).
			RegisterRoutes(catalog.Group("/sites"))

		handlers.NewExpenseHandler(base, cfg.Expenses).
			RegisterRoutes(api.Group("/expenses"))
		handlers.NewHRHandler(base, cfg.HR).
			RegisterRoutes(api.Group("/hr"))
	}

	return router
}
