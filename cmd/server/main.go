// Package main is the entry point for the batibill API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"batibill/internal/domain/analytics"
	"batibill/internal/domain/catalogs/catalogitem"
	"batibill/internal/domain/catalogs/client"
	"batibill/internal/domain/catalogs/site"
	"batibill/internal/domain/documents"
	"batibill/internal/domain/expenses"
	"batibill/internal/domain/hr"
	"batibill/internal/domain/payments"
	"batibill/internal/infrastructure/cache"
	v1 "batibill/internal/infrastructure/http/v1"
	"batibill/internal/infrastructure/storage/postgres"
	"batibill/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting batibill server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	documentRepo := postgres.NewDocumentRepo(txManager)
	paymentRepo := postgres.NewPaymentRepo(txManager)
	itemRepo := postgres.NewCatalogItemRepo(txManager)
	clientRepo := postgres.NewClientRepo(txManager)
	siteRepo := postgres.NewSiteRepo(txManager)
	expenseRepo := postgres.NewExpenseRepo(txManager)
	employeeRepo := postgres.NewEmployeeRepo(txManager)
	attendanceRepo := postgres.NewAttendanceRepo(txManager)
	analyticsRepo := postgres.NewAnalyticsRepo(txManager)
	sequencer := postgres.NewSequencer(txManager)

	// --- Analytics (cache in front of the aggregate queries) ---
	analyticsTTL := getEnvDuration("ANALYTICS_CACHE_TTL", analytics.DefaultTTL)
	ttlCache := cache.New(analyticsTTL, 10*time.Minute)
	analyticsService := analytics.NewService(analyticsRepo, ttlCache, analyticsTTL)

	// --- Domain services ---
	itemService := catalogitem.NewService(itemRepo)
	clientService := client.NewService(clientRepo, analyticsService)
	siteService := site.NewService(siteRepo, analyticsService)
	expenseService := expenses.NewService(expenseRepo, analyticsService)
	hrService := hr.NewService(employeeRepo, attendanceRepo, analyticsService)
	documentService := documents.NewService(
		documentRepo, itemRepo, clientRepo, sequencer, txManager, analyticsService)
	paymentService := payments.NewService(
		paymentRepo, documentRepo, txManager, analyticsService)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:      pool,
		Logger:    log,
		Documents: documentService,
		Payments:  paymentService,
		Analytics: analyticsService,
		Items:     itemService,
		Clients:   clientService,
		Sites:     siteService,
		Expenses:  expenseService,
		HR:        hrService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
