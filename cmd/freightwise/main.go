package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/freightwise/freightwise/internal/app"
	"github.com/freightwise/freightwise/internal/billing"
	"github.com/freightwise/freightwise/internal/dashboard"
	"github.com/freightwise/freightwise/internal/masterdata/costtypes"
	"github.com/freightwise/freightwise/internal/masterdata/customers"
	"github.com/freightwise/freightwise/internal/masterdata/services"
	"github.com/freightwise/freightwise/internal/masterdata/suppliers"
	"github.com/freightwise/freightwise/internal/observability"
	"github.com/freightwise/freightwise/internal/platform/cache"
	"github.com/freightwise/freightwise/internal/platform/db"
	"github.com/freightwise/freightwise/internal/pricing"
	"github.com/freightwise/freightwise/internal/reports"
	"github.com/freightwise/freightwise/internal/reports/export"
	reporthttp "github.com/freightwise/freightwise/internal/reports/http"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// reports fall back to uncached loads when redis is away
		logger.Warn("redis unavailable, report caching disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}
	}()

	metrics := observability.NewMetrics()

	customerRepo := customers.NewRepository(pool)
	customerHandler := customers.NewHandler(logger, customers.NewService(customerRepo))

	supplierRepo := suppliers.NewRepository(pool)
	supplierHandler := suppliers.NewHandler(logger, suppliers.NewService(supplierRepo))

	serviceHandler := services.NewHandler(logger, services.NewRepository(pool))
	costTypeHandler := costtypes.NewHandler(logger, costtypes.NewRepository(pool))

	pricingRepo := pricing.NewRepository(pool)
	pricingHandler := pricing.NewHandler(logger, pricingRepo)

	billingRepo := billing.NewRepository(pool)
	billingService := billing.NewService(billingRepo, pricingRepo)
	billingHandler := billing.NewHandler(logger, billingService)

	billSource := dashboard.NewBillingSource(billingRepo)
	dashboardService := dashboard.NewService(logger, billSource, metrics, cfg.QueryTimeout)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService)

	reportCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)
	reportService := reports.NewService(logger, billSource, pricingRepo, reportCache)
	// sheet pushes stay off until a spreadsheet backend is plugged in
	reportHandler := reporthttp.NewHandler(logger, reportService, export.DisabledSheets{})
	billingService.OnWrite(reportService.InvalidateAll)
	if err := reportCache.ListenForInvalidation(ctx); err != nil {
		logger.Warn("report cache subscribe failed", slog.Any("error", err))
	}

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Metrics:          metrics,
		CustomerHandler:  customerHandler,
		SupplierHandler:  supplierHandler,
		ServiceHandler:   serviceHandler,
		CostTypeHandler:  costTypeHandler,
		PricingHandler:   pricingHandler,
		BillingHandler:   billingHandler,
		DashboardHandler: dashboardHandler,
		ReportHandler:    reportHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
