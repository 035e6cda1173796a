package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mpetrenko/voltride/internal"
	"github.com/mpetrenko/voltride/internal/catalog"
	"github.com/mpetrenko/voltride/internal/cookie"
	"github.com/mpetrenko/voltride/internal/delivery"
	"github.com/mpetrenko/voltride/internal/handler/admin"
	"github.com/mpetrenko/voltride/internal/handler/storefront"
	"github.com/mpetrenko/voltride/internal/middleware"
	"github.com/mpetrenko/voltride/internal/repository"
	"github.com/mpetrenko/voltride/internal/router"
	"github.com/mpetrenko/voltride/internal/routes"
	"github.com/mpetrenko/voltride/internal/service"
	"github.com/mpetrenko/voltride/internal/telemetry"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)

	// Initialize Sentry error tracking
	sentryCleanup, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:         cfg.Sentry.DSN,
		Enabled:     cfg.Sentry.Enabled,
		Environment: cfg.Sentry.Environment,
		Release:     cfg.Sentry.Release,
		SampleRate:  cfg.Sentry.SampleRate,
		Debug:       cfg.Sentry.Debug,
	}, logger)
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	defer sentryCleanup()

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Initialize repository
	store := repository.NewStore(pool)

	// Initialize catalog provider
	catalogProvider := catalog.NewPGProvider(store)

	// Initialize delivery provider (flat rate)
	deliveryProvider := delivery.NewFlatRateProvider([]delivery.Quote{
		{ServiceName: "Standard Delivery", ServiceCode: "standard", CostCents: cfg.Delivery.StandardCents, DaysMin: 3, DaysMax: 5},
		{ServiceName: "Express Delivery", ServiceCode: "express", CostCents: cfg.Delivery.ExpressCents, DaysMin: 1, DaysMax: 2},
	})

	// Initialize services
	cartService := service.NewCartService(store, catalogProvider)
	checkoutService := service.NewCheckoutService(store)
	orderService := service.NewOrderService(store)

	// Cookie configuration
	cookieConfig := cookie.NewConfig(cfg.SecureCookies())

	// ==========================================================================
	// Build route dependencies
	// ==========================================================================

	storefrontDeps := routes.StorefrontDeps{
		CartHandler:     storefront.NewCartHandler(cartService, cookieConfig),
		CheckoutHandler: storefront.NewCheckoutHandler(cartService, checkoutService, deliveryProvider),
		OrderHandler:    storefront.NewOrderHandler(orderService),
	}

	adminDeps := routes.AdminDeps{
		OrderHandler: admin.NewOrderHandler(orderService),
	}

	// ==========================================================================
	// Initialize middleware
	// ==========================================================================

	metrics := middleware.NewMetrics("voltride")

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	r := router.New(
		router.Recovery(logger),
		telemetry.SentryMiddleware(),
		middleware.RequestID,
		metrics.Middleware,
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		middleware.Timeout(middleware.DefaultTimeout),
		router.Logger(logger),
		middleware.ResolveUser,
	)

	// Metrics endpoint (protect via firewall in production)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Register route groups
	routes.RegisterStorefrontRoutes(r, storefrontDeps)
	routes.RegisterAdminRoutes(r, adminDeps)

	// ==========================================================================
	// Start server
	// ==========================================================================

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
