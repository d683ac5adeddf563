package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytefit/storefront/internal"
	"github.com/bytefit/storefront/internal/billing"
	"github.com/bytefit/storefront/internal/handler/api"
	"github.com/bytefit/storefront/internal/middleware"
	"github.com/bytefit/storefront/internal/postgres"
	"github.com/bytefit/storefront/internal/router"
	"github.com/bytefit/storefront/internal/routes"
	"github.com/bytefit/storefront/internal/service"
	"github.com/bytefit/storefront/internal/shipping"
	"github.com/bytefit/storefront/internal/telemetry"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
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

	// Verify database connection
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

	// Initialize Stripe billing provider
	logger.Info("Initializing Stripe billing provider...")
	stripeConfig := billing.StripeConfig{
		APIKey:         cfg.Stripe.SecretKey,
		PublishableKey: cfg.Stripe.PublishableKey,
	}
	billingProvider, err := billing.NewStripeProvider(stripeConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize Stripe provider: %w", err)
	}
	logger.Info("Stripe billing provider initialized", "test_mode", stripeConfig.IsTestMode())

	// Initialize shipping rate provider
	logger.Info("Initializing shipping provider...", "provider", cfg.Shipping.Provider)
	var shippingProvider shipping.Provider
	if cfg.Shipping.Provider == "flat_rate" {
		shippingProvider = shipping.NewFlatRateProvider(cfg.Checkout.Currency, []shipping.FlatRate{
			{Name: "Standard Shipping", Amount: 2000, DaysMin: 3, DaysMax: 7},
			{Name: "Express Shipping", Amount: 5000, DaysMin: 1, DaysMax: 2},
		})
	} else {
		shippingProvider, err = shipping.NewStripeProvider(cfg.Stripe.SecretKey)
		if err != nil {
			return fmt.Errorf("failed to initialize shipping provider: %w", err)
		}
	}
	logger.Info("Shipping provider initialized")

	// Initialize services
	orderStore := postgres.NewOrderStore(pool)

	checkoutService := service.NewCheckoutService(billingProvider, service.CheckoutConfig{
		Currency:                  cfg.Checkout.Currency,
		PlatformFeePercent:        cfg.Checkout.PlatformFeePercent,
		DefaultConnectedAccountID: cfg.Checkout.DefaultConnectedAccountID,
	})
	orderService := service.NewOrderService(orderStore, billingProvider)
	rateService := service.NewRateService(shippingProvider, service.RateConfig{
		Currency:              cfg.Checkout.Currency,
		FreeShippingThreshold: cfg.Shipping.FreeShippingThreshold,
	})
	logger.Info("Services initialized")

	// ==========================================================================
	// Initialize middleware and metrics
	// ==========================================================================

	metrics := middleware.NewMetrics("storefront")
	telemetry.InitBusinessMetrics("storefront")

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		middleware.WithClientIP(),
		metrics.Middleware,
		telemetry.SentryMiddleware(),
		router.Logger(logger),
		middleware.WithRequestLogger(logger),
		router.CORS([]string{"*"}),
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

	routes.RegisterAPIRoutes(r, routes.APIDeps{
		CheckoutHandler: api.NewCheckoutHandler(checkoutService, logger),
		OrderHandler:    api.NewOrderHandler(orderService, logger),
		ShippingHandler: api.NewShippingHandler(rateService, logger),
	})

	// ==========================================================================
	// Start server
	// ==========================================================================

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		logger.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
