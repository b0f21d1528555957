package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/mantomate/storefront-backend/api/routes"
	"github.com/mantomate/storefront-backend/internal/address"
	"github.com/mantomate/storefront-backend/internal/cart"
	"github.com/mantomate/storefront-backend/internal/catalog"
	"github.com/mantomate/storefront-backend/internal/checkout"
	"github.com/mantomate/storefront-backend/internal/customers"
	"github.com/mantomate/storefront-backend/internal/dashboard"
	"github.com/mantomate/storefront-backend/internal/orders"
	"github.com/mantomate/storefront-backend/internal/paymentmethods"
	"github.com/mantomate/storefront-backend/internal/subscriptions"
	"github.com/mantomate/storefront-backend/pkg/auth/session"
	"github.com/mantomate/storefront-backend/pkg/config"
	"github.com/mantomate/storefront-backend/pkg/db"
	"github.com/mantomate/storefront-backend/pkg/logger"
	"github.com/mantomate/storefront-backend/pkg/metrics"
	"github.com/mantomate/storefront-backend/pkg/migrate"
	"github.com/mantomate/storefront-backend/pkg/redis"
	"github.com/mantomate/storefront-backend/pkg/viewcache"
)

const serviceName = "manto-api"

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, redisClient.Close())
	}()

	revocations, err := session.NewRevocations(redisClient)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	workflowMetrics := metrics.NewWorkflowMetrics(registry)
	views := viewcache.New(redisClient, cfg.Cache)

	gormDB := dbClient.DB()
	addressRepo := address.NewRepository(gormDB)
	ordersRepo := orders.NewRepository(gormDB)
	paymentRepo := paymentmethods.NewRepository(gormDB)
	subscriptionRepo := subscriptions.NewRepository(gormDB)

	customerService, err := customers.NewService(customers.NewRepository(gormDB), addressRepo, logg)
	if err != nil {
		return err
	}
	addressService, err := address.NewService(addressRepo, logg)
	if err != nil {
		return err
	}
	paymentService, err := paymentmethods.NewService(paymentRepo, logg)
	if err != nil {
		return err
	}
	catalogService, err := catalog.NewService(catalog.NewRepository(gormDB), cfg.Catalog, logg)
	if err != nil {
		return err
	}
	cartLocks, err := cart.NewRedisLocker(redisClient, 0)
	if err != nil {
		return err
	}
	cartService, err := cart.NewService(func(principal string) cart.Storage {
		return cart.NewRedisStorage(redisClient, principal, cfg.Cart.TTL)
	}, catalogService, cartLocks, logg)
	if err != nil {
		return err
	}
	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		TxRunner:       dbClient,
		Customers:      customerService,
		Addresses:      addressRepo,
		Orders:         ordersRepo,
		PaymentMethods: paymentRepo,
		Views:          views,
		Cart:           cartService,
		Metrics:        workflowMetrics,
		Logger:         logg,
	})
	if err != nil {
		return err
	}
	subscriptionService, err := subscriptions.NewService(subscriptions.ServiceParams{
		TxRunner:       dbClient,
		Repo:           subscriptionRepo,
		Customers:      customerService,
		Addresses:      addressRepo,
		PaymentMethods: paymentRepo,
		Orders:         ordersRepo,
		Views:          views,
		Metrics:        workflowMetrics,
		Logger:         logg,
	})
	if err != nil {
		return err
	}
	ordersService, err := orders.NewService(ordersRepo, logg)
	if err != nil {
		return err
	}
	dashboardService, err := dashboard.NewService(customerService, subscriptionRepo, ordersRepo, logg)
	if err != nil {
		return err
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})

	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			DB:       dbClient,
			Redis:    redisClient,
			Sessions: revocations,
			Views:    views,
			Metrics:  metrics.NewHTTPMetrics(registry),
			Gatherer: registry,
		}, routes.Services{
			Catalog:        catalogService,
			Cart:           cartService,
			Checkout:       checkoutService,
			Customers:      customerService,
			Addresses:      addressService,
			PaymentMethods: paymentService,
			Subscriptions:  subscriptionService,
			Orders:         ordersService,
			Dashboard:      dashboardService,
		}),
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logg.Info(ctx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
