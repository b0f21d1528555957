package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mantomate/storefront-backend/api/controllers"
	"github.com/mantomate/storefront-backend/api/middleware"
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
	"github.com/mantomate/storefront-backend/pkg/logger"
	"github.com/mantomate/storefront-backend/pkg/metrics"
	"github.com/mantomate/storefront-backend/pkg/redis"
	"github.com/mantomate/storefront-backend/pkg/viewcache"
)

type sessionStore interface {
	session.RevocationChecker
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// Services are the domain services exposed over HTTP.
type Services struct {
	Catalog        catalog.Service
	Cart           cart.Service
	Checkout       checkout.Service
	Customers      customers.Service
	Addresses      address.Service
	PaymentMethods paymentmethods.Service
	Subscriptions  subscriptions.Service
	Orders         orders.Service
	Dashboard      dashboard.Service
}

// Deps carries the infrastructure the router wires into middleware.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Redis    *redis.Client
	Sessions sessionStore
	Views    *viewcache.Cache
	Metrics  *metrics.HTTPMetrics
	Gatherer prometheus.Gatherer
}

func NewRouter(deps Deps, svc Services) http.Handler {
	cfg, logg := deps.Config, deps.Logger

	var idempotencyStore redis.IdempotencyStore
	readiness := map[string]controllers.Pinger{}
	if deps.DB != nil {
		readiness["db"] = deps.DB
	}
	if deps.Redis != nil {
		idempotencyStore = deps.Redis
		readiness["redis"] = deps.Redis
	}
	var revocations session.RevocationChecker
	if deps.Sessions != nil {
		revocations = deps.Sessions
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(cfg.HTTP.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, readiness, logg))
	})

	if cfg.HTTP.MetricsEnabled && deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	idempotent := middleware.Idempotency(idempotencyStore, logg)
	cached := func(view viewcache.View) func(http.Handler) http.Handler {
		return middleware.ViewCache(deps.Views, view, logg)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuth(cfg.Auth, revocations, logg))

			r.Get("/catalog", controllers.CatalogList(svc.Catalog, logg))
			r.Get("/catalog/categories", controllers.CatalogCategories(svc.Catalog, logg))
			r.Get("/products/{productId}", controllers.ProductDetail(svc.Catalog, logg))
			r.Get("/subscriptions/plans", controllers.SubscriptionPlans(svc.Subscriptions, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.Auth, revocations, logg))

			r.Get("/ping", controllers.PrivatePing())
			r.Post("/auth/logout", controllers.AuthLogout(deps.Sessions, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(svc.Cart, logg))
				r.Delete("/", controllers.CartClear(svc.Cart, logg))
				r.Post("/items", controllers.CartAddItem(svc.Cart, logg))
				r.Patch("/items/{productId}", controllers.CartUpdateItem(svc.Cart, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(svc.Cart, logg))
			})

			r.With(idempotent).Post("/checkout", controllers.Checkout(svc.Checkout, logg))

			r.With(idempotent).Post("/subscriptions", controllers.SubscriptionCreate(svc.Subscriptions, cfg.Checkout, logg))
			r.With(cached(viewcache.ViewSubscription)).Get("/subscriptions/me", controllers.SubscriptionMe(svc.Customers, svc.Subscriptions, logg))

			r.With(cached(viewcache.ViewOrders)).Get("/orders", controllers.OrdersList(svc.Customers, svc.Orders, logg))
			r.Get("/orders/{orderId}", controllers.OrderDetail(svc.Customers, svc.Orders, logg))

			r.With(cached(viewcache.ViewDashboard)).Get("/dashboard", controllers.Dashboard(svc.Dashboard, logg))
			r.Route("/account", func(r chi.Router) {
				r.Put("/profile", controllers.AccountProfile(svc.Customers, deps.Views, logg))
				r.Get("/addresses", controllers.AccountAddresses(svc.Customers, svc.Addresses, logg))
				r.Get("/payment-methods", controllers.AccountPaymentMethods(svc.Customers, svc.PaymentMethods, logg))
			})
		})
	})

	return r
}
