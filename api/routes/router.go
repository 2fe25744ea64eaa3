package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/craftvine/craftvine-backend/api/controllers"
	"github.com/craftvine/craftvine-backend/api/middleware"
	"github.com/craftvine/craftvine-backend/internal/auth"
	cartsvc "github.com/craftvine/craftvine-backend/internal/cart"
	categorysvc "github.com/craftvine/craftvine-backend/internal/categories"
	clientsvc "github.com/craftvine/craftvine-backend/internal/clients"
	productsvc "github.com/craftvine/craftvine-backend/internal/products"
	sellersvc "github.com/craftvine/craftvine-backend/internal/sellers"
	"github.com/craftvine/craftvine-backend/pkg/config"
	"github.com/craftvine/craftvine-backend/pkg/enums"
	"github.com/craftvine/craftvine-backend/pkg/logger"
	"github.com/craftvine/craftvine-backend/pkg/metrics"
	pkgredis "github.com/craftvine/craftvine-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface needs.
type RouterParams struct {
	Config      *config.Config
	Logger      *logger.Logger
	Database    controllers.Pinger
	Redis       *pkgredis.Client
	Registry    *prometheus.Registry
	HTTPMetrics *metrics.HTTPMetrics

	AuthService     auth.Service
	CartService     cartsvc.Service
	ProductService  productsvc.Service
	CategoryService categorysvc.Service
	SellerService   sellersvc.Service
	ClientService   clientsvc.Service
}

// NewRouter assembles the chi router with the full middleware chain.
func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(params.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	var cachePinger controllers.Pinger
	if params.Redis != nil {
		cachePinger = params.Redis
	}
	var idempotencyStore pkgredis.IdempotencyStore
	if params.Redis != nil {
		idempotencyStore = params.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, params.Database, cachePinger))
	})

	if params.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(params.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, params.Redis, logg)).
				Post("/login", controllers.AuthLogin(params.AuthService, logg))
			r.With(middleware.AuthRateLimit(registerPolicy, params.Redis, logg)).
				Post("/register", controllers.AuthRegister(params.AuthService, logg))
		})

		// Catalog reads are public.
		r.Get("/products", controllers.ProductList(params.ProductService, logg))
		r.Get("/products/{productID}", controllers.ProductGet(params.ProductService, logg))
		r.Get("/categories", controllers.CategoryList(params.CategoryService, logg))
		r.Get("/categories/{categoryID}", controllers.CategoryGet(params.CategoryService, logg))
		r.Get("/sellers", controllers.SellerList(params.SellerService, logg))
		r.Get("/sellers/{sellerID}", controllers.SellerGet(params.SellerService, logg))

		// Carts accept both anonymous and authenticated traffic.
		r.Route("/carts", func(r chi.Router) {
			r.Use(middleware.OptionalAuth(cfg.JWT, logg))

			r.Post("/", controllers.CartCreate(params.CartService, logg))
			r.Get("/{cartID}", controllers.CartGet(params.CartService, logg))
			r.Post("/{cartID}/items", controllers.CartAddItem(params.CartService, logg))
			r.Put("/{cartID}/items/{productID}", controllers.CartSetItemQuantity(params.CartService, logg))
			r.Delete("/{cartID}/items/{productID}", controllers.CartRemoveItem(params.CartService, logg))
			r.Post("/{cartID}/merge", controllers.CartMerge(params.CartService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(enums.RoleAdmin.String(), logg))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.ProductCreate(params.ProductService, logg))
			r.Patch("/{productID}", controllers.ProductUpdate(params.ProductService, logg))
			r.Delete("/{productID}", controllers.ProductDelete(params.ProductService, logg))
		})
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.CategoryCreate(params.CategoryService, logg))
			r.Patch("/{categoryID}", controllers.CategoryUpdate(params.CategoryService, logg))
			r.Delete("/{categoryID}", controllers.CategoryDelete(params.CategoryService, logg))
		})
		r.Route("/sellers", func(r chi.Router) {
			r.Post("/", controllers.SellerCreate(params.SellerService, logg))
			r.Patch("/{sellerID}", controllers.SellerUpdate(params.SellerService, logg))
			r.Delete("/{sellerID}", controllers.SellerDelete(params.SellerService, logg))
		})
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", controllers.ClientList(params.ClientService, logg))
			r.Get("/{clientID}", controllers.ClientGet(params.ClientService, logg))
			r.Patch("/{clientID}", controllers.ClientUpdate(params.ClientService, logg))
			r.Delete("/{clientID}", controllers.ClientDelete(params.ClientService, logg))
		})
	})

	return r
}
