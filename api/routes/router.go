package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/pizzaria-backend/api/controllers"
	"github.com/angelmondragon/pizzaria-backend/api/middleware"
	"github.com/angelmondragon/pizzaria-backend/internal/auth"
	"github.com/angelmondragon/pizzaria-backend/internal/cart"
	"github.com/angelmondragon/pizzaria-backend/internal/catalog"
	"github.com/angelmondragon/pizzaria-backend/internal/orders"
	"github.com/angelmondragon/pizzaria-backend/internal/recommendations"
	"github.com/angelmondragon/pizzaria-backend/pkg/config"
	"github.com/angelmondragon/pizzaria-backend/pkg/db"
	"github.com/angelmondragon/pizzaria-backend/pkg/logger"
	"github.com/angelmondragon/pizzaria-backend/pkg/metrics"
	"github.com/angelmondragon/pizzaria-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface needs. RedisClient,
// HTTPMetrics and Gatherer are optional; missing redis drops idempotency
// and rate limiting, the transaction row locks still serialize checkout.
type RouterParams struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	RedisClient *redis.Client
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer

	AuthService     auth.Service
	RegisterService auth.RegisterService
	CatalogService  catalog.Service
	CartService     cart.Service
	OrderService    orders.Service
	Recommendations recommendations.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(p.HTTPMetrics),
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

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, redisPinger(p.RedisClient)))
	})

	if p.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		if p.RedisClient != nil {
			r.Use(middleware.Idempotency(p.RedisClient, logg))
		}

		r.Get("/pizzas", controllers.CatalogPizzas(p.CatalogService, logg))
		r.Get("/ingredients", controllers.CatalogIngredients(p.CatalogService, logg))

		r.Route("/auth", func(r chi.Router) {
			register := controllers.AuthRegister(p.RegisterService, p.AuthService, logg)
			login := controllers.AuthLogin(p.AuthService, logg)
			if p.RedisClient != nil {
				r.With(middleware.AuthRateLimit(registerPolicy, p.RedisClient, logg)).Post("/register", register)
				r.With(middleware.AuthRateLimit(loginPolicy, p.RedisClient, logg)).Post("/login", login)
			} else {
				r.Post("/register", register)
				r.Post("/login", login)
			}

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, logg))
				r.Get("/me", controllers.AuthMe(p.AuthService, logg))
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Post("/cart", controllers.CartAdd(p.CartService, logg))
			r.Get("/cart", controllers.CartFetch(p.CartService, logg))
			r.Delete("/cart", controllers.CartClear(p.CartService, logg))
			r.Get("/cart/count", controllers.CartCount(p.CartService, logg))
			r.Put("/cart/{lineId}", controllers.CartUpdateQuantity(p.CartService, logg))
			r.Delete("/cart/{lineId}", controllers.CartRemove(p.CartService, logg))

			r.Post("/orders", controllers.OrderPlace(p.OrderService, logg))
			r.Get("/orders", controllers.OrderList(p.OrderService, logg))
			r.Get("/orders/{orderId}", controllers.OrderDetail(p.OrderService, logg))

			r.Get("/recommendations", controllers.Recommendations(p.Recommendations, logg))
		})
	})

	return r
}

// redisPinger keeps a typed nil from leaking into the Pinger interface.
func redisPinger(client *redis.Client) redis.Pinger {
	if client == nil {
		return nil
	}
	return client
}
