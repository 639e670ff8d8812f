package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/seeacid/stardeadIA/internal/service"
	"github.com/seeacid/stardeadIA/pkg/health"
	"github.com/seeacid/stardeadIA/pkg/middleware"
)

// RouterConfig bundles the dependencies and knobs for the HTTP router.
type RouterConfig struct {
	Products       *service.ProductService
	Cart           *service.CartService
	Checkout       *service.CheckoutService
	HealthHandler  *health.Handler
	Logger         *slog.Logger
	RateLimitRPS   int
	RateLimitBurst int
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(CORS)
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(cfg.Logger))
	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.Logger))
	}

	// Health check endpoints
	r.Get("/health/live", cfg.HealthHandler.LivenessHandler())
	r.Get("/health/ready", cfg.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	productHandler := NewProductHandler(cfg.Products, cfg.Logger)
	cartHandler := NewCartHandler(cfg.Cart, cfg.Logger)
	checkoutHandler := NewCheckoutHandler(cfg.Checkout, cfg.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Get("/facets", productHandler.GetFacets)
			r.Get("/featured", productHandler.GetFeatured)
			r.Get("/new", productHandler.GetNewArrivals)
			r.Get("/{slug}", productHandler.GetProduct)
			r.Get("/{slug}/related", productHandler.GetRelated)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Use(CartIDFromHeader)

			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)

			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productId}/{sku}", cartHandler.UpdateQuantity)
			r.Delete("/items/{productId}/{sku}", cartHandler.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/shipping-options", checkoutHandler.GetShippingOptions)

			r.Group(func(r chi.Router) {
				r.Use(ContentTypeJSON)
				r.Use(CartIDFromHeader)
				r.Post("/", checkoutHandler.PlaceOrder)
			})
		})
	})

	return r
}
