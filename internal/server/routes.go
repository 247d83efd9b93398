package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mamae10/webhook-relay/internal/domain"
	"github.com/mamae10/webhook-relay/internal/handler"
	appMiddleware "github.com/mamae10/webhook-relay/internal/middleware"
)

// RootBanner is served on GET /.
const RootBanner = "webhook relay online"

// Deps holds the dependencies needed to build the router.
type Deps struct {
	Events         handler.EventDispatcher
	WebhookSecrets map[domain.Provider]string
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	Version        string
}

// NewRouter wires middleware and routes. Background work started here stops
// when ctx is done.
func NewRouter(ctx context.Context, deps Deps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(appMiddleware.Recovery)
	r.Use(appMiddleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", handler.SignatureHeader, appMiddleware.RequestIDHeader},
		ExposedHeaders: []string{appMiddleware.RequestIDHeader},
		MaxAge:         300,
	}))

	healthHandler := handler.NewHealthHandler(deps.Version, deps.WebhookSecrets)
	productsHandler := handler.NewProductsHandler()

	// Ops routes are rate limited per IP. Webhooks are not: providers deliver
	// from a small pool of addresses and retry on 429.
	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.NewRateLimiter(ctx, deps.RateLimitRPS, deps.RateLimitBurst).Middleware())

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Write([]byte(RootBanner))
		})
		r.Get("/health", healthHandler.Check)
		r.Get("/api/products", productsHandler.List)
		r.Handle("/metrics", promhttp.Handler())
	})

	for _, p := range domain.Providers() {
		r.Method(http.MethodPost, "/webhooks/"+string(p),
			handler.NewWebhookHandler(p, deps.Events, deps.WebhookSecrets[p]))
	}

	return r
}
