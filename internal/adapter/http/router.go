package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/iho/ubiledger/internal/adapter/http/handler"
	"github.com/iho/ubiledger/internal/adapter/http/middleware"
	"github.com/iho/ubiledger/internal/infrastructure/auth"
	"github.com/iho/ubiledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TokenHandler     *handler.TokenHandler
	ClaimHandler     *handler.ClaimHandler
	ShareHandler     *handler.ShareHandler
	TransferHandler  *handler.TransferHandler
	SupplyHandler    *handler.SupplyHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	JWTManager       *auth.JWTManager
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(log.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health and metrics endpoints stay outside auth
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
		}

		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Tokens
		r.Route("/tokens", func(r chi.Router) {
			r.Post("/", cfg.TokenHandler.Create)
			r.Get("/{symbol}", cfg.TokenHandler.GetSupply)
			r.Get("/{symbol}/conservation", cfg.SupplyHandler.CheckConservation)
			r.Post("/{symbol}/issue", cfg.TokenHandler.Issue)
			r.Post("/{symbol}/retire", cfg.TokenHandler.Retire)
			r.Post("/{symbol}/burn", cfg.TokenHandler.Burn)
			r.Post("/{symbol}/transfers", cfg.TransferHandler.Create)
		})

		// Balances
		r.Route("/balances", func(r chi.Router) {
			r.Post("/", cfg.ClaimHandler.Open)
			r.Get("/{account}/{symbol}", cfg.TokenHandler.GetBalance)
			r.Delete("/{account}/{symbol}", cfg.ClaimHandler.Close)
		})

		// UBI claims
		r.Post("/claims", cfg.ClaimHandler.Claim)

		// Share registry
		r.Route("/shares/{account}", func(r chi.Router) {
			r.Get("/", cfg.ShareHandler.List)
			r.Put("/", cfg.ShareHandler.Set)
			r.Delete("/", cfg.ShareHandler.Reset)
		})
	})

	return r
}
