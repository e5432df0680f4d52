package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yucheng-ou/kaleido-coin/internal/adapter/http/handler"
	"github.com/yucheng-ou/kaleido-coin/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler *handler.AccountHandler
	LedgerHandler  *handler.LedgerHandler
	HealthHandler  *handler.HealthHandler
	Logging        *middleware.LoggingMiddleware
	Metrics        *middleware.MetricsMiddleware
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	}
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Wrap)
	}
	r.Use(middleware.Recovery)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Route("/{userID}", func(r chi.Router) {
				r.Get("/", cfg.AccountHandler.Get)
				r.Delete("/", cfg.AccountHandler.Delete)
				r.Get("/balance", cfg.AccountHandler.GetBalance)
				r.Get("/entries", cfg.AccountHandler.ListEntries)
				r.Get("/stats", cfg.AccountHandler.GetStats)
				r.Post("/deposit", cfg.LedgerHandler.Deposit)
				r.Post("/withdraw", cfg.LedgerHandler.Withdraw)
			})
		})

		// Business events
		r.Post("/rewards/invite", cfg.LedgerHandler.InviteReward)
		r.Post("/fees/location", cfg.LedgerHandler.LocationFee)
		r.Post("/fees/outfit", cfg.LedgerHandler.OutfitFee)

		// Entry lookup by business event
		r.Get("/entries/biz", cfg.LedgerHandler.GetEntryByBiz)
	})

	return r
}
