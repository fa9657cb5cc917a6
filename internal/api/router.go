// Package api wires the admin HTTP surface: health and metrics in the open,
// operational endpoints behind a bearer token.
package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/emiliskiskis/mafia-bot/internal/api/middleware"
	"github.com/emiliskiskis/mafia-bot/internal/config"
	"github.com/emiliskiskis/mafia-bot/internal/confirm"
	"github.com/emiliskiskis/mafia-bot/internal/handlers"
	"github.com/emiliskiskis/mafia-bot/internal/relay"
	"github.com/emiliskiskis/mafia-bot/internal/store"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(cfg *config.Config, logger zerolog.Logger, st store.SessionStore, redisStore *store.RedisStore, gate *confirm.Gate, rl *relay.Service) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(8 * 1024))

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// CORS - dashboards only read, never mutate
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	h := handlers.NewHandler(st, redisStore, gate, rl)

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// Public routes (no auth required)
	r.Get("/health", h.Health)

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminAuth(cfg.AdminTokenHash))

		r.Get("/v1/stats", h.Stats)
		r.Get("/v1/guilds/{guildID}/groups/{groupID}/roster", h.Roster)
	})

	return r
}
