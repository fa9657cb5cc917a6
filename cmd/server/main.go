package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/emiliskiskis/mafia-bot/internal/api"
	"github.com/emiliskiskis/mafia-bot/internal/command"
	"github.com/emiliskiskis/mafia-bot/internal/config"
	"github.com/emiliskiskis/mafia-bot/internal/confirm"
	"github.com/emiliskiskis/mafia-bot/internal/game"
	"github.com/emiliskiskis/mafia-bot/internal/gateway"
	"github.com/emiliskiskis/mafia-bot/internal/relay"
	"github.com/emiliskiskis/mafia-bot/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	gameCfg := game.Config{
		MaxPlayers:   cfg.MaxPlayers,
		Distribution: cfg.Distribution,
		Catalog:      game.DefaultCatalog,
	}
	if err := gameCfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid game configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize session store: Postgres when configured, SQLite otherwise
	var st store.SessionStore
	if cfg.DatabaseURL != "" {
		pgStore, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("postgres connection failed")
		}
		st = pgStore
		logger.Info().Msg("connected to PostgreSQL")
	} else {
		sqliteStore, err := store.NewSQLiteStore(ctx, cfg.SQLitePath)
		if err != nil {
			logger.Fatal().Err(err).Msg("sqlite open failed")
		}
		st = sqliteStore
		logger.Info().Str("path", cfg.SQLitePath).Msg("opened SQLite store")
	}
	defer st.Close()

	// Initialize Redis store (optional; enables command rate limiting)
	var redisStore *store.RedisStore
	if cfg.RedisURL != "" {
		var err error
		redisStore, err = store.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		defer redisStore.Close()
		logger.Info().Msg("connected to Redis")
	}

	// Dispatcher first, then the gateway connection it handles, then the
	// chat-side collaborators that need the live connection.
	dispatcher := command.New(cfg, gameCfg, st, redisStore, logger)

	client, err := gateway.Dial(ctx, cfg.GatewayURL, cfg.BotToken, dispatcher, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("gateway connection failed")
	}
	defer client.Close()
	logger.Info().Str("url", cfg.GatewayURL).Msg("connected to chat gateway")

	gate := confirm.NewGate(client, logger)
	relayService := relay.New(client, logger)
	dispatcher.Bind(client, gate, relayService)

	// Admin HTTP server
	router := api.NewRouter(cfg, logger, st, redisStore, gate, relayService)
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Msg("starting admin server")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("admin server failed to start")
		}
	}()

	// Gateway read loop runs until the connection drops or a signal arrives
	runErr := make(chan error, 1)
	go func() { runErr <- client.Run(ctx) }()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down...")
	case err := <-runErr:
		logger.Error().Err(err).Msg("gateway connection lost")
	}

	// Graceful shutdown with 30 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}
