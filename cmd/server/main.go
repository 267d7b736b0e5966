// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mfedorov/moodify/internal/api"
	"github.com/mfedorov/moodify/internal/auth"
	"github.com/mfedorov/moodify/internal/config"
	"github.com/mfedorov/moodify/internal/database"
	"github.com/mfedorov/moodify/internal/logging"
	"github.com/mfedorov/moodify/internal/models"
	"github.com/mfedorov/moodify/internal/spotify"
	"github.com/mfedorov/moodify/internal/supervisor"
	"github.com/mfedorov/moodify/internal/supervisor/services"
)

// version is set at build time via -ldflags "-X main.version=v1.2.3".
var version = "dev"

// musicProvider is the provider surface main wires up: recommendations
// for the API handler plus a startup reachability probe. Satisfied by
// both spotify.CircuitBreakerClient and spotify.StubProvider.
type musicProvider interface {
	GetRecommendationsByEmotion(ctx context.Context, emotion string, limit int) ([]models.Track, error)
	Ping(ctx context.Context) error
}

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Str("version", version).Msg("Starting Moodify with supervisor tree")
	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("environment", cfg.Server.Environment).
		Bool("spotify_enabled", cfg.Spotify.Enabled).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	// Spotify is the recommendation source in production; the stub
	// serves development and CI, where no credentials exist. A failed
	// ping is not fatal since the circuit breaker handles outages once
	// traffic arrives.
	var provider musicProvider
	if cfg.Spotify.Enabled {
		provider = spotify.NewCircuitBreakerClient(&cfg.Spotify)
		if err := provider.Ping(context.Background()); err != nil {
			logging.Warn().Err(err).Msg("Failed to reach Spotify (will retry on demand)")
		} else {
			logging.Info().Msg("Connected to Spotify successfully")
		}
	} else {
		provider = spotify.NewStubProvider()
		logging.Info().Msg("Spotify integration disabled, serving the built-in catalog")
	}

	jwtManager, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}

	sessions := auth.NewSQLSessionStore(db.Conn())

	// Session cookies take precedence over Bearer tokens; the chain
	// tries resolvers in registration order.
	chain := auth.NewResolverChain(
		auth.NewSessionResolver(sessions, db, cfg.Auth.SessionCookie),
		auth.NewBearerResolver(jwtManager),
	)

	authHandlers := auth.NewAuthHandlers(db, sessions, jwtManager, auth.AuthHandlersConfig{
		CookieName:    cfg.Auth.SessionCookie,
		SecureCookies: cfg.Auth.SecureCookies,
		SessionTTL:    cfg.Auth.SessionTTL,
		BcryptCost:    cfg.Auth.BcryptCost,
	})

	if !cfg.Auth.SecureCookies && cfg.IsProduction() {
		logging.Warn().Msg("Secure cookies are DISABLED in a production environment")
		logging.Warn().Msg("Session cookies will be sent over plain HTTP. Set SECURE_COOKIES=true behind TLS.")
	}

	handler := api.NewHandler(db, provider, cfg, version)
	router := api.NewRouter(handler, authHandlers, chain,
		api.NewChiMiddlewareFromOrigins(cfg.Server.CORSOrigins))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	tree.AddMaintenanceService(services.NewSessionJanitorService(sessions, cfg.Auth.CleanupInterval))
	logging.Info().Dur("interval", cfg.Auth.CleanupInterval).Msg("Session janitor service added")

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
