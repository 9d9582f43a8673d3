// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

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

	_ "github.com/tomtom215/songbird/docs" // Import generated swagger docs
	"github.com/tomtom215/songbird/internal/api"
	"github.com/tomtom215/songbird/internal/auth"
	"github.com/tomtom215/songbird/internal/config"
	"github.com/tomtom215/songbird/internal/database"
	"github.com/tomtom215/songbird/internal/eventprocessor"
	"github.com/tomtom215/songbird/internal/logging"
	"github.com/tomtom215/songbird/internal/supervisor"
	"github.com/tomtom215/songbird/internal/supervisor/services"
)

const (
	httpShutdownTimeout = 10 * time.Second
	syncShutdownTimeout = 10 * time.Second
	seedTimeout         = 5 * time.Minute
)

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", api.Version).
		Str("db_path", cfg.Database.Path).
		Str("auth_mode", cfg.Security.AuthMode).
		Str("strategy", cfg.Search.Strategy).
		Int("threshold", cfg.Search.Threshold).
		Bool("nats_enabled", cfg.NATS.Enabled).
		Msg("Starting Songbird")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin; set CORS_ORIGINS for production")
	}

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

	if cfg.Database.SeedPath != "" {
		if err := seedCatalog(db, cfg.Database.SeedPath); err != nil {
			// Close database before fatal exit; Fatal skips deferred calls
			if closeErr := db.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing database")
			}
			logging.Fatal().Err(err).Str("path", cfg.Database.SeedPath).Msg("Failed to seed catalog")
		}
	}

	resultCache := initResultCache(&cfg.Cache)

	searchService, err := initSearch(&cfg.Search, db)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize search")
	}
	logging.Info().
		Str("strategy", searchService.Strategy().Name()).
		Bool("breaker", cfg.Search.Breaker.Enabled).
		Bool("cache", resultCache != nil).
		Msg("Search service initialized")

	authMiddleware, err := auth.NewMiddlewareFromConfig(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize authentication")
	}

	handler := api.NewHandler(searchService, db, resultCache, cfg)

	// A nil *cache.Cache inside the interface would not compare equal to nil
	var invalidator eventprocessor.Invalidator
	if resultCache != nil {
		invalidator = resultCache
	}
	syncer, err := initCatalogSync(cfg, db, invalidator)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize catalog sync")
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if syncer != nil {
		handler.SetCatalogSync(syncer)
		tree.AddMessagingService(services.NewCatalogSyncService(syncer, syncShutdownTimeout))
		logging.Info().Msg("Catalog sync added to supervisor tree")
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           api.NewRouter(handler, authMiddleware, cfg).Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, httpShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	// The consumer is stopped; the broker it read from can go now
	closeCtx, closeCancel := context.WithTimeout(context.Background(), syncShutdownTimeout)
	syncer.Close(closeCtx)
	closeCancel()

	logging.Info().Msg("Application stopped gracefully")
}

// seedCatalog loads the startup snapshot into the catalog store.
func seedCatalog(db *database.DB, path string) error {
	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	result, err := db.SeedFromFile(ctx, path)
	if err != nil {
		return err
	}
	logging.Info().
		Str("path", path).
		Int64("songs", result.Applied.Songs).
		Int64("albums", result.Applied.Albums).
		Int64("artists", result.Applied.Artists).
		Int("skipped", result.Skipped).
		Msg("Catalog seeded")
	return nil
}
