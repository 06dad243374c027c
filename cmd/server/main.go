// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

// Package main is the entry point for the Gathermap server.
//
// Gathermap aggregates participant home locations onto venue-level map
// markers. The server initializes components in the following order:
//
//  1. Configuration: layered defaults, YAML file, environment (Koanf v2)
//  2. Logging: zerolog global logger per configuration
//  3. Database: pgx connection pool to PostgreSQL
//  4. API: Chi router with validation, caching, and Prometheus metrics
//  5. Supervisor: suture tree running the HTTP server
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting connections, drains in-flight requests within the configured
// shutdown timeout, and closes the database pool.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kweston/gathermap/internal/api"
	"github.com/kweston/gathermap/internal/config"
	"github.com/kweston/gathermap/internal/database"
	"github.com/kweston/gathermap/internal/logging"
	"github.com/kweston/gathermap/internal/supervisor"
)

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
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Msg("Starting Gathermap")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()
	logging.Info().Msg("Database initialized successfully")

	handler := api.NewHandler(db, cfg.API, cfg.Cache)
	router := api.NewRouter(handler, cfg.Server)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)
	tree.AddAPIService(supervisor.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// Shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain the error channel until the supervisor has fully stopped.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
