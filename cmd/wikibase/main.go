// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the WikiBase backend server.
// It loads configuration, connects to services, sets up routing, and
// starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"wikibase/internal/cache"
	"wikibase/internal/config"
	"wikibase/internal/database"
	"wikibase/internal/handlers"
	"wikibase/internal/metrics"
	"wikibase/internal/middleware"
	"wikibase/internal/router"
	"wikibase/internal/store"
)

func main() {
	// Structured logger — text output, debug level in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"data_file", cfg.DataFile,
		"uploads_dir", cfg.UploadsDir,
	)

	// Open the SQLite database (upload metadata + snapshot audit log).
	db, err := database.Connect(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey if configured. The server works without it — the
	// artifact cache is simply disabled.
	var artifacts *cache.ArtifactCache
	if cfg.ValkeyEnabled() {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyAddr(), cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		artifacts = cache.NewArtifactCache(valkeyClient, cache.DefaultTTL)
	} else {
		slog.Warn("valkey not configured — artifact cache disabled")
	}

	// Initialize data stores.
	mediaStore := store.NewMediaStore(db)
	snapshotLog := store.NewSnapshotLogStore(db)

	// Prometheus metrics.
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Create handler group with its dependencies.
	api := handlers.NewAPI(cfg.UploadsDir, cfg.DataFile, cfg.BaseURL(), mediaStore, snapshotLog, artifacts, collector)

	// Per-IP rate limiter for the mutating endpoints.
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerSec, cfg.RateLimitBurst)
	defer limiter.Stop()

	// Set up the Chi router with all middleware and routes.
	r := router.New(api, limiter, collector, metrics.Handler(registry), router.Options{
		UploadsDir: cfg.UploadsDir,
		DistDir:    cfg.DistDir,
		ServeDist:  cfg.IsProduction(),
	})

	// Create the HTTP server with sensible timeouts. WriteTimeout must
	// accommodate large video uploads on slow links.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
