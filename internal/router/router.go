// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// WikiBase backend: the JSON API, the uploads file server, and (in
// production) the bundled front-end.
package router

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"wikibase/internal/handlers"
	"wikibase/internal/middleware"
)

// Options configures the router beyond its handler dependencies.
type Options struct {
	// UploadsDir is served under /uploads/.
	UploadsDir string

	// DistDir holds the bundled front-end; served only when ServeDist
	// is set.
	DistDir   string
	ServeDist bool
}

// New creates and returns the configured Chi router with all middleware
// and routes wired up. limiter guards the mutating endpoints; rec may
// record request metrics for every route.
func New(api *handlers.API, limiter *middleware.RateLimiter, rec middleware.StatusRecorder, metricsHandler http.Handler, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics(rec))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// Health check — no rate limiting.
	r.Get("/health", healthHandler)

	// Prometheus scrape endpoint.
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	// JSON API. Mutating routes share the rate limiter.
	r.Route("/api", func(r chi.Router) {
		r.Get("/get-data", api.GetData)

		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware)
			r.Post("/save-data", api.SaveData)
			r.Post("/upload", api.Upload)
		})
	})

	// Uploaded files are served straight from disk.
	uploadsFS := http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsDir)))
	r.Handle("/uploads/*", uploadsFS)

	// In production the bundled front-end is served from DistDir, with
	// index.html as the catch-all so client-side routing works.
	if opts.ServeDist {
		distFS := http.FileServer(http.Dir(opts.DistDir))
		index := filepath.Join(opts.DistDir, "index.html")

		r.NotFound(func(w http.ResponseWriter, req *http.Request) {
			path := filepath.Join(opts.DistDir, filepath.Clean("/"+req.URL.Path))
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				distFS.ServeHTTP(w, req)
				return
			}
			http.ServeFile(w, req, index)
		})
	}

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
