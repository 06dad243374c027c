// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kweston/gathermap/internal/config"
	"github.com/kweston/gathermap/internal/middleware"
)

// NewRouter wires the Chi router: request identification, panic
// recovery, CORS, per-IP rate limiting on the API routes, Prometheus
// instrumentation, and the endpoint handlers.
func NewRouter(handler *Handler, cfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitReqs > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimitReqs, cfg.RateLimitWindow))
		}
		r.Use(middleware.PrometheusMetrics)

		r.Get("/map/participant-homes", handler.HomeMarkers)
	})

	return r
}
