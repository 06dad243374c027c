// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

// Package metrics provides Prometheus instrumentation for Gathermap:
// marker query performance, API endpoint latency and throughput, and
// response cache efficiency.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Marker query metrics

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gathermap_query_duration_seconds",
			Help:    "Duration of participant-home marker queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"variant"},
	)

	QueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gathermap_query_errors_total",
			Help: "Total number of failed participant-home marker queries",
		},
		[]string{"variant"},
	)

	QueryRows = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gathermap_query_rows",
			Help:    "Number of marker rows returned per query",
			Buckets: []float64{0, 10, 50, 100, 250, 500, 1000},
		},
	)

	// API endpoint metrics

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gathermap_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gathermap_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gathermap_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Marker response cache metrics

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gathermap_marker_cache_hits_total",
			Help: "Total number of marker response cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gathermap_marker_cache_misses_total",
			Help: "Total number of marker response cache misses",
		},
	)

	// Circuit breaker state: 0 closed, 1 half-open, 2 open.
	BreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gathermap_query_breaker_state",
			Help: "Circuit breaker state for marker query execution",
		},
	)
)

// RecordQuery records the outcome of one marker query.
func RecordQuery(variant string, duration time.Duration, rows int, err error) {
	if err != nil {
		QueryErrors.WithLabelValues(variant).Inc()
		return
	}
	QueryDuration.WithLabelValues(variant).Observe(duration.Seconds())
	QueryRows.Observe(float64(rows))
}

// RecordAPIRequest records metrics for one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
