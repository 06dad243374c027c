// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/kweston/gathermap/internal/config"
	"github.com/kweston/gathermap/internal/logging"
	"github.com/kweston/gathermap/internal/metrics"
	"github.com/kweston/gathermap/internal/models"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock implements
// it, so store methods are testable without a live PostgreSQL.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
	Close()
}

// DB is the Gathermap store. Marker queries run through a circuit
// breaker so a struggling database sheds load instead of accumulating
// timed-out statements.
type DB struct {
	pool         Pool
	breaker      *gobreaker.CircuitBreaker[[]models.HomeMarker]
	queryTimeout time.Duration
}

// New connects to PostgreSQL using cfg and verifies the connection with
// a ping bounded by the configured connect timeout.
func New(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logging.Info().
		Int32("max_conns", poolCfg.MaxConns).
		Int32("min_conns", poolCfg.MinConns).
		Msg("Database connection established")

	return NewWithPool(pool, cfg.QueryTimeout), nil
}

// NewWithPool builds a store over an existing pool. Tests inject a
// pgxmock pool here.
func NewWithPool(pool Pool, queryTimeout time.Duration) *DB {
	return &DB{
		pool:         pool,
		breaker:      newQueryBreaker(),
		queryTimeout: queryTimeout,
	}
}

// newQueryBreaker configures the marker-query circuit breaker: opens at
// a 60% failure rate over at least 10 requests, waits 30 seconds before
// probing with up to 3 half-open requests.
func newQueryBreaker() *gobreaker.CircuitBreaker[[]models.HomeMarker] {
	metrics.BreakerState.Set(0) // 0 = closed

	return gobreaker.NewCircuitBreaker[[]models.HomeMarker](gobreaker.Settings{
		Name:        "marker-query",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			if failureRatio >= 0.6 {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("Opening marker-query circuit")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state transition")
			metrics.BreakerState.Set(breakerStateValue(to))
		},
	})
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}

// Ping verifies database connectivity, for health checks.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Close releases the connection pool.
func (db *DB) Close() {
	db.pool.Close()
}
