// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/kweston/gathermap/internal/cohort"
	"github.com/kweston/gathermap/internal/database/query"
	"github.com/kweston/gathermap/internal/logging"
	"github.com/kweston/gathermap/internal/metrics"
	"github.com/kweston/gathermap/internal/models"
)

// ParticipantHomeMarkers runs the participant-home aggregation for the
// given filter set and returns one marker per matching venue, ordered by
// venue ID. The query runs under the store's query timeout unless the
// caller's context already carries an earlier deadline.
func (db *DB) ParticipantHomeMarkers(ctx context.Context, params query.HomeMarkersParams) ([]models.HomeMarker, error) {
	builder := query.NewHomeMarkersBuilder(params, cohortRange)
	variant := builder.Variant()

	sql, args, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("assemble marker query: %w", err)
	}

	if db.queryTimeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, db.queryTimeout)
			defer cancel()
		}
	}

	start := time.Now()
	markers, err := db.breaker.Execute(func() ([]models.HomeMarker, error) {
		return db.queryMarkers(ctx, sql, args)
	})
	metrics.RecordQuery(variant, time.Since(start), len(markers), err)
	if err != nil {
		logging.Ctx(ctx).Error().
			Err(err).
			Str("variant", variant).
			Msg("Marker query failed")
		return nil, fmt.Errorf("execute marker query: %w", err)
	}

	logging.Ctx(ctx).Debug().
		Str("variant", variant).
		Int("rows", len(markers)).
		Dur("duration", time.Since(start)).
		Msg("Marker query completed")

	return markers, nil
}

func (db *DB) queryMarkers(ctx context.Context, sql string, args []any) ([]models.HomeMarker, error) {
	rows, err := db.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	markers := []models.HomeMarker{}
	for rows.Next() {
		var m models.HomeMarker
		if err := rows.Scan(&m.VenueID, &m.Latitude, &m.Longitude, &m.ParticipantCount, &m.TotalCount); err != nil {
			return nil, fmt.Errorf("scan marker row: %w", err)
		}
		markers = append(markers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return markers, nil
}

// cohortRange adapts the cohort package to the converter signature the
// query builder expects.
func cohortRange(name string, reference time.Time) (query.DOBRange, bool) {
	r, ok := cohort.Range(name, reference)
	if !ok {
		return query.DOBRange{}, false
	}
	return query.DOBRange{Min: r.Min, Max: r.Max}, true
}
