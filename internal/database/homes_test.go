// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"

	"github.com/kweston/gathermap/internal/database/query"
)

const (
	venueA = "11111111-1111-1111-1111-111111111111"
	venueB = "22222222-2222-2222-2222-222222222222"
)

func newMockStore(t *testing.T) (pgxmock.PgxPoolIface, *DB) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock, NewWithPool(mock, 5*time.Second)
}

func TestParticipantHomeMarkers(t *testing.T) {
	mock, db := newMockStore(t)

	rows := pgxmock.NewRows([]string{"venue_id", "latitude", "longitude", "participant_count", "total_count"}).
		AddRow(venueA, 51.5074, -0.1278, int64(12), int64(2)).
		AddRow(venueB, 48.8566, 2.3522, int64(7), int64(2))

	mock.ExpectQuery("WITH current_addresses AS").
		WithArgs(100, 0).
		WillReturnRows(rows)

	markers, err := db.ParticipantHomeMarkers(context.Background(), query.HomeMarkersParams{Limit: 100})
	if err != nil {
		t.Fatalf("ParticipantHomeMarkers: %v", err)
	}
	if len(markers) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(markers))
	}
	if markers[0].VenueID != venueA || markers[0].ParticipantCount != 12 {
		t.Errorf("first marker = %+v", markers[0])
	}
	if markers[1].TotalCount != 2 {
		t.Errorf("total count should repeat on every row, got %+v", markers[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestParticipantHomeMarkersEmpty(t *testing.T) {
	mock, db := newMockStore(t)

	mock.ExpectQuery("WITH current_addresses AS").
		WithArgs(50, 10).
		WillReturnRows(pgxmock.NewRows([]string{"venue_id", "latitude", "longitude", "participant_count", "total_count"}))

	markers, err := db.ParticipantHomeMarkers(context.Background(), query.HomeMarkersParams{Limit: 50, Skip: 10})
	if err != nil {
		t.Fatalf("ParticipantHomeMarkers: %v", err)
	}
	if markers == nil || len(markers) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", markers)
	}
}

func TestParticipantHomeMarkersVenueFilter(t *testing.T) {
	mock, db := newMockStore(t)

	rows := pgxmock.NewRows([]string{"venue_id", "latitude", "longitude", "participant_count", "total_count"}).
		AddRow(venueA, 51.5074, -0.1278, int64(3), int64(1))

	// The venue allow-list is inlined, so only pagination is bound.
	mock.ExpectQuery("WITH filtered_venues AS").
		WithArgs(25, 0).
		WillReturnRows(rows)

	markers, err := db.ParticipantHomeMarkers(context.Background(), query.HomeMarkersParams{
		VenueIDs: []string{venueA},
		Limit:    25,
	})
	if err != nil {
		t.Fatalf("ParticipantHomeMarkers: %v", err)
	}
	if len(markers) != 1 || markers[0].VenueID != venueA {
		t.Errorf("markers = %+v", markers)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestParticipantHomeMarkersQueryError(t *testing.T) {
	mock, db := newMockStore(t)

	mock.ExpectQuery("WITH current_addresses AS").
		WithArgs(100, 0).
		WillReturnError(errors.New("connection reset"))

	_, err := db.ParticipantHomeMarkers(context.Background(), query.HomeMarkersParams{Limit: 100})
	if err == nil {
		t.Fatal("expected query error to propagate")
	}
}

func TestParticipantHomeMarkersBuildError(t *testing.T) {
	_, db := newMockStore(t)

	// A malformed identifier must fail assembly before any SQL reaches
	// the pool; the mock has no expectations to satisfy.
	_, err := db.ParticipantHomeMarkers(context.Background(), query.HomeMarkersParams{
		VenueIDs: []string{"not-a-uuid"},
		Limit:    100,
	})
	if err == nil {
		t.Fatal("expected assembly error for malformed identifier")
	}
}

func TestCohortRangeAdapter(t *testing.T) {
	ref := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	r, ok := cohortRange("Child", ref)
	if !ok || r.Min == nil || r.Max == nil {
		t.Fatalf("Child should convert to a bounded range, got %+v (ok=%v)", r, ok)
	}
	if _, ok := cohortRange("Unknown", ref); ok {
		t.Error("Unknown must not convert; the builder handles it directly")
	}
}
