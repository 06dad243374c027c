// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

/*
Package database provides PostgreSQL access for Gathermap.

The DB type wraps a pgx connection pool behind a small Pool interface so
store methods can be tested against pgxmock without a live server. Query
execution goes through a circuit breaker: repeated failures open the
circuit and shed load from a struggling database instead of piling up
timed-out queries.

Statement assembly lives in the query subpackage; this package executes
the assembled statements, scans rows into model structs, and records
per-variant query metrics.
*/
package database
