// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

// Package query assembles the participant-home aggregation statement.
//
// The statement is a single PostgreSQL query built from optional CTE
// fragments: venue and population allow-lists become inline VALUES CTEs,
// the most recent address per participant is selected with a window
// function, and an optional temporal CTE restricts addresses to those
// active during a requested date range. Scalar values are bound as
// positional parameters; identifier allow-lists are inlined as validated
// UUID literals so large lists cannot exhaust the positional-parameter
// ceiling.
//
// Builders are single-use. Construct one per statement, call Build once,
// and hand the returned SQL and argument slice to the executor.
package query
