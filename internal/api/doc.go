// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

/*
Package api provides the Gathermap HTTP surface using the Chi router.

Endpoints:

  - GET /api/v1/map/participant-homes: venue-level participant-home
    markers, filterable by venue, population, role, age cohort, date
    range, and bounding box
  - GET /healthz: liveness and database readiness
  - GET /metrics: Prometheus exposition

Requests are parsed into typed structs, validated with the validation
package, converted into query parameters, and served either from the
marker response cache or from the database store. All responses use the
models.APIResponse envelope.
*/
package api
