// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

/*
Package models defines data structures shared across the Gathermap service.

This package contains the database row models and the API request/response
envelope types. It is the single source of truth for data structure
definitions and carries no behavior beyond trivial accessors.

Key Components:

  - HomeMarker: One venue-level aggregation row from the participant-home query
  - APIResponse: Standardized API response wrapper
  - APIError: Structured error details with machine-readable codes
  - PaginationInfo: Offset-based pagination metadata
*/
package models
