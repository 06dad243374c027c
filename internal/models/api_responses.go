// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

package models

import (
	"time"
)

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints. It provides a consistent structure for both successful and
// error responses, with metadata for observability and caching.
//
// Status is "success" (see Data) or "error" (see Error).
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"markers": [...], "pagination": {...}},
//	  "metadata": {
//	    "timestamp": "2026-08-23T12:00:00Z",
//	    "query_time_ms": 45,
//	    "cached": false
//	  }
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability. Cached responses
// report QueryTimeMS of 0 with Cached set; fresh queries report the actual
// database execution time.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError carries structured error details. Code is machine-readable
// (VALIDATION_ERROR, DATABASE_ERROR, NOT_FOUND, RATE_LIMIT_EXCEEDED);
// Message is human-readable; Details adds field-level context.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// PaginationInfo is offset-based pagination metadata. TotalCount is the
// number of venues matching the filter set, independent of the page, and
// comes from the query itself rather than a second COUNT statement.
type PaginationInfo struct {
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	TotalCount int64 `json:"total_count"`
	HasMore    bool  `json:"has_more"`
}
