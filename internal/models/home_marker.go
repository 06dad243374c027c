// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

package models

// HomeMarker is one venue-level row of the participant-home aggregation:
// a venue's coordinates with the number of distinct participants whose
// current (or period-active) address points at it. TotalCount repeats the
// total number of matching venues on every row so a single page carries
// enough information to paginate.
type HomeMarker struct {
	VenueID          string  `json:"venue_id"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	ParticipantCount int64   `json:"participant_count"`
	TotalCount       int64   `json:"total_count"`
}

// HomeMarkersResponse is the data payload of the participant-homes
// endpoint: the page of markers plus pagination metadata.
type HomeMarkersResponse struct {
	Markers    []HomeMarker   `json:"markers"`
	Pagination PaginationInfo `json:"pagination"`
}
