// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kweston/gathermap/internal/config"
	"github.com/kweston/gathermap/internal/database/query"
	"github.com/kweston/gathermap/internal/models"
)

// Accepted date layouts for start_date / end_date, in preference order.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// HomeMarkersRequest carries the parsed and validated filter dimensions
// of GET /api/v1/map/participant-homes. Identifier lists arrive as
// comma-separated query parameters; the bounding box as four edge
// parameters that must appear together.
type HomeMarkersRequest struct {
	VenueIDs      []string `validate:"omitempty,uuidlist"`
	PopulationIDs []string `validate:"omitempty,uuidlist"`
	RoleIDs       []string `validate:"omitempty,uuidlist"`
	AgeCohorts    []string `validate:"omitempty,cohortlist"`

	StartDate *time.Time
	EndDate   *time.Time

	Bounds *query.BoundingBox

	Limit  int `validate:"min=1"`
	Offset int `validate:"min=0"`
}

// parseHomeMarkersRequest extracts the request from query parameters and
// validates it. All errors come back as VALIDATION_ERROR API errors.
func parseHomeMarkersRequest(r *http.Request, cfg config.APIConfig) (*HomeMarkersRequest, *models.APIError) {
	req := &HomeMarkersRequest{
		VenueIDs:      getListParam(r, "venue_ids"),
		PopulationIDs: getListParam(r, "population_ids"),
		RoleIDs:       getListParam(r, "role_ids"),
		AgeCohorts:    getListParam(r, "age_cohorts"),
		Limit:         getIntParam(r, "limit", cfg.DefaultPageSize),
		Offset:        getIntParam(r, "offset", 0),
	}

	if req.Limit > cfg.MaxPageSize {
		return nil, validationErr(fmt.Sprintf("limit must be at most %d", cfg.MaxPageSize), "limit")
	}

	start, apiErr := parseDateParam(r, "start_date")
	if apiErr != nil {
		return nil, apiErr
	}
	end, apiErr := parseDateParam(r, "end_date")
	if apiErr != nil {
		return nil, apiErr
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, validationErr("start_date must not be after end_date", "start_date")
	}
	req.StartDate = start
	req.EndDate = end

	bounds, apiErr := parseBoundsParams(r)
	if apiErr != nil {
		return nil, apiErr
	}
	req.Bounds = bounds

	if apiErr := validateRequest(req); apiErr != nil {
		return nil, apiErr
	}
	return req, nil
}

// Params converts the request into query-builder parameters.
func (req *HomeMarkersRequest) Params() query.HomeMarkersParams {
	return query.HomeMarkersParams{
		VenueIDs:      req.VenueIDs,
		PopulationIDs: req.PopulationIDs,
		RoleIDs:       req.RoleIDs,
		AgeCohorts:    req.AgeCohorts,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Bounds:        req.Bounds,
		Limit:         req.Limit,
		Skip:          req.Offset,
	}
}

// cacheKey is a canonical representation of the filter set, used to key
// the marker response cache.
func (req *HomeMarkersRequest) cacheKey() string {
	var sb strings.Builder
	writeDim := func(name string, values []string) {
		sb.WriteString(name)
		sb.WriteString("=")
		sb.WriteString(strings.Join(values, ","))
		sb.WriteString(";")
	}
	writeDim("venues", req.VenueIDs)
	writeDim("populations", req.PopulationIDs)
	writeDim("roles", req.RoleIDs)
	writeDim("cohorts", req.AgeCohorts)
	if req.StartDate != nil {
		sb.WriteString("start=" + req.StartDate.Format(time.RFC3339) + ";")
	}
	if req.EndDate != nil {
		sb.WriteString("end=" + req.EndDate.Format(time.RFC3339) + ";")
	}
	if req.Bounds != nil {
		fmt.Fprintf(&sb, "bbox=%v,%v,%v,%v;",
			req.Bounds.MinLon, req.Bounds.MinLat, req.Bounds.MaxLon, req.Bounds.MaxLat)
	}
	fmt.Fprintf(&sb, "limit=%d;offset=%d", req.Limit, req.Offset)
	return sb.String()
}

func parseDateParam(r *http.Request, key string) (*time.Time, *models.APIError) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, validationErr(fmt.Sprintf("%s must be an RFC3339 timestamp or YYYY-MM-DD date", key), key)
}

// parseBoundsParams reads the west/south/east/north edge parameters. The
// four edges must be given together; west > east encodes a window that
// crosses the antimeridian and is accepted as-is.
func parseBoundsParams(r *http.Request) (*query.BoundingBox, *models.APIError) {
	keys := []string{"west", "south", "east", "north"}
	values := make(map[string]float64, len(keys))
	present := 0
	for _, key := range keys {
		raw := r.URL.Query().Get(key)
		if raw == "" {
			continue
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, validationErr(fmt.Sprintf("%s must be a decimal coordinate", key), key)
		}
		values[key] = f
		present++
	}

	if present == 0 {
		return nil, nil
	}
	if present != len(keys) {
		return nil, validationErr("bounding box requires all of west, south, east, north", "bounds")
	}

	bounds := &query.BoundingBox{
		MinLat: values["south"],
		MaxLat: values["north"],
		MinLon: values["west"],
		MaxLon: values["east"],
	}
	if err := bounds.Validate(); err != nil {
		return nil, validationErr(err.Error(), "bounds")
	}
	return bounds, nil
}

func validationErr(message, field string) *models.APIError {
	return &models.APIError{
		Code:    "VALIDATION_ERROR",
		Message: message,
		Details: map[string]interface{}{"field": field},
	}
}
