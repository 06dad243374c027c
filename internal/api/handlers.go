// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/kweston/gathermap/internal/config"
	"github.com/kweston/gathermap/internal/database/query"
	"github.com/kweston/gathermap/internal/logging"
	"github.com/kweston/gathermap/internal/models"
)

// Store is the database surface the handlers need. The database package
// implements it; tests substitute stubs.
type Store interface {
	ParticipantHomeMarkers(ctx context.Context, params query.HomeMarkersParams) ([]models.HomeMarker, error)
	Ping(ctx context.Context) error
}

// Handler serves the Gathermap API endpoints.
type Handler struct {
	store Store
	cache *markerCache
	cfg   config.APIConfig
}

// NewHandler builds the API handler set over a store.
func NewHandler(store Store, apiCfg config.APIConfig, cacheCfg config.CacheConfig) *Handler {
	return &Handler{
		store: store,
		cache: newMarkerCache(cacheCfg),
		cfg:   apiCfg,
	}
}

// HomeMarkers handles GET /api/v1/map/participant-homes.
func (h *Handler) HomeMarkers(w http.ResponseWriter, r *http.Request) {
	req, apiErr := parseHomeMarkersRequest(r, h.cfg)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	key := req.cacheKey()
	if markers, ok := h.cache.get(key); ok {
		h.respondMarkers(w, req, markers, 0, true)
		return
	}

	start := time.Now()
	markers, err := h.store.ParticipantHomeMarkers(r.Context(), req.Params())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR",
			"Failed to query participant homes", err)
		return
	}
	queryTime := time.Since(start)

	h.cache.put(key, markers)

	logging.Ctx(r.Context()).Debug().
		Int("markers", len(markers)).
		Dur("query_time", queryTime).
		Msg("Served participant-home markers")

	h.respondMarkers(w, req, markers, queryTime, false)
}

func (h *Handler) respondMarkers(w http.ResponseWriter, req *HomeMarkersRequest, markers []models.HomeMarker, queryTime time.Duration, cached bool) {
	var total int64
	if len(markers) > 0 {
		total = markers[0].TotalCount
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HomeMarkersResponse{
			Markers: markers,
			Pagination: models.PaginationInfo{
				Limit:      req.Limit,
				Offset:     req.Offset,
				TotalCount: total,
				HasMore:    int64(req.Offset+len(markers)) < total,
			},
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: queryTime.Milliseconds(),
			Cached:      cached,
		},
	})
}

// Health handles GET /healthz: liveness plus a bounded database ping.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	httpStatus := http.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Health check database ping failed")
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	respondJSON(w, httpStatus, &models.APIResponse{
		Status: "success",
		Data:   map[string]string{"status": status},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// respondAPIError sends an error response preserving structured details.
func respondAPIError(w http.ResponseWriter, status int, apiErr *models.APIError) {
	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
		Error: apiErr,
	})
}
