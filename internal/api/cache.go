// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

package api

import (
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/kweston/gathermap/internal/config"
	"github.com/kweston/gathermap/internal/metrics"
	"github.com/kweston/gathermap/internal/models"
)

// markerCache holds recent marker responses keyed by canonical filter
// set. Entries expire after the configured TTL, so a marker page is at
// most that much behind the database. A nil cache is a valid no-op,
// used when caching is disabled.
type markerCache struct {
	lru *expirable.LRU[string, []models.HomeMarker]
}

func newMarkerCache(cfg config.CacheConfig) *markerCache {
	if !cfg.Enabled {
		return nil
	}
	return &markerCache{
		lru: expirable.NewLRU[string, []models.HomeMarker](cfg.Size, nil, cfg.TTL),
	}
}

func (c *markerCache) get(key string) ([]models.HomeMarker, bool) {
	if c == nil {
		return nil, false
	}
	markers, ok := c.lru.Get(key)
	if ok {
		metrics.CacheHits.Inc()
	} else {
		metrics.CacheMisses.Inc()
	}
	return markers, ok
}

func (c *markerCache) put(key string, markers []models.HomeMarker) {
	if c == nil {
		return
	}
	c.lru.Add(key, markers)
}
