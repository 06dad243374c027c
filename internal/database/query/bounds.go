// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

package query

import "fmt"

// BoundingBox is a geographic filter window in decimal degrees. A box
// whose west edge is numerically greater than its east edge crosses the
// antimeridian and matches the two longitude bands on either side of it.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// CrossesAntimeridian reports whether the box wraps across the 180th
// meridian, e.g. a window over the Pacific from 170°E to -170°E.
func (bb BoundingBox) CrossesAntimeridian() bool {
	return bb.MinLon > bb.MaxLon
}

// Validate checks that coordinates are within geographic bounds. It
// deliberately does not reject MinLon > MaxLon: that ordering encodes an
// antimeridian-crossing window.
func (bb BoundingBox) Validate() error {
	if bb.MinLat < -90 || bb.MinLat > 90 || bb.MaxLat < -90 || bb.MaxLat > 90 {
		return fmt.Errorf("latitude out of range [-90, 90]: min=%v max=%v", bb.MinLat, bb.MaxLat)
	}
	if bb.MinLat > bb.MaxLat {
		return fmt.Errorf("min latitude %v exceeds max latitude %v", bb.MinLat, bb.MaxLat)
	}
	if bb.MinLon < -180 || bb.MinLon > 180 || bb.MaxLon < -180 || bb.MaxLon > 180 {
		return fmt.Errorf("longitude out of range [-180, 180]: min=%v max=%v", bb.MinLon, bb.MaxLon)
	}
	return nil
}

// conditions renders the box as SQL predicates against the given latitude
// and longitude column expressions, binding all four edges as positional
// parameters. For an antimeridian-crossing box the longitude predicate is
// a single disjunction; otherwise latitude and longitude contribute four
// independent conjuncts.
func (bb BoundingBox) conditions(latCol, lonCol string, binder *Binder) []string {
	conds := []string{
		fmt.Sprintf("%s >= %s", latCol, binder.Bind(bb.MinLat)),
		fmt.Sprintf("%s <= %s", latCol, binder.Bind(bb.MaxLat)),
	}
	if bb.CrossesAntimeridian() {
		conds = append(conds, fmt.Sprintf("(%s >= %s OR %s <= %s)",
			lonCol, binder.Bind(bb.MinLon), lonCol, binder.Bind(bb.MaxLon)))
		return conds
	}
	conds = append(conds,
		fmt.Sprintf("%s >= %s", lonCol, binder.Bind(bb.MinLon)),
		fmt.Sprintf("%s <= %s", lonCol, binder.Bind(bb.MaxLon)),
	)
	return conds
}
