// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package tides

import (
	"sort"

	"github.com/tomtom215/sailtide/internal/geo"
)

const (
	// DefaultMaxDistanceKm is the search radius used when none is configured.
	DefaultMaxDistanceKm = 2000.0

	// DefaultNearestLimit is the result cap used when none is configured.
	DefaultNearestLimit = 10
)

// NearbyStation is one result of a nearest-station search.
type NearbyStation struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distance"`
}

// Nearest returns stations strictly closer than maxKm to (lat, lon), closest
// first, at most limit of them. Equal distances keep load order. Non-positive
// maxKm or limit fall back to the defaults.
func (ix *Index) Nearest(lat, lon, maxKm float64, limit int) []NearbyStation {
	if maxKm <= 0 {
		maxKm = DefaultMaxDistanceKm
	}
	if limit <= 0 {
		limit = DefaultNearestLimit
	}

	found := make([]NearbyStation, 0, limit)
	for _, id := range ix.order {
		st := ix.byID[id]
		km := geo.DistanceKm(lat, lon, st.Latitude, st.Longitude)
		if km < maxKm {
			found = append(found, NearbyStation{ID: st.ID, Name: st.Name, DistanceKm: km})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].DistanceKm < found[j].DistanceKm
	})

	if len(found) > limit {
		found = found[:limit]
	}
	return found
}
