// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package geo

import (
	"math"
	"testing"
)

func TestDistanceKm_SamePoint(t *testing.T) {
	t.Parallel()

	points := [][2]float64{
		{0, 0},
		{47.6, -122.3},
		{-33.8688, 151.2093},
		{90, 0},
		{-90, 180},
	}
	for _, p := range points {
		if got := DistanceKm(p[0], p[1], p[0], p[1]); got != 0 {
			t.Errorf("DistanceKm(%v, %v, %v, %v) = %v, want 0", p[0], p[1], p[0], p[1], got)
		}
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	t.Parallel()

	pairs := []struct {
		lat1, lon1, lat2, lon2 float64
	}{
		{47.6, -122.3, 48.1125, -122.76},
		{40.7128, -74.0060, 51.5074, -0.1278},
		{-33.8688, 151.2093, 35.6762, 139.6503},
		{0, 179.9, 0, -179.9},
	}
	for _, p := range pairs {
		ab := DistanceKm(p.lat1, p.lon1, p.lat2, p.lon2)
		ba := DistanceKm(p.lat2, p.lon2, p.lat1, p.lon1)
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("DistanceKm not symmetric: %v vs %v", ab, ba)
		}
	}
}

func TestDistanceKm_KnownDistances(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tolerance              float64
	}{
		// One degree of latitude on a 6367 km sphere.
		{"one degree latitude", 0, 0, 1, 0, 6367 * math.Pi / 180, 1e-6},
		// Quarter of a great circle.
		{"equator to pole", 0, 0, 90, 0, 6367 * math.Pi / 2, 1e-6},
		// Antipodal points.
		{"antipodes", 0, 0, 0, 180, 6367 * math.Pi, 1e-6},
		{"seattle to port townsend", 47.6026, -122.3393, 48.1125, -122.7597, 64.75, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("DistanceKm() = %v, want %v (+/- %v)", got, tt.want, tt.tolerance)
			}
		})
	}
}
