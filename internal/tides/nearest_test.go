// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package tides

import (
	"fmt"
	"testing"
)

func TestNearest_SortedAndBounded(t *testing.T) {
	t.Parallel()

	ix := NewIndex(testRecords())
	got := ix.Nearest(47.6, -122.3, DefaultMaxDistanceKm, DefaultNearestLimit)

	// Honolulu is roughly 4300 km away.
	if len(got) != 4 {
		t.Fatalf("len(Nearest()) = %d, want 4: %+v", len(got), got)
	}
	for i := 1; i < len(got); i++ {
		if got[i].DistanceKm <= got[i-1].DistanceKm {
			t.Errorf("results not strictly ascending at %d: %v then %v",
				i, got[i-1].DistanceKm, got[i].DistanceKm)
		}
	}
	for _, s := range got {
		if s.DistanceKm >= DefaultMaxDistanceKm {
			t.Errorf("station %d at %v km exceeds max distance", s.ID, s.DistanceKm)
		}
		if s.ID == 5 {
			t.Error("Honolulu should be excluded")
		}
	}
	if got[0].ID != 1 {
		t.Errorf("closest station = %d, want 1 (Seattle)", got[0].ID)
	}
}

func TestNearest_Limit(t *testing.T) {
	t.Parallel()

	ix := NewIndex(testRecords())

	tests := []struct {
		limit int
		want  int
	}{
		{1, 1},
		{2, 2},
		{3, 3},
		{10, 4},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("limit=%d", tt.limit), func(t *testing.T) {
			t.Parallel()
			got := ix.Nearest(47.6, -122.3, DefaultMaxDistanceKm, tt.limit)
			if len(got) != tt.want {
				t.Errorf("len(Nearest()) = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestNearest_ExactlyLimitWhenMoreQualify(t *testing.T) {
	t.Parallel()

	records := make([]Record, 0, 15)
	for i := 0; i < 15; i++ {
		records = append(records, Record{
			Station:   &Station{ID: i + 1, Name: fmt.Sprintf("Station %d", i+1), Latitude: 47.6 + float64(i)*0.1, Longitude: -122.3},
			Reference: true,
		})
	}
	ix := NewIndex(records)

	got := ix.Nearest(47.6, -122.3, DefaultMaxDistanceKm, DefaultNearestLimit)
	if len(got) != DefaultNearestLimit {
		t.Fatalf("len(Nearest()) = %d, want %d", len(got), DefaultNearestLimit)
	}
	for i, s := range got {
		if s.ID != i+1 {
			t.Errorf("Nearest()[%d].ID = %d, want %d", i, s.ID, i+1)
		}
	}
}

func TestNearest_ThresholdIsStrict(t *testing.T) {
	t.Parallel()

	ix := NewIndex(testRecords())
	all := ix.Nearest(47.6, -122.3, DefaultMaxDistanceKm, DefaultNearestLimit)
	farthest := all[len(all)-1]

	got := ix.Nearest(47.6, -122.3, farthest.DistanceKm, DefaultNearestLimit)
	for _, s := range got {
		if s.ID == farthest.ID {
			t.Errorf("station at exactly maxKm should be excluded")
		}
	}
	if len(got) != len(all)-1 {
		t.Errorf("len(Nearest()) = %d, want %d", len(got), len(all)-1)
	}
}

func TestNearest_NoneInRange(t *testing.T) {
	t.Parallel()

	ix := NewIndex(testRecords())
	got := ix.Nearest(-45.0, 10.0, DefaultMaxDistanceKm, DefaultNearestLimit)

	if got == nil {
		t.Fatal("Nearest() = nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("len(Nearest()) = %d, want 0", len(got))
	}
}

func TestNearest_TiesKeepLoadOrder(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Station: &Station{ID: 30, Name: "C", Latitude: 48.0, Longitude: -122.3}, Reference: true},
		{Station: &Station{ID: 10, Name: "A", Latitude: 48.0, Longitude: -122.3}, Reference: true},
		{Station: &Station{ID: 20, Name: "B", Latitude: 48.0, Longitude: -122.3}, Reference: true},
	}
	ix := NewIndex(records)

	got := ix.Nearest(47.6, -122.3, 0, 0)
	want := []int{30, 10, 20}
	for i, s := range got {
		if s.ID != want[i] {
			t.Errorf("Nearest()[%d].ID = %d, want %d", i, s.ID, want[i])
		}
	}
}

func TestNearest_DoesNotMutateIndex(t *testing.T) {
	t.Parallel()

	ix := NewIndex(testRecords())
	before := ix.All()

	_ = ix.Nearest(21.3, -157.8, DefaultMaxDistanceKm, 1)

	after := ix.All()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("index order changed at %d", i)
		}
	}
}
