// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package tides

import (
	"fmt"
	"strings"
)

// Index is an in-memory, read-only collection of reference stations keyed
// by station id.
type Index struct {
	byID  map[int]*Station
	order []int
}

// NewIndex builds an Index from store records. Only reference stations are
// kept, and names containing "Current" are dropped as tidal-current records.
// A repeated id replaces the earlier station but keeps its position.
func NewIndex(records []Record) *Index {
	ix := &Index{
		byID:  make(map[int]*Station, len(records)),
		order: make([]int, 0, len(records)),
	}
	for _, rec := range records {
		if !isTideStation(rec) {
			continue
		}
		if _, exists := ix.byID[rec.Station.ID]; !exists {
			ix.order = append(ix.order, rec.Station.ID)
		}
		ix.byID[rec.Station.ID] = rec.Station
	}
	return ix
}

func isTideStation(rec Record) bool {
	return rec.Station != nil && rec.Reference && !strings.Contains(rec.Station.Name, "Current")
}

// Get returns the station with the given id.
func (ix *Index) Get(id int) (*Station, error) {
	st, ok := ix.byID[id]
	if !ok {
		return nil, fmt.Errorf("station %d: %w", id, ErrStationNotFound)
	}
	return st, nil
}

// All returns every station in load order. The slice is a copy; the
// stations are shared.
func (ix *Index) All() []*Station {
	out := make([]*Station, 0, len(ix.order))
	for _, id := range ix.order {
		out = append(out, ix.byID[id])
	}
	return out
}

// Count returns the number of indexed stations.
func (ix *Index) Count() int {
	return len(ix.order)
}
