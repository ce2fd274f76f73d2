// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package harmonics

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sailtide/internal/tides"
)

// Dump is the JSON interchange format read by Import.
type Dump struct {
	Constituents []DumpConstituent `json:"constituents"`
	Stations     []DumpStation     `json:"stations"`
}

// DumpConstituent is one constituent in a Dump. Node factors are keyed by
// year.
type DumpConstituent struct {
	Name        string                 `json:"name"`
	Speed       float64                `json:"speed"`
	NodeFactors map[int]DumpNodeFactor `json:"node_factors"`
}

// DumpNodeFactor is one year's node factor in a Dump.
type DumpNodeFactor struct {
	Equilibrium float64 `json:"equilibrium"`
	NodeFactor  float64 `json:"node_factor"`
}

// DumpStation is one station in a Dump.
type DumpStation struct {
	ID                int               `json:"id"`
	Name              string            `json:"name"`
	Type              string            `json:"type"`
	Latitude          float64           `json:"latitude"`
	Longitude         float64           `json:"longitude"`
	ZoneOffsetMinutes int               `json:"zone_offset_minutes"`
	DatumOffset       float64           `json:"datum_offset"`
	Coefficients      []DumpCoefficient `json:"coefficients"`
}

// DumpCoefficient is one station coefficient in a Dump.
type DumpCoefficient struct {
	Constituent string  `json:"constituent"`
	Amplitude   float64 `json:"amplitude"`
	Epoch       float64 `json:"epoch"`
}

// ImportStats summarises an Import.
type ImportStats struct {
	Constituents int
	Stations     int
}

// Import decodes a Dump from r and writes it in a single transaction.
// Constituents are written first so stations can reference them.
func (s *Store) Import(ctx context.Context, r io.Reader) (ImportStats, error) {
	var dump Dump
	if err := json.NewDecoder(r).Decode(&dump); err != nil {
		return ImportStats{}, fmt.Errorf("decoding harmonics dump: %w", err)
	}

	var stats ImportStats
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		for _, c := range dump.Constituents {
			row := ConstituentRow{
				Name:        c.Name,
				Speed:       c.Speed,
				NodeFactors: make(map[int]tides.NodeFactor, len(c.NodeFactors)),
			}
			for year, nf := range c.NodeFactors {
				row.NodeFactors[year] = tides.NodeFactor{Equilibrium: nf.Equilibrium, NodeFactor: nf.NodeFactor}
			}
			if err := putConstituent(ctx, tx, row); err != nil {
				return err
			}
			stats.Constituents++
		}

		for _, st := range dump.Stations {
			row := StationRow{
				ID:                st.ID,
				Name:              st.Name,
				Type:              st.Type,
				Latitude:          st.Latitude,
				Longitude:         st.Longitude,
				ZoneOffsetMinutes: st.ZoneOffsetMinutes,
				DatumOffset:       st.DatumOffset,
				Coefficients:      make([]CoefficientRow, 0, len(st.Coefficients)),
			}
			for _, co := range st.Coefficients {
				row.Coefficients = append(row.Coefficients, CoefficientRow(co))
			}
			if err := addStation(ctx, tx, row); err != nil {
				return err
			}
			stats.Stations++
		}
		return nil
	})
	if err != nil {
		return ImportStats{}, err
	}
	return stats, nil
}
