// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package harmonics

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/sailtide/internal/tides"
)

// LoadRecords reads every station in insertion order, with coefficients in
// stored order. Stations referencing the same constituent share one
// *tides.Constituent.
func (s *Store) LoadRecords(ctx context.Context) ([]tides.Record, error) {
	constituents, err := s.loadConstituents(ctx)
	if err != nil {
		return nil, err
	}

	records, bySeq, err := s.loadStations(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT station_seq, constituent_id, amplitude, epoch
		FROM coefficients
		ORDER BY station_seq, position`)
	if err != nil {
		return nil, fmt.Errorf("querying coefficients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			seq, constituentID int64
			co                 tides.Coefficient
		)
		if err := rows.Scan(&seq, &constituentID, &co.Amplitude, &co.Epoch); err != nil {
			return nil, fmt.Errorf("scanning coefficient: %w", err)
		}
		st, ok := bySeq[seq]
		if !ok {
			continue
		}
		co.Constituent, ok = constituents[constituentID]
		if !ok {
			return nil, fmt.Errorf("station %d: constituent id %d: %w", st.ID, constituentID, ErrUnknownConstituent)
		}
		st.Coefficients = append(st.Coefficients, co)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating coefficients: %w", err)
	}

	return records, nil
}

func (s *Store) loadConstituents(ctx context.Context) (map[int64]*tides.Constituent, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, speed FROM constituents`)
	if err != nil {
		return nil, fmt.Errorf("querying constituents: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]*tides.Constituent)
	for rows.Next() {
		var id int64
		c := &tides.Constituent{NodeFactors: make(map[int]tides.NodeFactor)}
		if err := rows.Scan(&id, &c.Name, &c.Speed); err != nil {
			return nil, fmt.Errorf("scanning constituent: %w", err)
		}
		out[id] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating constituents: %w", err)
	}

	nfRows, err := s.db.QueryContext(ctx, `
		SELECT constituent_id, year, equilibrium, node_factor FROM node_factors`)
	if err != nil {
		return nil, fmt.Errorf("querying node factors: %w", err)
	}
	defer nfRows.Close()

	for nfRows.Next() {
		var (
			id   int64
			year int
			nf   tides.NodeFactor
		)
		if err := nfRows.Scan(&id, &year, &nf.Equilibrium, &nf.NodeFactor); err != nil {
			return nil, fmt.Errorf("scanning node factor: %w", err)
		}
		if c, ok := out[id]; ok {
			c.NodeFactors[year] = nf
		}
	}
	if err := nfRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating node factors: %w", err)
	}

	return out, nil
}

func (s *Store) loadStations(ctx context.Context) ([]tides.Record, map[int64]*tides.Station, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, station_id, name, station_type, latitude, longitude,
		       zone_offset_minutes, datum_offset
		FROM stations
		ORDER BY seq`)
	if err != nil {
		return nil, nil, fmt.Errorf("querying stations: %w", err)
	}
	defer rows.Close()

	var records []tides.Record
	bySeq := make(map[int64]*tides.Station)
	for rows.Next() {
		var (
			seq         int64
			stationType string
			zoneMinutes int64
			st          = &tides.Station{}
		)
		if err := rows.Scan(&seq, &st.ID, &st.Name, &stationType, &st.Latitude, &st.Longitude,
			&zoneMinutes, &st.DatumOffset); err != nil {
			return nil, nil, fmt.Errorf("scanning station: %w", err)
		}
		st.ZoneOffset = time.Duration(zoneMinutes) * time.Minute
		records = append(records, tides.Record{Station: st, Reference: stationType == TypeReference})
		bySeq[seq] = st
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating stations: %w", err)
	}

	return records, bySeq, nil
}
