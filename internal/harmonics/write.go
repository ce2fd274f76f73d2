// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package harmonics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tomtom215/sailtide/internal/tides"
)

// ConstituentRow is a constituent as written to the database.
type ConstituentRow struct {
	Name        string
	Speed       float64
	NodeFactors map[int]tides.NodeFactor
}

// CoefficientRow references its constituent by name.
type CoefficientRow struct {
	Constituent string
	Amplitude   float64
	Epoch       float64
}

// StationRow is a station as written to the database.
type StationRow struct {
	ID                int
	Name              string
	Type              string
	Latitude          float64
	Longitude         float64
	ZoneOffsetMinutes int
	DatumOffset       float64
	Coefficients      []CoefficientRow
}

// PutConstituent inserts a constituent or replaces the speed and node
// factors of an existing one with the same name.
func (s *Store) PutConstituent(ctx context.Context, c ConstituentRow) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return putConstituent(ctx, tx, c)
	})
}

// AddStation appends a station and its coefficients. Every coefficient's
// constituent must already exist.
func (s *Store) AddStation(ctx context.Context, st StationRow) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return addStation(ctx, tx, st)
	})
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func putConstituent(ctx context.Context, tx *sql.Tx, c ConstituentRow) error {
	if c.Name == "" {
		return errors.New("constituent name is required")
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO constituents (name, speed) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET speed = excluded.speed`,
		c.Name, c.Speed); err != nil {
		return fmt.Errorf("writing constituent %s: %w", c.Name, err)
	}

	id, err := constituentID(ctx, tx, c.Name)
	if err != nil {
		return err
	}

	for year, nf := range c.NodeFactors {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO node_factors (constituent_id, year, equilibrium, node_factor)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(constituent_id, year) DO UPDATE SET
				equilibrium = excluded.equilibrium,
				node_factor = excluded.node_factor`,
			id, year, nf.Equilibrium, nf.NodeFactor); err != nil {
			return fmt.Errorf("writing node factors %s/%d: %w", c.Name, year, err)
		}
	}
	return nil
}

func addStation(ctx context.Context, tx *sql.Tx, st StationRow) error {
	stationType := st.Type
	if stationType == "" {
		stationType = TypeReference
	}
	if stationType != TypeReference && stationType != TypeSubordinate {
		return fmt.Errorf("station %d: invalid station type %q", st.ID, st.Type)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO stations (station_id, name, station_type, latitude, longitude,
		                      zone_offset_minutes, datum_offset)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		st.ID, st.Name, stationType, st.Latitude, st.Longitude, st.ZoneOffsetMinutes, st.DatumOffset)
	if err != nil {
		return fmt.Errorf("writing station %d: %w", st.ID, err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading station sequence: %w", err)
	}

	for pos, co := range st.Coefficients {
		id, err := constituentID(ctx, tx, co.Constituent)
		if err != nil {
			return fmt.Errorf("station %d: %w", st.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO coefficients (station_seq, position, constituent_id, amplitude, epoch)
			VALUES (?, ?, ?, ?, ?)`,
			seq, pos, id, co.Amplitude, co.Epoch); err != nil {
			return fmt.Errorf("writing coefficient %d of station %d: %w", pos, st.ID, err)
		}
	}
	return nil
}

func constituentID(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM constituents WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%s: %w", name, ErrUnknownConstituent)
	}
	if err != nil {
		return 0, fmt.Errorf("looking up constituent %s: %w", name, err)
	}
	return id, nil
}
