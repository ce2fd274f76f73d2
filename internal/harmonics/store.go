// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

// Package harmonics reads and writes the harmonic-constituent database.
//
// The database is a SQLite file holding constituents, their yearly node
// factors, stations and per-station coefficients. The server only reads it,
// once at startup, to build a tides.Index. The harmonics-import command
// fills it from a JSON dump.
package harmonics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Pure Go SQLite driver, registered as "sqlite".
	_ "modernc.org/sqlite"
)

// Station types stored in the stations table.
const (
	TypeReference   = "reference"
	TypeSubordinate = "subordinate"
)

const schema = `
CREATE TABLE IF NOT EXISTS constituents (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	name  TEXT NOT NULL UNIQUE,
	speed REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS node_factors (
	constituent_id INTEGER NOT NULL REFERENCES constituents(id),
	year           INTEGER NOT NULL,
	equilibrium    REAL NOT NULL,
	node_factor    REAL NOT NULL,
	PRIMARY KEY (constituent_id, year)
);
CREATE TABLE IF NOT EXISTS stations (
	seq                 INTEGER PRIMARY KEY AUTOINCREMENT,
	station_id          INTEGER NOT NULL,
	name                TEXT NOT NULL,
	station_type        TEXT NOT NULL,
	latitude            REAL NOT NULL,
	longitude           REAL NOT NULL,
	zone_offset_minutes INTEGER NOT NULL DEFAULT 0,
	datum_offset        REAL NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS coefficients (
	station_seq    INTEGER NOT NULL REFERENCES stations(seq),
	position       INTEGER NOT NULL,
	constituent_id INTEGER NOT NULL REFERENCES constituents(id),
	amplitude      REAL NOT NULL,
	epoch          REAL NOT NULL,
	PRIMARY KEY (station_seq, position)
);
`

// ErrUnknownConstituent is returned when a coefficient names a constituent
// the database does not hold.
var ErrUnknownConstituent = errors.New("unknown constituent")

// Store is a handle on a harmonics database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema
// exists. Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening harmonics database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to harmonics database: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates any missing tables.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating harmonics schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
