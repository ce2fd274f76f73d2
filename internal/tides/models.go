// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

// Package tides serves harmonic constituent data for reference tide stations.
//
// An Index is built once at startup from the harmonics store and is read-only
// afterwards, so Nearest and Assemble are safe to call from any number of
// request goroutines without locking.
package tides

import "time"

// Station is a reference tide station with its harmonic constituents.
type Station struct {
	ID           int
	Name         string
	Latitude     float64
	Longitude    float64
	ZoneOffset   time.Duration
	DatumOffset  float64
	Coefficients []Coefficient
}

// Coefficient is a station's amplitude and phase for one constituent.
// The order of a station's coefficients fixes the order of every array in
// its HarmonicPayload.
type Coefficient struct {
	Amplitude   float64
	Epoch       float64
	Constituent *Constituent
}

// Constituent is a periodic tidal component. Constituents are shared by
// every station that references them and must not be modified after load.
type Constituent struct {
	Name        string
	Speed       float64
	NodeFactors map[int]NodeFactor
}

// NodeFactor holds the yearly corrections for one constituent.
type NodeFactor struct {
	Equilibrium float64
	NodeFactor  float64
}

// Record is one entry read from the harmonics store, before filtering.
type Record struct {
	Station   *Station
	Reference bool
}
