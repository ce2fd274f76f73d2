// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package tides

import (
	"errors"
	"fmt"
)

// ErrStationNotFound is returned by Index.Get for an unknown station id.
var ErrStationNotFound = errors.New("station not found")

// MissingYearDataError reports a constituent without node factors for a
// requested year.
type MissingYearDataError struct {
	StationID   int
	Constituent string
	Year        int
}

func (e *MissingYearDataError) Error() string {
	return fmt.Sprintf("station %d: constituent %q has no node factors for year %d",
		e.StationID, e.Constituent, e.Year)
}
