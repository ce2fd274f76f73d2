// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package validation

import (
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/sailtide/internal/apperr"
)

// MapRequest is the path parameter of /CalTopo/{mapID}.
type MapRequest struct {
	MapID string `json:"map_id" validate:"required,caltopo_map_id"`
}

// CoordinatesRequest is the path parameter of /TideStations/{lat},{lon}.
type CoordinatesRequest struct {
	Latitude  float64 `json:"lat" validate:"latitude"`
	Longitude float64 `json:"lon" validate:"longitude"`
}

// StationRequest is the path parameter of /TideStation/{id}.
type StationRequest struct {
	ID int `json:"id" validate:"gte=0"`
}

// Messages returned for station ids. Clients match on these strings.
const (
	MsgNoStationID      = "no station id specified"
	MsgInvalidStationID = "invalid station id"
	MsgInvalidCoords    = "coordinates must be {lat},{lon}"
)

// ParseMapID validates a CalTopo map id.
func ParseMapID(raw string) (MapRequest, error) {
	req := MapRequest{MapID: raw}
	if verr := ValidateStruct(&req); verr != nil {
		return req, verr.ToAppError()
	}
	return req, nil
}

// ParseCoordinates splits "{lat},{lon}" and range-checks both values.
func ParseCoordinates(raw string) (CoordinatesRequest, error) {
	latStr, lonStr, ok := strings.Cut(raw, ",")
	if !ok {
		return CoordinatesRequest{}, apperr.Input(MsgInvalidCoords)
	}
	lat, err := parseFinite(latStr)
	if err != nil {
		return CoordinatesRequest{}, apperr.Input("lat must be a number")
	}
	lon, err := parseFinite(lonStr)
	if err != nil {
		return CoordinatesRequest{}, apperr.Input("lon must be a number")
	}

	req := CoordinatesRequest{Latitude: lat, Longitude: lon}
	if verr := ValidateStruct(&req); verr != nil {
		return req, verr.ToAppError()
	}
	return req, nil
}

// ParseStationID parses a decimal station id. An empty id and a malformed
// one produce the two messages the watch app distinguishes.
func ParseStationID(raw string) (StationRequest, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return StationRequest{}, apperr.Input(MsgNoStationID)
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return StationRequest{}, apperr.Input(MsgInvalidStationID)
	}

	req := StationRequest{ID: id}
	if verr := ValidateStruct(&req); verr != nil {
		return req, apperr.Input(MsgInvalidStationID)
	}
	return req, nil
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}
