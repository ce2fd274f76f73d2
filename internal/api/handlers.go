// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/sailtide/internal/apperr"
	"github.com/tomtom215/sailtide/internal/caltopo"
	"github.com/tomtom215/sailtide/internal/config"
	"github.com/tomtom215/sailtide/internal/logging"
	"github.com/tomtom215/sailtide/internal/metrics"
	"github.com/tomtom215/sailtide/internal/tides"
	"github.com/tomtom215/sailtide/internal/validation"
)

// MapService resolves a CalTopo map id into grouped marks.
type MapService interface {
	Groups(ctx context.Context, mapID string) ([]caltopo.Group, error)
}

type groupsResponse struct {
	Groups []caltopo.Group `json:"groups"`
}

type stationsResponse struct {
	Stations []tides.NearbyStation `json:"stations"`
}

type stationResponse struct {
	Station *tides.HarmonicPayload `json:"station"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Stations int    `json:"stations"`
}

// Handler serves the watch-facing endpoints. The station index is built
// before the handler and is read-only afterwards.
type Handler struct {
	index         *tides.Index
	maps          MapService
	tides         config.TidesConfig
	maxDistanceKm float64
	nearestLimit  int
	now           func() time.Time
}

// NewHandler creates a Handler over a loaded index and a map service.
func NewHandler(index *tides.Index, maps MapService, cfg config.TidesConfig) *Handler {
	return &Handler{
		index:         index,
		maps:          maps,
		tides:         cfg,
		maxDistanceKm: cfg.MaxDistanceKm,
		nearestLimit:  cfg.NearestLimit,
		now:           time.Now,
	}
}

// GetMapGroups handles GET /CalTopo/{mapID}.
func (h *Handler) GetMapGroups(w http.ResponseWriter, r *http.Request) {
	req, err := validation.ParseMapID(chi.URLParam(r, "mapID"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	groups, err := h.maps.Groups(r.Context(), req.MapID)
	if err != nil {
		respondError(w, r, fmt.Errorf("map %s: %w", req.MapID, err))
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("map_id", req.MapID).
		Int("groups", len(groups)).
		Msg("Grouped CalTopo map")
	respondJSON(w, http.StatusOK, groupsResponse{Groups: groups})
}

// GetNearestStations handles GET /TideStations/{lat},{lon}.
func (h *Handler) GetNearestStations(w http.ResponseWriter, r *http.Request) {
	req, err := validation.ParseCoordinates(chi.URLParam(r, "coords"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	stations := h.index.Nearest(req.Latitude, req.Longitude, h.maxDistanceKm, h.nearestLimit)
	metrics.NearestStationResults.Observe(float64(len(stations)))
	respondJSON(w, http.StatusOK, stationsResponse{Stations: stations})
}

// GetStationHarmonics handles GET /TideStation/{id}.
func (h *Handler) GetStationHarmonics(w http.ResponseWriter, r *http.Request) {
	req, err := validation.ParseStationID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	st, err := h.index.Get(req.ID)
	if err != nil {
		if errors.Is(err, tides.ErrStationNotFound) {
			err = apperr.NotFound(validation.MsgInvalidStationID, err)
		}
		respondError(w, r, err)
		return
	}

	payload, err := tides.Assemble(st, h.tides.Years(h.now()))
	if err != nil {
		var missing *tides.MissingYearDataError
		if errors.As(err, &missing) {
			err = apperr.DataConsistency(err)
		}
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, stationResponse{Station: payload})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{Status: "ok", Stations: h.index.Count()})
}

// NotFound answers unrouted paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondStatus(w, http.StatusNotFound, "not found")
}

// MethodNotAllowed answers routed paths with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondStatus(w, http.StatusMethodNotAllowed, "method not allowed")
}
