// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package caltopo

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// ErrMalformedDocument is returned for map exports that cannot be grouped:
// neither format is recognised, or a marker has no usable position.
var ErrMalformedDocument = errors.New("malformed CalTopo document")

// Feature classes the grouper understands. Anything else is skipped.
const (
	ClassFolder = "Folder"
	ClassMarker = "Marker"
)

// FeatureID is a CalTopo object id. Current exports use UUID strings,
// older ones use integers; both are kept as text.
type FeatureID string

// UnmarshalJSON accepts a JSON string or number.
func (id *FeatureID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FeatureID(s)
		return nil
	}

	text := string(data)
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("feature id must be a string or number, got %s", text)
	}
	// Integral values such as 7.0 normalise to "7".
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		*id = FeatureID(strconv.FormatInt(int64(f), 10))
		return nil
	}
	*id = FeatureID(text)
	return nil
}

// FeatureCollection is the GeoJSON map export served by /m/{id}?format=json.
type FeatureCollection struct {
	Features []Feature `json:"features"`
}

// Feature is one map object.
type Feature struct {
	ID         FeatureID  `json:"id"`
	Properties Properties `json:"properties"`
	Geometry   *Geometry  `json:"geometry"`
}

// Properties holds the CalTopo attributes of a feature. FolderID is nil
// when the marker sits at the top level of the map.
type Properties struct {
	Class       string     `json:"class"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	FolderID    *FeatureID `json:"folderId"`
}

// Geometry is a GeoJSON geometry. Point coordinates are [lon, lat, ...].
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// point returns the lon/lat of a point geometry.
func (g *Geometry) point() (lon, lat float64, err error) {
	if g == nil || len(g.Coordinates) == 0 {
		return 0, 0, fmt.Errorf("%w: marker has no geometry", ErrMalformedDocument)
	}
	var coords []float64
	if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
		return 0, 0, fmt.Errorf("%w: marker coordinates: %v", ErrMalformedDocument, err)
	}
	if len(coords) < 2 {
		return 0, 0, fmt.Errorf("%w: marker has %d coordinates", ErrMalformedDocument, len(coords))
	}
	return coords[0], coords[1], nil
}

// LegacyDocument is the older export with top-level Folder and Marker
// arrays.
type LegacyDocument struct {
	Folders []LegacyFolder `json:"Folder"`
	Markers []LegacyMarker `json:"Marker"`
}

// LegacyFolder is a folder in the legacy export.
type LegacyFolder struct {
	ID    FeatureID `json:"id"`
	Label string    `json:"label"`
}

// LegacyMarker is a marker in the legacy export.
type LegacyMarker struct {
	Label    string          `json:"label"`
	Comments string          `json:"comments"`
	FolderID *FeatureID      `json:"folderId"`
	Position *LegacyPosition `json:"position"`
}

// LegacyPosition is a legacy marker location.
type LegacyPosition struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Document is a decoded export in either format. Exactly one field is set.
type Document struct {
	Features *FeatureCollection
	Legacy   *LegacyDocument
}

// Decode parses a map export, picking the format from its top-level keys.
func Decode(data []byte) (*Document, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	if _, ok := probe["features"]; ok {
		var fc FeatureCollection
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
		}
		return &Document{Features: &fc}, nil
	}

	_, hasFolders := probe["Folder"]
	_, hasMarkers := probe["Marker"]
	if hasFolders || hasMarkers {
		var legacy LegacyDocument
		if err := json.Unmarshal(data, &legacy); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
		}
		return &Document{Legacy: &legacy}, nil
	}

	return nil, fmt.Errorf("%w: no features, Folder or Marker key", ErrMalformedDocument)
}

// Groups runs the grouper matching the document's format.
func (d *Document) Groups() ([]Group, error) {
	switch {
	case d.Features != nil:
		return GroupFeatures(d.Features)
	case d.Legacy != nil:
		return GroupLegacy(d.Legacy)
	default:
		return nil, ErrMalformedDocument
	}
}
