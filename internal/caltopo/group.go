// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package caltopo

import (
	"fmt"
	"sort"

	"github.com/tomtom215/sailtide/internal/geo"
)

// Markers without a folder are collected into a synthetic group.
const (
	DefaultFolderID   FeatureID = "-1"
	DefaultFolderName           = "marks"
)

// Group is a folder and the markers filed under it.
type Group struct {
	Name  string `json:"name"`
	Marks []Mark `json:"marks"`
}

// Mark is a single marker as the watch draws it.
type Mark struct {
	N   string  `json:"n"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// OrphanFolderError reports a marker whose folderId names no folder in
// the document.
type OrphanFolderError struct {
	Marker   string
	FolderID FeatureID
}

func (e *OrphanFolderError) Error() string {
	return fmt.Sprintf("marker %q references unknown folder %q", e.Marker, e.FolderID)
}

// grouper accumulates groups in discovery order.
type grouper struct {
	order  []FeatureID
	groups map[FeatureID]*Group
}

func newGrouper() *grouper {
	return &grouper{groups: make(map[FeatureID]*Group)}
}

func (g *grouper) addFolder(id FeatureID, name string) {
	if existing, ok := g.groups[id]; ok {
		existing.Name = name
		return
	}
	g.groups[id] = &Group{Name: name, Marks: []Mark{}}
	g.order = append(g.order, id)
}

func (g *grouper) addMark(folderID *FeatureID, name string, lat, lon float64) error {
	id := DefaultFolderID
	if folderID != nil && *folderID != "" {
		id = *folderID
	}

	grp, ok := g.groups[id]
	if !ok {
		if id != DefaultFolderID {
			return &OrphanFolderError{Marker: name, FolderID: id}
		}
		g.addFolder(DefaultFolderID, DefaultFolderName)
		grp = g.groups[DefaultFolderID]
	}

	grp.Marks = append(grp.Marks, Mark{
		N:   name,
		Lat: geo.RoundSig(lat, geo.CoordinateDigits),
		Lon: geo.RoundSig(lon, geo.CoordinateDigits),
	})
	return nil
}

func (g *grouper) result() []Group {
	out := make([]Group, 0, len(g.order))
	for _, id := range g.order {
		grp := g.groups[id]
		sort.SliceStable(grp.Marks, func(i, j int) bool {
			return grp.Marks[i].N < grp.Marks[j].N
		})
		out = append(out, *grp)
	}
	return out
}

func markName(title, description string) string {
	if description == "" {
		return title
	}
	return title + ":" + description
}

// GroupFeatures files every Marker of a GeoJSON export under its Folder.
// Folders are registered before any marker is placed, so a marker may
// precede its folder in the feature list. Markers without a folder land
// in a "marks" group appended after the real folders. Marks are sorted
// by name within each group.
func GroupFeatures(doc *FeatureCollection) ([]Group, error) {
	g := newGrouper()
	if doc == nil {
		return g.result(), nil
	}

	for i := range doc.Features {
		f := &doc.Features[i]
		if f.Properties.Class == ClassFolder {
			g.addFolder(f.ID, f.Properties.Title)
		}
	}

	for i := range doc.Features {
		f := &doc.Features[i]
		if f.Properties.Class != ClassMarker {
			continue
		}
		name := markName(f.Properties.Title, f.Properties.Description)
		lon, lat, err := f.Geometry.point()
		if err != nil {
			return nil, fmt.Errorf("marker %q: %w", name, err)
		}
		if err := g.addMark(f.Properties.FolderID, name, lat, lon); err != nil {
			return nil, err
		}
	}

	return g.result(), nil
}

// GroupLegacy applies the GroupFeatures rules to a legacy export, using
// label as the title and comments as the description.
func GroupLegacy(doc *LegacyDocument) ([]Group, error) {
	g := newGrouper()
	if doc == nil {
		return g.result(), nil
	}

	for _, f := range doc.Folders {
		g.addFolder(f.ID, f.Label)
	}

	for _, m := range doc.Markers {
		name := markName(m.Label, m.Comments)
		if m.Position == nil {
			return nil, fmt.Errorf("marker %q: %w: no position", name, ErrMalformedDocument)
		}
		if err := g.addMark(m.FolderID, name, m.Position.Lat, m.Position.Lng); err != nil {
			return nil, err
		}
	}

	return g.result(), nil
}
