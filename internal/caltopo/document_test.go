// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package caltopo

import (
	"errors"
	"os"
	"testing"

	"github.com/goccy/go-json"
)

func TestFeatureIDUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  FeatureID
	}{
		{`"abc-123"`, "abc-123"},
		{`"-1"`, "-1"},
		{`7`, "7"},
		{`7.0`, "7"},
		{`-1`, "-1"},
		{`12.5`, "12.5"},
		{`null`, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			var id FeatureID
			if err := json.Unmarshal([]byte(tt.input), &id); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			if id != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.input, id, tt.want)
			}
		})
	}
}

func TestFeatureIDUnmarshalRejectsObjects(t *testing.T) {
	t.Parallel()
	var id FeatureID
	if err := json.Unmarshal([]byte(`{"x":1}`), &id); err == nil {
		t.Error("expected error for object id")
	}
}

func TestDecodeDetectsFormat(t *testing.T) {
	t.Parallel()

	features, err := os.ReadFile("testdata/features.json")
	if err != nil {
		t.Fatal(err)
	}
	legacy, err := os.ReadFile("testdata/legacy.json")
	if err != nil {
		t.Fatal(err)
	}

	doc, err := Decode(features)
	if err != nil {
		t.Fatalf("Decode(features) error = %v", err)
	}
	if doc.Features == nil || doc.Legacy != nil {
		t.Errorf("Decode(features) picked the wrong format: %+v", doc)
	}
	if n := len(doc.Features.Features); n != 5 {
		t.Errorf("len(Features) = %d, want 5", n)
	}

	doc, err = Decode(legacy)
	if err != nil {
		t.Fatalf("Decode(legacy) error = %v", err)
	}
	if doc.Legacy == nil || doc.Features != nil {
		t.Errorf("Decode(legacy) picked the wrong format: %+v", doc)
	}
	if doc.Legacy.Folders[0].ID != "7" {
		t.Errorf("legacy folder id = %q, want 7", doc.Legacy.Folders[0].ID)
	}
}

func TestDecodeMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: `<html>`},
		{name: "array", input: `[]`},
		{name: "no known keys", input: `{"type":"FeatureCollection"}`},
		{name: "features wrong type", input: `{"features":{"a":1}}`},
		{name: "legacy wrong type", input: `{"Marker":"x"}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode([]byte(tt.input))
			if !errors.Is(err, ErrMalformedDocument) {
				t.Errorf("Decode() error = %v, want ErrMalformedDocument", err)
			}
		})
	}
}

func TestDecodeEmptyFeatures(t *testing.T) {
	t.Parallel()
	doc, err := Decode([]byte(`{"features":[]}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	groups, err := doc.Groups()
	if err != nil {
		t.Fatalf("Groups() error = %v", err)
	}
	if groups == nil || len(groups) != 0 {
		t.Errorf("Groups() = %#v, want empty non-nil", groups)
	}
}
