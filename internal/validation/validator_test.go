// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package validation

import (
	"net/http"
	"strings"
	"testing"

	"github.com/tomtom215/sailtide/internal/apperr"
)

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

func TestValidateStruct_FieldNamesFromJSONTags(t *testing.T) {
	t.Parallel()
	err := ValidateStruct(&CoordinatesRequest{Latitude: 91, Longitude: 0})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(err.Errors()) != 1 {
		t.Fatalf("got %d errors, want 1", len(err.Errors()))
	}
	fe := err.Errors()[0]
	if fe.Field() != "lat" || fe.Tag() != "latitude" {
		t.Errorf("field/tag = %s/%s, want lat/latitude", fe.Field(), fe.Tag())
	}
	if fe.Error() != "lat must be a valid latitude (-90 to 90)" {
		t.Errorf("message = %q", fe.Error())
	}
}

func TestValidateStruct_MultipleErrorsJoined(t *testing.T) {
	t.Parallel()
	err := ValidateStruct(&CoordinatesRequest{Latitude: -95, Longitude: 200})
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "lat must") || !strings.Contains(msg, "lon must") || !strings.Contains(msg, "; ") {
		t.Errorf("Error() = %q, want both fields joined by '; '", msg)
	}

	appErr := err.ToAppError()
	if appErr.Kind != apperr.KindInput || apperr.HTTPStatus(appErr) != http.StatusBadRequest {
		t.Errorf("ToAppError() = %+v, want 400 input error", appErr)
	}
	if appErr.Message != msg {
		t.Errorf("ToAppError().Message = %q, want %q", appErr.Message, msg)
	}
}

func TestParseMapID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		wantErr bool
	}{
		{"ABC123", false},
		{"a_b", false},
		{"12345678", false},
		{"_", false},
		{"", true},
		{"123456789", true},
		{"ab-c", true},
		{"ab c", true},
		{"é", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			req, err := ParseMapID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMapID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if apperr.HTTPStatus(err) != http.StatusBadRequest {
					t.Errorf("status = %d, want 400", apperr.HTTPStatus(err))
				}
				return
			}
			if req.MapID != tt.input {
				t.Errorf("MapID = %q, want %q", req.MapID, tt.input)
			}
		})
	}
}

func TestParseCoordinates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		lat     float64
		lon     float64
		wantErr string
	}{
		{input: "47.6,-122.3", lat: 47.6, lon: -122.3},
		{input: " 47.6 , -122.3 ", lat: 47.6, lon: -122.3},
		{input: "90,180", lat: 90, lon: 180},
		{input: "-90,-180", lat: -90, lon: -180},
		{input: "0,0"},
		{input: "47.6", wantErr: MsgInvalidCoords},
		{input: "abc,1", wantErr: "lat must be a number"},
		{input: "1,abc", wantErr: "lon must be a number"},
		{input: "NaN,1", wantErr: "lat must be a number"},
		{input: "1,Inf", wantErr: "lon must be a number"},
		{input: "1,2,3", wantErr: "lon must be a number"},
		{input: "90.5,0", wantErr: "lat must be a valid latitude"},
		{input: "0,180.1", wantErr: "lon must be a valid longitude"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			req, err := ParseCoordinates(tt.input)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("ParseCoordinates(%q) expected error", tt.input)
				}
				if msg := apperr.PublicMessage(err); !strings.Contains(msg, tt.wantErr) {
					t.Errorf("message = %q, want it to contain %q", msg, tt.wantErr)
				}
				if apperr.HTTPStatus(err) != http.StatusBadRequest {
					t.Errorf("status = %d, want 400", apperr.HTTPStatus(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCoordinates(%q) error = %v", tt.input, err)
			}
			if req.Latitude != tt.lat || req.Longitude != tt.lon {
				t.Errorf("got (%v, %v), want (%v, %v)", req.Latitude, req.Longitude, tt.lat, tt.lon)
			}
		})
	}
}

func TestParseStationID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    int
		wantMsg string
	}{
		{input: "1001", want: 1001},
		{input: "0", want: 0},
		{input: "", wantMsg: MsgNoStationID},
		{input: "  ", wantMsg: MsgNoStationID},
		{input: "abc", wantMsg: MsgInvalidStationID},
		{input: "12.5", wantMsg: MsgInvalidStationID},
		{input: "-3", wantMsg: MsgInvalidStationID},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			req, err := ParseStationID(tt.input)
			if tt.wantMsg != "" {
				if err == nil {
					t.Fatalf("ParseStationID(%q) expected error", tt.input)
				}
				if msg := apperr.PublicMessage(err); msg != tt.wantMsg {
					t.Errorf("message = %q, want %q", msg, tt.wantMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStationID(%q) error = %v", tt.input, err)
			}
			if req.ID != tt.want {
				t.Errorf("ID = %d, want %d", req.ID, tt.want)
			}
		})
	}
}
