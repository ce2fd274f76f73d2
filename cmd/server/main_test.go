// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestParsePortArg(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    int
		wantOK  bool
		wantErr bool
	}{
		{name: "no args", args: nil},
		{name: "port", args: []string{"8080"}, want: 8080, wantOK: true},
		{name: "max port", args: []string{"65535"}, want: 65535, wantOK: true},
		{name: "zero", args: []string{"0"}, wantErr: true},
		{name: "too large", args: []string{"70000"}, wantErr: true},
		{name: "not a number", args: []string{"http"}, wantErr: true},
		{name: "extra args", args: []string{"8080", "9090"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok, err := parsePortArg(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePortArg(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("parsePortArg(%v) = %d, %v; want %d, %v", tt.args, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLoadIndex_EmptyDatabase(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "harmonics.db")

	index, err := loadIndex(context.Background(), path)
	if err != nil {
		t.Fatalf("loadIndex() error = %v", err)
	}
	if index.Count() != 0 {
		t.Errorf("Count() = %d, want 0", index.Count())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}
