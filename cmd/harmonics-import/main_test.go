// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tomtom215/sailtide/internal/harmonics"
)

func TestRun_ImportsDump(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "harmonics.db")
	dump := filepath.Join("..", "..", "internal", "harmonics", "testdata", "harmonics.json")

	if err := run(context.Background(), dbPath, []string{dump}); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	store, err := harmonics.Open(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	records, err := store.LoadRecords(context.Background())
	if err != nil {
		t.Fatalf("LoadRecords() error = %v", err)
	}
	if len(records) == 0 {
		t.Error("no stations imported")
	}
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "harmonics.db")

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{filepath.Join(t.TempDir(), "nope.json")}},
		{"too many files", []string{"a.json", "b.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(context.Background(), dbPath, tt.args); err == nil {
				t.Error("run() succeeded, want error")
			}
		})
	}
}
