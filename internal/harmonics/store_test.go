// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package harmonics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/sailtide/internal/tides"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func importFixture(t *testing.T, s *Store) ImportStats {
	t.Helper()

	f, err := os.Open(filepath.Join("testdata", "harmonics.json"))
	if err != nil {
		t.Fatalf("opening fixture: %v", err)
	}
	defer f.Close()

	stats, err := s.Import(context.Background(), f)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	return stats
}

func TestImport_Stats(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	stats := importFixture(t, s)

	if stats.Constituents != 2 {
		t.Errorf("stats.Constituents = %d, want 2", stats.Constituents)
	}
	if stats.Stations != 4 {
		t.Errorf("stats.Stations = %d, want 4", stats.Stations)
	}
}

func TestLoadRecords(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	importFixture(t, s)

	records, err := s.LoadRecords(context.Background())
	if err != nil {
		t.Fatalf("LoadRecords() error = %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("len(records) = %d, want 4", len(records))
	}

	wantIDs := []int{1001, 1002, 1003, 1004}
	wantRef := []bool{true, false, true, true}
	for i, rec := range records {
		if rec.Station.ID != wantIDs[i] {
			t.Errorf("records[%d].ID = %d, want %d", i, rec.Station.ID, wantIDs[i])
		}
		if rec.Reference != wantRef[i] {
			t.Errorf("records[%d].Reference = %v, want %v", i, rec.Reference, wantRef[i])
		}
	}

	seattle := records[0].Station
	if seattle.ZoneOffset != -8*time.Hour {
		t.Errorf("ZoneOffset = %v, want -8h", seattle.ZoneOffset)
	}
	if len(seattle.Coefficients) != 2 {
		t.Fatalf("len(Coefficients) = %d, want 2", len(seattle.Coefficients))
	}
	if seattle.Coefficients[0].Constituent.Name != "M2" || seattle.Coefficients[1].Constituent.Name != "K1" {
		t.Errorf("coefficient order = [%s %s], want [M2 K1]",
			seattle.Coefficients[0].Constituent.Name, seattle.Coefficients[1].Constituent.Name)
	}

	// Port Townsend lists K1 first; positions must survive the round trip.
	townsend := records[2].Station
	if townsend.Coefficients[0].Constituent.Name != "K1" {
		t.Errorf("Port Townsend first constituent = %s, want K1", townsend.Coefficients[0].Constituent.Name)
	}

	// Constituents are shared, not copied.
	if seattle.Coefficients[0].Constituent != townsend.Coefficients[1].Constituent {
		t.Error("M2 should be the same *Constituent for both stations")
	}

	nf, ok := seattle.Coefficients[1].Constituent.NodeFactors[2018]
	if !ok || nf.NodeFactor != 1.087654 {
		t.Errorf("K1 node factor 2018 = %+v, %v", nf, ok)
	}
}

func TestLoadRecords_BuildsIndex(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	importFixture(t, s)

	records, err := s.LoadRecords(context.Background())
	if err != nil {
		t.Fatalf("LoadRecords() error = %v", err)
	}

	ix := tides.NewIndex(records)
	if ix.Count() != 2 {
		t.Errorf("index Count() = %d, want 2 (subordinate and current dropped)", ix.Count())
	}

	st, err := ix.Get(1001)
	if err != nil {
		t.Fatalf("Get(1001) error = %v", err)
	}
	p, err := tides.Assemble(st, tides.YearWindow(2017, 3))
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(p.NodeFactor[2019]) != 2 {
		t.Errorf("len(NodeFactor[2019]) = %d, want 2", len(p.NodeFactor[2019]))
	}
}

func TestLoadRecords_Empty(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	records, err := s.LoadRecords(context.Background())
	if err != nil {
		t.Fatalf("LoadRecords() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}

func TestAddStation_UnknownConstituent(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	err := s.AddStation(context.Background(), StationRow{
		ID:           1,
		Name:         "Nowhere",
		Coefficients: []CoefficientRow{{Constituent: "Z9", Amplitude: 1, Epoch: 1}},
	})
	if !errors.Is(err, ErrUnknownConstituent) {
		t.Fatalf("AddStation() error = %v, want ErrUnknownConstituent", err)
	}

	// The failed station must have been rolled back.
	records, err := s.LoadRecords(context.Background())
	if err != nil {
		t.Fatalf("LoadRecords() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0 after rollback", len(records))
	}
}

func TestAddStation_InvalidType(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	err := s.AddStation(context.Background(), StationRow{ID: 1, Name: "X", Type: "harmonic"})
	if err == nil || !strings.Contains(err.Error(), "invalid station type") {
		t.Errorf("AddStation() error = %v, want invalid station type", err)
	}
}

func TestPutConstituent_Upsert(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	if err := s.PutConstituent(ctx, ConstituentRow{
		Name:        "O1",
		Speed:       13.9,
		NodeFactors: map[int]tides.NodeFactor{2020: {Equilibrium: 1, NodeFactor: 1}},
	}); err != nil {
		t.Fatalf("PutConstituent() error = %v", err)
	}
	if err := s.PutConstituent(ctx, ConstituentRow{
		Name:        "O1",
		Speed:       13.9430356,
		NodeFactors: map[int]tides.NodeFactor{2020: {Equilibrium: 2, NodeFactor: 1.1}, 2021: {Equilibrium: 3, NodeFactor: 1.2}},
	}); err != nil {
		t.Fatalf("PutConstituent() second call error = %v", err)
	}
	if err := s.AddStation(ctx, StationRow{
		ID:           42,
		Name:         "Friday Harbor",
		Coefficients: []CoefficientRow{{Constituent: "O1", Amplitude: 1.5, Epoch: 240}},
	}); err != nil {
		t.Fatalf("AddStation() error = %v", err)
	}

	records, err := s.LoadRecords(ctx)
	if err != nil {
		t.Fatalf("LoadRecords() error = %v", err)
	}
	c := records[0].Station.Coefficients[0].Constituent
	if c.Speed != 13.9430356 {
		t.Errorf("Speed = %v, want 13.9430356", c.Speed)
	}
	if len(c.NodeFactors) != 2 || c.NodeFactors[2020].Equilibrium != 2 {
		t.Errorf("NodeFactors = %+v", c.NodeFactors)
	}
	if !records[0].Reference {
		t.Error("empty station type should default to reference")
	}
}

func TestPutConstituent_RequiresName(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	if err := s.PutConstituent(context.Background(), ConstituentRow{Speed: 1}); err == nil {
		t.Error("PutConstituent() with empty name should fail")
	}
}

func TestImport_Malformed(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	if _, err := s.Import(context.Background(), strings.NewReader("{not json")); err == nil {
		t.Error("Import() with malformed JSON should fail")
	}
}

func TestOpen_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "harmonics.db")
	s, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	importFixture(t, s)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	records, err := reopened.LoadRecords(context.Background())
	if err != nil {
		t.Fatalf("LoadRecords() error = %v", err)
	}
	if len(records) != 4 {
		t.Errorf("len(records) = %d, want 4", len(records))
	}
}
