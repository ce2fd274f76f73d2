// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package caltopo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/sailtide/internal/apperr"
	"github.com/tomtom215/sailtide/internal/cache"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestServiceGroups(t *testing.T) {
	t.Parallel()
	stub := &stubFetcher{body: readFixture(t, "features.json")}
	svc := NewService(stub, nil)

	groups, err := svc.Groups(context.Background(), "ABC")
	if err != nil {
		t.Fatalf("Groups() error = %v", err)
	}
	if len(groups) != 2 || groups[0].Name != "A" || groups[1].Name != "marks" {
		t.Errorf("Groups() = %+v", groups)
	}
}

func TestServiceGroupsUsesCache(t *testing.T) {
	t.Parallel()
	stub := &stubFetcher{body: readFixture(t, "legacy.json")}
	store := cache.NewMemory(time.Minute, time.Hour)
	defer store.Close()
	svc := NewService(stub, store)

	first, err := svc.Groups(context.Background(), "LEG")
	if err != nil {
		t.Fatalf("Groups() error = %v", err)
	}
	second, err := svc.Groups(context.Background(), "LEG")
	if err != nil {
		t.Fatalf("second Groups() error = %v", err)
	}

	if stub.Calls() != 1 {
		t.Errorf("fetcher called %d times, want 1", stub.Calls())
	}
	if fmt.Sprint(first) != fmt.Sprint(second) {
		t.Errorf("cached groups differ:\n%+v\n%+v", first, second)
	}

	if _, err := svc.Groups(context.Background(), "OTHER"); err != nil {
		t.Fatalf("Groups(OTHER) error = %v", err)
	}
	if stub.Calls() != 2 {
		t.Errorf("fetcher called %d times, want 2 (cache is per map)", stub.Calls())
	}
}

func TestServiceGroupsDropsBadCacheEntry(t *testing.T) {
	t.Parallel()
	stub := &stubFetcher{body: []byte(`{"features":[]}`)}
	store := cache.NewMemory(time.Minute, time.Hour)
	defer store.Close()
	store.Set(cacheKeyPrefix+"ABC", []byte("not json"))

	svc := NewService(stub, store)
	if _, err := svc.Groups(context.Background(), "ABC"); err != nil {
		t.Fatalf("Groups() error = %v", err)
	}
	if stub.Calls() != 1 {
		t.Errorf("fetcher called %d times, want 1", stub.Calls())
	}
}

func TestServiceGroupsErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantKind   apperr.Kind
	}{
		{
			name:       "fetch failure",
			err:        &StatusError{StatusCode: http.StatusInternalServerError},
			wantStatus: http.StatusBadGateway,
			wantKind:   apperr.KindUpstream,
		},
		{
			name:       "breaker open",
			err:        fmt.Errorf("wrapped: %w", gobreaker.ErrOpenState),
			wantStatus: http.StatusServiceUnavailable,
			wantKind:   apperr.KindUpstream,
		},
		{
			name:       "not json",
			body:       `<html>`,
			wantStatus: http.StatusBadGateway,
			wantKind:   apperr.KindUpstream,
		},
		{
			name:       "bad geometry",
			body:       `{"features":[{"properties":{"class":"Marker","title":"m"},"geometry":{"coordinates":[1]}}]}`,
			wantStatus: http.StatusBadGateway,
			wantKind:   apperr.KindUpstream,
		},
		{
			name:       "orphan folder",
			body:       `{"features":[{"properties":{"class":"Marker","title":"m","folderId":"x"},"geometry":{"coordinates":[1,2]}}]}`,
			wantStatus: http.StatusInternalServerError,
			wantKind:   apperr.KindDataConsistency,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			stub := &stubFetcher{body: []byte(tt.body), err: tt.err}
			store := cache.NewMemory(time.Minute, time.Hour)
			defer store.Close()

			_, err := NewService(stub, store).Groups(context.Background(), "ABC")
			if err == nil {
				t.Fatal("Groups() expected error")
			}
			if got := apperr.HTTPStatus(err); got != tt.wantStatus {
				t.Errorf("HTTPStatus() = %d, want %d (err: %v)", got, tt.wantStatus, err)
			}
			if got := apperr.KindOf(err); got != tt.wantKind {
				t.Errorf("KindOf() = %v, want %v", got, tt.wantKind)
			}
			if n := store.GetStats().Entries; n != 0 {
				t.Errorf("failed result was cached (%d entries)", n)
			}
		})
	}
}

func TestServiceOrphanUnwraps(t *testing.T) {
	t.Parallel()
	stub := &stubFetcher{body: []byte(`{"Folder":[],"Marker":[{"label":"m","folderId":3,"position":{"lat":1,"lng":2}}]}`)}

	_, err := NewService(stub, nil).Groups(context.Background(), "ABC")
	var orphan *OrphanFolderError
	if !errors.As(err, &orphan) {
		t.Fatalf("error = %v, want wrapped *OrphanFolderError", err)
	}
	if orphan.FolderID != "3" {
		t.Errorf("FolderID = %q, want 3", orphan.FolderID)
	}
}
