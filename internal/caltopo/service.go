// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package caltopo

import (
	"context"
	"errors"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sailtide/internal/apperr"
	"github.com/tomtom215/sailtide/internal/cache"
	"github.com/tomtom215/sailtide/internal/logging"
)

const cacheKeyPrefix = "caltopo:"

// Service turns a map id into grouped marks: fetch, decode, group.
type Service struct {
	fetcher Fetcher
	store   cache.Store
}

// NewService creates a Service. store may be nil to disable caching.
func NewService(fetcher Fetcher, store cache.Store) *Service {
	return &Service{fetcher: fetcher, store: store}
}

// Groups returns the grouped marks of mapID. Errors are classified with
// apperr: fetch failures and unparseable exports are upstream errors, an
// open breaker is 503, and a marker in a missing folder is a data
// consistency error.
func (s *Service) Groups(ctx context.Context, mapID string) ([]Group, error) {
	if groups, ok := s.cached(ctx, mapID); ok {
		return groups, nil
	}

	body, err := s.fetcher.Fetch(ctx, mapID)
	if err != nil {
		if IsBreakerOpen(err) {
			return nil, apperr.Unavailable("CalTopo temporarily unavailable", err)
		}
		return nil, apperr.Upstream("failed to fetch CalTopo map", err)
	}

	doc, err := Decode(body)
	if err != nil {
		return nil, apperr.Upstream("malformed CalTopo document", err)
	}

	groups, err := doc.Groups()
	if err != nil {
		var orphan *OrphanFolderError
		if errors.As(err, &orphan) {
			return nil, apperr.DataConsistency(err)
		}
		return nil, apperr.Upstream("malformed CalTopo document", err)
	}

	s.remember(ctx, mapID, groups)
	return groups, nil
}

func (s *Service) cached(ctx context.Context, mapID string) ([]Group, bool) {
	if s.store == nil {
		return nil, false
	}
	data, ok := s.store.Get(cacheKeyPrefix + mapID)
	if !ok {
		return nil, false
	}
	var groups []Group
	if err := json.Unmarshal(data, &groups); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("map_id", mapID).Msg("Dropping undecodable cache entry")
		s.store.Delete(cacheKeyPrefix + mapID)
		return nil, false
	}
	return groups, true
}

func (s *Service) remember(ctx context.Context, mapID string, groups []Group) {
	if s.store == nil {
		return
	}
	data, err := json.Marshal(groups)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("map_id", mapID).Msg("Failed to encode groups for cache")
		return
	}
	s.store.Set(cacheKeyPrefix+mapID, data)
}
