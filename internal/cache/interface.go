// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package cache

import (
	"fmt"
	"time"
)

// Store is a byte-oriented key/value cache with a fixed TTL. Values are
// opaque; callers encode and decode them.
type Store interface {
	// Get returns the value and true if present and not expired.
	Get(key string) ([]byte, bool)

	// Set stores value with the store's TTL.
	Set(key string, value []byte)

	// Delete removes a key.
	Delete(key string)

	// Clear removes all entries.
	Clear()

	// GetStats returns cache statistics.
	GetStats() Stats

	// Close releases resources held by the store.
	Close() error
}

// Stats is a point-in-time view of a store's counters.
type Stats struct {
	Backend   string `json:"backend"`
	Hits      int64  `json:"hits"`
	Misses    int64  `json:"misses"`
	Evictions int64  `json:"evictions"`
	Entries   int64  `json:"entries"`
}

// HitRate returns the hit rate as a percentage.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}
	return float64(s.Hits) / float64(total) * 100.0
}

// Config selects and configures a Store.
type Config struct {
	// Backend is BackendMemory or BackendBadger.
	Backend string

	// TTL is how long entries live. Default: 5 minutes.
	TTL time.Duration

	// Path is the badger directory. Empty runs badger in memory.
	Path string

	// SweepInterval is how often the memory store drops expired entries.
	SweepInterval time.Duration
}

// NewStore builds the Store named by cfg.Backend.
func NewStore(cfg Config) (Store, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}

	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemory(cfg.TTL, cfg.SweepInterval), nil
	case BackendBadger:
		b, err := OpenBadger(cfg.Path, cfg.TTL)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
