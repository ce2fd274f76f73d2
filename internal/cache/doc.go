// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

/*
Package cache holds short-lived copies of upstream responses.

The CalTopo endpoint caches grouped map documents so that a watch polling
the same map does not hit caltopo.com on every refresh. Values are opaque
byte slices; the caller owns the encoding.

# Backends

Two Store implementations are available, chosen by cache.backend:

  - memory: a map guarded by sync.RWMutex with lazy expiry on Get and a
    periodic sweep. Nothing survives a restart.
  - badger: BadgerDB with native per-entry TTL. Set cache.path to persist
    across restarts; leave it empty to run badger in memory.

# Usage

	store, err := cache.NewStore(cache.Config{
	    Backend: cache.BackendMemory,
	    TTL:     time.Minute,
	})
	if err != nil {
	    return err
	}
	defer store.Close()

	store.Set("caltopo:ABC123", body)
	if body, ok := store.Get("caltopo:ABC123"); ok {
	    // serve cached body
	}

# Metrics

Hits, misses and evictions are exported per backend as
cache_hits_total, cache_misses_total and
cache_evictions_total.

# Badger GC

BadgerDB needs value log garbage collection on disk. GCService runs it on
an interval and is registered with the supervisor's data layer when the
badger backend is active.
*/
package cache
