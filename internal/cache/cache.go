// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package cache

import (
	"sync"
	"time"

	"github.com/tomtom215/sailtide/internal/metrics"
)

// BackendMemory is the name of the in-process TTL store.
const BackendMemory = "memory"

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is a thread-safe in-process TTL store. Expired entries are dropped
// on read and by a background sweep.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	stats   counters
	stop    chan struct{}
	once    sync.Once
	now     func() time.Time
}

// NewMemory creates a memory store whose entries live for ttl and starts
// its sweep goroutine. Call Close to stop the sweep.
func NewMemory(ttl time.Duration, sweepInterval time.Duration) *Memory {
	if sweepInterval <= 0 {
		sweepInterval = 5 * time.Minute
	}
	c := &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
		now:     time.Now,
	}
	go c.sweepLoop(sweepInterval)
	return c
}

// Get returns a copy-free view of the cached bytes. Callers must not modify
// the returned slice.
func (c *Memory) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.stats.miss(BackendMemory)
		return nil, false
	}

	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a Set may have replaced it.
		if cur, still := c.entries[key]; still && c.now().After(cur.expiresAt) {
			delete(c.entries, key)
			c.stats.evict(BackendMemory, 1)
		}
		c.mu.Unlock()
		c.stats.miss(BackendMemory)
		return nil, false
	}

	c.stats.hit(BackendMemory)
	return e.data, true
}

// Set stores value under key for the store's TTL.
func (c *Memory) Set(key string, value []byte) {
	c.mu.Lock()
	c.entries[key] = entry{data: value, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Delete removes key.
func (c *Memory) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear removes every entry.
func (c *Memory) Clear() {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string]entry)
	c.mu.Unlock()
	c.stats.evict(BackendMemory, n)
}

// GetStats returns a snapshot of the store's counters.
func (c *Memory) GetStats() Stats {
	c.mu.RLock()
	n := len(c.entries)
	c.mu.RUnlock()
	return c.stats.snapshot(BackendMemory, int64(n))
}

// Close stops the sweep goroutine. The store remains usable.
func (c *Memory) Close() error {
	c.once.Do(func() { close(c.stop) })
	return nil
}

func (c *Memory) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stop:
			return
		}
	}
}

func (c *Memory) sweep() {
	now := c.now()
	c.mu.Lock()
	removed := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	c.mu.Unlock()
	c.stats.evict(BackendMemory, removed)
}

// counters tracks hits, misses and evictions for a backend and mirrors
// them into Prometheus.
type counters struct {
	mu        sync.Mutex
	hits      int64
	misses    int64
	evictions int64
}

func (s *counters) hit(backend string) {
	s.mu.Lock()
	s.hits++
	s.mu.Unlock()
	metrics.RecordCacheLookup(backend, true)
}

func (s *counters) miss(backend string) {
	s.mu.Lock()
	s.misses++
	s.mu.Unlock()
	metrics.RecordCacheLookup(backend, false)
}

func (s *counters) evict(backend string, n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	s.evictions += int64(n)
	s.mu.Unlock()
	metrics.CacheEvictions.WithLabelValues(backend).Add(float64(n))
}

func (s *counters) snapshot(backend string, entries int64) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Backend:   backend,
		Hits:      s.hits,
		Misses:    s.misses,
		Evictions: s.evictions,
		Entries:   entries,
	}
}
