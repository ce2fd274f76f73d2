// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/sailtide/internal/logging"
)

// BackendBadger is the name of the BadgerDB-backed store.
const BackendBadger = "badger"

// Badger is a Store persisted in BadgerDB. Entry expiry uses badger's
// native TTL, so cached map groups survive a restart until they expire.
type Badger struct {
	db    *badger.DB
	ttl   time.Duration
	stats counters
}

// OpenBadger opens a badger store at path. An empty path keeps the data in
// memory, which is what the tests use.
func OpenBadger(path string, ttl time.Duration) (*Badger, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(badgerLogger{l: logging.WithComponent("badger")})
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}
	return &Badger{db: db, ttl: ttl}, nil
}

// Get returns the value and true if present and not expired.
func (b *Badger) Get(key string) ([]byte, bool) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			logging.Warn().Err(err).Str("key", key).Msg("Badger cache read failed")
		}
		b.stats.miss(BackendBadger)
		return nil, false
	}

	b.stats.hit(BackendBadger)
	return value, true
}

// Set stores value with the store's TTL. Write failures are logged and
// otherwise ignored; a cache miss is always a safe outcome.
func (b *Badger) Set(key string, value []byte) {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), value).WithTTL(b.ttl))
	})
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("Badger cache write failed")
	}
}

// Delete removes key.
func (b *Badger) Delete(key string) {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("Badger cache delete failed")
	}
}

// Clear drops every entry.
func (b *Badger) Clear() {
	n := b.count()
	if err := b.db.DropAll(); err != nil {
		logging.Warn().Err(err).Msg("Badger cache clear failed")
		return
	}
	b.stats.evict(BackendBadger, int(n))
}

// GetStats returns a snapshot of the store's counters.
func (b *Badger) GetStats() Stats {
	return b.stats.snapshot(BackendBadger, b.count())
}

func (b *Badger) count() int64 {
	var n int64
	_ = b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n
}

// Close closes the database.
func (b *Badger) Close() error {
	return b.db.Close()
}

// RunGC reclaims value log space. It returns nil when there was nothing to
// collect and on in-memory databases.
func (b *Badger) RunGC() error {
	err := b.db.RunValueLogGC(0.5)
	if err == nil || errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
		return nil
	}
	return err
}

// GCService runs Badger value log GC on an interval under the supervisor.
type GCService struct {
	store    *Badger
	interval time.Duration
}

// NewGCService returns a supervised GC loop for store.
func NewGCService(store *Badger, interval time.Duration) *GCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &GCService{store: store, interval: interval}
}

// Serve implements suture.Service.
func (g *GCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := g.store.RunGC(); err != nil {
				logging.Warn().Err(err).Msg("Badger value log GC failed")
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (g *GCService) String() string {
	return "badger-gc"
}

// badgerLogger routes badger's printf-style logs through zerolog.
type badgerLogger struct {
	l zerolog.Logger
}

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.l.Error().Msgf(format, args...)
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.l.Warn().Msgf(format, args...)
}

func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.l.Debug().Msgf(format, args...)
}

func (b badgerLogger) Debugf(format string, args ...interface{}) {
	b.l.Trace().Msgf(format, args...)
}
