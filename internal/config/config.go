// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/sailtide/internal/tides"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file, and environment variables (in that order).
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Harmonics HarmonicsConfig `koanf:"harmonics"`
	Tides     TidesConfig     `koanf:"tides"`
	CalTopo   CalTopoConfig   `koanf:"caltopo"`
	Cache     CacheConfig     `koanf:"cache"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`  // trace, debug, info, warn, error
	Format string `koanf:"format"` // json or console
	Caller bool   `koanf:"caller"`
}

// HarmonicsConfig points at the SQLite harmonic constituent database
// produced by harmonics-import.
type HarmonicsConfig struct {
	Path string `koanf:"path"`
}

// TidesConfig controls station selection and the harmonic year window.
type TidesConfig struct {
	// FirstYear is the first year of the window. 0 means the current UTC year.
	FirstYear     int     `koanf:"first_year"`
	YearCount     int     `koanf:"year_count"`
	MaxDistanceKm float64 `koanf:"max_distance_km"`
	NearestLimit  int     `koanf:"nearest_limit"`
}

// CalTopoConfig holds upstream map fetch settings.
type CalTopoConfig struct {
	BaseURL      string        `koanf:"base_url"`
	Timeout      time.Duration `koanf:"timeout"`
	MaxBodyBytes int64         `koanf:"max_body_bytes"`

	// RequestsPerSecond caps outbound fetches. 0 disables the limiter.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig tunes the circuit breaker guarding CalTopo.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`  // allowed through while half-open
	Interval     time.Duration `koanf:"interval"`      // closed-state count reset
	Timeout      time.Duration `koanf:"timeout"`       // open before half-open
	MinRequests  uint32        `koanf:"min_requests"`  // before the failure ratio is considered
	FailureRatio float64       `koanf:"failure_ratio"` // trips at or above this ratio
}

// CacheConfig controls the CalTopo group cache.
type CacheConfig struct {
	Enabled bool          `koanf:"enabled"`
	Backend string        `koanf:"backend"` // memory or badger
	TTL     time.Duration `koanf:"ttl"`
	Path    string        `koanf:"path"` // badger directory; empty keeps badger in memory
}

// SecurityConfig holds CORS and inbound rate limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Years returns the harmonic year window relative to now.
func (t TidesConfig) Years(now time.Time) []int {
	first := t.FirstYear
	if first == 0 {
		first = now.UTC().Year()
	}
	return tides.YearWindow(first, t.YearCount)
}

// Load reads configuration from defaults, the config file, and the
// environment. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
