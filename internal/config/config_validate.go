// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package config

import (
	"fmt"
	"net/url"
	"time"
)

// Validate checks that the configuration is complete and within bounds.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateHarmonics(); err != nil {
		return err
	}
	if err := c.validateTides(); err != nil {
		return err
	}
	if err := c.validateCalTopo(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return c.validateSecurity()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must not be negative")
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) validateHarmonics() error {
	if c.Harmonics.Path == "" {
		return fmt.Errorf("HARMONICS_PATH is required")
	}
	return nil
}

// Year window bounds. The harmonic database carries node factors for a
// fixed span of years; anything outside it is a typo.
const (
	minFirstYear = 1700
	maxFirstYear = 2100
	maxYearCount = 20
)

func (c *Config) validateTides() error {
	t := c.Tides
	if t.FirstYear != 0 && (t.FirstYear < minFirstYear || t.FirstYear > maxFirstYear) {
		return fmt.Errorf("TIDES_FIRST_YEAR must be 0 or between %d and %d", minFirstYear, maxFirstYear)
	}
	if t.YearCount < 1 || t.YearCount > maxYearCount {
		return fmt.Errorf("TIDES_YEAR_COUNT must be between 1 and %d", maxYearCount)
	}
	if t.MaxDistanceKm <= 0 {
		return fmt.Errorf("TIDES_MAX_DISTANCE_KM must be positive")
	}
	if t.NearestLimit < 1 {
		return fmt.Errorf("TIDES_NEAREST_LIMIT must be at least 1")
	}
	return nil
}

func (c *Config) validateCalTopo() error {
	if err := validateHTTPURL(c.CalTopo.BaseURL, "CALTOPO_BASE_URL"); err != nil {
		return err
	}
	if c.CalTopo.Timeout <= 0 {
		return fmt.Errorf("CALTOPO_TIMEOUT must be positive")
	}
	if c.CalTopo.MaxBodyBytes <= 0 {
		return fmt.Errorf("CALTOPO_MAX_BODY_BYTES must be positive")
	}
	if c.CalTopo.RequestsPerSecond < 0 {
		return fmt.Errorf("CALTOPO_REQUESTS_PER_SECOND must not be negative")
	}
	if c.CalTopo.RequestsPerSecond > 0 && c.CalTopo.Burst < 1 {
		return fmt.Errorf("CALTOPO_BURST must be at least 1 when the limiter is enabled")
	}

	b := c.CalTopo.Breaker
	if b.FailureRatio <= 0 || b.FailureRatio > 1 {
		return fmt.Errorf("CALTOPO_BREAKER_RATIO must be in (0, 1]")
	}
	if b.Timeout <= 0 {
		return fmt.Errorf("CALTOPO_BREAKER_TIMEOUT must be positive")
	}
	return nil
}

// validateHTTPURL validates that a URL is a bare http(s) base URL.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	// Allow trailing slash but no other paths
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		return fmt.Errorf("%s should be base URL only, remove path: %s", fieldName, parsedURL.Path)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}

var validCacheBackends = map[string]bool{
	"memory": true,
	"badger": true,
}

func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}
	if !validCacheBackends[c.Cache.Backend] {
		return fmt.Errorf("CACHE_BACKEND must be one of: memory, badger")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateSecurity validates CORS and rate limiting configuration.
func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}
