// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

/*
Package config loads and validates Sailtide configuration.

# Configuration Sources

Koanf v2 merges three layers, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, else config.yaml, config.yml,
    /etc/sailtide/config.yaml, /etc/sailtide/config.yml
 3. Environment variables listed in envMappings

Environment variables not in the mapping are ignored.

# Sections

  - server: listen host/port and HTTP timeouts (default port 18266)
  - logging: zerolog level, format, caller
  - harmonics: path to the SQLite harmonic database
  - tides: year window and nearest-station search bounds
  - caltopo: upstream base URL, timeout, body cap, outbound limiter, breaker
  - cache: CalTopo group cache backend (memory or badger) and TTL
  - security: CORS origins and inbound rate limit

# Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	years := cfg.Tides.Years(time.Now())

# Environment Variables

	HTTP_HOST, HTTP_PORT, HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT,
	HTTP_IDLE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
	LOG_LEVEL, LOG_FORMAT, LOG_CALLER
	HARMONICS_PATH
	TIDES_FIRST_YEAR, TIDES_YEAR_COUNT, TIDES_MAX_DISTANCE_KM, TIDES_NEAREST_LIMIT
	CALTOPO_BASE_URL, CALTOPO_TIMEOUT, CALTOPO_MAX_BODY_BYTES,
	CALTOPO_REQUESTS_PER_SECOND, CALTOPO_BURST,
	CALTOPO_BREAKER_MAX_REQUESTS, CALTOPO_BREAKER_INTERVAL,
	CALTOPO_BREAKER_TIMEOUT, CALTOPO_BREAKER_MIN_REQUESTS, CALTOPO_BREAKER_RATIO
	CACHE_ENABLED, CACHE_BACKEND, CACHE_TTL, CACHE_PATH
	CORS_ORIGINS (comma separated), RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW,
	DISABLE_RATE_LIMIT
*/
package config
