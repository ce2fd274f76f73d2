// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics:

	curl http://localhost:18266/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Requests in flight (gauge)
  - api_errors_total: Error responses (counter)
    Labels: kind (input, upstream, data_consistency, unknown)

CalTopo Metrics:
  - caltopo_fetch_duration_seconds: Map fetch latency (histogram)
    Labels: result (success, failure)
  - caltopo_response_bytes: Map document size (histogram)

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Calls through the breaker (counter)
    Labels: name, result (success, failure, rejected)
  - circuit_breaker_consecutive_failures: Current failure streak (gauge)
  - circuit_breaker_state_transitions_total: State changes (counter)
    Labels: name, from_state, to_state

Cache Metrics:
  - cache_hits_total, cache_misses_total, cache_evictions_total (counter)
    Labels: backend (memory, badger)

Tide Metrics:
  - tide_stations_loaded: Reference stations in the index (gauge)
  - tide_nearest_station_results: Results per nearest query (histogram)

# Usage

	start := time.Now()
	body, err := fetch(ctx, id)
	metrics.RecordUpstreamFetch(time.Since(start), len(body), err)

# Thread Safety

Prometheus collectors are safe for concurrent use.
*/
package metrics
