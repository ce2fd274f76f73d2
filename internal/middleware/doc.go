// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

/*
Package middleware provides the infrastructure middleware of the HTTP stack.

Key Components:

  - RequestID: assigns or propagates X-Request-ID and seeds the logging
    context with request_id and correlation_id
  - PrometheusMetrics: request count, latency histogram and in-flight gauge,
    labelled by chi route pattern
  - AccessLog: per-request debug log and slow-request warnings

All three are plain func(http.Handler) http.Handler values and are mounted
with chi's Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(time.Second))
	r.Use(middleware.PrometheusMetrics)

CORS, rate limiting, compression and panic recovery come from go-chi's own
packages and are wired in internal/api.
*/
package middleware
