// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

/*
Package api exposes the watch-facing HTTP endpoints.

Routes:

	GET /CalTopo/{mapID}           {"groups":[{"name","marks":[{"n","lat","lon"}]}]}
	GET /TideStations/{lat},{lon}  {"stations":[{"id","name","distance"}]}
	GET /TideStation/{id}          {"station":{...harmonic payload...}}
	GET /health                    {"status":"ok","stations":N}
	GET /metrics                   Prometheus exposition

Every response body is a JSON object. Failures carry a single "error"
field, and the status code comes from the apperr classification of the
failure: 400 for bad input, 404 for an unknown station, 502 for CalTopo
failures (503 while the circuit breaker is open) and 500 for data defects.

Handlers log each failure exactly once, in respondError. Lower layers wrap
and return.
*/
package api
