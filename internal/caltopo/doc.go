// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

// Package caltopo fetches CalTopo map exports and reduces them to the
// folder/mark groups the watch displays.
//
// Two export formats are understood. The GeoJSON format has a features
// array whose entries carry a properties.class of Folder or Marker. The
// legacy format has top-level Folder and Marker arrays. Decode detects
// which one it was given.
//
// Fetches go through Client (timeout, body cap, outbound rate limit),
// wrapped by CircuitBreakerClient. Service adds the optional group cache.
package caltopo
