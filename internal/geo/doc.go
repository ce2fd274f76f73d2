// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

/*
Package geo holds the two numeric helpers shared by the tide and map
endpoints: significant-digit rounding and great-circle distance.

# Rounding

RoundSig keeps a fixed number of significant decimal digits rather than
decimal places. Payloads sent to the watch use it to stay small:

	geo.RoundSig(47.60621234, geo.CoordinateDigits) // 47.606212
	geo.RoundSig(0.000123456789, 6)                  // 0.000123457

# Distance

DistanceKm is the haversine distance over a sphere of radius 6367 km, the
radius the watch application uses for its own bearings.
*/
package geo
