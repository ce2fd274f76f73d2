// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package geo

import "math"

// Significant digits used at each call site.
const (
	CoordinateDigits = 8
	HarmonicDigits   = 6
	NodeFactorDigits = 5
	DatumDigits      = 5
)

// RoundSig rounds x to the given number of significant decimal digits,
// half away from zero. Zero, NaN and infinities are returned unchanged.
func RoundSig(x float64, digits int) float64 {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	if digits < 1 {
		digits = 1
	}

	power := digits - 1 - decimalExponent(math.Abs(x))

	// Dividing by an exact power of ten keeps large magnitudes exact;
	// multiplying by 10^-n would not.
	if power < 0 {
		f := math.Pow10(-power)
		if math.IsInf(f, 0) {
			return x
		}
		return math.Round(x/f) * f
	}

	f := math.Pow10(power)
	if math.IsInf(f, 0) || math.IsInf(x*f, 0) {
		return x
	}
	return math.Round(x*f) / f
}

// decimalExponent returns floor(log10(a)) for a > 0, corrected for the
// rounding error math.Log10 shows near exact powers of ten.
func decimalExponent(a float64) int {
	e := int(math.Floor(math.Log10(a)))
	switch {
	case math.Pow10(e+1) <= a:
		e++
	case math.Pow10(e) > a:
		e--
	}
	return e
}
