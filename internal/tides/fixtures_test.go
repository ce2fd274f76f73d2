// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package tides

import "time"

func testConstituents() (m2, s2, k1 *Constituent) {
	m2 = &Constituent{
		Name:  "M2",
		Speed: 28.9841042,
		NodeFactors: map[int]NodeFactor{
			2017: {Equilibrium: 313.6224, NodeFactor: 0.970214},
			2018: {Equilibrium: 92.13425, NodeFactor: 0.977431},
			2019: {Equilibrium: 230.7563, NodeFactor: 0.988876},
		},
	}
	s2 = &Constituent{
		Name:  "S2",
		Speed: 30.0,
		NodeFactors: map[int]NodeFactor{
			2017: {Equilibrium: 0.0, NodeFactor: 1.0},
			2018: {Equilibrium: 0.0, NodeFactor: 1.0},
			2019: {Equilibrium: 0.0, NodeFactor: 1.0},
		},
	}
	k1 = &Constituent{
		Name:  "K1",
		Speed: 15.0410686,
		NodeFactors: map[int]NodeFactor{
			2017: {Equilibrium: 16.28571, NodeFactor: 1.113245},
			2018: {Equilibrium: 11.98765, NodeFactor: 1.087654},
			2019: {Equilibrium: 8.043216, NodeFactor: 1.045678},
		},
	}
	return m2, s2, k1
}

// testStations is a five-station fixture around Puget Sound plus one far
// away station.
func testStations() []*Station {
	m2, s2, k1 := testConstituents()
	coeffs := []Coefficient{
		{Amplitude: 3.543210987, Epoch: 138.123456, Constituent: m2},
		{Amplitude: 0.8765432, Epoch: 160.98765, Constituent: s2},
		{Amplitude: 2.4681357, Epoch: 262.13579, Constituent: k1},
	}
	return []*Station{
		{ID: 1, Name: "Seattle, Puget Sound, Washington", Latitude: 47.6026, Longitude: -122.3393,
			ZoneOffset: -8 * time.Hour, DatumOffset: 6.5739127, Coefficients: coeffs},
		{ID: 2, Name: "Port Townsend, Admiralty Inlet, Washington", Latitude: 48.1125, Longitude: -122.7597,
			ZoneOffset: -8 * time.Hour, DatumOffset: 5.2, Coefficients: coeffs},
		{ID: 3, Name: "Tacoma, Commencement Bay, Washington", Latitude: 47.2667, Longitude: -122.4133,
			ZoneOffset: -8 * time.Hour, DatumOffset: 6.8, Coefficients: coeffs},
		{ID: 4, Name: "Neah Bay, Strait of Juan de Fuca, Washington", Latitude: 48.3683, Longitude: -124.6167,
			ZoneOffset: -8 * time.Hour, DatumOffset: 4.4, Coefficients: coeffs},
		{ID: 5, Name: "Honolulu, Oahu, Hawaii", Latitude: 21.3067, Longitude: -157.8670,
			ZoneOffset: -10 * time.Hour, DatumOffset: 0.9, Coefficients: coeffs},
	}
}

func testRecords() []Record {
	stations := testStations()
	records := make([]Record, 0, len(stations))
	for _, st := range stations {
		records = append(records, Record{Station: st, Reference: true})
	}
	return records
}
