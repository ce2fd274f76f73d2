// Sailtide - Sailing Watch Companion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sailtide

package tides

import (
	"time"

	"github.com/tomtom215/sailtide/internal/geo"
)

// HarmonicPayload is everything a client-side predictor needs for one
// station. Amp, Epoch and Speed are aligned by coefficient, and so is each
// per-year slice in Equilibrium and NodeFactor.
type HarmonicPayload struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	ZoneOffset  int               `json:"zone_offset"`
	Datum       float64           `json:"datum"`
	Amp         []float64         `json:"amp"`
	Epoch       []float64         `json:"epoch"`
	Speed       []float64         `json:"speed"`
	Years       []int             `json:"years"`
	Equilibrium map[int][]float64 `json:"equilibrium"`
	NodeFactor  map[int][]float64 `json:"node_factor"`
}

// Assemble builds the harmonic payload for st over the given years. It fails
// with *MissingYearDataError if any constituent lacks node factors for one
// of the years.
func Assemble(st *Station, years []int) (*HarmonicPayload, error) {
	n := len(st.Coefficients)
	p := &HarmonicPayload{
		ID:          st.ID,
		Name:        st.Name,
		ZoneOffset:  int(st.ZoneOffset / time.Minute),
		Datum:       geo.RoundSig(st.DatumOffset, geo.DatumDigits),
		Amp:         make([]float64, 0, n),
		Epoch:       make([]float64, 0, n),
		Speed:       make([]float64, 0, n),
		Years:       append([]int(nil), years...),
		Equilibrium: make(map[int][]float64, len(years)),
		NodeFactor:  make(map[int][]float64, len(years)),
	}
	if p.Years == nil {
		p.Years = []int{}
	}

	for _, co := range st.Coefficients {
		p.Amp = append(p.Amp, geo.RoundSig(co.Amplitude, geo.HarmonicDigits))
		p.Epoch = append(p.Epoch, geo.RoundSig(co.Epoch, geo.HarmonicDigits))
		p.Speed = append(p.Speed, geo.RoundSig(co.Constituent.Speed, geo.HarmonicDigits))
	}

	for _, year := range years {
		eq := make([]float64, 0, n)
		nf := make([]float64, 0, n)
		for _, co := range st.Coefficients {
			f, ok := co.Constituent.NodeFactors[year]
			if !ok {
				return nil, &MissingYearDataError{
					StationID:   st.ID,
					Constituent: co.Constituent.Name,
					Year:        year,
				}
			}
			eq = append(eq, geo.RoundSig(f.Equilibrium, geo.HarmonicDigits))
			nf = append(nf, geo.RoundSig(f.NodeFactor, geo.NodeFactorDigits))
		}
		p.Equilibrium[year] = eq
		p.NodeFactor[year] = nf
	}

	return p, nil
}

// YearWindow returns count consecutive years starting at first.
func YearWindow(first, count int) []int {
	if count <= 0 {
		return []int{}
	}
	years := make([]int, count)
	for i := range years {
		years[i] = first + i
	}
	return years
}
