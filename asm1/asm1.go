/*
Copyright © 2026 the WWTP authors.
This file is part of WWTP.

WWTP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

WWTP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with WWTP.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package asm1 implements Activated Sludge Model No. 1: the canonical
// 8-process, 13-component kinetic model for suspended-growth biological
// wastewater treatment, integrated with a fixed-step 4th-order
// Runge-Kutta scheme and Arrhenius temperature correction.
//
// All concentrations are in g/m³ (COD units for organic components,
// N units for nitrogen components, mol HCO₃⁻/m³ for alkalinity) and all
// rates are per day.
package asm1

import "math"

// Indices of the model components in a State vector.
const (
	SI   int = iota // soluble inert organic matter
	SS              // readily biodegradable substrate
	XI              // particulate inert organic matter
	XS              // slowly biodegradable substrate
	XBH             // active heterotrophic biomass
	XBA             // active autotrophic biomass
	XP              // particulate products from biomass decay
	SO              // dissolved oxygen
	SNO             // nitrate + nitrite nitrogen
	SNH             // ammonia + ammonium nitrogen
	SND             // soluble biodegradable organic nitrogen
	XND             // particulate biodegradable organic nitrogen
	SALK            // alkalinity

	// NumComponents is the length of the state vector.
	NumComponents = 13
)

// componentNames are the conventional symbols, indexed like State.
var componentNames = [NumComponents]string{
	"S_I", "S_S", "X_I", "X_S", "X_BH", "X_BA", "X_P",
	"S_O", "S_NO", "S_NH", "S_ND", "X_ND", "S_ALK",
}

// ComponentName returns the conventional symbol for a component index.
func ComponentName(i int) string { return componentNames[i] }

// State is the 13-component model state vector. The fixed-size array keeps
// the integration loop allocation-free.
type State [NumComponents]float64

// soluble reports whether component i leaves the reactor with the
// hydraulic stream (true) or is retained with the sludge (false).
func soluble(i int) bool {
	switch i {
	case SI, SS, SO, SNO, SNH, SND, SALK:
		return true
	}
	return false
}

// TotalCOD returns the total chemical oxygen demand [g/m³]; organic
// components are already expressed in COD units.
func (s State) TotalCOD() float64 {
	return s[SI] + s[SS] + s[XI] + s[XS] + s[XBH] + s[XBA] + s[XP]
}

// SolubleCOD returns the soluble chemical oxygen demand [g/m³].
func (s State) SolubleCOD() float64 { return s[SI] + s[SS] }

// ParticulateCOD returns the particulate chemical oxygen demand [g/m³].
func (s State) ParticulateCOD() float64 {
	return s[XI] + s[XS] + s[XBH] + s[XBA] + s[XP]
}

// codToTSS converts particulate COD to suspended solids mass; the
// conventional ratio is 0.75 g TSS per g COD.
const codToTSS = 0.75

// TSS returns the suspended-solids concentration implied by the
// particulate components [g/m³].
func (s State) TSS() float64 { return codToTSS * s.ParticulateCOD() }

// bod5Fraction is the conventional ratio of 5-day BOD to ultimate
// biodegradable COD.
const bod5Fraction = 0.65

// BOD5 returns the 5-day biochemical oxygen demand implied by the
// biodegradable components [g/m³].
func (s State) BOD5() float64 {
	return bod5Fraction * (s[SS] + s[XS])
}

// SolubleBOD5 returns the 5-day BOD of the soluble biodegradable
// substrate only [g/m³], the relevant quantity for an effluent after
// solids separation.
func (s State) SolubleBOD5() float64 { return bod5Fraction * s[SS] }

// TotalN returns the total nitrogen content of the state [g/m³],
// including the nitrogen bound in biomass.
func (s State) TotalN(p Params) float64 {
	return s[SNO] + s[SNH] + s[SND] + s[XND] +
		p.IXB*(s[XBH]+s[XBA]) + p.IXP*(s[XP]+s[XI])
}

// IsZero reports whether every component is zero.
func (s State) IsZero() bool {
	for _, v := range s {
		if v != 0 {
			return false
		}
	}
	return true
}

// nonNegative reports whether every component is finite and no more than
// tol below zero, clamping excursions within tolerance to zero in place.
func (s *State) nonNegative(tol float64) bool {
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
		if v < 0 {
			if v < -tol {
				return false
			}
			s[i] = 0
		}
	}
	return true
}
