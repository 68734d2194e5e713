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

package asm1

import "math"

// Indices of the eight model processes.
const (
	aerobicGrowthH int = iota // aerobic growth of heterotrophs
	anoxicGrowthH             // anoxic growth of heterotrophs
	aerobicGrowthA            // aerobic growth of autotrophs
	decayH                    // decay of heterotrophs
	decayA                    // decay of autotrophs
	ammonification            // ammonification of soluble organic N
	hydrolysisX               // hydrolysis of entrapped organics
	hydrolysisN               // hydrolysis of entrapped organic N

	numProcesses = 8
)

// Params holds the ASM1 stoichiometric and kinetic coefficients. Kinetic
// rate constants are at the 20 °C reference temperature; Corrected applies
// the Arrhenius temperature factors.
type Params struct {
	// Stoichiometry.
	YH  float64 // heterotrophic yield [g COD/g COD]
	YA  float64 // autotrophic yield [g COD/g N]
	FP  float64 // inert fraction of decayed biomass [-]
	IXB float64 // N content of biomass [g N/g COD]
	IXP float64 // N content of inert particulate products [g N/g COD]

	// Kinetics at 20 °C.
	MuH  float64 // max heterotrophic growth rate [1/d]
	KS   float64 // substrate half-saturation [g COD/m³]
	KOH  float64 // heterotrophic oxygen half-saturation [g O₂/m³]
	KNO  float64 // nitrate half-saturation [g N/m³]
	BH   float64 // heterotrophic decay rate [1/d]
	EtaG float64 // anoxic growth correction [-]
	EtaH float64 // anoxic hydrolysis correction [-]
	KH   float64 // max hydrolysis rate [g COD/g COD/d]
	KX   float64 // hydrolysis half-saturation [g COD/g COD]
	MuA  float64 // max autotrophic growth rate [1/d]
	KNH  float64 // ammonia half-saturation [g N/m³]
	BA   float64 // autotrophic decay rate [1/d]
	KOA  float64 // autotrophic oxygen half-saturation [g O₂/m³]
	KA   float64 // ammonification rate [m³/g COD/d]

	// Arrhenius temperature-correction factors θ, applied as
	// k(T) = k(20°C)·θ^(T−20).
	ThetaMuH float64
	ThetaBH  float64
	ThetaKH  float64
	ThetaKA  float64
	ThetaMuA float64
	ThetaBA  float64
}

// DefaultParams returns the typical-domestic-wastewater coefficient set at
// neutral pH (Henze et al., ASM1 task-group report).
func DefaultParams() Params {
	return Params{
		YH:  0.67,
		YA:  0.24,
		FP:  0.08,
		IXB: 0.086,
		IXP: 0.06,

		MuH:  6.0,
		KS:   20.0,
		KOH:  0.20,
		KNO:  0.50,
		BH:   0.62,
		EtaG: 0.8,
		EtaH: 0.4,
		KH:   3.0,
		KX:   0.03,
		MuA:  0.80,
		KNH:  1.0,
		BA:   0.10,
		KOA:  0.40,
		KA:   0.08,

		ThetaMuH: 1.072,
		ThetaBH:  1.029,
		ThetaKH:  1.072,
		ThetaKA:  1.072,
		ThetaMuA: 1.103,
		ThetaBA:  1.029,
	}
}

// Corrected returns a copy of p with every kinetic rate constant scaled to
// temperature T [°C]. The correction is applied once before integration,
// ahead of any switching-function evaluation.
func (p Params) Corrected(T float64) Params {
	arr := func(k, theta float64) float64 {
		return k * math.Pow(theta, T-20)
	}
	p.MuH = arr(p.MuH, p.ThetaMuH)
	p.BH = arr(p.BH, p.ThetaBH)
	p.KH = arr(p.KH, p.ThetaKH)
	p.KA = arr(p.KA, p.ThetaKA)
	p.MuA = arr(p.MuA, p.ThetaMuA)
	p.BA = arr(p.BA, p.ThetaBA)
	return p
}

// stoichiometry returns the 8×13 stoichiometric matrix for the given
// coefficient set: element [j][i] is the yield of component i in
// process j.
func (p Params) stoichiometry() [numProcesses][NumComponents]float64 {
	var m [numProcesses][NumComponents]float64

	m[aerobicGrowthH][SS] = -1 / p.YH
	m[aerobicGrowthH][XBH] = 1
	m[aerobicGrowthH][SO] = -(1 - p.YH) / p.YH
	m[aerobicGrowthH][SNH] = -p.IXB
	m[aerobicGrowthH][SALK] = -p.IXB / 14

	m[anoxicGrowthH][SS] = -1 / p.YH
	m[anoxicGrowthH][XBH] = 1
	m[anoxicGrowthH][SNO] = -(1 - p.YH) / (2.86 * p.YH)
	m[anoxicGrowthH][SNH] = -p.IXB
	m[anoxicGrowthH][SALK] = (1-p.YH)/(14*2.86*p.YH) - p.IXB/14

	m[aerobicGrowthA][XBA] = 1
	m[aerobicGrowthA][SO] = -(4.57 - p.YA) / p.YA
	m[aerobicGrowthA][SNO] = 1 / p.YA
	m[aerobicGrowthA][SNH] = -p.IXB - 1/p.YA
	m[aerobicGrowthA][SALK] = -p.IXB/14 - 1/(7*p.YA)

	m[decayH][XS] = 1 - p.FP
	m[decayH][XBH] = -1
	m[decayH][XP] = p.FP
	m[decayH][XND] = p.IXB - p.FP*p.IXP

	m[decayA][XS] = 1 - p.FP
	m[decayA][XBA] = -1
	m[decayA][XP] = p.FP
	m[decayA][XND] = p.IXB - p.FP*p.IXP

	m[ammonification][SNH] = 1
	m[ammonification][SND] = -1
	m[ammonification][SALK] = 1. / 14

	m[hydrolysisX][SS] = 1
	m[hydrolysisX][XS] = -1

	m[hydrolysisN][SND] = 1
	m[hydrolysisN][XND] = -1

	return m
}

// monod is the saturation switching function s/(k+s), zero for
// non-positive s.
func monod(s, k float64) float64 {
	if s <= 0 {
		return 0
	}
	return s / (k + s)
}

// inhibition is the reciprocal switching function k/(k+s), one for
// non-positive s.
func inhibition(s, k float64) float64 {
	if s <= 0 {
		return 1
	}
	return k / (k + s)
}

// rates evaluates the eight process rates [g/m³/d] from the current state.
// p must already be temperature-corrected.
func rates(s State, p Params) [numProcesses]float64 {
	var rho [numProcesses]float64

	growthH := p.MuH * monod(s[SS], p.KS) * s[XBH]
	rho[aerobicGrowthH] = growthH * monod(s[SO], p.KOH)
	rho[anoxicGrowthH] = growthH * inhibition(s[SO], p.KOH) * monod(s[SNO], p.KNO) * p.EtaG

	rho[aerobicGrowthA] = p.MuA * monod(s[SNH], p.KNH) * monod(s[SO], p.KOA) * s[XBA]

	rho[decayH] = p.BH * s[XBH]
	rho[decayA] = p.BA * s[XBA]

	rho[ammonification] = p.KA * s[SND] * s[XBH]

	if s[XBH] > 0 && s[XS] > 0 {
		load := s[XS] / s[XBH]
		rho[hydrolysisX] = p.KH * monod(load, p.KX) *
			(monod(s[SO], p.KOH) + p.EtaH*inhibition(s[SO], p.KOH)*monod(s[SNO], p.KNO)) *
			s[XBH]
		rho[hydrolysisN] = rho[hydrolysisX] * s[XND] / s[XS]
	}

	return rho
}
