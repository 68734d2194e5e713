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

package process

import (
	"github.com/watermodel/wwtp"
	"github.com/watermodel/wwtp/standards"
)

func init() {
	wwtp.Register(primaryClarifier{})
	wwtp.Register(secondaryClarifier{})
	wwtp.Register(daf{})
}

// codPerTSS is the chemical oxygen demand carried per unit of suspended
// solids removed by a settling process [g COD/g TSS].
const codPerTSS = 1.33

// overflowRate returns the surface overflow rate [m³/m²/d], or false for
// a non-positive surface area.
func overflowRate(area, flow float64) (float64, bool) {
	if area <= 0 || flow <= 0 {
		return 0, false
	}
	return flow / area, true
}

// settle computes the effluent of a gravity separation stage from its TSS
// capture fraction: the removed solids carry a proportional share of BOD,
// COD, particulate nutrients, and attached bacteria with them.
func settle(in wwtp.WaterQuality, tss, bodPerTSS float64) (wwtp.WaterQuality, wwtp.Removal) {
	r := wwtp.Removal{
		TSS:           tss,
		BOD:           bodPerTSS * tss,
		TotalN:        0.05,
		TotalP:        0.10,
		FecalColiform: 0.5 * tss,
	}
	// COD leaves with the settled solids rather than by its own fraction.
	if in.COD > 0 {
		r.COD = wwtp.ClipFraction(in.TSS * tss * codPerTSS / in.COD)
		if r.COD > 0.6 {
			r.COD = 0.6
		}
	}
	return applyRemoval(in, r), r
}

// primaryClarifier models primary sedimentation. TSS capture is a linear
// function of surface overflow rate within the feasible operating band.
type primaryClarifier struct{}

func (primaryClarifier) Type() wwtp.UnitType { return wwtp.PrimaryClarifier }
func (primaryClarifier) Category() wwtp.Category { return wwtp.Primary }

func (primaryClarifier) DefaultParameters(designFlow float64) wwtp.Parameters {
	area := designFlow / 40 // 40 m³/m²/d overflow rate
	return wwtp.Parameters{SurfaceArea: area, Depth: 3.5, Volume: area * 3.5}
}

func (primaryClarifier) CostFactors() wwtp.CostFactors {
	return wwtp.CostFactors{CapitalPerFlow: 80, OperatingPerVolume: 0.010}
}

func (primaryClarifier) EnergyIntensity(p wwtp.Parameters) float64 { return 0.010 }

func (primaryClarifier) SludgeYield(in, out wwtp.WaterQuality, p wwtp.Parameters) float64 {
	return solidsRemoved(in, out)
}

func (m primaryClarifier) Simulate(in wwtp.WaterQuality, p wwtp.Parameters, g *standards.Guidelines) wwtp.Result {
	if r, ok := zeroFlow(in); ok {
		return r
	}
	e := newEvaluation()
	sor, ok := overflowRate(p.SurfaceArea, in.Flow)
	if !ok {
		e.critical("surface_area", "clarifier surface area must be positive for nonzero flow",
			p.SurfaceArea, "m²", "set the clarifier surface area")
		return e.degraded(in)
	}
	e.checkBound(g, m.Type(), standards.VarOverflowRate, sor)

	// Capture degrades with overflow rate; textbook band 30–70%.
	tss := 0.90 - 0.008*sor
	if tss > 0.70 {
		tss = 0.70
	}
	if tss < 0.30 {
		tss = 0.30
	}
	out, r := settle(in, tss, 0.5)
	return e.result(out, r)
}

// secondaryClarifier models final sedimentation downstream of a
// suspended-growth reactor, separating mixed-liquor solids from the
// treated stream.
type secondaryClarifier struct{}

func (secondaryClarifier) Type() wwtp.UnitType { return wwtp.SecondaryClarifier }
func (secondaryClarifier) Category() wwtp.Category { return wwtp.Biological }

func (secondaryClarifier) DefaultParameters(designFlow float64) wwtp.Parameters {
	area := designFlow / 24 // 24 m³/m²/d overflow rate
	return wwtp.Parameters{SurfaceArea: area, Depth: 4, Volume: area * 4}
}

func (secondaryClarifier) CostFactors() wwtp.CostFactors {
	return wwtp.CostFactors{CapitalPerFlow: 70, OperatingPerVolume: 0.010}
}

func (secondaryClarifier) EnergyIntensity(p wwtp.Parameters) float64 { return 0.015 }

func (secondaryClarifier) SludgeYield(in, out wwtp.WaterQuality, p wwtp.Parameters) float64 {
	return solidsRemoved(in, out)
}

func (m secondaryClarifier) Simulate(in wwtp.WaterQuality, p wwtp.Parameters, g *standards.Guidelines) wwtp.Result {
	if r, ok := zeroFlow(in); ok {
		return r
	}
	e := newEvaluation()
	sor, ok := overflowRate(p.SurfaceArea, in.Flow)
	if !ok {
		e.critical("surface_area", "clarifier surface area must be positive for nonzero flow",
			p.SurfaceArea, "m²", "set the clarifier surface area")
		return e.degraded(in)
	}
	e.checkBound(g, m.Type(), standards.VarOverflowRate, sor)

	// Well-flocculated biological solids settle better than raw solids.
	tss := 0.92 - 0.006*sor
	if tss > 0.85 {
		tss = 0.85
	}
	if tss < 0.40 {
		tss = 0.40
	}
	out, r := settle(in, tss, 0.4)
	return e.result(out, r)
}

// daf models dissolved air flotation, used where solids or fats float
// more readily than they settle.
type daf struct{}

func (daf) Type() wwtp.UnitType { return wwtp.DAF }
func (daf) Category() wwtp.Category { return wwtp.Primary }

func (daf) DefaultParameters(designFlow float64) wwtp.Parameters {
	area := designFlow / 120 // 120 m³/m²/d hydraulic loading
	return wwtp.Parameters{SurfaceArea: area, Depth: 2.5, Volume: area * 2.5}
}

func (daf) CostFactors() wwtp.CostFactors {
	return wwtp.CostFactors{CapitalPerFlow: 100, OperatingPerVolume: 0.030}
}

func (daf) EnergyIntensity(p wwtp.Parameters) float64 { return 0.060 }

func (daf) SludgeYield(in, out wwtp.WaterQuality, p wwtp.Parameters) float64 {
	return solidsRemoved(in, out)
}

func (m daf) Simulate(in wwtp.WaterQuality, p wwtp.Parameters, g *standards.Guidelines) wwtp.Result {
	if r, ok := zeroFlow(in); ok {
		return r
	}
	e := newEvaluation()
	sor, ok := overflowRate(p.SurfaceArea, in.Flow)
	if !ok {
		e.critical("surface_area", "flotation area must be positive for nonzero flow",
			p.SurfaceArea, "m²", "set the flotation surface area")
		return e.degraded(in)
	}
	e.checkBound(g, m.Type(), standards.VarOverflowRate, sor)

	// Flotation holds 70–90% capture across its hydraulic band.
	tss := 0.95 - 0.0015*sor
	if tss > 0.90 {
		tss = 0.90
	}
	if tss < 0.50 {
		tss = 0.50
	}
	out, r := settle(in, tss, 0.45)
	// Coagulant-aided flotation strips phosphorus harder than settling.
	r.TotalP = 0.30
	out.TotalP = in.TotalP * (1 - r.TotalP)
	return e.result(out, r)
}
