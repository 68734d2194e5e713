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
	wwtp.Register(barScreen{})
	wwtp.Register(gritChamber{})
	wwtp.Register(oilSeparator{})
}

// barScreen models a mechanically cleaned coarse screen. Removal is a
// small fixed fraction of gross solids; the governing design check is the
// clear bar spacing.
type barScreen struct{}

func (barScreen) Type() wwtp.UnitType { return wwtp.BarScreen }
func (barScreen) Category() wwtp.Category { return wwtp.Preliminary }

func (barScreen) DefaultParameters(designFlow float64) wwtp.Parameters {
	return wwtp.Parameters{BarSpacing: 25}
}

func (barScreen) CostFactors() wwtp.CostFactors {
	return wwtp.CostFactors{CapitalPerFlow: 15, OperatingPerVolume: 0.002}
}

func (barScreen) EnergyIntensity(p wwtp.Parameters) float64 { return 0.002 }

func (barScreen) SludgeYield(in, out wwtp.WaterQuality, p wwtp.Parameters) float64 {
	return solidsRemoved(in, out)
}

func (m barScreen) Simulate(in wwtp.WaterQuality, p wwtp.Parameters, g *standards.Guidelines) wwtp.Result {
	if r, ok := zeroFlow(in); ok {
		return r
	}
	e := newEvaluation()
	if p.BarSpacing <= 0 {
		e.critical("bar_spacing", "bar spacing must be positive", p.BarSpacing, "mm",
			"set the clear spacing between bars")
		return e.degraded(in)
	}
	e.checkBound(g, m.Type(), standards.VarBarSpacing, p.BarSpacing)

	// Fine spacing captures marginally more solids.
	tss := 0.05
	if p.BarSpacing < 20 {
		tss = 0.07
	}
	r := wwtp.Removal{BOD: 0.02, COD: 0.02, TSS: tss}
	return e.result(applyRemoval(in, r), r)
}

// gritChamber models an aerated grit chamber sized by detention time at
// design flow.
type gritChamber struct{}

func (gritChamber) Type() wwtp.UnitType { return wwtp.GritChamber }
func (gritChamber) Category() wwtp.Category { return wwtp.Preliminary }

func (gritChamber) DefaultParameters(designFlow float64) wwtp.Parameters {
	// 3 min detention at design flow.
	return wwtp.Parameters{Volume: designFlow * 3 / inMinutes}
}

func (gritChamber) CostFactors() wwtp.CostFactors {
	return wwtp.CostFactors{CapitalPerFlow: 25, OperatingPerVolume: 0.003}
}

func (gritChamber) EnergyIntensity(p wwtp.Parameters) float64 { return 0.008 }

func (gritChamber) SludgeYield(in, out wwtp.WaterQuality, p wwtp.Parameters) float64 {
	return solidsRemoved(in, out)
}

func (m gritChamber) Simulate(in wwtp.WaterQuality, p wwtp.Parameters, g *standards.Guidelines) wwtp.Result {
	if r, ok := zeroFlow(in); ok {
		return r
	}
	e := newEvaluation()
	t, ok := hrt(p.Volume, in.Flow, inMinutes)
	if !ok {
		e.critical("volume", "chamber volume must be positive for nonzero flow", p.Volume, "m³",
			"set the chamber volume")
		return e.degraded(in)
	}
	e.checkBound(g, m.Type(), standards.VarHRT, t)

	// Grit capture improves with detention up to about 5 min.
	tss := 0.08 + 0.015*t
	if tss > 0.15 {
		tss = 0.15
	}
	r := wwtp.Removal{BOD: 0.03, COD: 0.03, TSS: tss}
	return e.result(applyRemoval(in, r), r)
}

// oilSeparator models a gravity oil-water separator (API style). The
// tracked effect is the skimmed floatables' contribution to BOD/COD/TSS.
type oilSeparator struct{}

func (oilSeparator) Type() wwtp.UnitType { return wwtp.OilSeparator }
func (oilSeparator) Category() wwtp.Category { return wwtp.Preliminary }

func (oilSeparator) DefaultParameters(designFlow float64) wwtp.Parameters {
	// 30 min separation time.
	return wwtp.Parameters{Volume: designFlow * 30 / inMinutes}
}

func (oilSeparator) CostFactors() wwtp.CostFactors {
	return wwtp.CostFactors{CapitalPerFlow: 30, OperatingPerVolume: 0.004}
}

func (oilSeparator) EnergyIntensity(p wwtp.Parameters) float64 { return 0.005 }

func (oilSeparator) SludgeYield(in, out wwtp.WaterQuality, p wwtp.Parameters) float64 {
	return solidsRemoved(in, out)
}

func (m oilSeparator) Simulate(in wwtp.WaterQuality, p wwtp.Parameters, g *standards.Guidelines) wwtp.Result {
	if r, ok := zeroFlow(in); ok {
		return r
	}
	e := newEvaluation()
	t, ok := hrt(p.Volume, in.Flow, inMinutes)
	if !ok {
		e.critical("volume", "separator volume must be positive for nonzero flow", p.Volume, "m³",
			"set the separator volume")
		return e.degraded(in)
	}
	e.checkBound(g, m.Type(), standards.VarHRT, t)

	r := wwtp.Removal{BOD: 0.05, COD: 0.05, TSS: 0.10}
	return e.result(applyRemoval(in, r), r)
}
