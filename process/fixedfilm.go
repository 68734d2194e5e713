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
	"math"

	"github.com/watermodel/wwtp"
	"github.com/watermodel/wwtp/standards"
)

func init() {
	wwtp.Register(tricklingFilter{})
	wwtp.Register(oxidationPond{})
	wwtp.Register(uasb{})
}

// tricklingFilter models a rock-media attached-growth filter using the
// NRC loading correlation.
type tricklingFilter struct{}

func (tricklingFilter) Type() wwtp.UnitType { return wwtp.TricklingFilter }
func (tricklingFilter) Category() wwtp.Category { return wwtp.Biological }

func (tricklingFilter) DefaultParameters(designFlow float64) wwtp.Parameters {
	// Sized for ~0.25 kg BOD/m³/d at a typical 200 mg/L settled load.
	return wwtp.Parameters{MediaVolume: designFlow * 0.8, Recycle: 1}
}

func (tricklingFilter) CostFactors() wwtp.CostFactors {
	return wwtp.CostFactors{CapitalPerFlow: 130, OperatingPerVolume: 0.020}
}

func (tricklingFilter) EnergyIntensity(p wwtp.Parameters) float64 { return 0.08 }

func (tricklingFilter) SludgeYield(in, out wwtp.WaterQuality, p wwtp.Parameters) float64 {
	removed := (in.BOD - out.BOD) * in.Flow / 1000
	if removed < 0 || math.IsNaN(removed) {
		return 0
	}
	// Sloughed humus solids.
	return 0.4 * removed
}

func (m tricklingFilter) Simulate(in wwtp.WaterQuality, p wwtp.Parameters, g *standards.Guidelines) wwtp.Result {
	if r, ok := zeroFlow(in); ok {
		return r
	}
	e := newEvaluation()
	if p.MediaVolume <= 0 {
		e.critical("media_volume", "media volume must be positive for nonzero flow",
			p.MediaVolume, "m³", "set the filter media volume")
		return e.degraded(in)
	}

	w := in.BOD * in.Flow / 1000 // BOD load [kg/d]
	e.checkBound(g, m.Type(), standards.VarOrganicLoad, w/p.MediaVolume)

	// Recirculation factor F = (1+R)/(1+R/10)².
	rc := p.Recycle
	if rc < 0 {
		rc = 0
	}
	f := (1 + rc) / math.Pow(1+rc/10, 2)

	// NRC first-stage efficiency; loading in kg/m³/d needs the 0.4432
	// coefficient for metric units.
	eff := 1 / (1 + 0.4432*math.Sqrt(w/(p.MediaVolume*f)))
	// Attached-growth nitrification is weak at these loadings.
	r := wwtp.Removal{
		BOD:      eff,
		COD:      0.9 * eff,
		TSS:      0.65,
		AmmoniaN: 0.25 * eff,
		TotalN:   0.15 * eff,
		TotalP:   0.10,
	}
	return e.result(applyRemoval(in, r), r)
}

// oxidationPond models a facultative stabilization pond with first-order
// BOD decay over its long detention time.
type oxidationPond struct{}

func (oxidationPond) Type() wwtp.UnitType { return wwtp.OxidationPond }
func (oxidationPond) Category() wwtp.Category { return wwtp.Biological }

func (oxidationPond) DefaultParameters(designFlow float64) wwtp.Parameters {
	return wwtp.Parameters{Volume: designFlow * 20, Depth: 1.5} // 20 d detention
}

func (oxidationPond) CostFactors() wwtp.CostFactors {
	return wwtp.CostFactors{CapitalPerFlow: 40, OperatingPerVolume: 0.005}
}

func (oxidationPond) EnergyIntensity(p wwtp.Parameters) float64 { return 0.010 }

func (oxidationPond) SludgeYield(in, out wwtp.WaterQuality, p wwtp.Parameters) float64 {
	// Solids accrete in the pond bottom and are not wasted continuously.
	return 0
}

// Facultative-pond decay constant at 20 °C and its Arrhenius factor.
const (
	pondK20   = 0.25 // 1/d
	pondTheta = 1.06
)

func (m oxidationPond) Simulate(in wwtp.WaterQuality, p wwtp.Parameters, g *standards.Guidelines) wwtp.Result {
	if r, ok := zeroFlow(in); ok {
		return r
	}
	e := newEvaluation()
	t, ok := hrt(p.Volume, in.Flow, inDays)
	if !ok {
		e.critical("volume", "pond volume must be positive for nonzero flow", p.Volume, "m³",
			"set the pond volume")
		return e.degraded(in)
	}
	e.checkBound(g, m.Type(), standards.VarHRT, t)

	k := pondK20 * math.Pow(pondTheta, in.Temperature-20)
	eff := 1 - 1/(1+k*t)
	r := wwtp.Removal{
		BOD:           eff,
		COD:           0.85 * eff,
		TSS:           0.60,
		AmmoniaN:      0.5 * eff, // volatilization and algal uptake
		TotalN:        0.4 * eff,
		TotalP:        0.30,
		FecalColiform: 1 - 1/math.Pow(1+0.8*t, 2), // die-off over detention
	}
	return e.result(applyRemoval(in, r), r)
}

// uasb models an upflow anaerobic sludge blanket reactor with the
// empirical detention-time efficiency correlation for municipal sewage.
type uasb struct{}

func (uasb) Type() wwtp.UnitType { return wwtp.UASB }
func (uasb) Category() wwtp.Category { return wwtp.Biological }

func (uasb) DefaultParameters(designFlow float64) wwtp.Parameters {
	return wwtp.Parameters{Volume: designFlow * 8 / inHours, Depth: 5} // 8 h HRT
}

func (uasb) CostFactors() wwtp.CostFactors {
	return wwtp.CostFactors{CapitalPerFlow: 120, OperatingPerVolume: 0.015}
}

// Anaerobic treatment is a net energy producer once biogas is recovered.
func (uasb) EnergyIntensity(p wwtp.Parameters) float64 { return -0.08 }

func (uasb) SludgeYield(in, out wwtp.WaterQuality, p wwtp.Parameters) float64 {
	removed := (in.COD - out.COD) * in.Flow / 1000
	if removed < 0 || math.IsNaN(removed) {
		return 0
	}
	// Anaerobic yields are an order of magnitude below aerobic ones.
	return 0.10 * removed
}

func (m uasb) Simulate(in wwtp.WaterQuality, p wwtp.Parameters, g *standards.Guidelines) wwtp.Result {
	if r, ok := zeroFlow(in); ok {
		return r
	}
	e := newEvaluation()
	t, ok := hrt(p.Volume, in.Flow, inHours)
	if !ok {
		e.critical("volume", "reactor volume must be positive for nonzero flow", p.Volume, "m³",
			"set the reactor volume")
		return e.degraded(in)
	}
	e.checkBound(g, m.Type(), standards.VarHRT, t)
	if p.Depth > 0 {
		// Upflow velocity = Q/A = Q·depth/V [m/h].
		v := in.Flow * p.Depth / p.Volume / 24
		e.checkBound(g, m.Type(), standards.VarUpflowVelocity, v)
	}

	// COD efficiency versus detention time (Chernicharo), derated below
	// the mesophilic optimum.
	eff := 1 - 0.68*math.Pow(t, -0.35)
	eff *= math.Pow(1.035, math.Min(in.Temperature, 30)-30)
	eff = wwtp.ClipFraction(eff)
	if eff > 0.85 {
		eff = 0.85
	}

	// Anaerobic stages mineralize organic N to ammonia instead of
	// removing it.
	r := wwtp.Removal{
		BOD:    eff,
		COD:    0.95 * eff,
		TSS:    0.60,
		TotalP: 0.05,
	}
	out := applyRemoval(in, r)
	released := 0.1 * (in.TotalN - in.AmmoniaN)
	if released > 0 {
		out.AmmoniaN = in.AmmoniaN + released
	}
	return e.result(out, r)
}
