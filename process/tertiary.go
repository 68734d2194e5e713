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
	wwtp.Register(filtration{})
	wwtp.Register(chlorination{})
	wwtp.Register(uvDisinfection{})
}

// filtration models tertiary granular-media filtration.
type filtration struct{}

func (filtration) Type() wwtp.UnitType { return wwtp.Filtration }
func (filtration) Category() wwtp.Category { return wwtp.Tertiary }

func (filtration) DefaultParameters(designFlow float64) wwtp.Parameters {
	rate := 8.0 // m/h
	return wwtp.Parameters{FilterRate: rate, SurfaceArea: designFlow / (rate * 24)}
}

func (filtration) CostFactors() wwtp.CostFactors {
	return wwtp.CostFactors{CapitalPerFlow: 90, OperatingPerVolume: 0.020}
}

func (filtration) EnergyIntensity(p wwtp.Parameters) float64 { return 0.05 }

func (filtration) SludgeYield(in, out wwtp.WaterQuality, p wwtp.Parameters) float64 {
	// Backwash solids return to the head of the works as a thin chemical
	// sludge.
	return solidsRemoved(in, out)
}

func (m filtration) Simulate(in wwtp.WaterQuality, p wwtp.Parameters, g *standards.Guidelines) wwtp.Result {
	if r, ok := zeroFlow(in); ok {
		return r
	}
	e := newEvaluation()
	rate := p.FilterRate
	if rate <= 0 && p.SurfaceArea > 0 {
		rate = in.Flow / (p.SurfaceArea * 24)
	}
	if rate <= 0 {
		e.critical("filter_rate", "filtration rate or surface area must be positive",
			rate, "m/h", "set the filtration rate or the filter surface area")
		return e.degraded(in)
	}
	e.checkBound(g, m.Type(), standards.VarFilterRate, rate)

	// Capture drifts down as the hydraulic rate climbs.
	tss := 0.80 - 0.02*rate
	if tss > 0.75 {
		tss = 0.75
	}
	if tss < 0.40 {
		tss = 0.40
	}
	r := wwtp.Removal{
		TSS:           tss,
		BOD:           0.45 * tss,
		COD:           0.40 * tss,
		TotalP:        0.45, // coagulant-dosed polishing
		FecalColiform: 0.65,
	}
	return e.result(applyRemoval(in, r), r)
}

// chlorination models a chlorine contact basin. Coliform inactivation
// follows the Collins-Selleck dose-contact relationship; organic
// parameters pass through essentially unchanged.
type chlorination struct{}

func (chlorination) Type() wwtp.UnitType { return wwtp.Chlorination }
func (chlorination) Category() wwtp.Category { return wwtp.Disinfection }

func (chlorination) DefaultParameters(designFlow float64) wwtp.Parameters {
	return wwtp.Parameters{
		ChlorineDose: 6,
		ContactTime:  30,
		Volume:       designFlow * 30 / inMinutes,
	}
}

func (chlorination) CostFactors() wwtp.CostFactors {
	return wwtp.CostFactors{CapitalPerFlow: 25, OperatingPerVolume: 0.010}
}

func (chlorination) EnergyIntensity(p wwtp.Parameters) float64 { return 0.010 }

func (chlorination) SludgeYield(in, out wwtp.WaterQuality, p wwtp.Parameters) float64 { return 0 }

func (m chlorination) Simulate(in wwtp.WaterQuality, p wwtp.Parameters, g *standards.Guidelines) wwtp.Result {
	if r, ok := zeroFlow(in); ok {
		return r
	}
	e := newEvaluation()
	if p.ChlorineDose <= 0 {
		e.critical("chlorine_dose", "chlorine dose must be positive", p.ChlorineDose, "mg/L",
			"set the applied chlorine dose")
		return e.degraded(in)
	}
	ct := p.ContactTime
	if ct <= 0 {
		if t, ok := hrt(p.Volume, in.Flow, inMinutes); ok {
			ct = t
		}
	}
	if ct <= 0 {
		e.critical("contact_time", "contact time must be positive for nonzero flow", ct, "min",
			"set the contact time or basin volume")
		return e.degraded(in)
	}
	e.checkBound(g, m.Type(), standards.VarChlorineDose, p.ChlorineDose)
	e.checkBound(g, m.Type(), standards.VarContactTime, ct)

	// Collins: N/N₀ = (1 + 0.23·C·t)⁻³.
	survival := math.Pow(1+0.23*p.ChlorineDose*ct, -3)
	r := wwtp.Removal{FecalColiform: 1 - survival}
	return e.result(applyRemoval(in, r), r)
}

// uvDisinfection models channel UV disinfection; inactivation scales with
// the delivered dose.
type uvDisinfection struct{}

func (uvDisinfection) Type() wwtp.UnitType { return wwtp.UVDisinfection }
func (uvDisinfection) Category() wwtp.Category { return wwtp.Disinfection }

func (uvDisinfection) DefaultParameters(designFlow float64) wwtp.Parameters {
	return wwtp.Parameters{UVDose: 40}
}

func (uvDisinfection) CostFactors() wwtp.CostFactors {
	return wwtp.CostFactors{CapitalPerFlow: 60, OperatingPerVolume: 0.015}
}

func (uvDisinfection) EnergyIntensity(p wwtp.Parameters) float64 { return 0.04 }

func (uvDisinfection) SludgeYield(in, out wwtp.WaterQuality, p wwtp.Parameters) float64 { return 0 }

func (m uvDisinfection) Simulate(in wwtp.WaterQuality, p wwtp.Parameters, g *standards.Guidelines) wwtp.Result {
	if r, ok := zeroFlow(in); ok {
		return r
	}
	e := newEvaluation()
	if p.UVDose <= 0 {
		e.critical("uv_dose", "UV dose must be positive", p.UVDose, "mJ/cm²",
			"set the delivered UV dose")
		return e.degraded(in)
	}
	e.checkBound(g, m.Type(), standards.VarUVDose, p.UVDose)
	if in.TSS > 30 {
		e.issues = append(e.issues, wwtp.DesignIssue{
			Severity:    wwtp.SeverityWarning,
			Parameter:   "TSS",
			Message:     "influent solids shield organisms from UV; upstream filtration is advised",
			Value:       in.TSS,
			Recommended: 30,
			Unit:        "mg/L",
			Remediation: "add tertiary filtration ahead of the UV channel",
		})
		e.status = e.status.Worst(wwtp.StatusWarning)
	}

	// About one log₁₀ of inactivation per 10 mJ/cm², capped at the
	// practical 6-log ceiling.
	logKill := math.Min(p.UVDose/10, 6)
	r := wwtp.Removal{FecalColiform: 1 - math.Pow(10, -logKill)}
	return e.result(applyRemoval(in, r), r)
}
