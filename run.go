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

package wwtp

import (
	"math"

	"github.com/watermodel/wwtp/standards"
)

// ComputeTreatmentTrain folds the influent through the ordered unit list,
// left to right, each unit consuming the previous unit's effluent, then
// evaluates the final effluent against the selected standard. It is a pure
// function: repeated calls with identical inputs produce identical
// results, and one unit's failure never aborts computation of the
// remaining units.
//
// An empty unit list is not an error: the influent passes through
// unchanged and compliance is evaluated directly against it. A unit with
// nil parameters is marked not-configured and also passes water through
// unchanged.
func ComputeTreatmentTrain(influent WaterQuality, units []UnitConfig, std standards.Standard) *TreatmentSystem {
	return ComputeTreatmentTrainGuided(influent, units, std, standards.DefaultGuidelines())
}

// ComputeTreatmentTrainGuided is ComputeTreatmentTrain with explicit
// design-guideline bounds instead of the embedded engineering defaults.
func ComputeTreatmentTrainGuided(influent WaterQuality, units []UnitConfig, std standards.Standard, g *standards.Guidelines) *TreatmentSystem {
	sys := &TreatmentSystem{
		Influent: influent,
		Units:    make([]UnitInstance, 0, len(units)),
	}

	current := influent
	for _, cfg := range units {
		inst := computeUnit(current, cfg, g)
		sys.Units = append(sys.Units, inst)
		current = inst.Effluent
	}
	sys.Effluent = current

	sys.Compliance = EvaluateCompliance(sys.Effluent, std)
	sys.OverallRemoval = overallRemoval(sys.Influent, sys.Effluent)

	status := StatusNotConfigured
	for _, u := range sys.Units {
		status = status.Worst(u.Status)
	}
	if sys.Compliance.IsCompliant {
		status = status.Worst(StatusPass)
	} else {
		status = status.Worst(StatusFail)
	}
	sys.OverallStatus = status
	return sys
}

// computeUnit runs one unit model, isolating any misbehavior to this unit:
// an unregistered type or nil parameters yields a pass-through instance
// rather than an error.
func computeUnit(in WaterQuality, cfg UnitConfig, g *standards.Guidelines) UnitInstance {
	inst := UnitInstance{Type: cfg.Type, Effluent: in}

	m, err := ModelForType(cfg.Type)
	if err != nil {
		inst.Status = StatusFail
		inst.Issues = []DesignIssue{{
			Severity:  SeverityCritical,
			Parameter: "type",
			Message:   err.Error(),
		}}
		return inst
	}
	if cfg.Parameters == nil {
		inst.Status = StatusNotConfigured
		return inst
	}
	inst.Parameters = *cfg.Parameters
	inst.Configured = true

	r := m.Simulate(in, *cfg.Parameters, g)
	inst.Effluent = sanitizeEffluent(in, r.Effluent)
	inst.Removal = r.Removal.Clip()
	inst.Status = r.Status
	inst.Issues = r.Issues
	return inst
}

// sanitizeEffluent guards the train against a model returning a physically
// meaningless stream state: flow and concentrations must be finite and
// non-negative. Offending fields fall back to the unit's influent value,
// which is the defined degraded behavior for a failed unit.
func sanitizeEffluent(in, out WaterQuality) WaterQuality {
	out.Flow = fixConc(out.Flow, in.Flow)
	out.BOD = fixConc(out.BOD, in.BOD)
	out.COD = fixConc(out.COD, in.COD)
	out.TSS = fixConc(out.TSS, in.TSS)
	out.AmmoniaN = fixConc(out.AmmoniaN, in.AmmoniaN)
	out.NitrateN = fixConc(out.NitrateN, in.NitrateN)
	out.TotalN = fixConc(out.TotalN, in.TotalN)
	out.TotalP = fixConc(out.TotalP, in.TotalP)
	out.PH = fixConc(out.PH, in.PH)
	out.Temperature = fixConc(out.Temperature, in.Temperature)
	// FecalColiform legitimately stays NaN when never computed.
	if math.IsInf(out.FecalColiform, 0) || out.FecalColiform < 0 {
		out.FecalColiform = in.FecalColiform
	}
	return out
}

func fixConc(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fallback
	}
	return v
}

// overallRemoval is the influent-to-effluent fractional reduction per
// tracked parameter.
func overallRemoval(in, out WaterQuality) Removal {
	return Removal{
		BOD:           removalFraction(in.BOD, out.BOD),
		COD:           removalFraction(in.COD, out.COD),
		TSS:           removalFraction(in.TSS, out.TSS),
		AmmoniaN:      removalFraction(in.AmmoniaN, out.AmmoniaN),
		TotalN:        removalFraction(in.TotalN, out.TotalN),
		TotalP:        removalFraction(in.TotalP, out.TotalP),
		FecalColiform: removalFraction(in.FecalColiform, out.FecalColiform),
	}.Clip()
}

// removalFraction returns the fractional reduction from in to out,
// degrading to zero for zero or unmeasured influent.
func removalFraction(in, out float64) float64 {
	if in <= 0 || math.IsNaN(in) || math.IsNaN(out) {
		return 0
	}
	return ClipFraction(1 - out/in)
}
