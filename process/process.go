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

// Package process implements one model per treatment unit type, each a
// deterministic empirical or semi-empirical formula relating design
// parameters and influent quality to effluent quality. Importing the
// package registers every model with the wwtp registry.
//
// Every model is a total function: zero-flow influent degrades to a
// zero-concentration pass-through, and physically infeasible designs
// produce a critical issue plus a zero-removal output instead of an
// error.
package process

import (
	"fmt"
	"math"

	"github.com/watermodel/wwtp"
	"github.com/watermodel/wwtp/standards"
)

// evaluation accumulates issues and the worst status while a model checks
// its design against guideline bounds.
type evaluation struct {
	issues []wwtp.DesignIssue
	status wwtp.Status
}

func newEvaluation() *evaluation {
	return &evaluation{status: wwtp.StatusPass}
}

// checkBound evaluates a design variable against the guideline bound for
// the given unit type, emitting a warning outside the best-practice range
// and a critical issue outside the feasible range. Unknown bounds are
// skipped so that trimmed-down guideline files stay usable.
func (e *evaluation) checkBound(g *standards.Guidelines, t wwtp.UnitType, variable string, v float64) {
	if g == nil {
		return
	}
	b, ok := g.Lookup(string(t), variable)
	if !ok {
		return
	}
	switch {
	case v < b.HardMin || v > b.HardMax:
		e.critical(variable,
			fmt.Sprintf("%s = %g %s is outside the feasible range %g–%g %s",
				variable, v, b.Unit, b.HardMin, b.HardMax, b.Unit),
			v, b.Unit, b.Remediation)
	case v < b.SoftMin || v > b.SoftMax:
		rec := b.SoftMin
		if v > b.SoftMax {
			rec = b.SoftMax
		}
		e.issues = append(e.issues, wwtp.DesignIssue{
			Severity:    wwtp.SeverityWarning,
			Parameter:   variable,
			Message: fmt.Sprintf("%s = %g %s is outside the recommended range %g–%g %s",
				variable, v, b.Unit, b.SoftMin, b.SoftMax, b.Unit),
			Value:       v,
			Recommended: rec,
			Unit:        b.Unit,
			Remediation: b.Remediation,
		})
		e.status = e.status.Worst(wwtp.StatusWarning)
	}
}

// critical records a physically infeasible design. Critical issues mark
// the unit as failed but never abort the train.
func (e *evaluation) critical(param, msg string, v float64, unit, remediation string) {
	e.issues = append(e.issues, wwtp.DesignIssue{
		Severity:    wwtp.SeverityCritical,
		Parameter:   param,
		Message:     msg,
		Value:       v,
		Unit:        unit,
		Remediation: remediation,
	})
	e.status = e.status.Worst(wwtp.StatusFail)
}

// result assembles a Result from the accumulated evaluation and the
// computed effluent and removal.
func (e *evaluation) result(out wwtp.WaterQuality, r wwtp.Removal) wwtp.Result {
	return wwtp.Result{
		Effluent: out,
		Removal:  r.Clip(),
		Status:   e.status,
		Issues:   e.issues,
	}
}

// degraded is the defined output for an infeasible design: zero removal,
// influent passed through unchanged.
func (e *evaluation) degraded(in wwtp.WaterQuality) wwtp.Result {
	return e.result(in, wwtp.Removal{})
}

// zeroFlow reports whether the influent carries no flow and, if so,
// returns the graceful zero-concentration output mandated for that case.
func zeroFlow(in wwtp.WaterQuality) (wwtp.Result, bool) {
	if in.Flow > 0 {
		return wwtp.Result{}, false
	}
	out := wwtp.WaterQuality{
		Flow:          0,
		PH:            in.PH,
		Temperature:   in.Temperature,
		FecalColiform: in.FecalColiform,
	}
	return wwtp.Result{Effluent: out, Status: wwtp.StatusPass}, true
}

// applyRemoval produces the effluent implied by fractional removals,
// leaving flow, pH, and temperature untouched.
func applyRemoval(in wwtp.WaterQuality, r wwtp.Removal) wwtp.WaterQuality {
	r = r.Clip()
	out := in
	out.BOD = in.BOD * (1 - r.BOD)
	out.COD = in.COD * (1 - r.COD)
	out.TSS = in.TSS * (1 - r.TSS)
	out.AmmoniaN = in.AmmoniaN * (1 - r.AmmoniaN)
	out.TotalN = in.TotalN * (1 - r.TotalN)
	out.TotalP = in.TotalP * (1 - r.TotalP)
	if !math.IsNaN(in.FecalColiform) {
		out.FecalColiform = in.FecalColiform * (1 - r.FecalColiform)
	}
	return out
}

// hrt returns the hydraulic retention time in the requested unit for a
// volume [m³] and flow [m³/d], and whether it is finite and positive.
func hrt(volume, flow, perDay float64) (float64, bool) {
	if volume <= 0 || flow <= 0 {
		return 0, false
	}
	t := volume / flow * perDay
	if math.IsInf(t, 0) || math.IsNaN(t) {
		return 0, false
	}
	return t, true
}

// Retention-time unit conversions for hrt.
const (
	inDays    = 1.
	inHours   = 24.
	inMinutes = 24. * 60
)

// solidsRemoved returns the dry-solids mass [kg/d] captured by a unit,
// from the suspended-solids concentration drop across it.
func solidsRemoved(in, out wwtp.WaterQuality) float64 {
	d := (in.TSS - out.TSS) * in.Flow / 1000
	if d < 0 || math.IsNaN(d) {
		return 0
	}
	return d
}
