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
	"fmt"
	"math"

	"github.com/watermodel/wwtp"
	"github.com/watermodel/wwtp/asm1"
	"github.com/watermodel/wwtp/standards"
)

func init() {
	wwtp.Register(aerationTank{})
	wwtp.Register(sbr{})
	wwtp.Register(mbr{})
}

// Influent COD fractionation for domestic wastewater after preliminary
// treatment: soluble inert, readily biodegradable, particulate inert, and
// slowly biodegradable shares of total COD.
const (
	fracSI = 0.05
	fracSS = 0.25
	fracXI = 0.15
	fracXS = 0.55
)

// feedState fractionates the influent into the 13 ASM1 components.
func feedState(in wwtp.WaterQuality) asm1.State {
	var s asm1.State
	s[asm1.SI] = fracSI * in.COD
	s[asm1.SS] = fracSS * in.COD
	s[asm1.XI] = fracXI * in.COD
	s[asm1.XS] = fracXS * in.COD
	s[asm1.SNH] = in.AmmoniaN
	s[asm1.SNO] = in.NitrateN
	orgN := in.TotalN - in.AmmoniaN - in.NitrateN
	if orgN > 0 {
		s[asm1.SND] = 0.4 * orgN
		s[asm1.XND] = 0.6 * orgN
	}
	s[asm1.SO] = in.DO
	s[asm1.SALK] = 5 // mol HCO₃⁻/m³, typical municipal alkalinity
	return s
}

// suspendedGrowth is the shared kinetic core of the activated-sludge unit
// family. Each concrete type layers its own hydraulics and solids
// handling on top of the converged reactor state.
type suspendedGrowth struct {
	unitType wwtp.UnitType

	// carryoverTSS maps the mixed-liquor state to the solids leaving
	// with the treated stream; an aeration tank relies on a downstream
	// clarifier, a membrane retains essentially everything.
	carryoverTSS func(in wwtp.WaterQuality, p wwtp.Parameters) float64

	defaultDO float64
}

// floor values used when the editor leaves operating setpoints blank.
const (
	defaultMLSS = 3000.0 // mg/L
	defaultSRT  = 10.0   // d
)

// run validates the reactor design, solves the ASM1 steady state, and maps
// it back to the public quality fields. The asm1 integrator's failures
// are the one true propagated error class: they mark the unit failed with
// an explicit non-convergence issue and pass the influent through.
func (sg suspendedGrowth) run(in wwtp.WaterQuality, p wwtp.Parameters, g *standards.Guidelines) wwtp.Result {
	if r, ok := zeroFlow(in); ok {
		return r
	}
	e := newEvaluation()
	if p.Volume <= 0 {
		e.critical("volume", "reactor volume must be positive for nonzero flow", p.Volume, "m³",
			"set the reactor volume")
		return e.degraded(in)
	}
	mlss := p.MLSS
	if mlss <= 0 {
		mlss = defaultMLSS
	}
	srt := p.SRT
	if srt <= 0 {
		srt = defaultSRT
	}
	do := p.DOSetpoint
	if do <= 0 {
		do = sg.defaultDO
	}

	hrtH, _ := hrt(p.Volume, in.Flow, inHours)
	e.checkBound(g, sg.unitType, standards.VarHRT, hrtH)
	e.checkBound(g, sg.unitType, standards.VarMLSS, mlss)
	e.checkBound(g, sg.unitType, standards.VarSRT, srt)

	feed := feedState(in)
	init := asm1.Seed(feed, mlss)
	state, err := asm1.Steady(feed, init, asm1.Config{
		Volume:      p.Volume,
		Flow:        in.Flow,
		SRT:         srt,
		DO:          do,
		Temperature: in.Temperature,
	})
	if err != nil {
		e.critical("simulation", fmt.Sprintf("simulation did not converge: %v", err),
			0, "", "revisit the reactor volume, MLSS, and SRT; the design may be kinetically infeasible")
		return e.degraded(in)
	}

	out := in
	out.TSS = sg.carryoverTSS(in, p)
	out.BOD = state.SolubleBOD5() + 0.03*out.TSS
	out.COD = state.SolubleCOD() + out.TSS*codPerTSS
	out.AmmoniaN = state[asm1.SNH]
	out.NitrateN = state[asm1.SNO]
	out.TotalN = state[asm1.SNH] + state[asm1.SNO] + state[asm1.SND] + 0.02*out.TSS
	out.TotalP = in.TotalP * (1 - 0.20) // assimilation into wasted biomass
	out.DO = do

	r := wwtp.Removal{
		BOD:      removal(in.BOD, out.BOD),
		COD:      removal(in.COD, out.COD),
		TSS:      removal(in.TSS, out.TSS),
		AmmoniaN: removal(in.AmmoniaN, out.AmmoniaN),
		TotalN:   removal(in.TotalN, out.TotalN),
		TotalP:   0.20,
	}
	return e.result(out, r)
}

func removal(in, out float64) float64 {
	if in <= 0 {
		return 0
	}
	return wwtp.ClipFraction(1 - out/in)
}

// observedYield is the net solids production per unit BOD removed for a
// suspended-growth reactor at the given solids retention time
// [kg TSS/kg BOD].
func observedYield(srt float64) float64 {
	if srt <= 0 {
		srt = defaultSRT
	}
	return 0.75 / (1 + 0.05*srt)
}

func suspendedGrowthSludge(in, out wwtp.WaterQuality, p wwtp.Parameters) float64 {
	removed := (in.BOD - out.BOD) * in.Flow / 1000
	if removed < 0 || math.IsNaN(removed) {
		return 0
	}
	return observedYield(p.SRT) * removed
}

// aerationTank is the conventional activated-sludge basin. Its effluent
// still carries the influent solids load: separation is the downstream
// secondary clarifier's job.
type aerationTank struct{}

func (aerationTank) Type() wwtp.UnitType { return wwtp.AerationTank }
func (aerationTank) Category() wwtp.Category { return wwtp.Biological }

func (aerationTank) DefaultParameters(designFlow float64) wwtp.Parameters {
	return wwtp.Parameters{
		Volume:     designFlow * 8 / inHours, // 8 h HRT
		MLSS:       2500,
		SRT:        8,
		DOSetpoint: 2,
	}
}

func (aerationTank) CostFactors() wwtp.CostFactors {
	return wwtp.CostFactors{CapitalPerFlow: 150, OperatingPerVolume: 0.040}
}

func (aerationTank) EnergyIntensity(p wwtp.Parameters) float64 {
	do := p.DOSetpoint
	if do <= 0 {
		do = 2
	}
	// Blower demand scales with the oxygen setpoint.
	return 0.30 + 0.05*do
}

func (aerationTank) SludgeYield(in, out wwtp.WaterQuality, p wwtp.Parameters) float64 {
	return suspendedGrowthSludge(in, out, p)
}

func (m aerationTank) Simulate(in wwtp.WaterQuality, p wwtp.Parameters, g *standards.Guidelines) wwtp.Result {
	sg := suspendedGrowth{
		unitType:  m.Type(),
		defaultDO: 2,
		carryoverTSS: func(in wwtp.WaterQuality, p wwtp.Parameters) float64 {
			return in.TSS
		},
	}
	return sg.run(in, p, g)
}

// sbr is a sequencing batch reactor: the same kinetics in a fill-and-draw
// vessel that settles in place, so its decanted effluent is already
// clarified.
type sbr struct{}

func (sbr) Type() wwtp.UnitType { return wwtp.SBR }
func (sbr) Category() wwtp.Category { return wwtp.Biological }

func (sbr) DefaultParameters(designFlow float64) wwtp.Parameters {
	return wwtp.Parameters{
		Volume:     designFlow * 12 / inHours,
		MLSS:       3500,
		SRT:        15,
		DOSetpoint: 2,
		CycleTime:  6,
		FillRatio:  0.3,
	}
}

func (sbr) CostFactors() wwtp.CostFactors {
	return wwtp.CostFactors{CapitalPerFlow: 180, OperatingPerVolume: 0.045}
}

func (sbr) EnergyIntensity(p wwtp.Parameters) float64 { return 0.40 }

func (sbr) SludgeYield(in, out wwtp.WaterQuality, p wwtp.Parameters) float64 {
	return suspendedGrowthSludge(in, out, p)
}

func (m sbr) Simulate(in wwtp.WaterQuality, p wwtp.Parameters, g *standards.Guidelines) wwtp.Result {
	sg := suspendedGrowth{
		unitType:  m.Type(),
		defaultDO: 2,
		carryoverTSS: func(in wwtp.WaterQuality, p wwtp.Parameters) float64 {
			// Quiescent in-basin settling decants near-clarified liquor.
			return math.Min(in.TSS, 20)
		},
	}
	r := sg.run(in, p, g)
	if p.FillRatio > 0.5 {
		r.Issues = append(r.Issues, wwtp.DesignIssue{
			Severity:    wwtp.SeverityWarning,
			Parameter:   "fill_ratio",
			Message:     fmt.Sprintf("volumetric exchange ratio %g leaves little settled buffer", p.FillRatio),
			Value:       p.FillRatio,
			Recommended: 0.3,
			Unit:        "-",
			Remediation: "keep the decanted fraction at or below half the basin volume",
		})
		r.Status = r.Status.Worst(wwtp.StatusWarning)
	}
	return r
}

// mbr is a membrane bioreactor: activated-sludge kinetics at high MLSS
// with membrane separation, so effluent solids are essentially nil.
type mbr struct{}

func (mbr) Type() wwtp.UnitType { return wwtp.MBR }
func (mbr) Category() wwtp.Category { return wwtp.Biological }

func (mbr) DefaultParameters(designFlow float64) wwtp.Parameters {
	return wwtp.Parameters{
		Volume:       designFlow * 6 / inHours,
		MLSS:         8000,
		SRT:          20,
		DOSetpoint:   2,
		MembraneFlux: 20,
	}
}

func (mbr) CostFactors() wwtp.CostFactors {
	return wwtp.CostFactors{CapitalPerFlow: 400, OperatingPerVolume: 0.120}
}

func (mbr) EnergyIntensity(p wwtp.Parameters) float64 { return 0.90 }

func (mbr) SludgeYield(in, out wwtp.WaterQuality, p wwtp.Parameters) float64 {
	return suspendedGrowthSludge(in, out, p)
}

func (m mbr) Simulate(in wwtp.WaterQuality, p wwtp.Parameters, g *standards.Guidelines) wwtp.Result {
	sg := suspendedGrowth{
		unitType:  m.Type(),
		defaultDO: 2,
		carryoverTSS: func(in wwtp.WaterQuality, p wwtp.Parameters) float64 {
			return math.Min(in.TSS, 1)
		},
	}
	r := sg.run(in, p, g)
	if p.MembraneFlux > 0 {
		e := &evaluation{status: r.Status, issues: r.Issues}
		e.checkBound(g, m.Type(), standards.VarMembraneFlux, p.MembraneFlux)
		r.Issues = e.issues
		r.Status = e.status
	}
	// Membranes are a near-absolute pathogen barrier.
	if !math.IsNaN(in.FecalColiform) {
		r.Effluent.FecalColiform = in.FecalColiform * 1e-4
		r.Removal.FecalColiform = wwtp.ClipFraction(1 - 1e-4)
	}
	return r
}
