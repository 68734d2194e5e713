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

	"github.com/ctessum/unit"
	"gonum.org/v1/gonum/floats"
)

// The resource estimators are independent read-only consumers of a
// computed TreatmentSystem: they never modify it, an empty train yields
// all-zero totals, and a failed or unconfigured unit contributes zero
// rather than propagating an undefined value.

// UnitCost is one unit's contribution to the cost estimate.
type UnitCost struct {
	Type            UnitType
	Capital         float64 // construction cost [$]
	AnnualOperating float64 // operation and maintenance [$/yr]
}

// CostEstimation is the capital and operating cost of a treatment train.
type CostEstimation struct {
	Capital         float64 // [$]
	AnnualOperating float64 // [$/yr]
	Units           []UnitCost
}

// EstimateCost sums per-unit capital and operating cost contributions
// over the computed train, sizing capital against designFlow [m³/d] and
// operations against each unit's actual throughput.
func EstimateCost(sys *TreatmentSystem, designFlow float64) CostEstimation {
	var est CostEstimation
	capital := make([]float64, 0, len(sys.Units))
	operating := make([]float64, 0, len(sys.Units))
	for _, u := range sys.Units {
		uc := UnitCost{Type: u.Type}
		if m, err := ModelForType(u.Type); err == nil && contributes(u) {
			f := m.CostFactors()
			uc.Capital = f.CapitalPerFlow * designFlow
			uc.AnnualOperating = f.OperatingPerVolume * u.Effluent.Flow * 365
		}
		est.Units = append(est.Units, uc)
		capital = append(capital, uc.Capital)
		operating = append(operating, uc.AnnualOperating)
	}
	est.Capital = floats.Sum(capital)
	est.AnnualOperating = floats.Sum(operating)
	return est
}

// UnitSludge is one unit's contribution to sludge production.
type UnitSludge struct {
	Type     UnitType
	Category Category
	Mass     float64 // dry solids [kg/d]
}

// SludgeProduction is the dry-solids production of a treatment train,
// split into the conventional primary/biological/chemical handling
// streams.
type SludgeProduction struct {
	Total      float64 // [kg dry solids/d]
	Primary    float64
	Biological float64
	Chemical   float64
	Units      []UnitSludge
}

// TotalMassRate returns the total production as a dimensioned mass flow
// [kg/s].
func (s SludgeProduction) TotalMassRate() *unit.Unit {
	return unit.Div(unit.New(s.Total, unit.Kilogram), unit.New(24*3600, unit.Second))
}

// EstimateSludge sums per-unit dry-solids production over the computed
// train. The influent argument fixes the hydraulic basis for trains whose
// first unit failed and passed flow through untouched.
func EstimateSludge(sys *TreatmentSystem, influent WaterQuality) SludgeProduction {
	var est SludgeProduction
	for i, u := range sys.Units {
		us := UnitSludge{Type: u.Type}
		m, err := ModelForType(u.Type)
		if err != nil {
			est.Units = append(est.Units, us)
			continue
		}
		us.Category = m.Category()
		if contributes(u) {
			in := influent
			if i > 0 {
				in = sys.Units[i-1].Effluent
			}
			mass := m.SludgeYield(in, u.Effluent, u.Parameters)
			if mass > 0 && !math.IsNaN(mass) && !math.IsInf(mass, 0) {
				us.Mass = mass
			}
		}
		est.Units = append(est.Units, us)
		est.Total += us.Mass
		switch us.Category {
		case Biological:
			est.Biological += us.Mass
		case Tertiary, Disinfection:
			est.Chemical += us.Mass
		default:
			est.Primary += us.Mass
		}
	}
	return est
}

// UnitEnergy is one unit's contribution to energy consumption. A negative
// value is a recovery credit.
type UnitEnergy struct {
	Type   UnitType
	Energy float64 // [kWh/d]
}

// EnergyConsumption is the energy draw of a treatment train.
type EnergyConsumption struct {
	Total    float64 // net draw, credits applied [kWh/d]
	Specific float64 // per volume treated [kWh/m³]
	Units    []UnitEnergy
}

// TotalPower returns the net draw as dimensioned average power [W].
func (e EnergyConsumption) TotalPower() *unit.Unit {
	return unit.New(e.Total*1000/24, unit.Watt)
}

// EstimateEnergy sums per-unit energy demand over the computed train,
// each unit's specific demand applied to its own throughput.
func EstimateEnergy(sys *TreatmentSystem, influent WaterQuality) EnergyConsumption {
	var est EnergyConsumption
	perUnit := make([]float64, 0, len(sys.Units))
	for _, u := range sys.Units {
		ue := UnitEnergy{Type: u.Type}
		if m, err := ModelForType(u.Type); err == nil && contributes(u) {
			ue.Energy = m.EnergyIntensity(u.Parameters) * u.Effluent.Flow
		}
		est.Units = append(est.Units, ue)
		perUnit = append(perUnit, ue.Energy)
	}
	est.Total = floats.Sum(perUnit)
	if influent.Flow > 0 {
		est.Specific = est.Total / influent.Flow
	}
	return est
}

// contributes reports whether a unit's computed output is defined enough
// to count toward resource totals.
func contributes(u UnitInstance) bool {
	return u.Configured && u.Status != StatusFail
}
