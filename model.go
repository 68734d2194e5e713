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
	"fmt"
	"sort"

	"github.com/watermodel/wwtp/standards"
)

// Result is the outcome of simulating one unit process.
type Result struct {
	Effluent WaterQuality
	Removal  Removal
	Status   Status
	Issues   []DesignIssue
}

// Model is an interface for treatment unit process models. A Model is a
// total function of its inputs: it must return a defined Result for any
// finite, non-negative influent and any parameter record, degrading to
// zero removal with a critical issue rather than failing, so the train as
// a whole always produces a displayable result.
type Model interface {
	// Type returns the unit-type tag this model implements.
	Type() UnitType

	// Category returns the process category, used for sludge
	// classification and reporting.
	Category() Category

	// Simulate computes effluent quality and removal from influent
	// quality and design parameters, consulting g for design-guideline
	// bounds.
	Simulate(in WaterQuality, p Parameters, g *standards.Guidelines) Result

	// DefaultParameters generates a textbook starting design for the
	// given target flow [m³/d].
	DefaultParameters(designFlow float64) Parameters

	// CostFactors returns the capital and operating cost factors for
	// this unit type.
	CostFactors() CostFactors

	// EnergyIntensity returns the specific energy demand [kWh/m³
	// treated] for the given design. A negative value is an energy
	// credit (e.g. biogas recovery).
	EnergyIntensity(p Parameters) float64

	// SludgeYield returns the dry-solids production [kg/d] implied by
	// the computed influent/effluent pair.
	SludgeYield(in, out WaterQuality, p Parameters) float64
}

// CostFactors holds the unit-type-specific cost coefficients used by the
// cost estimator.
type CostFactors struct {
	// CapitalPerFlow is construction cost per unit of design flow
	// [$/(m³/d)].
	CapitalPerFlow float64
	// OperatingPerVolume is operation and maintenance cost per volume
	// treated [$/m³].
	OperatingPerVolume float64
}

var models = make(map[UnitType]Model)

// Register adds a unit process model to the registry. It panics if a model
// for the same unit type is already registered; registration happens in
// package init functions, so a duplicate is a programming error.
func Register(m Model) {
	if _, ok := models[m.Type()]; ok {
		panic(fmt.Sprintf("wwtp: model for unit type %q registered twice", m.Type()))
	}
	models[m.Type()] = m
}

// ModelForType returns the registered model for a unit type.
func ModelForType(t UnitType) (Model, error) {
	m, ok := models[t]
	if !ok {
		return nil, fmt.Errorf("wwtp: no model registered for unit type %q; valid options are %v",
			t, UnitTypes())
	}
	return m, nil
}

// UnitTypes returns the registered unit types in stable order.
func UnitTypes() []UnitType {
	ts := make([]UnitType, 0, len(models))
	for t := range models {
		ts = append(ts, t)
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })
	return ts
}

// UnitMeta describes one unit type for editor collaborators.
type UnitMeta struct {
	Type        UnitType
	DisplayName string
	Icon        string
	Category    Category
}

var unitMeta = map[UnitType]UnitMeta{
	BarScreen:          {BarScreen, "Bar Screen", "bar-screen", Preliminary},
	GritChamber:        {GritChamber, "Grit Chamber", "grit-chamber", Preliminary},
	OilSeparator:       {OilSeparator, "Oil-Water Separator", "oil-separator", Preliminary},
	PrimaryClarifier:   {PrimaryClarifier, "Primary Clarifier", "clarifier", Primary},
	AerationTank:       {AerationTank, "Aeration Tank", "aeration", Biological},
	SBR:                {SBR, "Sequencing Batch Reactor", "sbr", Biological},
	UASB:               {UASB, "UASB Reactor", "uasb", Biological},
	OxidationPond:      {OxidationPond, "Oxidation Pond", "pond", Biological},
	TricklingFilter:    {TricklingFilter, "Trickling Filter", "trickling-filter", Biological},
	MBR:                {MBR, "Membrane Bioreactor", "mbr", Biological},
	SecondaryClarifier: {SecondaryClarifier, "Secondary Clarifier", "clarifier", Biological},
	DAF:                {DAF, "Dissolved Air Flotation", "daf", Primary},
	Filtration:         {Filtration, "Granular Filtration", "filter", Tertiary},
	Chlorination:       {Chlorination, "Chlorination", "chlorine", Disinfection},
	UVDisinfection:     {UVDisinfection, "UV Disinfection", "uv", Disinfection},
}

// Meta returns the display metadata for a unit type.
func Meta(t UnitType) (UnitMeta, error) {
	m, ok := unitMeta[t]
	if !ok {
		return UnitMeta{}, fmt.Errorf("wwtp: no metadata for unit type %q", t)
	}
	return m, nil
}

// Catalog returns display metadata for every known unit type, ordered by
// category and then name, for editor palettes.
func Catalog() []UnitMeta {
	out := make([]UnitMeta, 0, len(unitMeta))
	for _, m := range unitMeta {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Type < out[j].Type
	})
	return out
}
