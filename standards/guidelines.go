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

package standards

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Bound is one design-guideline range for a unit design variable. Soft
// bounds mark the best-practice range; hard bounds mark the limits of
// physical feasibility. Unit models emit a warning issue outside the soft
// range and a critical issue outside the hard range.
type Bound struct {
	SoftMin float64 `toml:"soft_min"`
	SoftMax float64 `toml:"soft_max"`
	HardMin float64 `toml:"hard_min"`
	HardMax float64 `toml:"hard_max"`

	Unit        string `toml:"unit"`
	Remediation string `toml:"remediation"`
}

// Guidelines maps "unit-type/variable" keys to design bounds. The zero
// value is usable; lookups for missing keys report no bound.
type Guidelines struct {
	bounds map[string]Bound
}

// Guideline variable names used by the built-in unit models.
const (
	VarOverflowRate   = "surface-overflow-rate" // [m³/m²/d]
	VarHRT            = "hydraulic-retention-time"
	VarSRT            = "solids-retention-time" // [d]
	VarMLSS           = "mlss"                  // [mg/L]
	VarBarSpacing     = "bar-spacing"           // [mm]
	VarOrganicLoad    = "organic-loading"       // [kg BOD/m³/d]
	VarFilterRate     = "filter-rate"           // [m/h]
	VarMembraneFlux   = "membrane-flux"         // [L/m²/h]
	VarChlorineDose   = "chlorine-dose"         // [mg/L]
	VarContactTime    = "contact-time"          // [min]
	VarUVDose         = "uv-dose"               // [mJ/cm²]
	VarUpflowVelocity = "upflow-velocity"       // [m/h]
)

// Lookup returns the bound for a unit type and design variable.
func (g *Guidelines) Lookup(unitType, variable string) (Bound, bool) {
	b, ok := g.bounds[unitType+"/"+variable]
	return b, ok
}

// set stores a bound, replacing any existing one for the same key.
func (g *Guidelines) set(unitType, variable string, b Bound) {
	if g.bounds == nil {
		g.bounds = make(map[string]Bound)
	}
	g.bounds[unitType+"/"+variable] = b
}

// DefaultGuidelines returns the embedded engineering-default design
// bounds. The values are textbook ranges; projects with stricter local
// codes override them from TOML with LoadGuidelines.
func DefaultGuidelines() *Guidelines {
	g := new(Guidelines)
	for _, e := range defaultBounds {
		g.set(e.unit, e.variable, e.b)
	}
	return g
}

var defaultBounds = []struct {
	unit     string
	variable string
	b        Bound
}{
	{"bar-screen", VarBarSpacing,
		Bound{SoftMin: 15, SoftMax: 50, HardMin: 5, HardMax: 100, Unit: "mm",
			Remediation: "use 15–50 mm clear spacing for mechanically cleaned coarse screens"}},
	{"grit-chamber", VarHRT,
		Bound{SoftMin: 2, SoftMax: 5, HardMin: 0.5, HardMax: 20, Unit: "min",
			Remediation: "size the chamber for 2–5 min detention at peak flow"}},
	{"oil-separator", VarHRT,
		Bound{SoftMin: 20, SoftMax: 60, HardMin: 5, HardMax: 240, Unit: "min",
			Remediation: "provide 20–60 min separation time"}},
	{"primary-clarifier", VarOverflowRate,
		Bound{SoftMin: 30, SoftMax: 50, HardMin: 5, HardMax: 120, Unit: "m³/m²/d",
			Remediation: "increase clarifier surface area to bring the overflow rate into 30–50 m³/m²/d"}},
	{"secondary-clarifier", VarOverflowRate,
		Bound{SoftMin: 16, SoftMax: 33, HardMin: 4, HardMax: 80, Unit: "m³/m²/d",
			Remediation: "increase clarifier surface area to bring the overflow rate into 16–33 m³/m²/d"}},
	{"daf", VarOverflowRate,
		Bound{SoftMin: 60, SoftMax: 180, HardMin: 10, HardMax: 400, Unit: "m³/m²/d",
			Remediation: "adjust flotation area for a 60–180 m³/m²/d hydraulic loading"}},
	{"aeration-tank", VarMLSS,
		Bound{SoftMin: 1500, SoftMax: 4000, HardMin: 500, HardMax: 8000, Unit: "mg/L",
			Remediation: "operate conventional activated sludge at 1500–4000 mg/L MLSS"}},
	{"aeration-tank", VarSRT,
		Bound{SoftMin: 4, SoftMax: 15, HardMin: 1, HardMax: 40, Unit: "d",
			Remediation: "hold 4–15 d solids retention for combined BOD removal and nitrification"}},
	{"aeration-tank", VarHRT,
		Bound{SoftMin: 4, SoftMax: 12, HardMin: 1, HardMax: 48, Unit: "h",
			Remediation: "size the basin for 4–12 h hydraulic retention"}},
	{"sbr", VarMLSS,
		Bound{SoftMin: 2000, SoftMax: 5000, HardMin: 500, HardMax: 8000, Unit: "mg/L",
			Remediation: "operate SBRs at 2000–5000 mg/L MLSS"}},
	{"sbr", VarSRT,
		Bound{SoftMin: 10, SoftMax: 30, HardMin: 2, HardMax: 60, Unit: "d",
			Remediation: "hold 10–30 d solids retention"}},
	{"mbr", VarMLSS,
		Bound{SoftMin: 6000, SoftMax: 12000, HardMin: 2000, HardMax: 20000, Unit: "mg/L",
			Remediation: "operate membrane bioreactors at 6000–12000 mg/L MLSS"}},
	{"mbr", VarMembraneFlux,
		Bound{SoftMin: 10, SoftMax: 30, HardMin: 2, HardMax: 60, Unit: "L/m²/h",
			Remediation: "design for a sustainable net flux of 10–30 L/m²/h"}},
	{"uasb", VarHRT,
		Bound{SoftMin: 6, SoftMax: 14, HardMin: 2, HardMax: 48, Unit: "h",
			Remediation: "size the reactor for 6–14 h hydraulic retention"}},
	{"uasb", VarUpflowVelocity,
		Bound{SoftMin: 0.5, SoftMax: 1.5, HardMin: 0.05, HardMax: 5, Unit: "m/h",
			Remediation: "keep the upflow velocity in 0.5–1.5 m/h to retain the sludge blanket"}},
	{"oxidation-pond", VarHRT,
		Bound{SoftMin: 10, SoftMax: 40, HardMin: 2, HardMax: 180, Unit: "d",
			Remediation: "provide 10–40 d detention for facultative ponds"}},
	{"trickling-filter", VarOrganicLoad,
		Bound{SoftMin: 0.08, SoftMax: 0.4, HardMin: 0.01, HardMax: 4.8, Unit: "kg BOD/m³/d",
			Remediation: "keep organic loading in 0.08–0.4 kg BOD/m³/d for rock-media filters"}},
	{"filtration", VarFilterRate,
		Bound{SoftMin: 5, SoftMax: 12.5, HardMin: 1, HardMax: 30, Unit: "m/h",
			Remediation: "run granular filters at 5–12.5 m/h"}},
	{"chlorination", VarChlorineDose,
		Bound{SoftMin: 2, SoftMax: 10, HardMin: 0.5, HardMax: 40, Unit: "mg/L",
			Remediation: "dose 2–10 mg/L chlorine for secondary effluent"}},
	{"chlorination", VarContactTime,
		Bound{SoftMin: 15, SoftMax: 45, HardMin: 5, HardMax: 240, Unit: "min",
			Remediation: "provide at least 15 min contact at peak flow"}},
	{"uv-disinfection", VarUVDose,
		Bound{SoftMin: 30, SoftMax: 100, HardMin: 10, HardMax: 400, Unit: "mJ/cm²",
			Remediation: "deliver 30–100 mJ/cm² for filtered secondary effluent"}},
}

// guidelineFile is the on-disk layout for guideline overrides.
type guidelineFile struct {
	Guideline []struct {
		UnitType string `toml:"unit_type"`
		Variable string `toml:"variable"`
		Bound
	} `toml:"guideline"`
}

// LoadGuidelines reads guideline bounds from a TOML file, merged over the
// embedded engineering defaults.
func LoadGuidelines(filename string) (*Guidelines, error) {
	var f guidelineFile
	if _, err := toml.DecodeFile(filename, &f); err != nil {
		return nil, fmt.Errorf("standards: decoding %s: %w", filename, err)
	}
	g := DefaultGuidelines()
	for _, e := range f.Guideline {
		if e.UnitType == "" || e.Variable == "" {
			return nil, fmt.Errorf("standards: %s contains a guideline with no unit_type or variable", filename)
		}
		g.set(e.UnitType, e.Variable, e.Bound)
	}
	return g, nil
}
