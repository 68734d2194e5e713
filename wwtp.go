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

// Package wwtp models a wastewater treatment plant as an ordered chain of
// unit processes and predicts effluent quality, regulatory compliance, and
// resource consumption for a user-assembled treatment train.
package wwtp

import (
	"math"

	"github.com/watermodel/wwtp/standards"
)

// Version gives the version number.
const Version = "0.4.1"

// WaterQuality describes the state of the wastewater stream at one point in
// the treatment train. Concentrations are in mg/L except where noted.
// WaterQuality is a value type: unit models return a fresh instance and
// never modify their input.
type WaterQuality struct {
	// Flow is the volumetric flow rate [m³/d].
	Flow float64

	BOD      float64 // 5-day biochemical oxygen demand
	COD      float64 // chemical oxygen demand
	TSS      float64 // total suspended solids
	AmmoniaN float64 // NH₃-N + NH₄⁺-N
	NitrateN float64 // NO₃⁻-N + NO₂⁻-N
	TotalN   float64 // total nitrogen
	TotalP   float64 // total phosphorus
	PH       float64 // pH [-]
	DO       float64 // dissolved oxygen

	// FecalColiform is in CFU/100 mL. It is NaN until some unit (or the
	// influent definition) provides it; compliance reports it as unknown
	// in that case.
	FecalColiform float64

	// Temperature is in °C.
	Temperature float64
}

// NewInfluent returns a WaterQuality with the fields that no raw influent
// measurement provides initialized to their conventional defaults.
func NewInfluent(flow float64) WaterQuality {
	return WaterQuality{
		Flow:          flow,
		PH:            7.0,
		Temperature:   20,
		FecalColiform: math.NaN(),
	}
}

// Value returns the concentration of the named parameter, using the
// canonical parameter names shared with package standards. The second
// return is false for unrecognized names.
func (q WaterQuality) Value(param string) (float64, bool) {
	switch param {
	case standards.ParamBOD:
		return q.BOD, true
	case standards.ParamCOD:
		return q.COD, true
	case standards.ParamTSS:
		return q.TSS, true
	case standards.ParamAmmoniaN:
		return q.AmmoniaN, true
	case standards.ParamTotalN:
		return q.TotalN, true
	case standards.ParamTotalP:
		return q.TotalP, true
	case standards.ParamPH:
		return q.PH, true
	case standards.ParamFecalColiform:
		return q.FecalColiform, true
	}
	return math.NaN(), false
}

// UnitType identifies one kind of treatment unit process.
type UnitType string

// The treatment unit processes known to the model registry.
const (
	BarScreen          UnitType = "bar-screen"
	GritChamber        UnitType = "grit-chamber"
	OilSeparator       UnitType = "oil-separator"
	PrimaryClarifier   UnitType = "primary-clarifier"
	AerationTank       UnitType = "aeration-tank"
	SBR                UnitType = "sbr"
	UASB               UnitType = "uasb"
	OxidationPond      UnitType = "oxidation-pond"
	TricklingFilter    UnitType = "trickling-filter"
	MBR                UnitType = "mbr"
	SecondaryClarifier UnitType = "secondary-clarifier"
	DAF                UnitType = "daf"
	Filtration         UnitType = "filtration"
	Chlorination       UnitType = "chlorination"
	UVDisinfection     UnitType = "uv-disinfection"
)

// Category groups unit types for sludge accounting and reporting.
type Category int

// Unit process categories.
const (
	Preliminary Category = iota
	Primary
	Biological
	Tertiary
	Disinfection
)

func (c Category) String() string {
	switch c {
	case Preliminary:
		return "preliminary"
	case Primary:
		return "primary"
	case Biological:
		return "biological"
	case Tertiary:
		return "tertiary"
	case Disinfection:
		return "disinfection"
	}
	return "unknown"
}

// Parameters holds the design parameters for one unit instance. It is a
// superset record: each unit model reads only the fields that apply to its
// type and validates them rather than trusting the editor that supplied
// them. Zero values mean "not specified".
type Parameters struct {
	Volume      float64 `toml:"volume"`       // [m³]
	Depth       float64 `toml:"depth"`        // [m]
	SurfaceArea float64 `toml:"surface_area"` // [m²]

	BarSpacing float64 `toml:"bar_spacing"` // [mm], screens

	MLSS        float64 `toml:"mlss"`         // [mg/L], suspended-growth reactors
	SRT         float64 `toml:"srt"`          // [d]
	DOSetpoint  float64 `toml:"do_setpoint"`  // [mg/L]
	CycleTime   float64 `toml:"cycle_time"`   // [h], SBR
	FillRatio   float64 `toml:"fill_ratio"`   // [-], SBR volumetric exchange
	MediaVolume float64 `toml:"media_volume"` // [m³], attached-growth reactors
	Recycle     float64 `toml:"recycle"`      // [-], recirculation ratio

	FilterRate   float64 `toml:"filter_rate"`   // [m/h], granular filtration
	MembraneFlux float64 `toml:"membrane_flux"` // [L/m²/h], MBR

	ChlorineDose float64 `toml:"chlorine_dose"` // [mg/L]
	ContactTime  float64 `toml:"contact_time"`  // [min]
	UVDose       float64 `toml:"uv_dose"`       // [mJ/cm²]
}

// Removal holds the fractional reduction of each tracked parameter across
// one unit (or across the whole train), each in [0, 1].
type Removal struct {
	BOD           float64
	COD           float64
	TSS           float64
	AmmoniaN      float64
	TotalN        float64
	TotalP        float64
	FecalColiform float64
}

// ClipFraction limits a removal fraction to [0, 1].
func ClipFraction(f float64) float64 {
	if f < 0 || math.IsNaN(f) {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Clip limits every removal fraction to [0, 1].
func (r Removal) Clip() Removal {
	return Removal{
		BOD:           ClipFraction(r.BOD),
		COD:           ClipFraction(r.COD),
		TSS:           ClipFraction(r.TSS),
		AmmoniaN:      ClipFraction(r.AmmoniaN),
		TotalN:        ClipFraction(r.TotalN),
		TotalP:        ClipFraction(r.TotalP),
		FecalColiform: ClipFraction(r.FecalColiform),
	}
}

// Status is the evaluation outcome for a unit or a whole system.
type Status int

// Statuses in increasing order of severity.
const (
	StatusNotConfigured Status = iota
	StatusPass
	StatusWarning
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarning:
		return "warning"
	case StatusFail:
		return "fail"
	}
	return "not-configured"
}

// Worst returns the more severe of two statuses
// (fail > warning > pass > not-configured).
func (s Status) Worst(o Status) Status {
	if o > s {
		return o
	}
	return s
}

// Severity classifies a DesignIssue.
type Severity int

// Issue severities.
const (
	SeverityWarning Severity = iota
	SeverityCritical
)

func (s Severity) String() string {
	if s == SeverityCritical {
		return "critical"
	}
	return "warning"
}

// DesignIssue is an advisory annotation attached to a unit after its output
// has been computed. Issues never block computation; a critical issue marks
// a physically infeasible design, a warning marks a design outside
// best-practice range.
type DesignIssue struct {
	Severity    Severity
	Parameter   string
	Message     string
	Value       float64
	Recommended float64 // zero when no single recommended value applies
	Unit        string
	Remediation string
}

// UnitConfig is the externally supplied description of one unit in the
// train: its type plus its design parameters. A nil Parameters marks a unit
// that has been placed in the train but not yet configured.
type UnitConfig struct {
	Type       UnitType    `toml:"type"`
	Parameters *Parameters `toml:"parameters"`
}

// UnitInstance is one computed unit in a TreatmentSystem.
type UnitInstance struct {
	Type       UnitType
	Parameters Parameters
	Configured bool

	Effluent WaterQuality
	Removal  Removal
	Status   Status
	Issues   []DesignIssue
}

// ComplianceStatus is the three-valued outcome for one regulated parameter.
type ComplianceStatus int

// Per-parameter compliance outcomes. Unknown means the parameter was never
// computed by any unit in the train.
const (
	ComplianceUnknown ComplianceStatus = iota
	CompliancePass
	ComplianceFail
)

func (s ComplianceStatus) String() string {
	switch s {
	case CompliancePass:
		return "pass"
	case ComplianceFail:
		return "fail"
	}
	return "unknown"
}

// ComplianceRecord is the judgment for a single regulated parameter.
type ComplianceRecord struct {
	Parameter string
	Measured  float64 // NaN when never computed
	Limit     standards.Limit
	Unit      string
	Status    ComplianceStatus
}

// ComplianceResult compares final effluent against a regulatory standard.
type ComplianceResult struct {
	Standard string
	Records  []ComplianceRecord

	// IsCompliant is true iff no record failed. Unknown records do not
	// fail, but HasUnknown surfaces them distinctly so a caller cannot
	// mistake an unevaluated standard for a clean pass.
	IsCompliant bool
	HasUnknown  bool
}

// TreatmentSystem is the complete result of one treatment-train
// computation: the influent, every computed unit in order, the final
// effluent, the compliance judgment, and aggregates. It is a fresh,
// independent value on every recomputation.
type TreatmentSystem struct {
	Influent WaterQuality
	Units    []UnitInstance
	Effluent WaterQuality

	Compliance    ComplianceResult
	OverallStatus Status

	// OverallRemoval is the influent-to-effluent fractional reduction
	// per tracked parameter.
	OverallRemoval Removal
}
