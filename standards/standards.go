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

// Package standards holds the regulatory effluent limits and the
// engineering design-guideline bounds used by the treatment-train engine.
// Both are data, not code: the embedded defaults can be overridden from
// TOML or spreadsheet files so regulatory updates need no rebuild.
package standards

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
)

// Canonical parameter names shared between water-quality state, regulatory
// limits, and compliance records.
const (
	ParamBOD           = "BOD5"
	ParamCOD           = "COD"
	ParamTSS           = "TSS"
	ParamAmmoniaN      = "NH3-N"
	ParamTotalN        = "TN"
	ParamTotalP        = "TP"
	ParamPH            = "pH"
	ParamFecalColiform = "FecalColiform"
)

// paramUnits maps each regulated parameter to its reporting unit.
var paramUnits = map[string]string{
	ParamBOD:           "mg/L",
	ParamCOD:           "mg/L",
	ParamTSS:           "mg/L",
	ParamAmmoniaN:      "mg/L",
	ParamTotalN:        "mg/L",
	ParamTotalP:        "mg/L",
	ParamPH:            "-",
	ParamFecalColiform: "CFU/100mL",
}

// ParamUnit returns the reporting unit for the named parameter.
func ParamUnit(param string) string {
	return paramUnits[param]
}

// Limit is one regulatory limit. Most parameters carry only Max; pH is a
// range and carries both bounds.
type Limit struct {
	Max    float64 `toml:"max"`
	Min    float64 `toml:"min"`
	HasMin bool    `toml:"has_min"`
}

// Satisfied reports whether the measured value meets the limit.
func (l Limit) Satisfied(v float64) bool {
	if l.HasMin && v < l.Min {
		return false
	}
	return v <= l.Max
}

func (l Limit) String() string {
	if l.HasMin {
		return fmt.Sprintf("%g–%g", l.Min, l.Max)
	}
	return fmt.Sprintf("≤ %g", l.Max)
}

// Standard is a named set of per-parameter effluent limits.
type Standard struct {
	Name   string           `toml:"name"`
	Limits map[string]Limit `toml:"limits"`
}

// Parameters returns the regulated parameter names in stable order.
func (s Standard) Parameters() []string {
	names := make([]string, 0, len(s.Limits))
	for p := range s.Limits {
		names = append(names, p)
	}
	sort.Strings(names)
	return names
}

var phRange = Limit{Min: 6, Max: 9, HasMin: true}

// builtin holds the embedded default standards table.
var builtin = map[string]Standard{
	"community": {
		Name: "community",
		Limits: map[string]Limit{
			ParamBOD:           {Max: 20},
			ParamCOD:           {Max: 100},
			ParamTSS:           {Max: 30},
			ParamAmmoniaN:      {Max: 15},
			ParamTotalN:        {Max: 35},
			ParamTotalP:        {Max: 4},
			ParamPH:            phRange,
			ParamFecalColiform: {Max: 10000},
		},
	},
	"class-1a": {
		Name: "class-1a",
		Limits: map[string]Limit{
			ParamBOD:           {Max: 10},
			ParamCOD:           {Max: 50},
			ParamTSS:           {Max: 10},
			ParamAmmoniaN:      {Max: 5},
			ParamTotalN:        {Max: 15},
			ParamTotalP:        {Max: 0.5},
			ParamPH:            phRange,
			ParamFecalColiform: {Max: 1000},
		},
	},
	"class-1b": {
		Name: "class-1b",
		Limits: map[string]Limit{
			ParamBOD:           {Max: 20},
			ParamCOD:           {Max: 60},
			ParamTSS:           {Max: 20},
			ParamAmmoniaN:      {Max: 8},
			ParamTotalN:        {Max: 20},
			ParamTotalP:        {Max: 1},
			ParamPH:            phRange,
			ParamFecalColiform: {Max: 10000},
		},
	},
	"class-2": {
		Name: "class-2",
		Limits: map[string]Limit{
			ParamBOD:      {Max: 30},
			ParamCOD:      {Max: 100},
			ParamTSS:      {Max: 30},
			ParamAmmoniaN: {Max: 25},
			ParamTotalP:   {Max: 3},
			ParamPH:       phRange,
		},
	},
	"irrigation": {
		Name: "irrigation",
		Limits: map[string]Limit{
			ParamBOD:           {Max: 40},
			ParamCOD:           {Max: 150},
			ParamTSS:           {Max: 50},
			ParamPH:            {Min: 5.5, Max: 8.5, HasMin: true},
			ParamFecalColiform: {Max: 40000},
		},
	},
}

// Get returns the named standard from the embedded table.
func Get(name string) (Standard, error) {
	s, ok := builtin[name]
	if !ok {
		return Standard{}, fmt.Errorf("standards: unknown standard %q; valid options are %v", name, Names())
	}
	return s, nil
}

// Names returns the names of the embedded standards in stable order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for n := range builtin {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// tomlFile is the on-disk layout for standard overrides.
type tomlFile struct {
	Standard []Standard `toml:"standard"`
}

// Load reads standards from a TOML file and returns them keyed by name,
// merged over the embedded defaults. A file standard with the same name as
// an embedded one replaces it completely.
func Load(filename string) (map[string]Standard, error) {
	var f tomlFile
	if _, err := toml.DecodeFile(filename, &f); err != nil {
		return nil, fmt.Errorf("standards: decoding %s: %w", filename, err)
	}
	out := make(map[string]Standard, len(builtin)+len(f.Standard))
	for n, s := range builtin {
		out[n] = s
	}
	for _, s := range f.Standard {
		if s.Name == "" {
			return nil, fmt.Errorf("standards: %s contains a standard with no name", filename)
		}
		for p := range s.Limits {
			if _, ok := paramUnits[p]; !ok {
				return nil, fmt.Errorf("standards: %s: standard %q limits unknown parameter %q", filename, s.Name, p)
			}
		}
		out[s.Name] = s
	}
	return out, nil
}
