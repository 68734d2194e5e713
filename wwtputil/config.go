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

package wwtputil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lnashier/viper"
	"github.com/spf13/cast"

	"github.com/watermodel/wwtp"
	"github.com/watermodel/wwtp/standards"
)

// Scenario is the on-disk description of a simulation: the influent
// wastewater and the ordered treatment train.
type Scenario struct {
	Influent InfluentSpec
	Units    []UnitSpec
}

// InfluentSpec describes the influent wastewater. Flow is in m³/d and
// concentrations in mg/L except FecalColiform [CFU/100 mL] and
// Temperature [°C]. Fields left unset keep the defaults for raw domestic
// wastewater: pH 7, 20 °C, and an unmeasured coliform count.
type InfluentSpec struct {
	Flow          float64
	BOD           float64
	COD           float64
	TSS           float64
	AmmoniaN      float64
	NitrateN      float64
	TotalN        float64
	TotalP        float64
	PH            *float64
	DO            float64
	FecalColiform *float64
	Temperature   *float64
}

// UnitSpec describes one unit in the treatment train.
type UnitSpec struct {
	Type       string
	Parameters *wwtp.Parameters
}

// ReadScenario reads a scenario from a TOML file.
func ReadScenario(filename string) (*Scenario, error) {
	var s Scenario
	if _, err := toml.DecodeFile(filename, &s); err != nil {
		return nil, fmt.Errorf("wwtp: decoding scenario file %s: %w", filename, err)
	}
	if s.Influent.Flow < 0 {
		return nil, fmt.Errorf("wwtp: scenario file %s: influent flow is negative", filename)
	}
	if len(s.Units) == 0 {
		return nil, fmt.Errorf("wwtp: scenario file %s describes no treatment units", filename)
	}
	for i, u := range s.Units {
		if _, err := wwtp.ModelForType(wwtp.UnitType(u.Type)); err != nil {
			return nil, fmt.Errorf("wwtp: scenario file %s, unit %d: %w", filename, i+1, err)
		}
	}
	return &s, nil
}

// InfluentQuality converts the influent description to a WaterQuality.
func (s *Scenario) InfluentQuality() wwtp.WaterQuality {
	q := wwtp.NewInfluent(s.Influent.Flow)
	q.BOD = s.Influent.BOD
	q.COD = s.Influent.COD
	q.TSS = s.Influent.TSS
	q.AmmoniaN = s.Influent.AmmoniaN
	q.NitrateN = s.Influent.NitrateN
	q.TotalN = s.Influent.TotalN
	q.TotalP = s.Influent.TotalP
	q.DO = s.Influent.DO
	if s.Influent.PH != nil {
		q.PH = *s.Influent.PH
	}
	if s.Influent.FecalColiform != nil {
		q.FecalColiform = *s.Influent.FecalColiform
	}
	if s.Influent.Temperature != nil {
		q.Temperature = *s.Influent.Temperature
	}
	return q
}

// UnitConfigs converts the unit descriptions to the engine's
// configuration type.
func (s *Scenario) UnitConfigs() []wwtp.UnitConfig {
	units := make([]wwtp.UnitConfig, len(s.Units))
	for i, u := range s.Units {
		units[i] = wwtp.UnitConfig{Type: wwtp.UnitType(u.Type), Parameters: u.Parameters}
	}
	return units
}

// checkOutputVars removes end lines and expands environment
// variables in the output variables.
func checkOutputVars(vars map[string]string) (map[string]string, error) {
	if len(vars) == 0 {
		return nil, fmt.Errorf("there are no variables specified for output. Please fill in " +
			"the OutputVariables configuration and try again.")
	}
	for k, v := range vars {
		v = strings.Replace(v, "\r\n", " ", -1)
		v = strings.Replace(v, "\n", " ", -1)
		vars[os.ExpandEnv(k)] = os.ExpandEnv(v)
	}
	return vars, nil
}

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expands any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`you need to specify an output file configuration variable (for example: OutputFile="output.json")`)
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("wwtp: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}

// loadStandards returns the full standard table: the built-in standards
// merged with any loaded from StandardsFile and StandardsXLSX.
func loadStandards(cfg *viper.Viper) (map[string]standards.Standard, error) {
	all := make(map[string]standards.Standard)
	for _, name := range standards.Names() {
		s, err := standards.Get(name)
		if err != nil {
			return nil, err
		}
		all[name] = s
	}
	if f := os.ExpandEnv(cfg.GetString("StandardsFile")); f != "" {
		loaded, err := standards.Load(f)
		if err != nil {
			return nil, err
		}
		for n, s := range loaded {
			all[n] = s
		}
	}
	if f := os.ExpandEnv(cfg.GetString("StandardsXLSX")); f != "" {
		loaded, err := standards.ReadXLSX(f)
		if err != nil {
			return nil, err
		}
		for n, s := range loaded {
			all[n] = s
		}
	}
	return all, nil
}

// loadStandard resolves the Standard configuration variable against the
// full standard table.
func loadStandard(cfg *viper.Viper) (standards.Standard, error) {
	all, err := loadStandards(cfg)
	if err != nil {
		return standards.Standard{}, err
	}
	name := cfg.GetString("Standard")
	s, ok := all[name]
	if !ok {
		return standards.Standard{}, fmt.Errorf("wwtp: unknown discharge standard %q; valid options are %v", name, standardNames(all))
	}
	return s, nil
}

// loadGuidelines returns the design guidelines, with any overrides from
// GuidelinesFile applied.
func loadGuidelines(cfg *viper.Viper) (*standards.Guidelines, error) {
	if f := os.ExpandEnv(cfg.GetString("GuidelinesFile")); f != "" {
		return standards.LoadGuidelines(f)
	}
	return standards.DefaultGuidelines(), nil
}

// GetStringMapString returns a map[string]string from a viper configuration,
// accounting for the fact that it might be a json object if it was set
// from a command line argument.
func GetStringMapString(varName string, cfg *viper.Viper) map[string]string {
	i := cfg.Get(varName)
	switch i.(type) {
	case map[string]string:
		return i.(map[string]string)
	case map[string]interface{}:
		return cast.ToStringMapString(i)
	case string:
		b := bytes.NewBuffer(([]byte)(i.(string)))
		d := json.NewDecoder(b)
		o := make(map[string]string)
		if err := d.Decode(&o); err != nil {
			panic(err)
		}
		return o
	default:
		panic(fmt.Errorf("invalid type for getStringMapString variable %s: %#v", varName, i))
	}
}

func sortStrings(s []string) []string {
	sort.Strings(s)
	return s
}
