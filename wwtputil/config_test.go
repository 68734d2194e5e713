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
	"math"
	"testing"

	"github.com/lnashier/viper"

	"github.com/watermodel/wwtp"
)

func TestReadScenario(t *testing.T) {
	s, err := ReadScenario("testdata/scenario.toml")
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Units) != 7 {
		t.Fatalf("got %d units, want 7", len(s.Units))
	}

	q := s.InfluentQuality()
	if q.Flow != 1000 || q.BOD != 200 || q.TotalP != 5 {
		t.Errorf("influent %+v", q)
	}
	// The file sets the temperature but not pH or coliforms, which keep
	// the raw-wastewater defaults.
	if q.Temperature != 18 {
		t.Errorf("temperature = %g, want 18 from the file", q.Temperature)
	}
	if q.PH != 7 {
		t.Errorf("pH = %g, want the default 7", q.PH)
	}
	if !math.IsNaN(q.FecalColiform) {
		t.Errorf("coliforms = %g, want unmeasured", q.FecalColiform)
	}

	units := s.UnitConfigs()
	if units[0].Type != wwtp.BarScreen || units[0].Parameters.BarSpacing != 25 {
		t.Errorf("first unit %+v", units[0])
	}
	if units[3].Type != wwtp.AerationTank || units[3].Parameters.MLSS != 2500 {
		t.Errorf("aeration unit %+v", units[3])
	}
	// The UV unit carries no parameter table.
	if units[6].Parameters != nil {
		t.Errorf("unconfigured unit has parameters %+v", units[6].Parameters)
	}
}

func TestReadScenarioErrors(t *testing.T) {
	for _, f := range []string{
		"testdata/scenario_unknown_unit.toml",
		"testdata/scenario_nounits.toml",
		"testdata/scenario_negflow.toml",
		"testdata/does_not_exist.toml",
	} {
		if _, err := ReadScenario(f); err == nil {
			t.Errorf("%s: no error", f)
		}
	}
}

func TestGetStringMapString(t *testing.T) {
	cfg := viper.New()

	cfg.Set("a", map[string]string{"x": "1"})
	if got := GetStringMapString("a", cfg); got["x"] != "1" {
		t.Errorf("map[string]string: %v", got)
	}

	cfg.Set("b", map[string]interface{}{"x": "2"})
	if got := GetStringMapString("b", cfg); got["x"] != "2" {
		t.Errorf("map[string]interface{}: %v", got)
	}

	// Command-line values arrive as a JSON object in a string.
	cfg.Set("c", `{"x":"3"}`)
	if got := GetStringMapString("c", cfg); got["x"] != "3" {
		t.Errorf("json string: %v", got)
	}
}

func TestCheckOutputVars(t *testing.T) {
	if _, err := checkOutputVars(nil); err == nil {
		t.Error("empty variables: no error")
	}
	vars, err := checkOutputVars(map[string]string{"v": "Effluent_BOD5 +\n Effluent_COD"})
	if err != nil {
		t.Fatal(err)
	}
	if vars["v"] != "Effluent_BOD5 +  Effluent_COD" {
		t.Errorf("line endings not stripped: %q", vars["v"])
	}
}

func TestCheckOutputFile(t *testing.T) {
	if _, err := checkOutputFile(""); err == nil {
		t.Error("empty output file: no error")
	}
	if _, err := checkOutputFile("no_such_dir_xyz/out.json"); err == nil {
		t.Error("missing directory: no error")
	}
	f, err := checkOutputFile(t.TempDir() + "/out.json")
	if err != nil {
		t.Fatal(err)
	}
	if f == "" {
		t.Error("empty path returned")
	}
}

func TestLoadStandard(t *testing.T) {
	cfg := viper.New()
	cfg.Set("Standard", "class-1b")
	s, err := loadStandard(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "class-1b" {
		t.Errorf("standard %q", s.Name)
	}

	cfg.Set("Standard", "nonexistent")
	if _, err := loadStandard(cfg); err == nil {
		t.Error("unknown standard: no error")
	}
}
