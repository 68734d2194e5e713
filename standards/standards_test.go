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
	"reflect"
	"testing"
)

func TestGet(t *testing.T) {
	s, err := Get("community")
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "community" {
		t.Errorf("name = %q", s.Name)
	}
	if l := s.Limits[ParamBOD]; l.Max != 20 {
		t.Errorf("community BOD5 limit = %v", l)
	}
	if _, err := Get("no-such-standard"); err == nil {
		t.Error("unknown standard: no error")
	}
}

func TestNames(t *testing.T) {
	want := []string{"class-1a", "class-1b", "class-2", "community", "irrigation"}
	if got := Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestLimitSatisfied(t *testing.T) {
	max := Limit{Max: 20}
	if !max.Satisfied(20) || !max.Satisfied(0) {
		t.Error("values at or below a max-only limit must satisfy it")
	}
	if max.Satisfied(20.1) {
		t.Error("value above the max satisfied the limit")
	}

	ph := Limit{Min: 6, Max: 9, HasMin: true}
	for v, want := range map[float64]bool{
		5.9: false, 6: true, 7.4: true, 9: true, 9.1: false,
	} {
		if got := ph.Satisfied(v); got != want {
			t.Errorf("pH %g: satisfied = %v, want %v", v, got, want)
		}
	}
}

func TestStandardParameters(t *testing.T) {
	s, err := Get("irrigation")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{ParamBOD, ParamCOD, ParamFecalColiform, ParamTSS, ParamPH}
	got := s.Parameters()
	if len(got) != len(want) {
		t.Fatalf("parameters %v", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatalf("parameters %v not in stable sorted order", got)
		}
	}
}

func TestLoad(t *testing.T) {
	m, err := Load("testdata/standards.toml")
	if err != nil {
		t.Fatal(err)
	}

	// A file standard with a builtin name replaces it completely.
	c, ok := m["community"]
	if !ok {
		t.Fatal("community standard missing after merge")
	}
	if l := c.Limits[ParamBOD]; l.Max != 15 {
		t.Errorf("overridden community BOD5 limit = %v, want max 15", l)
	}
	if _, ok := c.Limits[ParamFecalColiform]; ok {
		t.Error("replacement should not inherit limits from the builtin it shadows")
	}

	// New standards are added alongside the untouched builtins.
	r, ok := m["river-permit-2026"]
	if !ok {
		t.Fatal("file-defined standard missing")
	}
	if l := r.Limits[ParamPH]; !l.HasMin || l.Min != 6.5 || l.Max != 8.5 {
		t.Errorf("river-permit pH limit = %v", l)
	}
	if l := m["class-1a"].Limits[ParamTotalP]; l.Max != 0.5 {
		t.Errorf("builtin class-1a TP limit = %v after merge", l)
	}

	// The in-memory builtin table must not be mutated by a load.
	b, err := Get("community")
	if err != nil {
		t.Fatal(err)
	}
	if l := b.Limits[ParamBOD]; l.Max != 20 {
		t.Errorf("builtin community BOD5 limit = %v after Load", l)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	if _, err := Load("testdata/standards_badparam.toml"); err == nil {
		t.Error("unknown parameter: no error")
	}
	if _, err := Load("testdata/standards_noname.toml"); err == nil {
		t.Error("nameless standard: no error")
	}
	if _, err := Load("testdata/does_not_exist.toml"); err == nil {
		t.Error("missing file: no error")
	}
}

func TestDefaultGuidelines(t *testing.T) {
	g := DefaultGuidelines()

	b, ok := g.Lookup("bar-screen", VarBarSpacing)
	if !ok {
		t.Fatal("bar-screen spacing bound missing")
	}
	if b.SoftMin != 15 || b.SoftMax != 50 || b.HardMin != 5 || b.HardMax != 100 {
		t.Errorf("bar-screen spacing bound = %+v", b)
	}
	if b.Unit != "mm" || b.Remediation == "" {
		t.Errorf("bound metadata = %+v", b)
	}

	if _, ok := g.Lookup("bar-screen", "no-such-variable"); ok {
		t.Error("lookup of an unknown variable reported a bound")
	}
	if _, ok := g.Lookup("no-such-unit", VarBarSpacing); ok {
		t.Error("lookup of an unknown unit type reported a bound")
	}
}

func TestLoadGuidelines(t *testing.T) {
	g, err := LoadGuidelines("testdata/guidelines.toml")
	if err != nil {
		t.Fatal(err)
	}

	// Overridden bound.
	b, ok := g.Lookup("bar-screen", VarBarSpacing)
	if !ok || b.SoftMin != 20 || b.HardMax != 80 {
		t.Errorf("overridden spacing bound = %+v, ok %v", b, ok)
	}
	// New variable not covered by the defaults.
	if _, ok := g.Lookup("grit-chamber", "air-supply"); !ok {
		t.Error("file-defined bound missing")
	}
	// Defaults not named in the file survive the merge.
	if _, ok := g.Lookup("uasb", VarUpflowVelocity); !ok {
		t.Error("default upflow-velocity bound lost in merge")
	}

	if _, err := LoadGuidelines("testdata/does_not_exist.toml"); err == nil {
		t.Error("missing file: no error")
	}
}

func TestZeroGuidelinesUsable(t *testing.T) {
	var g Guidelines
	if _, ok := g.Lookup("bar-screen", VarBarSpacing); ok {
		t.Error("zero-value guidelines reported a bound")
	}
}
