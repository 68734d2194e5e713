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
	"os"
	"strings"
	"testing"

	"github.com/watermodel/wwtp"
)

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	Root.SetOut(&buf)
	Root.SetArgs([]string{"version"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), wwtp.Version) {
		t.Errorf("version output %q", buf.String())
	}
}

func TestCatalogCmd(t *testing.T) {
	var buf bytes.Buffer
	Root.SetOut(&buf)
	Root.SetArgs([]string{"catalog"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"bar-screen", "aeration-tank", "uv-disinfection"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("catalog output missing %q", want)
		}
	}
	// Every category column must render as its name, not a raw integer.
	for _, want := range []string{"preliminary", "biological", "tertiary"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("catalog output missing category %q", want)
		}
	}
	if strings.Contains(buf.String(), "%!s") {
		t.Errorf("catalog output contains a formatting error:\n%s", buf.String())
	}
}

func TestStandardsCmd(t *testing.T) {
	var buf bytes.Buffer
	Root.SetOut(&buf)
	Root.SetArgs([]string{"standards"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"community", "class-1a", "irrigation"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("standards output missing %q", want)
		}
	}
}

// TestRunCmd simulates the testdata scenario end to end through the
// command-line interface and inspects the JSON it writes.
func TestRunCmd(t *testing.T) {
	outputFile := t.TempDir() + "/out.json"
	Cfg.Set("ScenarioFile", "testdata/scenario.toml")
	Cfg.Set("OutputFile", outputFile)

	var buf bytes.Buffer
	Root.SetOut(&buf)
	Root.SetArgs([]string{"run"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]*float64
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}

	bod, ok := out["Effluent_BOD5"]
	if !ok || bod == nil {
		t.Fatal("Effluent_BOD5 missing from output")
	}
	if *bod <= 0 || *bod > 20 {
		t.Errorf("Effluent_BOD5 = %g, want a treated value within the community limit", *bod)
	}
	if c := out["Compliant"]; c == nil || *c != 1 {
		t.Errorf("Compliant = %v, want 1", c)
	}
	if r := out["Removal_BOD5"]; r == nil || *r < 0.9 {
		t.Errorf("Removal_BOD5 = %v, want at least 0.9", r)
	}

	if !strings.Contains(buf.String(), "Effluent:") {
		t.Errorf("summary output %q", buf.String())
	}
}
