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
	"testing"
)

func TestSanitizeEffluent(t *testing.T) {
	in := WaterQuality{
		Flow: 1000, BOD: 200, COD: 400, TSS: 220,
		PH: 7.2, Temperature: 20, FecalColiform: 1e7,
	}

	// A model is allowed to change stream temperature; only meaningless
	// values fall back to the influent.
	out := in
	out.Temperature = 12
	if got := sanitizeEffluent(in, out); got.Temperature != 12 {
		t.Errorf("temperature = %g, want 12", got.Temperature)
	}
	out.Temperature = math.NaN()
	if got := sanitizeEffluent(in, out); got.Temperature != 20 {
		t.Errorf("NaN temperature sanitized to %g, want influent 20", got.Temperature)
	}
	out.Temperature = -3
	if got := sanitizeEffluent(in, out); got.Temperature != 20 {
		t.Errorf("negative temperature sanitized to %g, want influent 20", got.Temperature)
	}

	out = in
	out.BOD = math.Inf(1)
	out.TSS = -5
	got := sanitizeEffluent(in, out)
	if got.BOD != in.BOD || got.TSS != in.TSS {
		t.Errorf("BOD %g TSS %g, want influent values", got.BOD, got.TSS)
	}
}

func TestCategoryString(t *testing.T) {
	cases := map[Category]string{
		Preliminary:  "preliminary",
		Primary:      "primary",
		Biological:   "biological",
		Tertiary:     "tertiary",
		Disinfection: "disinfection",
		Category(99): "unknown",
	}
	for c, want := range cases {
		if c.String() != want {
			t.Errorf("Category(%d).String() = %q, want %q", int(c), c.String(), want)
		}
	}
}
