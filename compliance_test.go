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

	"github.com/watermodel/wwtp/standards"
)

func cleanEffluent() WaterQuality {
	q := NewInfluent(1000)
	q.BOD = 10
	q.COD = 60
	q.TSS = 12
	q.AmmoniaN = 2
	q.TotalN = 15
	q.TotalP = 2
	q.FecalColiform = 500
	return q
}

func TestEvaluateCompliancePass(t *testing.T) {
	std, err := standards.Get("community")
	if err != nil {
		t.Fatal(err)
	}
	res := EvaluateCompliance(cleanEffluent(), std)
	if !res.IsCompliant {
		t.Errorf("clean effluent judged non-compliant: %+v", res.Records)
	}
	if res.HasUnknown {
		t.Error("fully measured effluent reported unknown parameters")
	}
	if res.Standard != "community" {
		t.Errorf("standard name = %q, want community", res.Standard)
	}
	for _, r := range res.Records {
		if r.Status != CompliancePass {
			t.Errorf("%s: status %s, want pass", r.Parameter, r.Status)
		}
	}
}

func TestEvaluateComplianceFail(t *testing.T) {
	std, err := standards.Get("community")
	if err != nil {
		t.Fatal(err)
	}
	e := cleanEffluent()
	e.BOD = 45 // over the 20 mg/L limit
	res := EvaluateCompliance(e, std)
	if res.IsCompliant {
		t.Error("BOD excursion not detected")
	}
	for _, r := range res.Records {
		if r.Parameter == standards.ParamBOD && r.Status != ComplianceFail {
			t.Errorf("BOD status = %s, want fail", r.Status)
		}
		if r.Parameter == standards.ParamTSS && r.Status != CompliancePass {
			t.Errorf("TSS status = %s, want pass", r.Status)
		}
	}
}

// pH is the one two-sided limit: both acidic and alkaline excursions
// must fail.
func TestEvaluateCompliancePHRange(t *testing.T) {
	std, err := standards.Get("community")
	if err != nil {
		t.Fatal(err)
	}
	for _, ph := range []float64{5.2, 9.8} {
		e := cleanEffluent()
		e.PH = ph
		res := EvaluateCompliance(e, std)
		if res.IsCompliant {
			t.Errorf("pH %g accepted; community standard allows 6–9", ph)
		}
	}
	e := cleanEffluent()
	e.PH = 7.4
	if res := EvaluateCompliance(e, std); !res.IsCompliant {
		t.Errorf("pH 7.4 rejected: %+v", res.Records)
	}
}

// An unknown (never computed) parameter must be distinguishable from a
// pass: it leaves IsCompliant alone but sets HasUnknown.
func TestEvaluateComplianceUnknown(t *testing.T) {
	std, err := standards.Get("community")
	if err != nil {
		t.Fatal(err)
	}
	e := cleanEffluent()
	e.FecalColiform = math.NaN()
	res := EvaluateCompliance(e, std)
	if !res.IsCompliant {
		t.Error("unknown parameter failed the standard")
	}
	if !res.HasUnknown {
		t.Error("HasUnknown not set for an unmeasured parameter")
	}
	for _, r := range res.Records {
		if r.Parameter == standards.ParamFecalColiform && r.Status != ComplianceUnknown {
			t.Errorf("coliform status = %s, want unknown", r.Status)
		}
	}
}
