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

	"github.com/watermodel/wwtp/standards"
)

// EvaluateCompliance compares effluent quality against a regulatory
// standard, producing one record per regulated parameter. A parameter the
// train never computed (NaN measurement) is reported as unknown: it does
// not fail the standard, but HasUnknown is set so the caller can
// distinguish the result from a fully evaluated pass.
func EvaluateCompliance(effluent WaterQuality, std standards.Standard) ComplianceResult {
	res := ComplianceResult{
		Standard:    std.Name,
		Records:     make([]ComplianceRecord, 0, len(std.Limits)),
		IsCompliant: true,
	}
	for _, param := range std.Parameters() {
		limit := std.Limits[param]
		rec := ComplianceRecord{
			Parameter: param,
			Limit:     limit,
			Unit:      standards.ParamUnit(param),
		}
		v, tracked := effluent.Value(param)
		rec.Measured = v
		switch {
		case !tracked || math.IsNaN(v):
			rec.Status = ComplianceUnknown
			res.HasUnknown = true
		case limit.Satisfied(v):
			rec.Status = CompliancePass
		default:
			rec.Status = ComplianceFail
			res.IsCompliant = false
		}
		res.Records = append(res.Records, rec)
	}
	return res
}
