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
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/ctessum/requestcache"
	"github.com/tealeg/xlsx"
)

// excelCache holds previously opened spreadsheet files to avoid reading
// the same file multiple times.
var excelCache *requestcache.Cache

var loadExcelCacheOnce sync.Once

func loadExcelFile(filename string) (*xlsx.File, error) {
	loadExcelCacheOnce.Do(func() {
		excelCache = requestcache.NewCache(func(ctx context.Context, req interface{}) (interface{}, error) {
			f, err := xlsx.OpenFile(req.(string))
			if err != nil {
				return nil, fmt.Errorf("standards: opening xlsx file: %v", err)
			}
			return f, nil
		}, runtime.GOMAXPROCS(-1), requestcache.Memory(100))
	})
	r := excelCache.NewRequest(context.Background(), filename, filename)
	fI, err := r.Result()
	if err != nil {
		return nil, err
	}
	return fI.(*xlsx.File), nil
}

// ReadXLSX imports effluent standards from a spreadsheet, the format
// regulatory limit tables are usually published in. Each sheet is one
// standard named after the sheet; row 1 is a header, and each following
// row holds parameter name, maximum, and (optionally) minimum.
// The imported standards are merged over the embedded defaults.
func ReadXLSX(filename string) (map[string]Standard, error) {
	f, err := loadExcelFile(filename)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Standard, len(builtin)+len(f.Sheets))
	for n, s := range builtin {
		out[n] = s
	}
	for _, sheet := range f.Sheets {
		s := Standard{Name: sheet.Name, Limits: make(map[string]Limit)}
		for i, row := range sheet.Rows {
			if i == 0 || len(row.Cells) < 2 {
				continue
			}
			param := strings.TrimSpace(row.Cells[0].Value)
			if param == "" {
				continue
			}
			if _, ok := paramUnits[param]; !ok {
				return nil, fmt.Errorf("standards: %s sheet %q row %d: unknown parameter %q",
					filename, sheet.Name, i+1, param)
			}
			max, err := row.Cells[1].Float()
			if err != nil {
				return nil, fmt.Errorf("standards: %s sheet %q row %d: parsing maximum: %v",
					filename, sheet.Name, i+1, err)
			}
			l := Limit{Max: max}
			if len(row.Cells) > 2 && strings.TrimSpace(row.Cells[2].Value) != "" {
				min, err := row.Cells[2].Float()
				if err != nil {
					return nil, fmt.Errorf("standards: %s sheet %q row %d: parsing minimum: %v",
						filename, sheet.Name, i+1, err)
				}
				l.Min = min
				l.HasMin = true
			}
			s.Limits[param] = l
		}
		if len(s.Limits) == 0 {
			return nil, fmt.Errorf("standards: %s sheet %q contains no limits", filename, sheet.Name)
		}
		out[s.Name] = s
	}
	return out, nil
}
