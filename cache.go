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
	"context"
	"crypto/sha256"
	"encoding/gob"
	"fmt"
	"runtime"

	"github.com/ctessum/requestcache"

	"github.com/watermodel/wwtp/standards"
)

// Simulator computes treatment trains, memoizing results so that
// repeated evaluations of the same influent, unit configuration, and
// standard (as happens when sweeping design parameters one unit at a
// time) are served from cache. Computation is a pure function of its
// inputs, so cached results are always identical to fresh ones.
type Simulator struct {
	cache      *requestcache.Cache
	guidelines *standards.Guidelines
}

type trainRequest struct {
	Influent WaterQuality
	Units    []UnitConfig
	Standard standards.Standard
}

// NewSimulator creates a Simulator holding up to maxCacheEntries computed
// trains in memory. A nil g uses the default design guidelines.
func NewSimulator(g *standards.Guidelines, maxCacheEntries int) *Simulator {
	if g == nil {
		g = standards.DefaultGuidelines()
	}
	s := &Simulator{guidelines: g}
	s.cache = requestcache.NewCache(
		func(ctx context.Context, req interface{}) (interface{}, error) {
			r := req.(*trainRequest)
			return ComputeTreatmentTrainGuided(r.Influent, r.Units, r.Standard, s.guidelines), nil
		},
		runtime.GOMAXPROCS(-1),
		requestcache.Deduplicate(),
		requestcache.Memory(maxCacheEntries),
	)
	return s
}

// Run computes (or retrieves) the treatment train for the given influent,
// unit configuration, and discharge standard.
func (s *Simulator) Run(ctx context.Context, influent WaterQuality, units []UnitConfig, std standards.Standard) (*TreatmentSystem, error) {
	req := &trainRequest{Influent: influent, Units: units, Standard: std}
	key, err := requestKey(req)
	if err != nil {
		return nil, err
	}
	r := s.cache.NewRequest(ctx, req, key)
	result, err := r.Result()
	if err != nil {
		return nil, err
	}
	return result.(*TreatmentSystem), nil
}

// requestKey returns a unique cache key for a train request. Standards
// are identified by name; map encoding order would make a hash of their
// limit tables unstable.
func requestKey(req *trainRequest) (string, error) {
	h := sha256.New()
	enc := gob.NewEncoder(h)
	if err := enc.Encode(req.Influent); err != nil {
		return "", fmt.Errorf("wwtp: encoding cache key: %v", err)
	}
	for _, u := range req.Units {
		h.Write([]byte(u.Type))
		if u.Parameters == nil {
			h.Write([]byte{0})
			continue
		}
		h.Write([]byte{1})
		if err := enc.Encode(*u.Parameters); err != nil {
			return "", fmt.Errorf("wwtp: encoding cache key: %v", err)
		}
	}
	h.Write([]byte(req.Standard.Name))
	return fmt.Sprintf("train_%x", h.Sum(nil)), nil
}
