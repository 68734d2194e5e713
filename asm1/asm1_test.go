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

package asm1

import (
	"errors"
	"math"
	"testing"
)

const testTolerance = 1e-9

func different(a, b, tolerance float64) bool {
	if math.Abs(a-b) > tolerance*math.Max(math.Abs(a), math.Abs(b)) {
		return true
	}
	return false
}

// typicalFeed is settled medium-strength municipal wastewater
// fractionated into the model components.
func typicalFeed() State {
	var s State
	s[SI] = 20
	s[SS] = 100
	s[XI] = 60
	s[XS] = 220
	s[SNH] = 25
	s[SND] = 3
	s[XND] = 5
	s[SALK] = 5
	return s
}

// typicalConfig is an 8 h HRT aerated basin at 20 °C.
func typicalConfig() Config {
	return Config{
		Volume:      333,
		Flow:        1000,
		SRT:         6,
		DO:          2,
		Temperature: 20,
	}
}

func TestZeroStateIsStationary(t *testing.T) {
	s, err := Steady(State{}, State{}, Config{
		Volume: 100, Flow: 100, SRT: 10, Temperature: 20,
	})
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range s {
		if v != 0 {
			t.Errorf("%s = %g, want 0", ComponentName(i), v)
		}
	}
}

func TestSteadyActivatedSludge(t *testing.T) {
	feed := typicalFeed()
	s, err := Steady(feed, Seed(feed, 2500), typicalConfig())
	if err != nil {
		t.Fatal(err)
	}

	if s[SS] > 10 {
		t.Errorf("residual substrate S_S = %g g/m³, want < 10 at 6 d SRT", s[SS])
	}
	if s[SNH] > 2 {
		t.Errorf("residual ammonia S_NH = %g g/m³; a 6 d SRT aerated basin should nitrify", s[SNH])
	}
	if s[SNO] < 10 {
		t.Errorf("nitrate S_NO = %g g/m³, want most influent N oxidized", s[SNO])
	}
	if s[XBH] < 500 {
		t.Errorf("heterotroph concentration X_BH = %g g COD/m³, want a retained sludge mass", s[XBH])
	}
	if s[XBA] <= 0 {
		t.Errorf("autotroph concentration X_BA = %g g COD/m³, want > 0", s[XBA])
	}
	if s[SI] != feed[SI] {
		t.Errorf("inert soluble S_I = %g, want untouched feed value %g", s[SI], feed[SI])
	}
	if s[SO] != 2 {
		t.Errorf("S_O = %g g/m³, want held at the 2 g/m³ setpoint", s[SO])
	}
}

// Halving the integration step must not change the converged state
// beyond the convergence tolerance.
func TestStepSizeConsistency(t *testing.T) {
	feed := typicalFeed()
	init := Seed(feed, 2500)

	c1 := typicalConfig()
	c1.Dt = 1e-3
	c2 := typicalConfig()
	c2.Dt = 5e-4

	a, err := Simulate(feed, init, 1.0, c1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Simulate(feed, init, 1.0, c2)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		scale := math.Max(math.Abs(a[i]), 1)
		if math.Abs(a[i]-b[i])/scale > 1e-4 {
			t.Errorf("%s: %g at dt=1e-3 vs %g at dt=5e-4", ComponentName(i), a[i], b[i])
		}
	}
}

// Nitrifiers wash out of a short-SRT reactor when the water cools.
func TestColdNitrificationWashout(t *testing.T) {
	feed := typicalFeed()
	init := Seed(feed, 2500)

	warm := typicalConfig()
	warm.SRT = 4
	cold := warm
	cold.Temperature = 10

	w, err := Steady(feed, init, warm)
	if err != nil {
		t.Fatal(err)
	}
	c, err := Steady(feed, init, cold)
	if err != nil {
		t.Fatal(err)
	}
	if w[SNH] > 3 {
		t.Errorf("S_NH = %g g/m³ at 20 °C, want nitrified effluent", w[SNH])
	}
	if c[SNH] < 10 {
		t.Errorf("S_NH = %g g/m³ at 10 °C, want nitrifier washout", c[SNH])
	}
	if c[SNH] < 5*w[SNH] {
		t.Errorf("cold S_NH %g not clearly above warm S_NH %g", c[SNH], w[SNH])
	}
}

func TestCorrectedArrhenius(t *testing.T) {
	p := DefaultParams()

	same := p.Corrected(20)
	if different(same.MuH, p.MuH, testTolerance) || different(same.BA, p.BA, testTolerance) {
		t.Error("correction at the 20 °C reference changed the rate constants")
	}

	warm := p.Corrected(30)
	if different(warm.MuH, p.MuH*math.Pow(1.072, 10), testTolerance) {
		t.Errorf("MuH(30 °C) = %g, want %g", warm.MuH, p.MuH*math.Pow(1.072, 10))
	}
	if different(warm.MuA, p.MuA*math.Pow(1.103, 10), testTolerance) {
		t.Errorf("MuA(30 °C) = %g, want %g", warm.MuA, p.MuA*math.Pow(1.103, 10))
	}
	if different(warm.YH, p.YH, testTolerance) {
		t.Error("stoichiometric yield must not be temperature corrected")
	}

	cold := p.Corrected(10)
	if cold.MuA >= p.MuA {
		t.Errorf("MuA(10 °C) = %g, want below the 20 °C value %g", cold.MuA, p.MuA)
	}
}

// Spot checks of the stoichiometric matrix against the ASM1 continuity
// relations.
func TestStoichiometry(t *testing.T) {
	p := DefaultParams()
	m := p.stoichiometry()

	// Aerobic heterotrophic growth: oxygen closes the COD balance.
	if different(m[aerobicGrowthH][SS]+m[aerobicGrowthH][XBH], m[aerobicGrowthH][SO], testTolerance) {
		t.Error("aerobic growth does not conserve COD")
	}
	// Autotrophic growth produces 1/YA nitrate per unit biomass.
	if different(m[aerobicGrowthA][SNO], 1/p.YA, testTolerance) {
		t.Errorf("nitrate yield = %g, want %g", m[aerobicGrowthA][SNO], 1/p.YA)
	}
	// Decay conserves mass into X_S and X_P.
	if different(m[decayH][XS]+m[decayH][XP], 1, testTolerance) {
		t.Error("heterotroph decay does not conserve COD")
	}
	// Hydrolysis moves COD without creating it.
	if different(m[hydrolysisX][SS], -m[hydrolysisX][XS], testTolerance) {
		t.Error("hydrolysis does not conserve COD")
	}
}

func TestValidationErrors(t *testing.T) {
	feed := typicalFeed()
	init := Seed(feed, 2500)

	cases := []struct {
		name string
		c    Config
		feed State
	}{
		{"zero volume", Config{Volume: 0, Flow: 1000, SRT: 6}, feed},
		{"negative flow", Config{Volume: 333, Flow: -1, SRT: 6}, feed},
		{"zero SRT", Config{Volume: 333, Flow: 1000, SRT: 0}, feed},
		{"NaN temperature", Config{Volume: 333, Flow: 1000, SRT: 6, Temperature: math.NaN()}, feed},
		{"negative feed", Config{Volume: 333, Flow: 1000, SRT: 6}, func() State {
			f := feed
			f[SS] = -1
			return f
		}()},
	}
	for _, c := range cases {
		if _, err := Steady(c.feed, init, c.c); err == nil {
			t.Errorf("%s: no error", c.name)
		}
	}
}

func TestDivergenceDetected(t *testing.T) {
	var feed State
	feed[SS] = 100 // no biomass to consume it

	c := typicalConfig()
	c.Ceiling = 50 // S_S relaxes toward 100 and must trip this

	_, err := Steady(feed, State{}, c)
	if !errors.Is(err, ErrDiverged) {
		t.Errorf("got %v, want ErrDiverged", err)
	}
}

func TestNonConvergenceDetected(t *testing.T) {
	feed := typicalFeed()
	c := typicalConfig()
	c.MaxSteps = 10

	_, err := Steady(feed, Seed(feed, 2500), c)
	if !errors.Is(err, ErrNotConverged) {
		t.Errorf("got %v, want ErrNotConverged", err)
	}
}

func TestSeedMatchesMLSS(t *testing.T) {
	feed := typicalFeed()
	for _, mlss := range []float64{1500, 2500, 4000} {
		s := Seed(feed, mlss)
		if different(s.TSS(), mlss, 1e-9) {
			t.Errorf("Seed(%g): TSS = %g", mlss, s.TSS())
		}
	}
	if s := Seed(feed, -10); s.TSS() != 0 {
		t.Errorf("negative MLSS seeded %g solids, want 0", s.TSS())
	}
}

func TestStateAggregates(t *testing.T) {
	var s State
	s[SI] = 10
	s[SS] = 40
	s[XI] = 100
	s[XS] = 60
	s[XBH] = 800
	s[XBA] = 40
	s[XP] = 200

	if different(s.SolubleCOD(), 50, testTolerance) {
		t.Errorf("soluble COD = %g, want 50", s.SolubleCOD())
	}
	if different(s.ParticulateCOD(), 1200, testTolerance) {
		t.Errorf("particulate COD = %g, want 1200", s.ParticulateCOD())
	}
	if different(s.TotalCOD(), 1250, testTolerance) {
		t.Errorf("total COD = %g, want 1250", s.TotalCOD())
	}
	if different(s.TSS(), 900, testTolerance) {
		t.Errorf("TSS = %g, want 900", s.TSS())
	}
	if different(s.SolubleBOD5(), 26, testTolerance) {
		t.Errorf("soluble BOD5 = %g, want 26", s.SolubleBOD5())
	}
}
