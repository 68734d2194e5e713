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
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Integration failure modes. Both wrap additional detail; test with
// errors.Is.
var (
	// ErrDiverged reports a non-finite state component, a negative
	// excursion beyond numerical tolerance, or a component above the
	// sanity ceiling.
	ErrDiverged = errors.New("asm1: simulation diverged")

	// ErrNotConverged reports that the steady-state solver exhausted its
	// step budget before the state stopped changing.
	ErrNotConverged = errors.New("asm1: simulation did not converge")
)

// Config describes one completely mixed biological reactor and the
// numerical settings for integrating it.
type Config struct {
	Volume float64 // reactor volume [m³]
	Flow   float64 // influent flow [m³/d]
	SRT    float64 // solids retention time [d]

	// DO is the dissolved-oxygen setpoint [g/m³]. A positive value
	// models an aeration controller holding S_O at the setpoint; zero
	// leaves oxygen unaerated (anoxic/anaerobic operation).
	DO float64

	// Temperature is the mixed-liquor temperature [°C].
	Temperature float64

	// Params are the kinetic and stoichiometric coefficients at 20 °C;
	// the zero value means DefaultParams().
	Params *Params

	// Dt is the integration step [d]. Zero selects a step small enough
	// for the fastest temperature-corrected rate in the system.
	Dt float64

	// MaxSteps bounds the integration so train computation always
	// terminates. Zero means 500000.
	MaxSteps int

	// Tolerance is the steady-state convergence threshold on the
	// relative rate of state change [1/d]. Zero means 1e-6.
	Tolerance float64

	// NegativeTolerance is how far below zero a component may dip from
	// roundoff before the step is treated as divergence instead of being
	// clamped. Zero means 1e-6 g/m³.
	NegativeTolerance float64

	// Ceiling is the sanity bound on any component [g/m³]. Zero means
	// 1e6.
	Ceiling float64
}

func (c Config) withDefaults() Config {
	if c.Params == nil {
		p := DefaultParams()
		c.Params = &p
	}
	if c.MaxSteps == 0 {
		c.MaxSteps = 500000
	}
	if c.Tolerance == 0 {
		c.Tolerance = 1e-6
	}
	if c.NegativeTolerance == 0 {
		c.NegativeTolerance = 1e-6
	}
	if c.Ceiling == 0 {
		c.Ceiling = 1e6
	}
	return c
}

// validate rejects configurations the integrator cannot run before any
// integration begins.
func (c Config) validate(feed, init State) error {
	for name, v := range map[string]float64{
		"volume": c.Volume, "flow": c.Flow, "SRT": c.SRT,
		"DO": c.DO, "temperature": c.Temperature,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("asm1: %s is not finite", name)
		}
	}
	if c.Volume <= 0 {
		return fmt.Errorf("asm1: reactor volume must be positive, got %g m³", c.Volume)
	}
	if c.Flow < 0 {
		return fmt.Errorf("asm1: flow must be non-negative, got %g m³/d", c.Flow)
	}
	if c.SRT <= 0 {
		return fmt.Errorf("asm1: solids retention time must be positive, got %g d", c.SRT)
	}
	if c.DO < 0 {
		return fmt.Errorf("asm1: dissolved-oxygen setpoint must be non-negative, got %g g/m³", c.DO)
	}
	for i, v := range feed {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("asm1: feed component %s = %g is invalid", ComponentName(i), v)
		}
	}
	for i, v := range init {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("asm1: initial component %s = %g is invalid", ComponentName(i), v)
		}
	}
	return nil
}

// reactor holds the precomputed terms of the mass balance so the
// integration loop is allocation-free.
type reactor struct {
	p        Params
	stoich   [numProcesses][NumComponents]float64
	feed     State
	dilution float64 // Q/V [1/d]
	wastage  float64 // 1/SRT [1/d]
	do       float64
	aerated  bool
}

func newReactor(feed State, c Config) *reactor {
	// Temperature correction is applied to the rate constants here, once,
	// before any switching function is evaluated.
	p := c.Params.Corrected(c.Temperature)
	return &reactor{
		p:        p,
		stoich:   p.stoichiometry(),
		feed:     feed,
		dilution: c.Flow / c.Volume,
		wastage:  1 / c.SRT,
		do:       c.DO,
		aerated:  c.DO > 0,
	}
}

// derivative is the right-hand side of the mass balance: the
// stoichiometric sum of the eight process rates plus hydraulic dilution
// for soluble components and sludge wastage for particulates. In aerated
// operation S_O is held at the setpoint.
func (r *reactor) derivative(s State) State {
	if r.aerated {
		s[SO] = r.do
	}
	rho := rates(s, r.p)

	var d State
	for j := 0; j < numProcesses; j++ {
		for i := 0; i < NumComponents; i++ {
			d[i] += r.stoich[j][i] * rho[j]
		}
	}
	for i := 0; i < NumComponents; i++ {
		if soluble(i) {
			d[i] += (r.feed[i] - s[i]) * r.dilution
		} else {
			d[i] += r.feed[i]*r.dilution - s[i]*r.wastage
		}
	}
	if r.aerated {
		d[SO] = 0
	}
	return d
}

// step advances s by one fixed RK4 step of size dt: four derivative
// evaluations weighted 1-2-2-1 over 6.
func (r *reactor) step(s State, dt float64) State {
	var y2, y3, y4 State
	k1 := r.derivative(s)
	floats.AddScaledTo(y2[:], s[:], dt/2, k1[:])
	k2 := r.derivative(y2)
	floats.AddScaledTo(y3[:], s[:], dt/2, k2[:])
	k3 := r.derivative(y3)
	floats.AddScaledTo(y4[:], s[:], dt, k3[:])
	k4 := r.derivative(y4)

	floats.AddScaled(s[:], dt/6, k1[:])
	floats.AddScaled(s[:], dt/3, k2[:])
	floats.AddScaled(s[:], dt/3, k3[:])
	floats.AddScaled(s[:], dt/6, k4[:])
	return s
}

// stepSize returns the configured step, or one sized against the fastest
// temperature-corrected characteristic rate so the explicit scheme stays
// stable.
func stepSize(c Config, r *reactor) float64 {
	if c.Dt > 0 {
		return c.Dt
	}
	fastest := math.Max(r.p.MuH, math.Max(r.p.MuA, r.p.KH))
	fastest = math.Max(fastest, math.Max(r.dilution, r.wastage))
	dt := 0.05 / fastest
	if dt > 1e-3 {
		dt = 1e-3
	}
	return dt
}

// check validates a freshly computed state, clamping sub-tolerance
// negative roundoff to zero and reporting anything worse as divergence.
func check(s *State, c Config, step int) error {
	if !s.nonNegative(c.NegativeTolerance) {
		return fmt.Errorf("%w: negative or non-finite state at step %d", ErrDiverged, step)
	}
	for i, v := range s {
		if v > c.Ceiling {
			return fmt.Errorf("%w: component %s = %g exceeds ceiling %g at step %d",
				ErrDiverged, ComponentName(i), v, c.Ceiling, step)
		}
	}
	return nil
}

// Steady integrates the reactor from init until the state stops changing,
// returning the steady state. It returns ErrNotConverged if the step
// budget runs out first and ErrDiverged if the state leaves the physical
// region.
func Steady(feed, init State, c Config) (State, error) {
	c = c.withDefaults()
	if err := c.validate(feed, init); err != nil {
		return State{}, err
	}
	r := newReactor(feed, c)
	dt := stepSize(c, r)

	s := init
	if r.aerated {
		s[SO] = r.do
	}
	for step := 1; step <= c.MaxSteps; step++ {
		prev := s
		s = r.step(s, dt)
		if err := check(&s, c, step); err != nil {
			return State{}, err
		}
		if converged(prev, s, dt, c.Tolerance) {
			return s, nil
		}
	}
	return State{}, fmt.Errorf("%w: %d steps of %g d", ErrNotConverged, c.MaxSteps, dt)
}

// Simulate integrates the reactor for a fixed simulated duration [d]
// (dynamic mode) and returns the endpoint state.
func Simulate(feed, init State, duration float64, c Config) (State, error) {
	c = c.withDefaults()
	if err := c.validate(feed, init); err != nil {
		return State{}, err
	}
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return State{}, fmt.Errorf("asm1: duration must be positive and finite, got %g d", duration)
	}
	r := newReactor(feed, c)
	dt := stepSize(c, r)
	n := int(math.Ceil(duration / dt))
	if n > c.MaxSteps {
		return State{}, fmt.Errorf("asm1: duration %g d at step %g d needs %d steps, more than the budget of %d",
			duration, dt, n, c.MaxSteps)
	}

	s := init
	if r.aerated {
		s[SO] = r.do
	}
	for step := 1; step <= n; step++ {
		s = r.step(s, dt)
		if err := check(&s, c, step); err != nil {
			return State{}, err
		}
	}
	return s, nil
}

// converged reports whether the relative rate of change between two
// consecutive states has dropped below tol [1/d].
func converged(prev, cur State, dt, tol float64) bool {
	for i := range cur {
		scale := math.Max(math.Abs(cur[i]), 1)
		if math.Abs(cur[i]-prev[i])/(dt*scale) > tol {
			return false
		}
	}
	return true
}

// Seed builds a plausible starting state for the steady-state solver from
// a mixed-liquor solids setpoint [g TSS/m³] and the reactor feed. The
// split between biomass fractions only affects how fast the solver
// converges, not where it converges to.
func Seed(feed State, mlss float64) State {
	if mlss < 0 {
		mlss = 0
	}
	xcod := mlss / codToTSS
	s := feed
	s[XBH] = 0.45 * xcod
	s[XBA] = 0.02 * xcod
	s[XS] = 0.10 * xcod
	s[XI] = 0.28 * xcod
	s[XP] = 0.15 * xcod
	return s
}
