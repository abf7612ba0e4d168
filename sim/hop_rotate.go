package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/lattice-kmc/kmc-sim/sim/trace"
)

// rotateCategories is the size of the discrete sample drawn each Model 2 step.
const rotateCategories = 2

// State is the Model 2 state: hydrogen position plus bond orientation.
type State struct {
	X           float64
	Y           float64
	Orientation Orientation
}

// Position drops the orientation.
func (s State) Position() Position {
	return Position{X: s.X, Y: s.Y}
}

// StateFromSlice converts a three-component initial vector (x, y, orientation)
// into a State. The orientation component must be an integer in {0, 1, 2, 3}.
func StateFromSlice(v []float64) (State, error) {
	if len(v) != 3 {
		return State{}, fmt.Errorf("initial state must have 3 components (x, y, orientation), got %d: %w", len(v), ErrInvalidArgument)
	}
	if err := validateFinite("initial x", v[0]); err != nil {
		return State{}, err
	}
	if err := validateFinite("initial y", v[1]); err != nil {
		return State{}, err
	}
	if v[2] != math.Trunc(v[2]) {
		return State{}, fmt.Errorf("initial orientation must be an integer, got %g: %w", v[2], ErrInvalidArgument)
	}
	o := Orientation(v[2])
	if !o.Valid() {
		return State{}, fmt.Errorf("initial orientation must be in {0, 1, 2, 3}, got %g: %w", v[2], ErrInvalidArgument)
	}
	return State{X: v[0], Y: v[1], Orientation: o}, nil
}

// applyRotateEvent returns the state after an event of the given kind.
// d1 and b are the hop and rotation length scales.
func applyRotateEvent(s State, kind EventKind, x2 int, d1, b float64) State {
	var t transition
	var scale float64
	switch kind {
	case Hop:
		t, scale = hopTable[s.Orientation], d1
	case Rotate:
		t, scale = rotateTable[s.Orientation][x2], b
	default:
		return s
	}
	return State{
		X:           s.X + t.dx*scale,
		Y:           s.Y + t.dy*scale,
		Orientation: t.next,
	}
}

// SimulateHopRotate runs the hop + rotation model for exactly steps steps and
// returns the state after each step. Every step draws x1 = rng.Float64() then
// x2 = rng.Intn(2); x2 only matters on rotation steps.
//
// A hop moves the hydrogen by d1 = a - 2b to the facing oxygen and flips the
// orientation to its opposite. A rotation pivots the bond a quarter turn
// about its anchor, moving b along each axis.
//
// Arguments are validated before any draw; failures wrap ErrInvalidArgument.
func SimulateHopRotate(initial State, gamma1, gamma2, a, b float64, steps int, rng EventSource, opts ...Option) ([]State, error) {
	rates := NewRateConfig(gamma1, gamma2)
	lattice := NewLatticeConfig(a, b)
	if err := validateHopRotateArgs(initial, rates, lattice, steps, rng); err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	tracing := o.trace.Enabled()
	if tracing {
		o.trace.Grow(steps)
	}

	logrus.Debugf("hop-rotate: starting %d steps from (%g, %g, %d), gamma_1=%g gamma_2=%g a=%g b=%g",
		steps, initial.X, initial.Y, initial.Orientation, gamma1, gamma2, a, b)

	gamma := rates.Total()
	d1 := lattice.HopDistance()
	state := initial
	trajectory := make([]State, steps)
	for i := 0; i < steps; i++ {
		x1 := rng.Float64()
		x2 := rng.Intn(rotateCategories)
		kind := selectEvent(x1*gamma, rates.Gamma1)
		state = applyRotateEvent(state, kind, x2, d1, b)
		trajectory[i] = state

		if tracing {
			o.trace.RecordEvent(trace.EventRecord{
				Step:        i,
				Kind:        trace.EventKind(kind.String()),
				Continuous:  x1,
				Discrete:    x2,
				Orientation: int(state.Orientation),
			})
		}
	}

	logrus.Debugf("hop-rotate: finished at (%g, %g, %d)", state.X, state.Y, state.Orientation)
	return trajectory, nil
}

func validateHopRotateArgs(initial State, rates RateConfig, lattice LatticeConfig, steps int, rng EventSource) error {
	if err := validateFinite("initial x", initial.X); err != nil {
		return err
	}
	if err := validateFinite("initial y", initial.Y); err != nil {
		return err
	}
	if !initial.Orientation.Valid() {
		return fmt.Errorf("initial orientation must be in {0, 1, 2, 3}, got %d: %w", initial.Orientation, ErrInvalidArgument)
	}
	if err := rates.Validate(); err != nil {
		return err
	}
	if err := lattice.Validate(); err != nil {
		return err
	}
	if err := validateSteps(steps); err != nil {
		return err
	}
	if rng == nil {
		return fmt.Errorf("event source must not be nil: %w", ErrInvalidArgument)
	}
	return nil
}
