package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/lattice-kmc/kmc-sim/sim/trace"
)

// hopCategories is the size of the discrete sample drawn each Model 1 step.
const hopCategories = 4

// Position is a point on the unit lattice of Model 1.
type Position struct {
	X float64
	Y float64
}

// Add returns p + q.
func (p Position) Add(q Position) Position {
	return Position{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Position) Sub(q Position) Position {
	return Position{X: p.X - q.X, Y: p.Y - q.Y}
}

// Norm returns the Euclidean length of p.
func (p Position) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// SquaredNorm returns X² + Y².
func (p Position) SquaredNorm() float64 {
	return p.X*p.X + p.Y*p.Y
}

// Unit moves indexed by the discrete sample x2.
var hopMoves = [hopCategories]Position{
	{X: 1, Y: 0},  // x2=0
	{X: -1, Y: 0}, // x2=1
	{X: 0, Y: 1},  // x2=2
	{X: 0, Y: -1}, // x2=3
}

// Diagonal moves taken on a Model 1 "rotate" event. Despite the name the
// particle does not reorient; it makes a two-axis step of length √2.
var diagonalMoves = [hopCategories]Position{
	{X: 1, Y: -1},  // x2=0
	{X: -1, Y: 1},  // x2=1
	{X: -1, Y: -1}, // x2=2
	{X: 1, Y: 1},   // x2=3
}

// PositionFromSlice converts a two-component initial vector into a Position.
func PositionFromSlice(v []float64) (Position, error) {
	if len(v) != 2 {
		return Position{}, fmt.Errorf("initial position must have 2 components (x, y), got %d: %w", len(v), ErrInvalidArgument)
	}
	if err := validateFinite("initial x", v[0]); err != nil {
		return Position{}, err
	}
	if err := validateFinite("initial y", v[1]); err != nil {
		return Position{}, err
	}
	return Position{X: v[0], Y: v[1]}, nil
}

// applyHopEvent returns the position after an event of the given kind.
func applyHopEvent(p Position, kind EventKind, x2 int) Position {
	switch kind {
	case Hop:
		return p.Add(hopMoves[x2])
	case Rotate:
		return p.Add(diagonalMoves[x2])
	default:
		return p
	}
}

// SimulateHop runs the hop-only model for exactly steps steps and returns the
// position after each step. Every step draws x1 = rng.Float64() then
// x2 = rng.Intn(4), so a seeded source fixes the whole trajectory.
//
// Arguments are validated before any draw; failures wrap ErrInvalidArgument.
// gamma1 == gamma2 == 0 is accepted and yields a constant trajectory.
func SimulateHop(initial Position, gamma1, gamma2 float64, steps int, rng EventSource, opts ...Option) ([]Position, error) {
	rates := NewRateConfig(gamma1, gamma2)
	if err := validateHopArgs(initial, rates, steps, rng); err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	tracing := o.trace.Enabled()
	if tracing {
		o.trace.Grow(steps)
	}

	logrus.Debugf("hop: starting %d steps from (%g, %g), gamma_1=%g gamma_2=%g",
		steps, initial.X, initial.Y, gamma1, gamma2)

	gamma := rates.Total()
	pos := initial
	trajectory := make([]Position, steps)
	for i := 0; i < steps; i++ {
		x1 := rng.Float64()
		x2 := rng.Intn(hopCategories)
		kind := selectEvent(x1*gamma, rates.Gamma1)
		pos = applyHopEvent(pos, kind, x2)
		trajectory[i] = pos

		if tracing {
			o.trace.RecordEvent(trace.EventRecord{
				Step:        i,
				Kind:        trace.EventKind(kind.String()),
				Continuous:  x1,
				Discrete:    x2,
				Orientation: -1,
			})
		}
	}

	logrus.Debugf("hop: finished at (%g, %g)", pos.X, pos.Y)
	return trajectory, nil
}

func validateHopArgs(initial Position, rates RateConfig, steps int, rng EventSource) error {
	if err := validateFinite("initial x", initial.X); err != nil {
		return err
	}
	if err := validateFinite("initial y", initial.Y); err != nil {
		return err
	}
	if err := rates.Validate(); err != nil {
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
