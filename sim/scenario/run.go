package scenario

import (
	"fmt"

	"github.com/lattice-kmc/kmc-sim/sim"
)

// Result holds one trajectory produced from a ScenarioSpec. Exactly one of
// Positions (hop) or States (hop-rotate) is populated.
type Result struct {
	Model     string
	Positions []sim.Position
	States    []sim.State

	initialPosition sim.Position
	initialState    sim.State
}

// Run executes the scenario's model once with rng. The spec must have passed Validate.
func (s *ScenarioSpec) Run(rng sim.EventSource, opts ...sim.Option) (*Result, error) {
	switch s.Model {
	case ModelHop:
		initial, err := s.HopInitial()
		if err != nil {
			return nil, err
		}
		traj, err := sim.SimulateHop(initial, s.Gamma1, s.Gamma2, s.Steps, rng, opts...)
		if err != nil {
			return nil, err
		}
		return &Result{Model: s.Model, Positions: traj, initialPosition: initial}, nil
	case ModelHopRotate:
		initial, err := s.HopRotateInitial()
		if err != nil {
			return nil, err
		}
		l := s.LatticeConfig()
		traj, err := sim.SimulateHopRotate(initial, s.Gamma1, s.Gamma2, l.A, l.B, s.Steps, rng, opts...)
		if err != nil {
			return nil, err
		}
		return &Result{Model: s.Model, States: traj, initialState: initial}, nil
	default:
		return nil, fmt.Errorf("unknown model %q; valid: hop, hop-rotate", s.Model)
	}
}

// Len returns the number of snapshots.
func (r *Result) Len() int {
	if r.Model == ModelHopRotate {
		return len(r.States)
	}
	return len(r.Positions)
}

// Initial returns the starting position.
func (r *Result) Initial() sim.Position {
	if r.Model == ModelHopRotate {
		return r.initialState.Position()
	}
	return r.initialPosition
}

// InitialVector returns the starting state in the layout of the initial
// field: (x, y) for hop, (x, y, orientation) for hop-rotate.
func (r *Result) InitialVector() []float64 {
	if r.Model == ModelHopRotate {
		return []float64{r.initialState.X, r.initialState.Y, float64(r.initialState.Orientation)}
	}
	return []float64{r.initialPosition.X, r.initialPosition.Y}
}

// PositionAt returns the position of snapshot i.
func (r *Result) PositionAt(i int) sim.Position {
	if r.Model == ModelHopRotate {
		return r.States[i].Position()
	}
	return r.Positions[i]
}

// Metrics summarizes the trajectory.
func (r *Result) Metrics() sim.TrajectoryMetrics {
	if r.Model == ModelHopRotate {
		return sim.ComputeHopRotateMetrics(r.States, r.initialState)
	}
	return sim.ComputeHopMetrics(r.Positions, r.initialPosition)
}
