// Summarizes a finished trajectory: displacement from the start and, for
// Model 2, how long the bond spent in each orientation.

package sim

import (
	"fmt"
	"io"
	"math"
)

// TrajectoryMetrics aggregates statistics about one trajectory for final reporting.
type TrajectoryMetrics struct {
	Steps               int      // Number of recorded snapshots
	NetDisplacement     Position // Final position minus initial position
	SquaredDisplacement float64  // |NetDisplacement|²
	MaxExcursion        float64  // Largest distance from the initial position over all snapshots
	MovingSteps         int      // Snapshots that differ from the preceding state

	// OrientationCounts[o] counts snapshots with orientation o. Nil for Model 1.
	OrientationCounts []int
}

// ComputeHopMetrics summarizes a Model 1 trajectory started at initial.
func ComputeHopMetrics(trajectory []Position, initial Position) TrajectoryMetrics {
	m := TrajectoryMetrics{Steps: len(trajectory)}
	prev := initial
	for _, p := range trajectory {
		m.observe(p, prev, initial)
		prev = p
	}
	m.finish(prev, initial)
	return m
}

// ComputeHopRotateMetrics summarizes a Model 2 trajectory started at initial.
func ComputeHopRotateMetrics(trajectory []State, initial State) TrajectoryMetrics {
	m := TrajectoryMetrics{
		Steps:             len(trajectory),
		OrientationCounts: make([]int, NumOrientations),
	}
	prev := initial
	for _, s := range trajectory {
		m.observe(s.Position(), prev.Position(), initial.Position())
		if s.Orientation != prev.Orientation && s.Position() == prev.Position() {
			m.MovingSteps++
		}
		if s.Orientation.Valid() {
			m.OrientationCounts[s.Orientation]++
		}
		prev = s
	}
	m.finish(prev.Position(), initial.Position())
	return m
}

func (m *TrajectoryMetrics) observe(p, prev, initial Position) {
	if p != prev {
		m.MovingSteps++
	}
	m.MaxExcursion = math.Max(m.MaxExcursion, p.Sub(initial).Norm())
}

func (m *TrajectoryMetrics) finish(last, initial Position) {
	m.NetDisplacement = last.Sub(initial)
	m.SquaredDisplacement = m.NetDisplacement.SquaredNorm()
}

// Print writes the aggregated metrics in a human-readable table.
func (m TrajectoryMetrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Steps                : %d\n", m.Steps)
	fmt.Fprintf(w, "Moving Steps         : %d\n", m.MovingSteps)
	fmt.Fprintf(w, "Net Displacement     : (%.4f, %.4f)\n", m.NetDisplacement.X, m.NetDisplacement.Y)
	fmt.Fprintf(w, "Squared Displacement : %.4f\n", m.SquaredDisplacement)
	fmt.Fprintf(w, "Max Excursion        : %.4f\n", m.MaxExcursion)
	if m.OrientationCounts != nil && m.Steps > 0 {
		for o, n := range m.OrientationCounts {
			fmt.Fprintf(w, "Orientation %d (%-5s): %d (%.2f%%)\n",
				o, Orientation(o), n, 100*float64(n)/float64(m.Steps))
		}
	}
}
