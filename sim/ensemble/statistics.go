package ensemble

import (
	"fmt"
	"io"

	"github.com/lattice-kmc/kmc-sim/sim"
	"github.com/lattice-kmc/kmc-sim/sim/trace"
)

// Statistics aggregates displacement over ensemble members.
type Statistics struct {
	Members int
	Steps   int

	// MSD[k] is the mean over members of |r_k - r_0|² after step k+1.
	MSD []float64

	// MeanDisplacement is the mean final displacement vector; near zero for an unbiased walk.
	MeanDisplacement sim.Position

	// Diffusion is the 2D estimate MSD(N) / (4N) in squared length units per step.
	Diffusion float64

	// Events pools member event summaries. Nil when members were not traced.
	Events *trace.TraceSummary
}

// ComputeStatistics aggregates members in ID order. All members must have
// trajectories of equal length.
func ComputeStatistics(members []Member) Statistics {
	stats := Statistics{Members: len(members)}
	if len(members) == 0 {
		return stats
	}
	steps := members[0].Result.Len()
	stats.Steps = steps
	stats.MSD = make([]float64, steps)

	var sumFinal sim.Position
	for _, m := range members {
		r0 := m.Result.Initial()
		for k := 0; k < steps; k++ {
			stats.MSD[k] += m.Result.PositionAt(k).Sub(r0).SquaredNorm()
		}
		if steps > 0 {
			sumFinal = sumFinal.Add(m.Result.PositionAt(steps - 1).Sub(r0))
		}
		if m.Summary != nil {
			if stats.Events == nil {
				stats.Events = &trace.TraceSummary{}
			}
			stats.Events.Merge(m.Summary)
		}
	}

	n := float64(len(members))
	for k := range stats.MSD {
		stats.MSD[k] /= n
	}
	stats.MeanDisplacement = sim.Position{X: sumFinal.X / n, Y: sumFinal.Y / n}
	if steps > 0 {
		stats.Diffusion = stats.MSD[steps-1] / (4 * float64(steps))
	}
	return stats
}

// Print writes the ensemble summary in a human-readable table.
func (s Statistics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Ensemble Metrics ===")
	fmt.Fprintf(w, "Members              : %d\n", s.Members)
	fmt.Fprintf(w, "Steps                : %d\n", s.Steps)
	if s.Steps > 0 {
		fmt.Fprintf(w, "Final MSD            : %.4f\n", s.MSD[s.Steps-1])
	}
	fmt.Fprintf(w, "Mean Displacement    : (%.4f, %.4f)\n", s.MeanDisplacement.X, s.MeanDisplacement.Y)
	fmt.Fprintf(w, "Diffusion Estimate   : %.6f per step\n", s.Diffusion)
	if s.Events != nil {
		fmt.Fprintf(w, "Hop / Rotate / None  : %d / %d / %d\n", s.Events.HopCount, s.Events.RotateCount, s.Events.NoEventCount)
		fmt.Fprintf(w, "Hop Fraction         : %.4f\n", s.Events.HopFraction)
	}
}
