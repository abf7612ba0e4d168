package cmd

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/lattice-kmc/kmc-sim/sim/output"
	"github.com/lattice-kmc/kmc-sim/sim/scenario"
)

// newRunID identifies one CLI invocation; ensemble members share it.
func newRunID() string {
	return uuid.NewString()
}

// newHeader describes res for export. member is nil for single runs.
func newHeader(runID string, spec *scenario.ScenarioSpec, res *scenario.Result, member *int) *output.TrajectoryHeader {
	header := &output.TrajectoryHeader{
		Version:   output.HeaderVersion,
		RunID:     runID,
		Model:     res.Model,
		Seed:      spec.Seed,
		Member:    member,
		Gamma1:    spec.Gamma1,
		Gamma2:    spec.Gamma2,
		Initial:   res.InitialVector(),
		Steps:     res.Len(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if res.Model == scenario.ModelHopRotate {
		header.Lattice = output.NewLatticeInfo(spec.LatticeConfig())
		header.Columns = output.HopRotateColumns
	} else {
		header.Columns = output.HopColumns
	}
	return header
}

// exportResult writes res as CSV to dataPath and, when headerPath is set, its YAML header.
func exportResult(runID string, spec *scenario.ScenarioSpec, res *scenario.Result, member *int, headerPath, dataPath string) error {
	header := newHeader(runID, spec, res, member)
	return output.Export(header, headerPath, dataPath, func(w io.Writer) error {
		if res.Model == scenario.ModelHopRotate {
			return output.WriteHopRotateCSV(w, res.States)
		}
		return output.WriteHopCSV(w, res.Positions)
	})
}
