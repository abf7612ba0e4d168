package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lattice-kmc/kmc-sim/sim/ensemble"
	"github.com/lattice-kmc/kmc-sim/sim/output"
	"github.com/lattice-kmc/kmc-sim/sim/scenario"
	"github.com/lattice-kmc/kmc-sim/sim/trace"
)

var (
	ensembleFlags     scenarioFlags
	ensembleMembers   int    // Number of independent trajectories
	ensembleWorkers   int    // Max concurrent trajectories
	ensembleOutputDir string // Directory for per-member CSVs and msd.csv (optional)
)

var ensembleCmd = &cobra.Command{
	Use:   "ensemble",
	Short: "Run independent trajectories concurrently and report mean squared displacement",
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := ensembleFlags.build(cmd)
		if err != nil {
			logrus.Fatalf("unable to read scenario: %v", err)
		}
		applyEnsembleFlags(cmd, spec)
		if err := spec.Validate(); err != nil {
			logrus.Fatalf("invalid scenario: %v", err)
		}
		if err := executeEnsemble(cmd.Context(), spec, ensembleOutputDir, os.Stdout); err != nil {
			logrus.Fatalf("ensemble failed: %v", err)
		}
		logrus.Info("Ensemble complete.")
	},
}

// applyEnsembleFlags fills spec.Ensemble from --members/--workers. A scenario
// file's ensemble section wins unless the flag was set explicitly.
func applyEnsembleFlags(c *cobra.Command, spec *scenario.ScenarioSpec) {
	if spec.Ensemble == nil {
		spec.Ensemble = &scenario.EnsembleSpec{Members: ensembleMembers, Workers: ensembleWorkers}
		return
	}
	if c.Flags().Changed("members") {
		spec.Ensemble.Members = ensembleMembers
	}
	if c.Flags().Changed("workers") {
		spec.Ensemble.Workers = ensembleWorkers
	}
}

// executeEnsemble runs spec.Ensemble, prints statistics and optionally writes
// one CSV + header per member and the MSD series into outDir.
func executeEnsemble(ctx context.Context, spec *scenario.ScenarioSpec, outDir string, stdout io.Writer) error {
	cfg := ensemble.ConfigFromSpec(spec.Ensemble, trace.TraceLevel(spec.Trace) == trace.TraceLevelEvents)
	report, err := ensemble.Run(ctx, spec, cfg)
	if err != nil {
		return err
	}
	report.Stats.Print(stdout)

	if outDir == "" {
		return nil
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	runID := newRunID()
	for _, m := range report.Members {
		id := m.ID
		base := filepath.Join(outDir, fmt.Sprintf("member_%03d", id))
		if err := exportResult(runID, spec, m.Result, &id, base+".yaml", base+".csv"); err != nil {
			return fmt.Errorf("member %d: %w", id, err)
		}
	}
	msdPath := filepath.Join(outDir, "msd.csv")
	err = output.Export(nil, "", msdPath, func(w io.Writer) error {
		return output.WriteSeriesCSV(w, "msd", report.Stats.MSD)
	})
	if err != nil {
		return err
	}
	logrus.Infof("Wrote %d member trajectories and msd.csv to %s", len(report.Members), outDir)
	return nil
}

func init() {
	ensembleFlags.register(ensembleCmd)
	ensembleCmd.Flags().IntVar(&ensembleMembers, "members", 32, "Number of independent trajectories")
	ensembleCmd.Flags().IntVar(&ensembleWorkers, "workers", 0, "Max concurrent trajectories (0 = one per member)")
	ensembleCmd.Flags().StringVar(&ensembleOutputDir, "output-dir", "", "Directory for per-member CSV files and msd.csv")

	rootCmd.AddCommand(ensembleCmd)
}
