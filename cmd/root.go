package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lattice-kmc/kmc-sim/sim"
	"github.com/lattice-kmc/kmc-sim/sim/scenario"
	"github.com/lattice-kmc/kmc-sim/sim/trace"
)

var (
	logLevel string // Log verbosity level

	// CLI flags for run
	runFlags      scenarioFlags
	runOutputPath string // CSV trajectory destination (optional)
	runHeaderPath string // YAML header destination (optional)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "kmc-sim",
	Short: "Kinetic Monte Carlo simulator for hydrogen hopping on a 2D lattice",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd simulates a single trajectory using parameters from CLI flags or a scenario file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one KMC trajectory",
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := runFlags.build(cmd)
		if err != nil {
			logrus.Fatalf("unable to read scenario: %v", err)
		}
		if err := spec.Validate(); err != nil {
			logrus.Fatalf("invalid scenario: %v", err)
		}
		if runHeaderPath != "" && runOutputPath == "" {
			logrus.Fatalf("--header requires --output")
		}
		if err := executeRun(spec, runHeaderPath, runOutputPath, os.Stdout); err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// executeRun simulates spec once, prints metrics to stdout and optionally exports the trajectory.
func executeRun(spec *scenario.ScenarioSpec, headerPath, dataPath string, stdout io.Writer) error {
	logrus.Infof("Starting %s simulation: %d steps, gamma_1=%g, gamma_2=%g, seed=%d",
		spec.Model, spec.Steps, spec.Gamma1, spec.Gamma2, spec.Seed)

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed)).ForSubsystem(sim.SubsystemTrajectory)
	var st *trace.StepTrace
	if trace.TraceLevel(spec.Trace) == trace.TraceLevelEvents {
		st = trace.NewStepTrace(trace.TraceConfig{Level: trace.TraceLevelEvents})
	}

	startTime := time.Now()
	res, err := spec.Run(rng, sim.WithTrace(st))
	if err != nil {
		return err
	}
	logrus.Infof("Simulated %d steps in %s", res.Len(), time.Since(startTime))

	res.Metrics().Print(stdout)
	if st != nil {
		printTraceSummary(stdout, trace.Summarize(st))
	}

	if dataPath != "" {
		if err := exportResult(newRunID(), spec, res, nil, headerPath, dataPath); err != nil {
			return err
		}
		logrus.Infof("Trajectory written to %s", dataPath)
	}
	return nil
}

func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Event Trace ===")
	fmt.Fprintf(w, "Hop Events           : %d\n", s.HopCount)
	fmt.Fprintf(w, "Rotate Events        : %d\n", s.RotateCount)
	fmt.Fprintf(w, "No-op Steps          : %d\n", s.NoEventCount)
	fmt.Fprintf(w, "Hop Fraction         : %.4f\n", s.HopFraction)
}

// Execute runs the CLI root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runFlags.register(runCmd)
	runCmd.Flags().StringVar(&runOutputPath, "output", "", "Write the trajectory as CSV to this path")
	runCmd.Flags().StringVar(&runHeaderPath, "header", "", "Write the trajectory header as YAML to this path (requires --output)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
