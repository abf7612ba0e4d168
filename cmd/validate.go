package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lattice-kmc/kmc-sim/sim/scenario"
)

var validatePath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a scenario file and print it in normalized form",
	Long:  "Load a scenario YAML with strict field checking, validate it, and write the normalized scenario to stdout.",
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := scenario.LoadScenarioSpec(validatePath)
		if err != nil {
			logrus.Fatalf("Failed to load scenario %s: %v", validatePath, err)
		}
		if err := writeValidatedSpec(spec, os.Stdout); err != nil {
			logrus.Fatalf("Invalid scenario %s: %v", validatePath, err)
		}
	},
}

// writeValidatedSpec validates spec and marshals it as YAML to w.
func writeValidatedSpec(spec *scenario.ScenarioSpec, w io.Writer) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(spec)
	if err != nil {
		return fmt.Errorf("YAML marshal failed: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func init() {
	validateCmd.Flags().StringVar(&validatePath, "scenario", "", "Path to scenario YAML")
	_ = validateCmd.MarkFlagRequired("scenario")

	rootCmd.AddCommand(validateCmd)
}
