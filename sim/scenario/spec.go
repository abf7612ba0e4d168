// Package scenario loads and validates YAML run specifications for the
// hop and hop-rotate kernels.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/lattice-kmc/kmc-sim/sim"
	"github.com/lattice-kmc/kmc-sim/sim/trace"
)

// Model names accepted in the model field.
const (
	ModelHop       = "hop"
	ModelHopRotate = "hop-rotate"
)

// modelAliases maps the legacy numbered kernel names onto model names.
var modelAliases = map[string]string{
	"kmc1": ModelHop,
	"kmc2": ModelHopRotate,
}

// ScenarioSpec is the top-level run configuration.
// Loaded from YAML via LoadScenarioSpec(path).
type ScenarioSpec struct {
	Version  string        `yaml:"version"`
	Seed     int64         `yaml:"seed"`
	Model    string        `yaml:"model"`
	Initial  []float64     `yaml:"initial,omitempty"`
	Gamma1   float64       `yaml:"gamma_1"`
	Gamma2   float64       `yaml:"gamma_2"`
	Lattice  *LatticeSpec  `yaml:"lattice,omitempty"`
	Steps    int           `yaml:"steps"`
	Trace    string        `yaml:"trace,omitempty"`
	Ensemble *EnsembleSpec `yaml:"ensemble,omitempty"`
}

// LatticeSpec holds the Model 2 lattice constants.
type LatticeSpec struct {
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
}

// EnsembleSpec configures a batch of independent trajectories.
type EnsembleSpec struct {
	Members int `yaml:"members"`
	Workers int `yaml:"workers,omitempty"` // 0 = one per member
}

// NormalizeModel maps legacy model names onto current ones in-place.
// Idempotent. Emits a logrus.Warn for each mapped name.
func NormalizeModel(spec *ScenarioSpec) {
	if spec.Version == "" {
		spec.Version = "1"
	}
	if name, ok := modelAliases[spec.Model]; ok {
		logrus.Warnf("model %q auto-mapped to %q; update your scenario to use the new name", spec.Model, name)
		spec.Model = name
	}
}

// LoadScenarioSpec reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenarioSpec(path string) (*ScenarioSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return ParseScenarioSpec(data)
}

// ParseScenarioSpec parses a YAML scenario document with strict field checking.
func ParseScenarioSpec(data []byte) (*ScenarioSpec, error) {
	var spec ScenarioSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	NormalizeModel(&spec)
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
// Kernel-level failures wrap sim.ErrInvalidArgument.
func (s *ScenarioSpec) Validate() error {
	if !IsValidModel(s.Model) {
		return fmt.Errorf("unknown model %q; valid: hop, hop-rotate", s.Model)
	}
	if err := sim.NewRateConfig(s.Gamma1, s.Gamma2).Validate(); err != nil {
		return err
	}
	if s.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d: %w", s.Steps, sim.ErrInvalidArgument)
	}
	if !trace.IsValidTraceLevel(s.Trace) {
		return fmt.Errorf("unknown trace level %q; valid: none, events", s.Trace)
	}
	switch s.Model {
	case ModelHop:
		if _, err := s.HopInitial(); err != nil {
			return err
		}
	case ModelHopRotate:
		if s.Lattice == nil {
			return fmt.Errorf("model %s requires lattice.a and lattice.b: %w", s.Model, sim.ErrInvalidArgument)
		}
		if err := s.LatticeConfig().Validate(); err != nil {
			return err
		}
		if _, err := s.HopRotateInitial(); err != nil {
			return err
		}
	}
	if s.Ensemble != nil {
		if err := s.Ensemble.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (e *EnsembleSpec) validate() error {
	if e.Members <= 0 {
		return fmt.Errorf("ensemble.members must be positive, got %d", e.Members)
	}
	if e.Workers < 0 {
		return fmt.Errorf("ensemble.workers must be non-negative, got %d", e.Workers)
	}
	return nil
}

// Rates returns the configured event rates.
func (s *ScenarioSpec) Rates() sim.RateConfig {
	return sim.NewRateConfig(s.Gamma1, s.Gamma2)
}

// LatticeConfig returns the configured lattice constants, zero-valued when absent.
func (s *ScenarioSpec) LatticeConfig() sim.LatticeConfig {
	if s.Lattice == nil {
		return sim.LatticeConfig{}
	}
	return sim.NewLatticeConfig(s.Lattice.A, s.Lattice.B)
}

// HopInitial returns the initial position for the hop model.
// An empty initial vector means the origin.
func (s *ScenarioSpec) HopInitial() (sim.Position, error) {
	if len(s.Initial) == 0 {
		return sim.Position{}, nil
	}
	return sim.PositionFromSlice(s.Initial)
}

// HopRotateInitial returns the initial state for the hop-rotate model.
// An empty initial vector means the hydrogen bonded north of the origin oxygen, (0, b, 0).
func (s *ScenarioSpec) HopRotateInitial() (sim.State, error) {
	if len(s.Initial) == 0 {
		return sim.State{X: 0, Y: s.LatticeConfig().B, Orientation: sim.North}, nil
	}
	return sim.StateFromSlice(s.Initial)
}

// IsValidModel reports whether name is a recognized model.
func IsValidModel(name string) bool {
	return name == ModelHop || name == ModelHopRotate
}
