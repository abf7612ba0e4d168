package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is wrapped by every validation failure returned before a run starts.
var ErrInvalidArgument = errors.New("invalid argument")

// RateConfig groups the two competing event rates.
type RateConfig struct {
	Gamma1 float64 // hop rate (must be >= 0)
	Gamma2 float64 // rotation rate (must be >= 0)
}

// LatticeConfig groups the Model 2 lattice constants.
type LatticeConfig struct {
	A float64 // oxygen-sublattice spacing (must be > 0)
	B float64 // hydrogen-oxygen bond length (must be > 0)
}

// NewRateConfig creates a RateConfig. No defaults are injected.
func NewRateConfig(gamma1, gamma2 float64) RateConfig {
	return RateConfig{Gamma1: gamma1, Gamma2: gamma2}
}

// NewLatticeConfig creates a LatticeConfig. No defaults are injected.
func NewLatticeConfig(a, b float64) LatticeConfig {
	return LatticeConfig{A: a, B: b}
}

// Total returns gamma = gamma_1 + gamma_2, the width of the selection interval.
func (r RateConfig) Total() float64 {
	return r.Gamma1 + r.Gamma2
}

// Degenerate reports whether both rates are zero. Such a configuration is
// valid and yields a trajectory that never leaves the initial state.
func (r RateConfig) Degenerate() bool {
	return r.Gamma1 == 0 && r.Gamma2 == 0
}

// Validate rejects negative or non-finite rates, and rate pairs whose sum
// overflows (the selector scales x1 by the sum).
func (r RateConfig) Validate() error {
	if err := validateNonNegative("gamma_1", r.Gamma1); err != nil {
		return err
	}
	if err := validateNonNegative("gamma_2", r.Gamma2); err != nil {
		return err
	}
	if math.IsInf(r.Total(), 0) {
		return fmt.Errorf("gamma_1 + gamma_2 overflows (%g + %g): %w", r.Gamma1, r.Gamma2, ErrInvalidArgument)
	}
	return nil
}

// HopDistance returns d1 = a - 2b, the net displacement of an O-O hop.
// It may be negative or zero; only its sign and magnitude enter the update.
func (l LatticeConfig) HopDistance() float64 {
	return l.A - 2*l.B
}

// Validate rejects non-positive or non-finite lattice constants.
func (l LatticeConfig) Validate() error {
	if err := validatePositive("a", l.A); err != nil {
		return err
	}
	return validatePositive("b", l.B)
}

func validateSteps(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d: %w", steps, ErrInvalidArgument)
	}
	return nil
}

func validateNonNegative(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f: %w", name, val, ErrInvalidArgument)
	}
	if val < 0 {
		return fmt.Errorf("%s must be non-negative, got %f: %w", name, val, ErrInvalidArgument)
	}
	return nil
}

func validatePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f: %w", name, val, ErrInvalidArgument)
	}
	if val <= 0 {
		return fmt.Errorf("%s must be positive, got %f: %w", name, val, ErrInvalidArgument)
	}
	return nil
}

func validateFinite(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f: %w", name, val, ErrInvalidArgument)
	}
	return nil
}
