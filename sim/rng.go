package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === EventSource ===

// EventSource supplies the two per-step samples that drive a trajectory:
// a continuous sample uniform on [0, 1) and a discrete sample uniform on {0..n-1}.
// *rand.Rand satisfies this interface.
type EventSource interface {
	Float64() float64
	Intn(n int) int
}

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical trajectories.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemTrajectory is the RNG subsystem for a single trajectory run.
	// Uses master seed directly so --seed reproduces rand.NewSource(seed).
	SubsystemTrajectory = "trajectory"
)

// SubsystemMember returns the subsystem name for ensemble member N.
func SubsystemMember(id int) string {
	return fmt.Sprintf("member_%d", id)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula:
//   - For SubsystemTrajectory: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
// The returned *rand.Rand may be handed to exactly one other goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	var derivedSeed int64
	if name == SubsystemTrajectory {
		derivedSeed = int64(p.key)
	} else {
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// ForMember is shorthand for ForSubsystem(SubsystemMember(id)).
func (p *PartitionedRNG) ForMember(id int) *rand.Rand {
	return p.ForSubsystem(SubsystemMember(id))
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
