// Package sim provides the Kinetic Monte Carlo kernels for a hydrogen atom
// hopping on a 2D lattice.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - event.go: the per-step event selector (hop, rotate or no event)
//   - hop.go: Model 1, unit hops plus diagonal moves on a square lattice
//   - orientation.go: the 4-state bond orientation automaton of Model 2
//   - hop_rotate.go: Model 2, O-O hops and bond rotations
//
// Each step draws one continuous sample x1 and one discrete sample x2 from
// an injected EventSource, classifies the step, updates the state and writes
// the snapshot into a trajectory preallocated to the step count. Steps are
// strictly sequential; independent trajectories are run concurrently by
// sim/ensemble, each with its own generator from PartitionedRNG.
//
// # Sub-packages
//   - sim/trace/: optional per-step event records and summaries
//   - sim/scenario/: YAML run specifications
//   - sim/ensemble/: concurrent independent trajectories and MSD statistics
//   - sim/output/: CSV + YAML header export for plotting tools
package sim
