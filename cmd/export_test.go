package cmd

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-kmc/kmc-sim/sim/output"
)

func TestNewHeader_InitialComesFromResult(t *testing.T) {
	// GIVEN a hop-rotate run from an explicit initial state
	spec := hopRotateSpec(5, 4)
	spec.Initial = []float64{2, 1, 1}
	res, err := spec.Run(rand.New(rand.NewSource(spec.Seed)))
	require.NoError(t, err)

	// WHEN the spec's initial vector is changed after the run
	spec.Initial = []float64{9}
	header := newHeader("run-1", spec, res, nil)

	// THEN the header still describes the state the trajectory started from
	assert.Equal(t, []float64{2, 1, 1}, header.Initial)
	assert.Equal(t, output.HopRotateColumns, header.Columns)
	assert.Equal(t, "run-1", header.RunID)
}

func TestNewHeader_Hop_NoLattice(t *testing.T) {
	spec := hopSpec(5, 3)
	res, err := spec.Run(rand.New(rand.NewSource(spec.Seed)))
	require.NoError(t, err)

	header := newHeader("run-2", spec, res, nil)

	assert.Equal(t, []float64{0, 0}, header.Initial)
	assert.Nil(t, header.Lattice)
	assert.Equal(t, output.HopColumns, header.Columns)
	assert.Equal(t, 3, header.Steps)
}
