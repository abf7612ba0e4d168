package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-kmc/kmc-sim/sim/scenario"
)

func TestWriteValidatedSpec_RoundTrips(t *testing.T) {
	// GIVEN a scenario using a legacy model name
	spec, err := scenario.ParseScenarioSpec([]byte("model: kmc1\nseed: 5\ngamma_1: 1\ngamma_2: 0\nsteps: 10\n"))
	require.NoError(t, err)
	var buf bytes.Buffer

	// WHEN it is validated and written back
	require.NoError(t, writeValidatedSpec(spec, &buf))

	// THEN the output is a normalized scenario that parses to the same spec
	assert.Contains(t, buf.String(), "model: hop\n")
	reparsed, err := scenario.ParseScenarioSpec(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, spec, reparsed)
}

func TestWriteValidatedSpec_Invalid_WritesNothing(t *testing.T) {
	spec := hopRotateSpec(1, 10)
	spec.Lattice = nil
	var buf bytes.Buffer

	assert.Error(t, writeValidatedSpec(spec, &buf))
	assert.Zero(t, buf.Len())
}
