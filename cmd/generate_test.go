package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guard-sim/guard-sim/sim"
	"github.com/guard-sim/guard-sim/sim/gridgen"
)

func TestWriteGrid_OutputParsesAsGrid(t *testing.T) {
	// GIVEN a generated grid written to a buffer
	var buf bytes.Buffer
	require.NoError(t, writeGrid(&buf, gridgen.Config{Height: 6, Width: 11, Density: 0.2, Seed: 5}))

	// WHEN the output is read back
	g, err := sim.ReadGrid(strings.NewReader(buf.String()))
	require.NoError(t, err)

	// THEN it has the requested shape and renders identically
	assert.Equal(t, 6, g.Height())
	assert.Equal(t, 11, g.Width())
	assert.Equal(t, buf.String(), g.String())
}

func TestWriteGrid_InvalidConfig(t *testing.T) {
	err := writeGrid(&bytes.Buffer{}, gridgen.Config{Height: 0, Width: 4})
	assert.Error(t, err)
}
