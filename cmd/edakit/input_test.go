package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSample(t *testing.T) {
	xs, err := parseSample("10, 12.5,NA,,13")
	require.NoError(t, err)
	require.Len(t, xs, 5)
	assert.Equal(t, 10.0, xs[0])
	assert.Equal(t, 12.5, xs[1])
	assert.True(t, math.IsNaN(xs[2]))
	assert.True(t, math.IsNaN(xs[3]))

	empty, err := parseSample("  ")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = parseSample("1,two")
	assert.Error(t, err)
}

func TestParseCounts(t *testing.T) {
	counts, err := parseCounts("10,20; 30,40")
	require.NoError(t, err)
	assert.Equal(t, [][]int{{10, 20}, {30, 40}}, counts)

	_, err = parseCounts("")
	assert.Error(t, err)
	_, err = parseCounts("1,x;2,3")
	assert.Error(t, err)
}

func TestParsePair(t *testing.T) {
	g1, g2, err := parsePair("10,12,NA", "20, 22")
	require.NoError(t, err)
	assert.Len(t, g1, 3)
	assert.Equal(t, []float64{20, 22}, g2)

	_, _, err = parsePair("x", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--group1")

	_, _, err = parsePair("1,2", "3,oops")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--group2")
}
