package backend

import (
	"testing"

	"edakit/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualVariance_IdenticalSpreads(t *testing.T) {
	res, err := New().EqualVariance([]float64{10, 12, 11, 13, 12}, []float64{20, 22, 21, 23, 22})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Statistic)
	assert.Equal(t, 1.0, res.PValue)
}

func TestEqualVariance_DifferentSpreads(t *testing.T) {
	tight := []float64{9.9, 10, 10.1, 10, 9.95, 10.05}
	wide := []float64{0, 20, 5, 15, -5, 25}

	res, err := New().EqualVariance(tight, wide)
	require.NoError(t, err)
	assert.InDelta(t, 29.697, res.Statistic, 1e-2)
	assert.Less(t, res.PValue, 0.01)
	assert.Equal(t, 10.0, res.DoF)
}

func TestEqualVariance_Symmetric(t *testing.T) {
	a := []float64{1, 4, 2, 8, 5, 7}
	b := []float64{3, 3, 4, 3, 2, 9, 11}

	ab, err := New().EqualVariance(a, b)
	require.NoError(t, err)
	ba, err := New().EqualVariance(b, a)
	require.NoError(t, err)
	assert.InDelta(t, ab.PValue, ba.PValue, 1e-12)
}

func TestEqualVariance_InsufficientData(t *testing.T) {
	_, err := New().EqualVariance([]float64{1}, []float64{1, 2})
	assert.ErrorIs(t, err, core.ErrInsufficientData)
}
