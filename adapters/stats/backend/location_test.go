package backend

import (
	"math"
	"testing"

	"edakit/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTest_EqualAndUnequalVariance(t *testing.T) {
	g1 := []float64{10, 12, 11, 13, 12}
	g2 := []float64{20, 22, 21, 23, 22}

	// equal sizes and variances: both forms share t and dof
	wantT := -10 / math.Sqrt(1.3*2/5)

	pooled, err := New().TTest(g1, g2, true)
	require.NoError(t, err)
	assert.InDelta(t, wantT, pooled.Statistic, 1e-9)
	assert.InDelta(t, 8, pooled.DoF, 1e-9)
	assert.Less(t, pooled.PValue, 1e-5)

	welch, err := New().TTest(g1, g2, false)
	require.NoError(t, err)
	assert.InDelta(t, wantT, welch.Statistic, 1e-9)
	assert.InDelta(t, 8, welch.DoF, 1e-6)
	assert.InDelta(t, pooled.PValue, welch.PValue, 1e-9)
}

func TestTTest_ConstantSamples(t *testing.T) {
	same, err := New().TTest([]float64{1, 1, 1}, []float64{1, 1, 1}, true)
	require.NoError(t, err)
	assert.Equal(t, 0.0, same.Statistic)
	assert.Equal(t, 1.0, same.PValue)

	apart, err := New().TTest([]float64{1, 1, 1}, []float64{4, 4}, false)
	require.NoError(t, err)
	assert.True(t, math.IsInf(apart.Statistic, -1))
	assert.Equal(t, 0.0, apart.PValue)
}

func TestTTest_TooSmallFails(t *testing.T) {
	_, err := New().TTest([]float64{1}, []float64{2, 3}, false)
	assert.ErrorIs(t, err, core.ErrTestFailed)
}

func TestMannWhitneyU_SeparatedSamples(t *testing.T) {
	low := []float64{1, 2, 3, 4, 5}
	high := []float64{6, 7, 8, 9, 10}

	res, err := New().MannWhitneyU(low, high)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Statistic)
	assert.InDelta(t, 2.0/252.0, res.PValue, 1e-9)

	mirrored, err := New().MannWhitneyU(high, low)
	require.NoError(t, err)
	assert.Equal(t, 25.0, mirrored.Statistic)
	assert.InDelta(t, res.PValue, mirrored.PValue, 1e-12)
}

func TestMannWhitneyU_EmptySample(t *testing.T) {
	_, err := New().MannWhitneyU(nil, []float64{1, 2})
	assert.ErrorIs(t, err, core.ErrTestFailed)
}

func TestMannWhitneyU_AllTied(t *testing.T) {
	res, err := New().MannWhitneyU([]float64{3, 3}, []float64{3, 3, 3})
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.Statistic)
	assert.Equal(t, 1.0, res.PValue)
}
