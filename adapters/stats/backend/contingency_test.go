package backend

import (
	"math"
	"testing"

	"edakit/domain/core"
	"edakit/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChiSquare_YatesCorrectionOn2x2(t *testing.T) {
	table := dataset.NewContingencyTable([][]int{{10, 20}, {30, 40}})

	res, err := New().ChiSquare(table)
	require.NoError(t, err)
	assert.Equal(t, 1, res.DoF)
	assert.InDelta(t, 0.4464286, res.Statistic, 1e-6)
	assert.InDelta(t, 0.504, res.PValue, 1e-3)
	assert.Equal(t, [][]float64{{12, 18}, {28, 42}}, res.Expected)
	assert.Equal(t, 12.0, res.MinExpected())
}

func TestChiSquare_StrongAssociation(t *testing.T) {
	res, err := New().ChiSquare(dataset.NewContingencyTable([][]int{{20, 5}, {5, 20}}))
	require.NoError(t, err)
	assert.InDelta(t, 15.68, res.Statistic, 1e-9)
	assert.Less(t, res.PValue, 0.001)
}

func TestChiSquare_LargerTableNoCorrection(t *testing.T) {
	table := dataset.NewContingencyTable([][]int{{10, 10, 10}, {10, 10, 10}, {10, 10, 10}})
	res, err := New().ChiSquare(table)
	require.NoError(t, err)
	assert.Equal(t, 4, res.DoF)
	assert.Equal(t, 0.0, res.Statistic)
	assert.Equal(t, 1.0, res.PValue)

	// uncorrected Pearson statistic: sum of (o-e)^2/e with e = 10
	res, err = New().ChiSquare(dataset.NewContingencyTable([][]int{{15, 5, 10}, {5, 15, 10}, {10, 10, 10}}))
	require.NoError(t, err)
	assert.InDelta(t, 10.0, res.Statistic, 1e-9)
}

func TestChiSquare_AllZeroTable(t *testing.T) {
	res, err := New().ChiSquare(dataset.NewContingencyTable([][]int{{0, 0}, {0, 0}}))
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Statistic)
	assert.Equal(t, 1.0, res.PValue)
	assert.Equal(t, 0.0, res.MinExpected())
}

func TestChiSquare_RejectsDegenerateTable(t *testing.T) {
	_, err := New().ChiSquare(dataset.NewContingencyTable([][]int{{1, 2, 3}}))
	assert.ErrorIs(t, err, core.ErrDegenerateTable)
}

func TestFisherExact_KnownPValues(t *testing.T) {
	tests := []struct {
		name   string
		counts [][]int
		p      float64
		odds   float64
	}{
		{"tea tasting", [][]int{{3, 1}, {1, 3}}, 34.0 / 70.0, 9},
		{"skewed", [][]int{{8, 2}, {1, 5}}, 400.0 / 11440.0, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := New().FisherExact(dataset.NewContingencyTable(tt.counts))
			require.NoError(t, err)
			assert.InDelta(t, tt.p, res.PValue, 1e-9)
			assert.InDelta(t, tt.odds, res.OddsRatio, 1e-9)
		})
	}
}

func TestFisherExact_DegenerateMargins(t *testing.T) {
	res, err := New().FisherExact(dataset.NewContingencyTable([][]int{{0, 0}, {0, 0}}))
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.PValue)
	assert.True(t, math.IsNaN(res.OddsRatio))

	res, err = New().FisherExact(dataset.NewContingencyTable([][]int{{4, 0}, {0, 4}}))
	require.NoError(t, err)
	assert.True(t, math.IsInf(res.OddsRatio, 1))
	assert.InDelta(t, 2.0/70.0, res.PValue, 1e-9)
}

func TestFisherExact_Rejects3x3(t *testing.T) {
	_, err := New().FisherExact(dataset.NewContingencyTable([][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}))
	assert.ErrorIs(t, err, core.ErrDegenerateTable)
}
