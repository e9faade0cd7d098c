package dataset

import (
	"math"
	"testing"

	"edakit/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readmissionFrame(t *testing.T) *Frame {
	t.Helper()
	f, err := NewFrame(
		[]string{"readmitted", "length_of_stay", "gender"},
		[][]string{
			{"1", "5", "F"},
			{"0", "2", "M"},
			{"1", "NA", "F"},
			{"0", "3", ""},
			{"", "4", "M"},
			{"1", "7"},
		},
	)
	require.NoError(t, err)
	return f
}

func TestNewFrame_PadsShortRecords(t *testing.T) {
	f := readmissionFrame(t)
	assert.Equal(t, 6, f.Len())
	assert.Equal(t, []string{"readmitted", "length_of_stay", "gender"}, f.Columns())

	gender, err := f.Column("gender")
	require.NoError(t, err)
	assert.Equal(t, "", gender[5])
}

func TestNewFrame_RejectsDuplicateAndLongRecords(t *testing.T) {
	_, err := NewFrame([]string{"a", "a"}, nil)
	assert.Error(t, err)

	_, err = NewFrame([]string{"a"}, [][]string{{"1", "2"}})
	assert.Error(t, err)

	_, err = NewFrame(nil, nil)
	assert.Error(t, err)
}

func TestNumericColumn_MissingAndInvalid(t *testing.T) {
	f := readmissionFrame(t)

	los, err := f.NumericColumn("length_of_stay")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(los[2]))
	assert.Equal(t, 7.0, los[5])

	_, err = f.NumericColumn("gender")
	assert.ErrorIs(t, err, core.ErrNotNumeric)

	_, err = f.NumericColumn("age")
	assert.ErrorIs(t, err, core.ErrColumnNotFound)
}

func TestPartition_DropsMissingPerGroup(t *testing.T) {
	f := readmissionFrame(t)

	g1, g2, err := f.Partition("readmitted", "1", "length_of_stay")
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 7}, g1)
	// the row with a missing group label falls into group 2
	assert.Equal(t, []float64{2, 3, 4}, g2)
}

func TestIsMissing(t *testing.T) {
	for _, cell := range []string{"", " ", "NA", "n/a", "NaN", "NULL", "None"} {
		assert.True(t, IsMissing(cell), "cell %q", cell)
	}
	for _, cell := range []string{"0", "F", "nano"} {
		assert.False(t, IsMissing(cell), "cell %q", cell)
	}
}

func TestDropMissing(t *testing.T) {
	assert.Equal(t, []float64{1, 3}, DropMissing([]float64{1, math.NaN(), 3}))
	assert.Empty(t, DropMissing(nil))
}
