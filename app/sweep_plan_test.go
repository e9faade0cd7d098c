package app

import (
	"os"
	"path/filepath"
	"testing"

	"edakit/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePlan = `
comparisons:
  - group: readmitted
    target: "1"
    value: length_of_stay
associations:
  - row: gender
    col: final_result
`

func TestParsePlan(t *testing.T) {
	plan, err := ParsePlan([]byte(samplePlan))
	require.NoError(t, err)

	require.Len(t, plan.Comparisons, 1)
	assert.Equal(t, Comparison{Group: "readmitted", Target: "1", Value: "length_of_stay"}, plan.Comparisons[0])
	assert.Equal(t, "length_of_stay by readmitted = 1", plan.Comparisons[0].Label())
	require.Len(t, plan.Associations, 1)
	assert.Equal(t, "gender x final_result", plan.Associations[0].Label())
	assert.Equal(t, 2, plan.Len())
}

func TestParsePlan_Invalid(t *testing.T) {
	tests := map[string]string{
		"empty":         "comparisons: []\n",
		"unknown key":   "comparisons:\n  - group: a\n    value: b\n    colour: red\n",
		"missing value": "comparisons:\n  - group: a\n    target: x\n",
		"self cross":    "associations:\n  - row: a\n    col: a\n",
		"not yaml":      "comparisons: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePlan([]byte(doc))
			assert.ErrorIs(t, err, core.ErrInvalidPlan)
		})
	}
}

func TestLoadPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(samplePlan), 0o644))

	plan, err := LoadPlan(path)
	require.NoError(t, err)
	assert.Equal(t, 2, plan.Len())

	_, err = LoadPlan(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
