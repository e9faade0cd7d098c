package app

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"edakit/domain/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numericReport() stats.TestReport {
	p := 0.81
	return stats.TestReport{
		Test:        stats.TestTTestEqualVariance,
		Statistic:   -13.87,
		PValue:      0.0000007,
		Alpha:       0.05,
		Significant: true,
		Verdict:     "Significant Difference",
		Effect:      &stats.EffectSize{Measure: stats.MeasureCohensD, Value: -8.771, Strength: stats.StrengthLarge},
		Assumptions: []stats.AssumptionResult{{Check: stats.CheckNormality, Passed: true, Reason: "Shapiro-Wilk Test", PValue: &p}},
		Groups:      &stats.GroupSummary{Label1: "Group 1 (1)", Label2: "Group 2 (Others)", N1: 5, N2: 5, Mean1: 11.6, Mean2: 21.6},
	}
}

func tableReport() stats.TestReport {
	return stats.TestReport{
		Test:     stats.TestChiSquare,
		PValue:   0.2,
		Verdict:  "Independent (No Relationship)",
		Effect:   &stats.EffectSize{Measure: stats.MeasureCramersV, Value: 0.12, Strength: stats.StrengthModerate},
		Warnings: []string{"Low expected frequencies (min=3.00). Result may be unstable."},
		Table:    &stats.TableSummary{Rows: 3, Cols: 3, Total: 27, DoF: 4, MinExpected: 3},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "MD": FormatMarkdown, "html": FormatHTML, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestRenderReport_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, "length_of_stay by readmitted = 1", numericReport(), FormatText))
	out := buf.String()

	assert.Contains(t, out, "=== length_of_stay by readmitted = 1 ===")
	assert.Contains(t, out, "Group 1 (1): n=5 | Group 2 (Others): n=5")
	assert.Contains(t, out, "Test Used:      T-Test (Equal Variance)")
	assert.Contains(t, out, "Normality:      Shapiro-Wilk Test -> Pass")
	assert.Contains(t, out, "P-Value:        0.00000")
	assert.Contains(t, out, "Effect Size:    Cohen's d = -8.771 (Large)")
}

func TestRenderReport_TextCategoricalNotSignificant(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, "gender x result", tableReport(), FormatText))
	out := buf.String()

	assert.Contains(t, out, "Warning: Low expected frequencies (min=3.00). Result may be unstable.")
	assert.Contains(t, out, "Verdict:        Independent (No Relationship)")
	assert.NotContains(t, out, "Strength:")
	assert.NotContains(t, out, "Normality:")
}

func TestRenderReport_MarkdownAndHTML(t *testing.T) {
	var md bytes.Buffer
	require.NoError(t, RenderReport(&md, "gender x result", tableReport(), FormatMarkdown))
	assert.True(t, strings.HasPrefix(md.String(), "## gender x result"))
	assert.Contains(t, md.String(), "| Table | 3x3, n=27, min expected 3.00 |")
	assert.Contains(t, md.String(), "> **Warning:**")

	var html bytes.Buffer
	require.NoError(t, RenderReport(&html, "gender x result", tableReport(), FormatHTML))
	assert.Contains(t, html.String(), "<h2")
	assert.Contains(t, html.String(), "<table>")
	assert.Contains(t, html.String(), "<blockquote>")
}

func TestRenderReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, "days", numericReport(), FormatJSON))

	var decoded struct {
		Title  string `json:"title"`
		Report struct {
			Test   string `json:"test"`
			Effect struct {
				Strength string `json:"strength"`
			} `json:"effect"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "days", decoded.Title)
	assert.Equal(t, "T-Test (Equal Variance)", decoded.Report.Test)
	assert.Equal(t, "Large", decoded.Report.Effect.Strength)
}

func TestRenderSweep(t *testing.T) {
	numeric, table := numericReport(), tableReport()
	res := &SweepResult{
		RunID: "run-1",
		Items: []SweepItem{
			{Kind: KindComparison, Label: "days by readmitted = 1", Report: &numeric},
			{Kind: KindAssociation, Label: "gender x result", Report: &table},
			{Kind: KindComparison, Label: "a|b", Error: "column not found: a"},
		},
		Significant: 1,
		Failed:      1,
	}

	var text bytes.Buffer
	require.NoError(t, RenderSweep(&text, res, FormatText))
	assert.Contains(t, text.String(), "Sweep run-1: 3 tests, 1 significant, 1 failed")
	assert.Contains(t, text.String(), "Error:          column not found: a")

	var md bytes.Buffer
	require.NoError(t, RenderSweep(&md, res, FormatMarkdown))
	assert.Contains(t, md.String(), `| a\|b | - | - | error: column not found: a |`)

	var js bytes.Buffer
	require.NoError(t, RenderSweep(&js, res, FormatJSON))
	assert.Contains(t, js.String(), `"run_id": "run-1"`)
}
