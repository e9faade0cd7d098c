package analysis

import (
	"fmt"
	"math"

	"edakit/domain/dataset"
	"edakit/domain/stats"
)

const (
	VerdictDependence   = "Significant Dependence"
	VerdictIndependence = "Independent (No Relationship)"
)

// CrossTabulate builds the contingency table of two frame columns and tests it.
func (e *Engine) CrossTabulate(f *dataset.Frame, rowCol, colCol string) (stats.TestReport, error) {
	table, err := dataset.CrossTab(f, rowCol, colCol)
	if err != nil {
		return stats.TestReport{}, err
	}
	return e.TestAssociation(table)
}

// TestAssociation runs the chi-square test of independence. When an expected
// count falls below the minimum, a 2x2 table switches to Fisher's exact test
// and a larger table keeps chi-square with a reliability warning.
func (e *Engine) TestAssociation(table dataset.ContingencyTable) (stats.TestReport, error) {
	if err := table.Validate(); err != nil {
		return stats.TestReport{}, err
	}

	chi, err := e.stats.ChiSquare(table)
	if err != nil {
		return stats.TestReport{}, err
	}

	minExpected := chi.MinExpected()
	rows, cols := table.Shape()
	total := table.Total()

	test := stats.TestChiSquare
	pValue := chi.PValue
	summary := &stats.TableSummary{
		Rows:        rows,
		Cols:        cols,
		Total:       total,
		DoF:         chi.DoF,
		MinExpected: minExpected,
		Expected:    chi.Expected,
	}
	assumption := stats.AssumptionResult{
		Check:  stats.CheckExpectedFrequency,
		Passed: minExpected >= e.opts.MinExpected,
		Reason: fmt.Sprintf("Min expected count %.2f (rule of %g)", minExpected, e.opts.MinExpected),
	}

	var warnings []string
	if !assumption.Passed {
		if table.Is2x2() {
			fisher, err := e.stats.FisherExact(table)
			if err != nil {
				return stats.TestReport{}, err
			}
			test = stats.TestFisherExact
			pValue = fisher.PValue
			if !math.IsNaN(fisher.OddsRatio) && !math.IsInf(fisher.OddsRatio, 0) {
				odds := fisher.OddsRatio
				summary.OddsRatio = &odds
			}
		} else {
			warnings = append(warnings, fmt.Sprintf("Low expected frequencies (min=%.2f). Result may be unstable.", minExpected))
		}
	}

	v := cramersV(chi.Statistic, total, rows, cols)
	significant := stats.IsSignificant(pValue, e.opts.Alpha)
	verdict := VerdictIndependence
	if significant {
		verdict = VerdictDependence
	}

	return stats.TestReport{
		Test:        test,
		Statistic:   chi.Statistic,
		PValue:      pValue,
		Alpha:       e.opts.Alpha,
		Significant: significant,
		Verdict:     verdict,
		Effect:      &stats.EffectSize{Measure: stats.MeasureCramersV, Value: v, Strength: stats.ClassifyCramersV(v)},
		Assumptions: []stats.AssumptionResult{assumption},
		Warnings:    warnings,
		Table:       summary,
	}, nil
}

// cramersV is sqrt(chi2 / (n * (min(rows, cols) - 1))), defined as 0 for an
// empty table or a single-category dimension.
func cramersV(chiSq float64, n, rows, cols int) float64 {
	k := min(rows, cols)
	if n <= 0 || k <= 1 {
		return 0
	}
	return math.Sqrt(chiSq / (float64(n) * float64(k-1)))
}
