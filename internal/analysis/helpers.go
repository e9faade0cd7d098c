package analysis

import (
	"edakit/domain/core"
	"edakit/domain/dataset"
	"edakit/domain/stats"

	gstat "gonum.org/v1/gonum/stat"
)

const (
	VerdictRejectNull     = "Reject null (groups different)"
	VerdictFailRejectNull = "Fail to reject null (groups similar)"

	ReasonEqualVariance    = "Equal variance"
	ReasonNotEqualVariance = "Not equal variance"
)

// CheckVariance runs Levene's test on its own and labels the outcome.
func (e *Engine) CheckVariance(group1, group2 []float64) (stats.AssumptionResult, error) {
	g1, g2 := dataset.DropMissing(group1), dataset.DropMissing(group2)
	res, err := e.stats.EqualVariance(g1, g2)
	if err != nil {
		return stats.AssumptionResult{}, err
	}

	p := res.PValue
	result := stats.AssumptionResult{Check: stats.CheckEqualVariance, Passed: p >= e.opts.Alpha, PValue: &p}
	if result.Passed {
		result.Reason = ReasonEqualVariance
	} else {
		result.Reason = ReasonNotEqualVariance
	}
	return result, nil
}

// WelchTTest runs the unequal-variance t-test with no assumption checks and
// no effect size.
func (e *Engine) WelchTTest(group1, group2 []float64) (stats.TestReport, error) {
	g1, g2 := dataset.DropMissing(group1), dataset.DropMissing(group2)
	if len(g1) < stats.MinGroupSize {
		return stats.TestReport{}, core.NewInsufficientDataError("Group 1", len(g1), stats.MinGroupSize)
	}
	if len(g2) < stats.MinGroupSize {
		return stats.TestReport{}, core.NewInsufficientDataError("Group 2", len(g2), stats.MinGroupSize)
	}

	res, err := e.stats.TTest(g1, g2, false)
	if err != nil {
		return stats.TestReport{}, err
	}

	significant := stats.IsSignificant(res.PValue, e.opts.Alpha)
	verdict := VerdictFailRejectNull
	if significant {
		verdict = VerdictRejectNull
	}
	return stats.TestReport{
		Test:        stats.TestTTestUnequalVariance,
		Statistic:   res.Statistic,
		PValue:      res.PValue,
		Alpha:       e.opts.Alpha,
		Significant: significant,
		Verdict:     verdict,
		Groups: &stats.GroupSummary{
			Label1: "Group 1",
			Label2: "Group 2",
			N1:     len(g1),
			N2:     len(g2),
			Mean1:  gstat.Mean(g1, nil),
			Mean2:  gstat.Mean(g2, nil),
		},
	}, nil
}

// ChiSquareTest runs the plain chi-square test with Cramer's V and the
// expected table, without the small-sample fallback.
func (e *Engine) ChiSquareTest(table dataset.ContingencyTable) (stats.TestReport, error) {
	if err := table.Validate(); err != nil {
		return stats.TestReport{}, err
	}
	chi, err := e.stats.ChiSquare(table)
	if err != nil {
		return stats.TestReport{}, err
	}

	rows, cols := table.Shape()
	total := table.Total()
	v := cramersV(chi.Statistic, total, rows, cols)
	significant := stats.IsSignificant(chi.PValue, e.opts.Alpha)
	verdict := VerdictIndependence
	if significant {
		verdict = VerdictDependence
	}

	return stats.TestReport{
		Test:        stats.TestChiSquare,
		Statistic:   chi.Statistic,
		PValue:      chi.PValue,
		Alpha:       e.opts.Alpha,
		Significant: significant,
		Verdict:     verdict,
		Effect:      &stats.EffectSize{Measure: stats.MeasureCramersV, Value: v, Strength: stats.ClassifyCramersV(v)},
		Table: &stats.TableSummary{
			Rows:        rows,
			Cols:        cols,
			Total:       total,
			DoF:         chi.DoF,
			MinExpected: chi.MinExpected(),
			Expected:    chi.Expected,
		},
	}, nil
}
