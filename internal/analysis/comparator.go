package analysis

import (
	"fmt"
	"math"

	"edakit/domain/core"
	"edakit/domain/dataset"
	"edakit/domain/stats"
	"edakit/ports"

	descriptive "github.com/montanaflynn/stats"
	gstat "gonum.org/v1/gonum/stat"
)

const (
	VerdictSignificantDifference = "Significant Difference"
	VerdictNoDifference          = "No Significant Difference"
)

// numericChoice is the branch taken by the comparator with its outputs.
type numericChoice struct {
	test        stats.TestKind
	result      ports.TestStatistic
	assumptions []stats.AssumptionResult
	effect      stats.EffectSize
}

// CompareMeans compares valueCol between rows where groupCol equals target
// (group 1) and every other row (group 2).
func (e *Engine) CompareMeans(f *dataset.Frame, groupCol, target, valueCol string) (stats.TestReport, error) {
	g1, g2, err := f.Partition(groupCol, target, valueCol)
	if err != nil {
		return stats.TestReport{}, err
	}
	return e.compare(g1, g2, fmt.Sprintf("Group 1 (%s)", target), "Group 2 (Others)")
}

// CompareSamples compares two raw samples. NaN entries are dropped first.
func (e *Engine) CompareSamples(group1, group2 []float64) (stats.TestReport, error) {
	return e.compare(dataset.DropMissing(group1), dataset.DropMissing(group2), "Group 1", "Group 2")
}

func (e *Engine) compare(g1, g2 []float64, label1, label2 string) (stats.TestReport, error) {
	if len(g1) < stats.MinGroupSize {
		return stats.TestReport{}, core.NewInsufficientDataError(label1, len(g1), stats.MinGroupSize)
	}
	if len(g2) < stats.MinGroupSize {
		return stats.TestReport{}, core.NewInsufficientDataError(label2, len(g2), stats.MinGroupSize)
	}

	normality := e.checkNormality(g1, g2)

	var (
		choice numericChoice
		err    error
	)
	if normality.Passed {
		choice, err = e.runParametric(g1, g2)
	} else {
		choice, err = e.runNonParametric(g1, g2)
	}
	if err != nil {
		return stats.TestReport{}, err
	}

	significant := stats.IsSignificant(choice.result.PValue, e.opts.Alpha)
	report := stats.TestReport{
		Test:        choice.test,
		Statistic:   choice.result.Statistic,
		PValue:      choice.result.PValue,
		Alpha:       e.opts.Alpha,
		Significant: significant,
		Verdict:     VerdictNoDifference,
		Assumptions: append([]stats.AssumptionResult{normality}, choice.assumptions...),
		Groups: &stats.GroupSummary{
			Label1: label1,
			Label2: label2,
			N1:     len(g1),
			N2:     len(g2),
			Mean1:  gstat.Mean(g1, nil),
			Mean2:  gstat.Mean(g2, nil),
		},
	}
	// A null result carries no strength commentary.
	if significant {
		report.Verdict = VerdictSignificantDifference
		effect := choice.effect
		report.Effect = &effect
	}
	return report, nil
}

// checkNormality passes only if both groups look normal. Groups above the
// large sample threshold skip the test entirely.
func (e *Engine) checkNormality(g1, g2 []float64) stats.AssumptionResult {
	threshold := e.opts.LargeSampleThreshold
	if len(g1) > threshold || len(g2) > threshold {
		return stats.AssumptionResult{
			Check:  stats.CheckNormality,
			Passed: true,
			Reason: fmt.Sprintf("Sample size > %d (CLT assumed)", threshold),
		}
	}

	r1, err := e.stats.Normality(g1)
	if err == nil {
		var r2 ports.NormalityResult
		r2, err = e.stats.Normality(g2)
		if err == nil {
			p := math.Min(r1.PValue, r2.PValue)
			return stats.AssumptionResult{
				Check:  stats.CheckNormality,
				Passed: r1.PValue >= e.opts.Alpha && r2.PValue >= e.opts.Alpha,
				Reason: "Shapiro-Wilk Test",
				PValue: &p,
			}
		}
	}

	return stats.AssumptionResult{
		Check:  stats.CheckNormality,
		Passed: false,
		Reason: fmt.Sprintf("Shapiro-Wilk Test not applicable (%v)", err),
	}
}

func (e *Engine) runParametric(g1, g2 []float64) (numericChoice, error) {
	levene, err := e.stats.EqualVariance(g1, g2)
	if err != nil {
		return numericChoice{}, err
	}
	equalVar := levene.PValue >= e.opts.Alpha

	test := stats.TestTTestUnequalVariance
	reason := "Levene's Test: Not equal variance"
	if equalVar {
		test = stats.TestTTestEqualVariance
		reason = "Levene's Test: Equal variance"
	}

	res, err := e.stats.TTest(g1, g2, equalVar)
	if err != nil {
		return numericChoice{}, err
	}

	d, err := cohensD(g1, g2)
	if err != nil {
		return numericChoice{}, err
	}

	leveneP := levene.PValue
	return numericChoice{
		test:   test,
		result: res,
		assumptions: []stats.AssumptionResult{{
			Check:  stats.CheckEqualVariance,
			Passed: equalVar,
			Reason: reason,
			PValue: &leveneP,
		}},
		effect: stats.EffectSize{Measure: stats.MeasureCohensD, Value: d, Strength: stats.ClassifyCohensD(d)},
	}, nil
}

func (e *Engine) runNonParametric(g1, g2 []float64) (numericChoice, error) {
	res, err := e.stats.MannWhitneyU(g1, g2)
	if err != nil {
		return numericChoice{}, err
	}
	rbc := rankBiserial(res.Statistic, len(g1), len(g2))
	return numericChoice{
		test:   stats.TestMannWhitneyU,
		result: res,
		effect: stats.EffectSize{Measure: stats.MeasureRankBiserial, Value: rbc, Strength: stats.ClassifyRankBiserial(rbc)},
	}, nil
}

// cohensD is (mean1 - mean2) / pooled SD with n-1 denominators. With a zero
// pooled SD it is 0 for equal means and signed infinity otherwise.
func cohensD(g1, g2 []float64) (float64, error) {
	s1, err := descriptive.StandardDeviationSample(g1)
	if err != nil {
		return 0, core.NewTestError("cohen's d", err)
	}
	s2, err := descriptive.StandardDeviationSample(g2)
	if err != nil {
		return 0, core.NewTestError("cohen's d", err)
	}

	m1, m2 := gstat.Mean(g1, nil), gstat.Mean(g2, nil)
	n1, n2 := float64(len(g1)), float64(len(g2))
	pooled := math.Sqrt(((n1-1)*s1*s1 + (n2-1)*s2*s2) / (n1 + n2 - 2))
	if pooled == 0 {
		if m1 == m2 {
			return 0, nil
		}
		return math.Copysign(math.Inf(1), m1-m2), nil
	}
	return (m1 - m2) / pooled, nil
}

// rankBiserial is 1 - 2U/(n1*n2) for U counted from group 1.
func rankBiserial(u float64, n1, n2 int) float64 {
	return 1 - 2*u/(float64(n1)*float64(n2))
}
