package ports

import (
	"edakit/domain/dataset"
)

// NormalityResult holds the outcome of a normality test.
type NormalityResult struct {
	Statistic float64
	PValue    float64
}

// TestStatistic is a generic (statistic, p-value) pair with degrees of freedom
// where the test defines them.
type TestStatistic struct {
	Statistic float64
	PValue    float64
	DoF       float64
}

// ChiSquareResult is the outcome of a chi-square test of independence.
type ChiSquareResult struct {
	Statistic float64
	PValue    float64
	DoF       int
	Expected  [][]float64
}

// MinExpected returns the smallest expected cell count.
func (r ChiSquareResult) MinExpected() float64 {
	minExp := 0.0
	first := true
	for _, row := range r.Expected {
		for _, e := range row {
			if first || e < minExp {
				minExp = e
				first = false
			}
		}
	}
	return minExp
}

// FisherResult is the outcome of Fisher's exact test on a 2x2 table.
type FisherResult struct {
	OddsRatio float64 // +Inf or NaN when undefined
	PValue    float64
}

// NormalityTester checks whether a sample plausibly comes from a normal distribution.
type NormalityTester interface {
	Normality(xs []float64) (NormalityResult, error)
}

// VarianceTester checks whether two samples share a population variance.
type VarianceTester interface {
	EqualVariance(a, b []float64) (TestStatistic, error)
}

// LocationTester runs two-sided two-sample location tests.
type LocationTester interface {
	TTest(a, b []float64, equalVariance bool) (TestStatistic, error)
	// MannWhitneyU reports U for sample a: pairs with a > b plus half the ties.
	MannWhitneyU(a, b []float64) (TestStatistic, error)
}

// ContingencyTester runs association tests on contingency tables.
type ContingencyTester interface {
	ChiSquare(table dataset.ContingencyTable) (ChiSquareResult, error)
	FisherExact(table dataset.ContingencyTable) (FisherResult, error)
}

// StatisticsBackend bundles every test the analysis engine consumes.
type StatisticsBackend interface {
	NormalityTester
	VarianceTester
	LocationTester
	ContingencyTester
}
