package backend

import (
	"fmt"
	"math"

	"edakit/domain/core"
	"edakit/domain/dataset"
	"edakit/ports"

	"gonum.org/v1/gonum/stat/combin"
)

// fisherTolerance absorbs floating point noise when comparing table probabilities.
const fisherTolerance = 1 + 1e-7

// ChiSquare runs Pearson's chi-square test of independence. Tables with one
// degree of freedom get Yates' continuity correction. Cells with zero expected
// count contribute nothing; an all-zero table yields statistic 0 and p = 1.
func (b *Backend) ChiSquare(table dataset.ContingencyTable) (ports.ChiSquareResult, error) {
	if err := table.Validate(); err != nil {
		return ports.ChiSquareResult{}, err
	}

	rows, cols := table.Shape()
	rowTotals := make([]float64, rows)
	colTotals := make([]float64, cols)
	total := 0.0
	for i, row := range table.Counts {
		for j, c := range row {
			rowTotals[i] += float64(c)
			colTotals[j] += float64(c)
			total += float64(c)
		}
	}

	dof := (rows - 1) * (cols - 1)
	expected := make([][]float64, rows)
	chiSq := 0.0

	for i := range expected {
		expected[i] = make([]float64, cols)
		for j := range expected[i] {
			if total == 0 {
				continue
			}
			e := rowTotals[i] * colTotals[j] / total
			expected[i][j] = e
			if e == 0 {
				continue
			}

			observed := float64(table.Counts[i][j])
			if dof == 1 {
				diff := e - observed
				observed += math.Copysign(math.Min(0.5, math.Abs(diff)), diff)
			}
			chiSq += (observed - e) * (observed - e) / e
		}
	}

	return ports.ChiSquareResult{
		Statistic: chiSq,
		PValue:    chiSquarePValue(chiSq, dof),
		DoF:       dof,
		Expected:  expected,
	}, nil
}

// FisherExact runs the two-sided Fisher exact test on a 2x2 table: the
// p-value sums the probabilities of every table with the same margins that is
// no more likely than the observed one.
func (b *Backend) FisherExact(table dataset.ContingencyTable) (ports.FisherResult, error) {
	if err := table.Validate(); err != nil {
		return ports.FisherResult{}, err
	}
	if !table.Is2x2() {
		r, c := table.Shape()
		return ports.FisherResult{}, core.NewDegenerateTableError(
			fmt.Sprintf("fisher's exact test needs a 2x2 table, got %dx%d", r, c))
	}

	a, bb := table.Counts[0][0], table.Counts[0][1]
	c, d := table.Counts[1][0], table.Counts[1][1]

	row1, row2 := a+bb, c+d
	col1 := a + c
	n := row1 + row2

	logDenom := combin.LogGeneralizedBinomial(float64(n), float64(col1))
	prob := func(x int) float64 {
		return math.Exp(combin.LogGeneralizedBinomial(float64(row1), float64(x)) +
			combin.LogGeneralizedBinomial(float64(row2), float64(col1-x)) - logDenom)
	}

	observed := prob(a)
	p := 0.0
	for x := max(0, col1-row2); x <= min(row1, col1); x++ {
		if px := prob(x); px <= observed*fisherTolerance {
			p += px
		}
	}

	return ports.FisherResult{OddsRatio: oddsRatio(a, bb, c, d), PValue: clampProbability(p)}, nil
}

func oddsRatio(a, b, c, d int) float64 {
	num := float64(a) * float64(d)
	den := float64(b) * float64(c)
	if den == 0 {
		if num == 0 {
			return math.NaN()
		}
		return math.Inf(1)
	}
	return num / den
}
