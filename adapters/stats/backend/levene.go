package backend

import (
	"math"

	"edakit/domain/core"
	"edakit/ports"

	"github.com/montanaflynn/stats"
	gstat "gonum.org/v1/gonum/stat"
)

// EqualVariance runs Levene's test centred on group medians (Brown-Forsythe).
func (b *Backend) EqualVariance(x, y []float64) (ports.TestStatistic, error) {
	if len(x) < 2 {
		return ports.TestStatistic{}, core.NewInsufficientDataError("levene group 1", len(x), 2)
	}
	if len(y) < 2 {
		return ports.TestStatistic{}, core.NewInsufficientDataError("levene group 2", len(y), 2)
	}

	groups := [][]float64{x, y}
	k := len(groups)
	total := 0

	deviations := make([][]float64, k)
	groupMeans := make([]float64, k)
	grandSum := 0.0

	for i, g := range groups {
		median, err := stats.Median(g)
		if err != nil {
			return ports.TestStatistic{}, core.NewTestError("levene", err)
		}
		z := make([]float64, len(g))
		for j, v := range g {
			z[j] = math.Abs(v - median)
			grandSum += z[j]
		}
		deviations[i] = z
		groupMeans[i] = gstat.Mean(z, nil)
		total += len(g)
	}
	grandMean := grandSum / float64(total)

	var between, within float64
	for i, z := range deviations {
		d := groupMeans[i] - grandMean
		between += float64(len(z)) * d * d
		for _, v := range z {
			e := v - groupMeans[i]
			within += e * e
		}
	}

	df1, df2 := k-1, total-k
	if within == 0 {
		// Every deviation equals its group mean: identical spreads give
		// no evidence against equality, differing spreads are certain.
		if between == 0 {
			return ports.TestStatistic{Statistic: 0, PValue: 1, DoF: float64(df2)}, nil
		}
		return ports.TestStatistic{Statistic: math.Inf(1), PValue: 0, DoF: float64(df2)}, nil
	}

	w := (float64(df2) / float64(df1)) * between / within
	return ports.TestStatistic{Statistic: w, PValue: fTestPValue(w, df1, df2), DoF: float64(df2)}, nil
}
