package backend

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// chiSquarePValue returns the upper-tail probability of the chi-square distribution.
func chiSquarePValue(chiSquare float64, degreesOfFreedom int) float64 {
	if degreesOfFreedom <= 0 || chiSquare <= 0 {
		return 1.0
	}
	chiDist := distuv.ChiSquared{K: float64(degreesOfFreedom)}
	return clampProbability(chiDist.Survival(chiSquare))
}

// fTestPValue returns the upper-tail probability of the F distribution.
func fTestPValue(fStatistic float64, df1, df2 int) float64 {
	if df1 <= 0 || df2 <= 0 {
		return 1.0
	}
	if math.IsInf(fStatistic, 1) {
		return 0
	}
	fDist := distuv.F{D1: float64(df1), D2: float64(df2)}
	return clampProbability(1 - fDist.CDF(fStatistic))
}

// normalQuantile is the inverse CDF of the standard normal.
func normalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// normalUpperTail is P(Z > z) for the standard normal.
func normalUpperTail(z float64) float64 {
	return distuv.UnitNormal.Survival(z)
}

func clampProbability(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return 1.0
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// poly evaluates c[0] + c[1]x + c[2]x^2 + ...
func poly(c []float64, x float64) float64 {
	result := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		result = result*x + c[i]
	}
	return result
}
