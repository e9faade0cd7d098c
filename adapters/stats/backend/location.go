package backend

import (
	"errors"
	"math"

	"edakit/domain/core"
	"edakit/ports"

	moremath "github.com/aclements/go-moremath/stats"
)

// TTest runs a two-sided two-sample t-test; equalVariance selects Student's
// pooled test, otherwise Welch's.
func (b *Backend) TTest(x, y []float64, equalVariance bool) (ports.TestStatistic, error) {
	s1 := &moremath.Sample{Xs: x}
	s2 := &moremath.Sample{Xs: y}

	var (
		res *moremath.TTestResult
		err error
	)
	if equalVariance {
		res, err = moremath.TwoSampleTTest(s1, s2, moremath.LocationDiffers)
	} else {
		res, err = moremath.TwoSampleWelchTTest(s1, s2, moremath.LocationDiffers)
	}
	if errors.Is(err, moremath.ErrZeroVariance) {
		return constantSamplesTTest(s1.Mean(), s2.Mean()), nil
	}
	if err != nil {
		return ports.TestStatistic{}, core.NewTestError("t-test", err)
	}

	return ports.TestStatistic{Statistic: res.T, PValue: clampProbability(res.P), DoF: res.DoF}, nil
}

// MannWhitneyU runs the two-sided rank-sum test.
func (b *Backend) MannWhitneyU(x, y []float64) (ports.TestStatistic, error) {
	res, err := moremath.MannWhitneyUTest(x, y, moremath.LocationDiffers)
	if errors.Is(err, moremath.ErrSamplesEqual) {
		// every observation tied: U sits at its mean
		return ports.TestStatistic{Statistic: float64(len(x)*len(y)) / 2, PValue: 1}, nil
	}
	if err != nil {
		return ports.TestStatistic{}, core.NewTestError("mann-whitney", err)
	}
	return ports.TestStatistic{Statistic: res.U, PValue: clampProbability(res.P)}, nil
}

// constantSamplesTTest handles two zero-variance samples: identical means are
// indistinguishable, different means are infinitely far apart.
func constantSamplesTTest(m1, m2 float64) ports.TestStatistic {
	if m1 == m2 {
		return ports.TestStatistic{Statistic: 0, PValue: 1}
	}
	return ports.TestStatistic{Statistic: math.Copysign(math.Inf(1), m1-m2), PValue: 0}
}
