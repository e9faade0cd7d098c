package backend

import (
	"math"
	"sort"

	"edakit/domain/core"
	"edakit/ports"

	"gonum.org/v1/gonum/stat"
)

// Royston (1995) polynomial approximations for the Shapiro-Wilk W test.
var (
	swAn  = []float64{0, 0.221157, -0.147981, -2.071190, 4.434685, -2.706056}
	swAn1 = []float64{0, 0.042981, -0.293762, -1.752461, 5.682633, -3.582633}

	swGamma      = []float64{-2.273, 0.459}
	swSmallMu    = []float64{0.5440, -0.39978, 0.025054, -6.714e-4}
	swSmallSigma = []float64{1.3822, -0.77857, 0.062767, -0.0020322}
	swLargeMu    = []float64{-1.5861, -0.31082, -0.083751, 0.0038915}
	swLargeSigma = []float64{-0.4803, -0.082676, 0.0030302}
)

// Normality runs the Shapiro-Wilk test. Samples need at least 3 observations;
// a sample with zero range reports W=1, p=1.
func (b *Backend) Normality(xs []float64) (ports.NormalityResult, error) {
	n := len(xs)
	if n < 3 {
		return ports.NormalityResult{}, core.NewInsufficientDataError("shapiro-wilk sample", n, 3)
	}

	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)

	if sorted[n-1]-sorted[0] == 0 {
		return ports.NormalityResult{Statistic: 1, PValue: 1}, nil
	}

	a := shapiroCoefficients(n)
	mean := stat.Mean(sorted, nil)

	var num, ssq float64
	for i, v := range sorted {
		num += a[i] * v
		d := v - mean
		ssq += d * d
	}

	w := num * num / ssq
	if w > 1 {
		w = 1
	}

	return ports.NormalityResult{Statistic: w, PValue: shapiroPValue(w, n)}, nil
}

// shapiroCoefficients returns the antisymmetric weights a_1..a_n.
func shapiroCoefficients(n int) []float64 {
	if n == 3 {
		s := math.Sqrt(0.5)
		return []float64{-s, 0, s}
	}

	m := make([]float64, n)
	var mm float64
	for i := range m {
		m[i] = normalQuantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		mm += m[i] * m[i]
	}

	u := 1 / math.Sqrt(float64(n))
	rootMM := math.Sqrt(mm)
	a := make([]float64, n)

	an := m[n-1]/rootMM + poly(swAn, u)
	if n > 5 {
		an1 := m[n-2]/rootMM + poly(swAn1, u)
		phi := (mm - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) / (1 - 2*an*an - 2*an1*an1)
		for i := 2; i < n-2; i++ {
			a[i] = m[i] / math.Sqrt(phi)
		}
		a[0], a[1], a[n-2], a[n-1] = -an, -an1, an1, an
		return a
	}

	phi := (mm - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
	for i := 1; i < n-1; i++ {
		a[i] = m[i] / math.Sqrt(phi)
	}
	a[0], a[n-1] = -an, an
	return a
}

func shapiroPValue(w float64, n int) float64 {
	if n == 3 {
		p := 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		return clampProbability(p)
	}

	nf := float64(n)
	y := math.Log(1 - w)

	var mu, sigma float64
	if n <= 11 {
		gamma := poly(swGamma, nf)
		if y >= gamma {
			return 0
		}
		y = -math.Log(gamma - y)
		mu = poly(swSmallMu, nf)
		sigma = math.Exp(poly(swSmallSigma, nf))
	} else {
		lnN := math.Log(nf)
		mu = poly(swLargeMu, lnN)
		sigma = math.Exp(poly(swLargeSigma, lnN))
	}

	return clampProbability(normalUpperTail((y - mu) / sigma))
}
