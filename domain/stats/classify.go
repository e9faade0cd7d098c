package stats

import "math"

// Classification boundaries are inclusive at the lower edge: a value equal to
// a cut point takes the stronger label.

// ClassifyCohensD labels |d|: <0.2 negligible, <0.5 small, <0.8 medium, else large.
func ClassifyCohensD(d float64) Strength {
	abs := math.Abs(d)
	switch {
	case abs < 0.2:
		return StrengthNegligible
	case abs < 0.5:
		return StrengthSmall
	case abs < 0.8:
		return StrengthMedium
	default:
		return StrengthLarge
	}
}

// ClassifyRankBiserial labels |rbc|: <0.1 very weak, <0.3 weak, <0.5 medium, else strong.
func ClassifyRankBiserial(rbc float64) Strength {
	abs := math.Abs(rbc)
	switch {
	case abs < 0.1:
		return StrengthVeryWeak
	case abs < 0.3:
		return StrengthWeak
	case abs < 0.5:
		return StrengthMedium
	default:
		return StrengthStrong
	}
}

// ClassifyCramersV labels V: <0.1 weak, <0.3 moderate, else strong.
func ClassifyCramersV(v float64) Strength {
	switch {
	case v < 0.1:
		return StrengthWeak
	case v < 0.3:
		return StrengthModerate
	default:
		return StrengthStrong
	}
}

// IsSignificant applies the p < alpha rule.
func IsSignificant(pValue, alpha float64) bool {
	return pValue < alpha
}
