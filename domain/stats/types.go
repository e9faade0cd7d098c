package stats

import (
	"encoding/json"
	"math"
)

// ============================================================================
// TEST SELECTION
// ============================================================================

// TestKind identifies which test produced a report. For the adaptive
// procedures it doubles as the branch taken by the decision logic.
type TestKind string

const (
	TestTTestEqualVariance   TestKind = "T-Test (Equal Variance)"
	TestTTestUnequalVariance TestKind = "T-Test (Unequal Variance)"
	TestMannWhitneyU         TestKind = "Mann-Whitney U Test"
	TestChiSquare            TestKind = "Chi-Square Test"
	TestFisherExact          TestKind = "Fisher's Exact Test (Small Sample Correction)"
)

// IsParametric reports whether the test assumes normally distributed groups.
func (k TestKind) IsParametric() bool {
	return k == TestTTestEqualVariance || k == TestTTestUnequalVariance
}

// IsCategorical reports whether the test operates on a contingency table.
func (k TestKind) IsCategorical() bool {
	return k == TestChiSquare || k == TestFisherExact
}

// EffectMeasure names the effect-size statistic attached to a report.
type EffectMeasure string

const (
	MeasureCohensD      EffectMeasure = "Cohen's d"
	MeasureRankBiserial EffectMeasure = "Rank-Biserial"
	MeasureCramersV     EffectMeasure = "Cramer's V"
)

// Strength is the qualitative label for an effect size.
type Strength string

const (
	StrengthNegligible Strength = "Negligible"
	StrengthVeryWeak   Strength = "Very Weak"
	StrengthWeak       Strength = "Weak"
	StrengthSmall      Strength = "Small"
	StrengthModerate   Strength = "Moderate"
	StrengthMedium     Strength = "Medium"
	StrengthLarge      Strength = "Large"
	StrengthStrong     Strength = "Strong"
)

// Assumption check names
const (
	CheckNormality         = "normality"
	CheckEqualVariance     = "equal_variance"
	CheckExpectedFrequency = "expected_frequency"
)

// Default thresholds
const (
	DefaultAlpha                = 0.05
	DefaultLargeSampleThreshold = 5000
	DefaultMinExpected          = 5.0
	MinGroupSize                = 2

	// MaxLargeSampleThreshold is the largest n the Shapiro-Wilk
	// approximation covers; groups above it always take the CLT shortcut.
	MaxLargeSampleThreshold = 5000
)

// ============================================================================
// REPORT
// ============================================================================

// AssumptionResult is the outcome of a precondition check.
type AssumptionResult struct {
	Check  string   `json:"check"`
	Passed bool     `json:"passed"`
	Reason string   `json:"reason"`
	PValue *float64 `json:"p_value,omitempty"` // nil when no test ran
}

// EffectSize is an effect-size value with its qualitative label.
type EffectSize struct {
	Measure  EffectMeasure `json:"measure"`
	Value    float64       `json:"value"`
	Strength Strength      `json:"strength"`
}

// MarshalJSON writes a non-finite value (zero spread, different means) as null.
func (e EffectSize) MarshalJSON() ([]byte, error) {
	type plain EffectSize
	aux := struct {
		plain
		Value *float64 `json:"value"`
	}{plain: plain(e), Value: finiteOrNil(e.Value)}
	return json.Marshal(aux)
}

// GroupSummary describes the two samples of a numeric comparison.
type GroupSummary struct {
	Label1 string  `json:"label_1"`
	Label2 string  `json:"label_2"`
	N1     int     `json:"n1"`
	N2     int     `json:"n2"`
	Mean1  float64 `json:"mean1"`
	Mean2  float64 `json:"mean2"`
}

// TableSummary describes the contingency table behind a categorical test.
type TableSummary struct {
	Rows        int         `json:"rows"`
	Cols        int         `json:"cols"`
	Total       int         `json:"total"`
	DoF         int         `json:"dof"`
	MinExpected float64     `json:"min_expected"`
	Expected    [][]float64 `json:"expected,omitempty"`
	OddsRatio   *float64    `json:"odds_ratio,omitempty"` // Fisher only, nil when undefined
}

// TestReport is the final output of a test procedure. Reports are built once
// and handed out by value; callers must not mutate the slices they carry.
type TestReport struct {
	Test        TestKind           `json:"test"`
	Statistic   float64            `json:"statistic"`
	PValue      float64            `json:"p_value"`
	Alpha       float64            `json:"alpha"`
	Significant bool               `json:"significant"`
	Verdict     string             `json:"verdict"`
	Effect      *EffectSize        `json:"effect,omitempty"`
	Assumptions []AssumptionResult `json:"assumptions,omitempty"`
	Warnings    []string           `json:"warnings,omitempty"`
	Groups      *GroupSummary      `json:"groups,omitempty"`
	Table       *TableSummary      `json:"table,omitempty"`
}

// Assumption returns the assumption check with the given name.
func (r TestReport) Assumption(check string) (AssumptionResult, bool) {
	for _, a := range r.Assumptions {
		if a.Check == check {
			return a, true
		}
	}
	return AssumptionResult{}, false
}

// HasWarnings reports whether the result carries reliability warnings.
func (r TestReport) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// MarshalJSON writes a non-finite statistic (two constant samples) as null.
func (r TestReport) MarshalJSON() ([]byte, error) {
	type plain TestReport
	aux := struct {
		plain
		Statistic *float64 `json:"statistic"`
	}{plain: plain(r), Statistic: finiteOrNil(r.Statistic)}
	return json.Marshal(aux)
}

func finiteOrNil(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
