// Package analysis holds the adaptive test procedures: the numeric comparator
// (t-test or Mann-Whitney, chosen from assumption checks) and the categorical
// associator (chi-square with Fisher's exact fallback).
package analysis

import (
	"edakit/domain/stats"
	"edakit/ports"
)

// Options tunes the decision thresholds. Zero fields fall back to defaults.
type Options struct {
	// Alpha is the significance level for verdicts and assumption checks.
	Alpha float64
	// LargeSampleThreshold skips the normality test when either group is
	// larger than this and assumes normality instead.
	LargeSampleThreshold int
	// MinExpected is the smallest expected cell count for which the
	// chi-square approximation is trusted.
	MinExpected float64
}

// DefaultOptions returns alpha 0.05, a 5000 observation shortcut and the rule of five.
func DefaultOptions() Options {
	return Options{
		Alpha:                stats.DefaultAlpha,
		LargeSampleThreshold: stats.DefaultLargeSampleThreshold,
		MinExpected:          stats.DefaultMinExpected,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Alpha <= 0 || o.Alpha >= 1 {
		o.Alpha = d.Alpha
	}
	if o.LargeSampleThreshold <= 0 {
		o.LargeSampleThreshold = d.LargeSampleThreshold
	}
	if o.LargeSampleThreshold > stats.MaxLargeSampleThreshold {
		o.LargeSampleThreshold = stats.MaxLargeSampleThreshold
	}
	if o.MinExpected <= 0 {
		o.MinExpected = d.MinExpected
	}
	return o
}

// Engine runs the test procedures against a statistics backend. It holds no
// mutable state and is safe for concurrent use if the backend is.
type Engine struct {
	stats ports.StatisticsBackend
	opts  Options
}

// NewEngine creates an engine over the given backend.
func NewEngine(backend ports.StatisticsBackend, opts Options) *Engine {
	return &Engine{stats: backend, opts: opts.withDefaults()}
}

// Options returns the effective thresholds.
func (e *Engine) Options() Options {
	return e.opts
}
