package app

import (
	"context"
	"time"

	"edakit/domain/core"
	"edakit/domain/dataset"
	"edakit/domain/stats"
	"edakit/internal"

	"golang.org/x/sync/errgroup"
)

// Analyzer runs the frame-level tests. *analysis.Engine implements it.
type Analyzer interface {
	CompareMeans(f *dataset.Frame, groupCol, target, valueCol string) (stats.TestReport, error)
	CrossTabulate(f *dataset.Frame, rowCol, colCol string) (stats.TestReport, error)
}

const (
	KindComparison  = "comparison"
	KindAssociation = "association"
)

// SweepItem is the outcome of one planned test: a report, or the reason the
// test could not run.
type SweepItem struct {
	Kind   string            `json:"kind"`
	Label  string            `json:"label"`
	Report *stats.TestReport `json:"report,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// SweepResult holds the items in plan order: comparisons, then associations.
type SweepResult struct {
	RunID       core.ID     `json:"run_id"`
	Items       []SweepItem `json:"items"`
	Significant int         `json:"significant"`
	Failed      int         `json:"failed"`
	RuntimeMs   int64       `json:"runtime_ms"`
}

// SweepService runs every test of a plan against one frame.
type SweepService struct {
	analyzer    Analyzer
	concurrency int
	logger      *internal.Logger
}

// NewSweepService creates a sweep service running at most concurrency tests
// at once.
func NewSweepService(analyzer Analyzer, concurrency int, logger *internal.Logger) *SweepService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &SweepService{analyzer: analyzer, concurrency: concurrency, logger: logger.With("Sweep")}
}

// Run executes the plan. A test that fails on its inputs is recorded in its
// item and does not stop the others; only cancellation aborts the run.
func (s *SweepService) Run(ctx context.Context, frame *dataset.Frame, plan SweepPlan) (*SweepResult, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	runID := core.NewID()
	s.logger.Info("run %s: %d comparisons, %d associations", runID, len(plan.Comparisons), len(plan.Associations))

	items := make([]SweepItem, plan.Len())
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, c := range plan.Comparisons {
		i, c := i, c
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			report, err := s.analyzer.CompareMeans(frame, c.Group, c.Target, c.Value)
			items[i] = s.item(KindComparison, c.Label(), report, err)
			return nil
		})
	}
	offset := len(plan.Comparisons)
	for i, a := range plan.Associations {
		i, a := i, a
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			report, err := s.analyzer.CrossTabulate(frame, a.Row, a.Col)
			items[offset+i] = s.item(KindAssociation, a.Label(), report, err)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &SweepResult{RunID: runID, Items: items, RuntimeMs: time.Since(start).Milliseconds()}
	for _, item := range items {
		switch {
		case item.Error != "":
			result.Failed++
		case item.Report.Significant:
			result.Significant++
		}
	}
	s.logger.Info("run %s finished in %dms: %d significant, %d failed", runID, result.RuntimeMs, result.Significant, result.Failed)
	return result, nil
}

func (s *SweepService) item(kind, label string, report stats.TestReport, err error) SweepItem {
	if err != nil {
		s.logger.Warn("%s %q skipped: %v", kind, label, err)
		return SweepItem{Kind: kind, Label: label, Error: err.Error()}
	}
	for _, w := range report.Warnings {
		s.logger.Warn("%s %q: %s", kind, label, w)
	}
	return SweepItem{Kind: kind, Label: label, Report: &report}
}
