package api

import (
	"math"
	"net/http"
	"time"

	"edakit/app"
	"edakit/domain/dataset"
	apperrors "edakit/internal/errors"

	"github.com/gin-gonic/gin"
)

// CompareRequest carries two numeric samples; null entries are missing.
type CompareRequest struct {
	Group1 []*float64 `json:"group1" binding:"required"`
	Group2 []*float64 `json:"group2" binding:"required"`
}

// AssociateRequest carries a contingency table with optional labels.
type AssociateRequest struct {
	Rows   []string `json:"rows"`
	Cols   []string `json:"cols"`
	Counts [][]int  `json:"counts" binding:"required"`
}

// SweepRequest carries a small frame and the plan to run on it.
type SweepRequest struct {
	Columns []string      `json:"columns" binding:"required"`
	Records [][]string    `json:"records" binding:"required"`
	Plan    app.SweepPlan `json:"plan"`
}

func (s *Server) handleCompare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, apperrors.InvalidInput(err.Error()))
		return
	}

	start := time.Now()
	report, err := s.analyzer.CompareSamples(nullsToNaN(req.Group1), nullsToNaN(req.Group2))
	s.metrics.testDuration.WithLabelValues("compare").Observe(time.Since(start).Seconds())
	if err != nil {
		s.fail(c, err)
		return
	}

	s.metrics.observeTest(string(report.Test))
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleAssociate(c *gin.Context) {
	var req AssociateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, apperrors.InvalidInput(err.Error()))
		return
	}

	table := dataset.ContingencyTable{Rows: req.Rows, Cols: req.Cols, Counts: req.Counts}
	start := time.Now()
	report, err := s.analyzer.TestAssociation(table)
	s.metrics.testDuration.WithLabelValues("associate").Observe(time.Since(start).Seconds())
	if err != nil {
		s.fail(c, err)
		return
	}

	for _, w := range report.Warnings {
		s.logger.Warn("associate: %s", w)
	}
	s.metrics.observeTest(string(report.Test))
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleSweep(c *gin.Context) {
	var req SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, apperrors.InvalidInput(err.Error()))
		return
	}

	frame, err := dataset.NewFrame(req.Columns, req.Records)
	if err != nil {
		s.fail(c, apperrors.WithCode(apperrors.CodeInvalidInput, err))
		return
	}

	start := time.Now()
	res, err := s.sweeps.Run(c.Request.Context(), frame, req.Plan)
	s.metrics.testDuration.WithLabelValues("sweep").Observe(time.Since(start).Seconds())
	if err != nil {
		s.fail(c, err)
		return
	}

	for _, item := range res.Items {
		if item.Report != nil {
			s.metrics.observeTest(string(item.Report.Test))
		}
	}
	c.JSON(http.StatusOK, res)
}

// fail maps an error code to a status and writes {error, code}.
func (s *Server) fail(c *gin.Context, err error) {
	code := apperrors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	s.metrics.observeError(code)
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

func statusFor(code string) int {
	switch code {
	case apperrors.CodeInsufficientData:
		return http.StatusUnprocessableEntity
	case apperrors.CodeDegenerateTable, apperrors.CodeInvalidInput, apperrors.CodeValidationError:
		return http.StatusBadRequest
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func nullsToNaN(xs []*float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		if x == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *x
	}
	return out
}

