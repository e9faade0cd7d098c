package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"edakit/app"
	"edakit/domain/dataset"
	"edakit/domain/stats"
	"edakit/internal"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Analyzer runs the procedures behind the API. *analysis.Engine implements it.
type Analyzer interface {
	CompareSamples(group1, group2 []float64) (stats.TestReport, error)
	TestAssociation(table dataset.ContingencyTable) (stats.TestReport, error)
}

// SweepRunner runs a plan against an uploaded frame.
type SweepRunner interface {
	Run(ctx context.Context, frame *dataset.Frame, plan app.SweepPlan) (*app.SweepResult, error)
}

// Server exposes the test procedures over HTTP.
type Server struct {
	router   *gin.Engine
	analyzer Analyzer
	sweeps   SweepRunner
	metrics  *Metrics
	logger   *internal.Logger
}

// NewServer wires the routes. ginMode is passed to gin.SetMode when set.
func NewServer(analyzer Analyzer, sweeps SweepRunner, ginMode string, logger *internal.Logger) *Server {
	if ginMode != "" {
		gin.SetMode(ginMode)
	}

	s := &Server{
		router:   gin.New(),
		analyzer: analyzer,
		sweeps:   sweeps,
		metrics:  NewMetrics(),
		logger:   logger.With("API"),
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/compare", s.handleCompare)
		v1.POST("/associate", s.handleAssociate)
		v1.POST("/sweep", s.handleSweep)
	}
}

// Handler returns the router for embedding or tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("%s %s -> %d (%s)", c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
