package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the API collectors on a private registry.
type Metrics struct {
	registry     *prometheus.Registry
	testsTotal   *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	testDuration *prometheus.HistogramVec
}

// NewMetrics registers the collectors plus the Go runtime collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		testsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "edakit_tests_total",
			Help: "Tests run, by the test the procedure selected",
		}, []string{"test"}),
		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "edakit_test_errors_total",
			Help: "Requests rejected, by error code",
		}, []string{"code"}),
		testDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "edakit_test_duration_seconds",
			Help:    "Time spent running a procedure",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"endpoint"}),
	}
}

func (m *Metrics) observeTest(test string) {
	m.testsTotal.WithLabelValues(test).Inc()
}

func (m *Metrics) observeError(code string) {
	m.errorsTotal.WithLabelValues(code).Inc()
}
