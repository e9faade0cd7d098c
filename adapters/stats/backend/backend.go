// Package backend implements the statistical tests consumed by the analysis
// engine on top of gonum, go-moremath and montanaflynn/stats.
package backend

import (
	"edakit/ports"
)

// Backend is stateless; a single value is safe for concurrent use.
type Backend struct{}

var _ ports.StatisticsBackend = (*Backend)(nil)

// New returns the default statistics backend.
func New() *Backend {
	return &Backend{}
}
