package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrDegenerateTable  = errors.New("degenerate contingency table")
	ErrColumnNotFound   = errors.New("column not found")
	ErrNotNumeric       = errors.New("column is not numeric")
	ErrInvalidPlan      = errors.New("invalid sweep plan")

	// Computation errors
	ErrTestFailed = errors.New("statistical test failed")
)

// Error constructors with context
func NewInsufficientDataError(group string, n, min int) error {
	return fmt.Errorf("%w: %s has %d observations, need at least %d", ErrInsufficientData, group, n, min)
}

func NewDegenerateTableError(reason string) error {
	return fmt.Errorf("%w: %s", ErrDegenerateTable, reason)
}

func NewColumnNotFoundError(name string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

func NewNotNumericError(column string, row int, value string) error {
	return fmt.Errorf("%w: %q row %d has value %q", ErrNotNumeric, column, row, value)
}

func NewTestError(test string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrTestFailed, test, err)
}

// Error checking helpers
func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

func IsDegenerateTable(err error) bool {
	return errors.Is(err, ErrDegenerateTable)
}

// IsInputError reports whether err was caused by caller-supplied data rather
// than by a failing computation.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrDegenerateTable) ||
		errors.Is(err, ErrColumnNotFound) ||
		errors.Is(err, ErrNotNumeric) ||
		errors.Is(err, ErrInvalidPlan)
}
