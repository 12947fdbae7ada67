package fitting

import (
	"errors"
	"fmt"
)

// Model names used in errors.
const (
	ModelPiecewise    = "piecewise-linear"
	ModelLeastSquares = "least-squares"
)

var (
	// ErrDegenerateFit reports input for which a fit has no finite solution.
	ErrDegenerateFit = errors.New("degenerate fit")
	// ErrEmptySeries is returned by LeastSquares for a series with no points.
	ErrEmptySeries = errors.New("empty series")
	// ErrLengthMismatch is returned when times and values differ in length.
	ErrLengthMismatch = errors.New("times and values differ in length")
)

// DegenerateFitError describes where a fit broke down. It matches
// ErrDegenerateFit with errors.Is.
type DegenerateFitError struct {
	Model  string
	Index  int // segment index for piecewise fits, -1 otherwise
	Reason string
}

func (e *DegenerateFitError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: segment %d: %s", e.Model, e.Index, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Model, e.Reason)
}

func (e *DegenerateFitError) Unwrap() error { return ErrDegenerateFit }

func checkLengths(times, values []float64) error {
	if len(times) != len(values) {
		return fmt.Errorf("%w: %d times, %d values", ErrLengthMismatch, len(times), len(values))
	}
	return nil
}
