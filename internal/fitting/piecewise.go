// Package fitting implements the two line models fitted to every series:
// piecewise-linear interpolation and a global least-squares line.
package fitting

import (
	"math"

	"coretemp/internal/models"
)

// Piecewise returns one segment per consecutive pair of points, in order.
// Fewer than two points yield no segments. Two points sharing a time value
// produce a *DegenerateFitError.
func Piecewise(times, values []float64) ([]models.Segment, error) {
	if err := checkLengths(times, values); err != nil {
		return nil, err
	}
	if len(times) < 2 {
		return nil, nil
	}

	segments := make([]models.Segment, 0, len(times)-1)
	for k := 0; k < len(times)-1; k++ {
		dx := times[k+1] - times[k]
		if dx == 0 {
			return nil, &DegenerateFitError{Model: ModelPiecewise, Index: k, Reason: "zero time delta"}
		}

		m := (values[k+1] - values[k]) / dx
		b := values[k+1] - m*times[k+1]
		if !isFinite(m) || !isFinite(b) {
			return nil, &DegenerateFitError{Model: ModelPiecewise, Index: k, Reason: "non-finite coefficients"}
		}

		segments = append(segments, models.Segment{
			XLo:       times[k],
			XHi:       times[k+1],
			Intercept: b,
			Slope:     m,
		})
	}

	return segments, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
