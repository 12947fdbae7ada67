package fitting

import (
	"gonum.org/v1/gonum/floats"

	"coretemp/internal/models"
)

// LeastSquares fits y = intercept + slope*x to all points jointly by
// ordinary least squares. The fit covers [times[0], times[n-1]].
func LeastSquares(times, values []float64) (models.LinearFit, error) {
	if err := checkLengths(times, values); err != nil {
		return models.LinearFit{}, err
	}
	if len(times) == 0 {
		return models.LinearFit{}, ErrEmptySeries
	}

	n := float64(len(times))
	sx := floats.Sum(times)
	sy := floats.Sum(values)
	sxx := floats.Dot(times, times)
	sxy := floats.Dot(times, values)

	det := n*sxx - sx*sx
	if det == 0 {
		return models.LinearFit{}, &DegenerateFitError{Model: ModelLeastSquares, Index: -1, Reason: "zero determinant"}
	}

	slope := (n*sxy - sx*sy) / det
	intercept := (sy*sxx - sx*sxy) / det
	if !isFinite(slope) || !isFinite(intercept) {
		return models.LinearFit{}, &DegenerateFitError{Model: ModelLeastSquares, Index: -1, Reason: "non-finite coefficients"}
	}

	return models.LinearFit{
		XLo:       times[0],
		XHi:       times[len(times)-1],
		Intercept: intercept,
		Slope:     slope,
	}, nil
}
