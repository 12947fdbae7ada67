// Package coretemp fits per-core CPU temperature logs with piecewise-linear
// interpolation and a global least-squares line.
package coretemp

// Defaults for a run. The sampling interval is fixed per input file: line i
// is taken at i*DefaultIntervalSec seconds.
const (
	DefaultIntervalSec = 30
	DefaultChannels    = 4
)

// Labels written at the end of every output line.
const (
	LabelInterpolation = "interpolation"
	LabelLeastSquares  = "least-squares"
)
