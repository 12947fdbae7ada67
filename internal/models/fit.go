package models

import "coretemp"

// Segment is one piecewise-linear piece between two consecutive points.
// Intercept is the y-intercept of the line through both points, computed
// from the right endpoint.
type Segment struct {
	XLo       float64 `json:"x_lo"`
	XHi       float64 `json:"x_hi"`
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
}

// LinearFit is the single least-squares line over a whole series.
type LinearFit struct {
	XLo       float64 `json:"x_lo"`
	XHi       float64 `json:"x_hi"`
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
}

// FitLine is one rendered output line, as stored in the run archive.
type FitLine struct {
	Channel   int     `json:"channel"`
	Seq       int     `json:"seq"`
	Kind      string  `json:"kind"` // interpolation | least-squares
	XLo       float64 `json:"x_lo"`
	XHi       float64 `json:"x_hi"`
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
}

// ChannelFit is everything fitted for one channel.
type ChannelFit struct {
	Channel      int
	Segments     []Segment
	LeastSquares LinearFit
}

// Lines flattens the fit in output order: segments first, then the
// least-squares line.
func (f ChannelFit) Lines() []FitLine {
	out := make([]FitLine, 0, len(f.Segments)+1)
	for i, s := range f.Segments {
		out = append(out, FitLine{
			Channel:   f.Channel,
			Seq:       i,
			Kind:      coretemp.LabelInterpolation,
			XLo:       s.XLo,
			XHi:       s.XHi,
			Intercept: s.Intercept,
			Slope:     s.Slope,
		})
	}
	ls := f.LeastSquares
	out = append(out, FitLine{
		Channel:   f.Channel,
		Seq:       len(f.Segments),
		Kind:      coretemp.LabelLeastSquares,
		XLo:       ls.XLo,
		XHi:       ls.XHi,
		Intercept: ls.Intercept,
		Slope:     ls.Slope,
	})
	return out
}
