package models

// Series is the time-aligned sequence of readings for one channel.
// Times is shared between all series of a SeriesSet.
type Series struct {
	Channel int
	Times   []int64
	Values  []float64
}

// Len returns the number of points in the series.
func (s Series) Len() int { return len(s.Values) }

// X returns the time axis as float64 for the fitters.
func (s Series) X() []float64 {
	out := make([]float64, len(s.Times))
	for i, t := range s.Times {
		out[i] = float64(t)
	}
	return out
}

// IncompleteLine records a sample that was excluded from every series.
type IncompleteLine struct {
	Line     int   `json:"line"`
	TimeStep int64 `json:"time_step"`
	Got      int   `json:"got"`
}

// SeriesSet holds one Series per channel, all index-aligned with Times.
type SeriesSet struct {
	Times      []int64
	Channels   []Series
	Incomplete []IncompleteLine
}
