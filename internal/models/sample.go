package models

// Sample is one parsed input line.
type Sample struct {
	Line     int       `json:"line"`      // 0-based input line index
	TimeStep int64     `json:"time_step"` // seconds, derived from Line
	Readings []float64 `json:"readings"`  // left-to-right numeric tokens
}
