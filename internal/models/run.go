package models

import "time"

// FitRun is the archived record of one pipeline run.
type FitRun struct {
	ID        string    `json:"id"`
	Input     string    `json:"input"`
	StartedAt time.Time `json:"started_at"`
	Samples   int       `json:"samples"`  // lines read
	Complete  int       `json:"complete"` // lines used by every series
	Skipped   int       `json:"skipped"`  // incomplete lines
	Channels  int       `json:"channels"`
	Outputs   []string  `json:"outputs,omitempty"`
	Lines     []FitLine `json:"lines,omitempty"`
}
