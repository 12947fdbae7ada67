package service

import "time"

// PipelineConfig holds the per-run settings of the pipeline.
type PipelineConfig struct {
	Interval  int64  // seconds between input lines
	Channels  int    // readings required per line
	OutputDir string // where <stem>-core-0N.txt files go
}

// RunFilter selects archived runs by start time.
type RunFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
}
