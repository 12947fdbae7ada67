// Package series demultiplexes parsed samples into per-channel series.
package series

import (
	"fmt"

	"coretemp/internal/models"
)

// Build splits samples into channels index-aligned series. A sample with
// fewer than channels readings is left out of every series and recorded in
// Incomplete; readings past the last channel are ignored.
func Build(samples []models.Sample, channels int) (models.SeriesSet, error) {
	if channels < 1 {
		return models.SeriesSet{}, fmt.Errorf("channel count must be positive, got %d", channels)
	}

	set := models.SeriesSet{
		Times:    make([]int64, 0, len(samples)),
		Channels: make([]models.Series, channels),
	}
	for c := range set.Channels {
		set.Channels[c] = models.Series{
			Channel: c,
			Values:  make([]float64, 0, len(samples)),
		}
	}

	for _, s := range samples {
		if len(s.Readings) < channels {
			set.Incomplete = append(set.Incomplete, models.IncompleteLine{
				Line:     s.Line,
				TimeStep: s.TimeStep,
				Got:      len(s.Readings),
			})
			continue
		}
		set.Times = append(set.Times, s.TimeStep)
		for c := range set.Channels {
			set.Channels[c].Values = append(set.Channels[c].Values, s.Readings[c])
		}
	}

	for c := range set.Channels {
		set.Channels[c].Times = set.Times
	}

	return set, nil
}
