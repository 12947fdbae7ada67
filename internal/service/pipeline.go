package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"coretemp/internal/fitting"
	"coretemp/internal/logger"
	"coretemp/internal/models"
	"coretemp/internal/parser"
	"coretemp/internal/render"
	"coretemp/internal/repository"
	"coretemp/internal/series"
)

// ErrNoInput is returned when Run is called without an input path.
var ErrNoInput = errors.New("no input file given")

type PipelineService struct {
	cfg  PipelineConfig
	runs repository.RunRepo // nil disables archiving
	log  *logger.Logger
	now  func() time.Time
}

func NewPipelineService(cfg PipelineConfig, runs repository.RunRepo, log *logger.Logger) *PipelineService {
	if log == nil {
		log = logger.Nop()
	}
	return &PipelineService{
		cfg:  cfg,
		runs: runs,
		log:  log,
		now:  time.Now,
	}
}

// Run fits every channel of input and writes one file per channel. All fits
// are computed before the first file is created, so a fitting error leaves
// no output behind.
func (s *PipelineService) Run(ctx context.Context, input string) (models.FitRun, error) {
	if input == "" {
		return models.FitRun{}, ErrNoInput
	}
	started := s.now()

	samples, err := parser.ReadFile(input, s.cfg.Interval)
	if err != nil {
		return models.FitRun{}, err
	}

	set, err := series.Build(samples, s.cfg.Channels)
	if err != nil {
		return models.FitRun{}, err
	}
	for _, inc := range set.Incomplete {
		s.log.Warnw("incomplete sample",
			"line", inc.Line+1,
			"time_step", inc.TimeStep,
			"readings", inc.Got,
			"want", s.cfg.Channels,
		)
	}

	fits, err := fitChannels(ctx, set)
	if err != nil {
		return models.FitRun{}, err
	}

	outputs, err := s.writeOutputs(ctx, input, fits)
	if err != nil {
		return models.FitRun{}, err
	}

	run := models.FitRun{
		Input:     input,
		StartedAt: started.UTC(),
		Samples:   len(samples),
		Complete:  len(set.Times),
		Skipped:   len(set.Incomplete),
		Channels:  s.cfg.Channels,
		Outputs:   outputs,
	}
	for _, f := range fits {
		run.Lines = append(run.Lines, f.Lines()...)
	}

	if s.runs != nil {
		id, err := s.runs.Append(ctx, run)
		if err != nil {
			return models.FitRun{}, fmt.Errorf("archive run: %w", err)
		}
		run.ID = id
	}

	s.log.Infow("run complete",
		"input", input,
		"samples", run.Samples,
		"complete", run.Complete,
		"skipped", run.Skipped,
		"channels", run.Channels,
		"outputs", run.Outputs,
		"run_id", run.ID,
	)
	return run, nil
}

// fitChannels fits each channel in its own goroutine.
func fitChannels(ctx context.Context, set models.SeriesSet) ([]models.ChannelFit, error) {
	fits := make([]models.ChannelFit, len(set.Channels))

	g, _ := errgroup.WithContext(ctx)
	for c, ser := range set.Channels {
		c, ser := c, ser
		g.Go(func() error {
			fit, err := fitSeries(ser)
			if err != nil {
				return fmt.Errorf("core %d: %w", c, err)
			}
			fits[c] = fit
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return fits, nil
}

func fitSeries(ser models.Series) (models.ChannelFit, error) {
	x := ser.X()

	segments, err := fitting.Piecewise(x, ser.Values)
	if err != nil {
		return models.ChannelFit{}, err
	}
	ls, err := fitting.LeastSquares(x, ser.Values)
	if err != nil {
		return models.ChannelFit{}, err
	}

	return models.ChannelFit{
		Channel:      ser.Channel,
		Segments:     segments,
		LeastSquares: ls,
	}, nil
}

// writeOutputs writes each channel to its own file, one goroutine per file.
func (s *PipelineService) writeOutputs(ctx context.Context, input string, fits []models.ChannelFit) ([]string, error) {
	outputs := make([]string, len(fits))

	g, gctx := errgroup.WithContext(ctx)
	for i, fit := range fits {
		fit := fit
		path := render.OutputPath(s.cfg.OutputDir, input, fit.Channel)
		outputs[i] = path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return render.WriteFile(path, fit)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}
