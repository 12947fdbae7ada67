package service

import (
	"context"

	"coretemp/internal/logger"
	"coretemp/internal/models"
	"coretemp/internal/repository"
)

// Pipeline parses an input file, fits every channel and writes the outputs.
type Pipeline interface {
	Run(ctx context.Context, input string) (models.FitRun, error)
}

// Archive exposes read access to stored runs.
type Archive interface {
	List(ctx context.Context, f RunFilter) ([]models.FitRun, error)
	Get(ctx context.Context, id string) (models.FitRun, error)
}

type Service struct {
	Pipeline
	Archive
}

// NewService wires the services. repos may be nil when archiving is off;
// Archive is then left nil.
func NewService(repos *repository.Repository, cfg PipelineConfig, log *logger.Logger) *Service {
	var runs repository.RunRepo
	if repos != nil {
		runs = repos.RunRepo
	}

	s := &Service{
		Pipeline: NewPipelineService(cfg, runs, log),
	}
	if runs != nil {
		s.Archive = NewArchiveService(runs)
	}
	return s
}
