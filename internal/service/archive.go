package service

import (
	"context"
	"errors"
	"time"

	"coretemp/internal/models"
	"coretemp/internal/repository"
)

type ArchiveService struct {
	runs repository.RunRepo
}

func NewArchiveService(runs repository.RunRepo) *ArchiveService {
	return &ArchiveService{runs: runs}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func normalizeAndValidateFilter(f RunFilter) (time.Time, time.Time, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, errInvalidTimeRange
	}
	return from, to, nil
}

func (s *ArchiveService) List(ctx context.Context, f RunFilter) ([]models.FitRun, error) {
	from, to, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.runs.List(ctx, from, to)
}

func (s *ArchiveService) Get(ctx context.Context, id string) (models.FitRun, error) {
	return s.runs.Get(ctx, id)
}
