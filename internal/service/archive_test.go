package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coretemp/internal/models"
	"coretemp/internal/repository"
)

// archiveRunRepoStub captures List/Get arguments.
type archiveRunRepoStub struct {
	listResp []models.FitRun
	gotFrom  time.Time
	gotTo    time.Time
	listCall int
	runs     map[string]models.FitRun
}

func (s *archiveRunRepoStub) Append(ctx context.Context, run models.FitRun) (string, error) {
	return run.ID, nil
}

func (s *archiveRunRepoStub) List(ctx context.Context, from, to time.Time) ([]models.FitRun, error) {
	s.listCall++
	s.gotFrom, s.gotTo = from, to
	return s.listResp, nil
}

func (s *archiveRunRepoStub) Get(ctx context.Context, id string) (models.FitRun, error) {
	run, ok := s.runs[id]
	if !ok {
		return models.FitRun{}, repository.ErrRunNotFound
	}
	return run, nil
}

func TestArchiveService_List(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+3", 3*60*60)
	from := time.Date(2025, 8, 1, 3, 0, 0, 0, loc)
	to := time.Date(2025, 8, 2, 3, 0, 0, 0, loc)

	cases := []struct {
		name      string
		filter    RunFilter
		wantErr   bool
		wantCalls int
	}{
		{name: "open range", filter: RunFilter{}, wantCalls: 1},
		{name: "valid range normalized", filter: RunFilter{From: from, To: to}, wantCalls: 1},
		{name: "from after to", filter: RunFilter{From: to, To: from}, wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := &archiveRunRepoStub{listResp: []models.FitRun{{ID: "a"}}}
			svc := NewArchiveService(repo)

			runs, err := svc.List(context.Background(), tc.filter)
			if tc.wantErr {
				require.ErrorIs(t, err, errInvalidTimeRange)
				assert.Zero(t, repo.listCall)
				return
			}
			require.NoError(t, err)
			assert.Len(t, runs, 1)
			assert.Equal(t, tc.wantCalls, repo.listCall)
			if !tc.filter.From.IsZero() {
				assert.Equal(t, time.UTC, repo.gotFrom.Location())
				assert.True(t, repo.gotFrom.Equal(from))
				assert.Equal(t, time.UTC, repo.gotTo.Location())
			}
		})
	}
}

func TestArchiveService_Get(t *testing.T) {
	t.Parallel()

	svc := NewArchiveService(&archiveRunRepoStub{runs: map[string]models.FitRun{"a": {ID: "a", Channels: 4}}})

	run, err := svc.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, 4, run.Channels)

	_, err = svc.Get(context.Background(), "b")
	assert.ErrorIs(t, err, repository.ErrRunNotFound)
}

func TestNewService_ArchiveOptional(t *testing.T) {
	t.Parallel()

	s := NewService(nil, PipelineConfig{Interval: 30, Channels: 4, OutputDir: "."}, nil)
	assert.NotNil(t, s.Pipeline)
	assert.Nil(t, s.Archive)

	s = NewService(&repository.Repository{RunRepo: &archiveRunRepoStub{}}, PipelineConfig{}, nil)
	assert.NotNil(t, s.Archive)
}
