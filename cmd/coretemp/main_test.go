package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coretemp/internal/config"
	"coretemp/internal/logger"
	"coretemp/internal/repository"
)

func TestRun_WritesFilesAndArchives(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sensors.txt")
	require.NoError(t, os.WriteFile(input, []byte("+61.0 +63.0 +50.0 +58.0\n+80.0 +81.0 +68.0 +77.0\n+62.0 +63.0 +52.0 +60.0\n"), 0o644))

	cfg := config.Config{
		LogLevel:    logger.ErrorLevel,
		Interval:    30,
		Channels:    4,
		OutputDir:   dir,
		Archive:     true,
		ArchivePath: filepath.Join(dir, "runs.db"),
	}
	require.NoError(t, run(context.Background(), cfg, input, logger.Nop()))

	for c := 0; c < 4; c++ {
		_, err := os.Stat(filepath.Join(dir, "sensors-core-0"+string(rune('0'+c))+".txt"))
		assert.NoError(t, err)
	}

	db, err := repository.InitDB(cfg.ArchivePath)
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	runs, err := repository.NewRepository(db).RunRepo.List(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 3, runs[0].Complete)
	assert.Len(t, runs[0].Outputs, 4)
}

func TestRun_MissingInput(t *testing.T) {
	cfg := config.Config{Interval: 30, Channels: 4, OutputDir: t.TempDir()}
	err := run(context.Background(), cfg, filepath.Join(t.TempDir(), "missing.txt"), logger.Nop())
	assert.Error(t, err)
}
