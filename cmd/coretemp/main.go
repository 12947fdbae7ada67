package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"coretemp/internal/config"
	"coretemp/internal/logger"
	"coretemp/internal/repository"
	"coretemp/internal/service"
)

const usage = `usage: coretemp [flags] <input-file>

Fits every core of a temperature log with piecewise-linear interpolation and a
least-squares line, writing <input-stem>-core-0N.txt per core.

flags:
`

func main() {
	fs := pflag.NewFlagSet("coretemp", pflag.ExitOnError)
	configPath := fs.String("config", "", "path to config file (default configs/config.yml if present)")
	fs.String("log-level", logger.InfoLevel, "log level: debug, info, warn, error")
	fs.String("output-dir", ".", "directory for per-core output files")
	fs.Bool("archive", false, "store the run in the SQLite archive")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	v := viper.New()
	if err := config.BindFlags(v, fs); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error binding flags", "err", err)
	}
	cfg, err := config.Load(v, *configPath)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if fs.NArg() != 1 {
		fs.Usage()
		log.Fatalw("expected exactly one input file", "args", fs.Args())
	}

	if err := run(context.Background(), cfg, fs.Arg(0), log); err != nil {
		log.Fatalw("run failed", "input", fs.Arg(0), "err", err)
	}
}

func run(ctx context.Context, cfg config.Config, input string, log *logger.Logger) error {
	var repos *repository.Repository
	if cfg.Archive {
		db, err := openDB(cfg.ArchivePath)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := db.Close(); cerr != nil {
				log.Errorw("failed to close sqlite", "err", cerr)
			}
		}()
		repos = repository.NewRepository(db)
	}

	services := service.NewService(repos, service.PipelineConfig{
		Interval:  cfg.Interval,
		Channels:  cfg.Channels,
		OutputDir: cfg.OutputDir,
	}, log)

	_, err := services.Pipeline.Run(ctx, input)
	return err
}

func openDB(path string) (*sql.DB, error) {
	db, err := repository.InitDB(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return db, nil
}
