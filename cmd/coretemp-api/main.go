package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"coretemp/internal/config"
	"coretemp/internal/handlers"
	"coretemp/internal/logger"
	"coretemp/internal/repository"
	"coretemp/internal/server"
	"coretemp/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	fs := pflag.NewFlagSet("coretemp-api", pflag.ExitOnError)
	configPath := fs.String("config", "", "path to config file (default configs/config.yml if present)")
	fs.String("log-level", logger.InfoLevel, "log level: debug, info, warn, error")
	fs.String("port", "8080", "HTTP listen port")
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

	if cfg.LogLevel != logger.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := repository.InitDB(cfg.ArchivePath)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.ArchivePath, "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	repos := repository.NewRepository(db)
	services := service.NewService(repos, service.PipelineConfig{
		Interval:  cfg.Interval,
		Channels:  cfg.Channels,
		OutputDir: cfg.OutputDir,
	}, log)
	apiHandler := handlers.NewHandler(services, log)

	srv := &server.Server{}
	runHTTPServer(srv, cfg.APIPort, apiHandler, log)

	waitForShutdown(srv, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("archive api listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown blocks until SIGINT/SIGTERM, then drains in-flight requests.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
