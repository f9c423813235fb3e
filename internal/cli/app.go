package cli

import (
	"io"
	"path/filepath"

	"github.com/GriffinCanCode/tccm/internal/domain/settings"
	"github.com/GriffinCanCode/tccm/internal/domain/stamp"
	"github.com/GriffinCanCode/tccm/internal/infrastructure/config"
	"github.com/GriffinCanCode/tccm/internal/infrastructure/logging"
	"github.com/GriffinCanCode/tccm/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/tccm/internal/providers/filesystem"
	"github.com/GriffinCanCode/tccm/internal/providers/http/client"
	"github.com/GriffinCanCode/tccm/internal/registry"
	"github.com/GriffinCanCode/tccm/internal/service"
	"github.com/GriffinCanCode/tccm/internal/shared/errors"
	"github.com/GriffinCanCode/tccm/internal/shared/paths"
)

// app holds what the commands need for one invocation
type app struct {
	svc     *service.Service
	metrics *monitoring.Metrics
	logger  *logging.Logger
	workDir string
	stdout  io.Writer
	stderr  io.Writer
}

func newApp(opts RunOptions, cfg *config.Config, logger *logging.Logger) (*app, error) {
	workDir, err := filepath.Abs(opts.WorkDir)
	if err != nil {
		return nil, errors.FileSystem(err, "failed to resolve working directory")
	}

	configFile := cfg.Paths.ConfigFile
	if configFile == "" {
		configFile, err = paths.DefaultConfigFile()
		if err != nil {
			return nil, errors.FileSystem(err, "failed to locate config file")
		}
	}

	format, err := filesystem.ParseFormat(cfg.Archive.Format)
	if err != nil {
		return nil, errors.Usage(err.Error())
	}

	httpClient := client.NewClient(client.Options{
		Timeout:   cfg.HTTP.Timeout,
		UserAgent: cfg.HTTP.UserAgent,
		RateLimit: cfg.HTTP.RateLimit,
		Logger:    logger,
	})

	metrics := monitoring.NewMetrics()
	svc := service.New(service.Options{
		Store:      settings.NewStore(configFile, logger),
		Stamper:    stamp.NewStamper(logger),
		Archiver:   filesystem.NewArchiver(logger),
		Registry:   registry.NewClient(httpClient),
		Metrics:    metrics,
		Logger:     logger,
		StagingDir: cfg.StagingDir(),
		Format:     format,
		IgnoreFile: cfg.Archive.IgnoreFile,
	})

	return &app{
		svc:     svc,
		metrics: metrics,
		logger:  logger,
		workDir: workDir,
		stdout:  opts.Stdout,
		stderr:  opts.Stderr,
	}, nil
}
