package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/tccm/internal/domain/settings"
	"github.com/GriffinCanCode/tccm/internal/domain/stamp"
	"github.com/GriffinCanCode/tccm/internal/infrastructure/logging"
	"github.com/GriffinCanCode/tccm/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/tccm/internal/providers/filesystem"
	"github.com/GriffinCanCode/tccm/internal/registry"
	"github.com/GriffinCanCode/tccm/internal/shared/errors"
	"github.com/GriffinCanCode/tccm/internal/shared/paths"
	"github.com/GriffinCanCode/tccm/internal/shared/utils"
)

// Service runs tccm commands
type Service struct {
	store    *settings.Store
	stamper  *stamp.Stamper
	archiver Archiver
	registry Registry
	metrics  *monitoring.Metrics
	logger   *logging.Logger

	stagingDir string
	format     filesystem.Format
	ignoreFile string
}

// New creates a service; missing optional parts get defaults
func New(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Service{
		store:      opts.Store,
		stamper:    opts.Stamper,
		archiver:   opts.Archiver,
		registry:   opts.Registry,
		metrics:    opts.Metrics,
		logger:     logger,
		stagingDir: opts.StagingDir,
		format:     opts.Format,
		ignoreFile: opts.IgnoreFile,
	}
	if s.stamper == nil {
		s.stamper = stamp.NewStamper(logger)
	}
	if s.archiver == nil {
		s.archiver = filesystem.NewArchiver(logger)
	}
	if s.metrics == nil {
		s.metrics = monitoring.NewMetrics()
	}
	if s.stagingDir == "" {
		s.stagingDir = os.TempDir()
	}
	if s.format == "" {
		s.format = filesystem.FormatZip
	}
	return s
}

// Metrics returns the metrics the service records into
func (s *Service) Metrics() *monitoring.Metrics {
	return s.metrics
}

// Configure merges u into the settings file
func (s *Service) Configure(ctx context.Context, u settings.Update) (result *ConfigResult, err error) {
	timer := monitoring.NewTimer(s.metrics, CommandConfig)
	defer func() { timer.Stop(err) }()

	if err := ctx.Err(); err != nil {
		return nil, errors.Internal(err, "configure cancelled")
	}

	updated, err := s.store.Apply(u)
	if err != nil {
		return nil, err
	}
	return &ConfigResult{Path: s.store.Path(), Settings: updated}, nil
}

// SetVersion stamps dir with version
func (s *Service) SetVersion(ctx context.Context, dir, version string) (info *stamp.Info, err error) {
	timer := monitoring.NewTimer(s.metrics, CommandVersion)
	defer func() { timer.Stop(err) }()

	cfg, err := s.gate()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Internal(err, "version cancelled")
	}
	return s.stamper.Update(dir, version, cfg)
}

// Publish archives dir and uploads it to the configured origin
func (s *Service) Publish(ctx context.Context, dir string) (result *PublishResult, err error) {
	timer := monitoring.NewTimer(s.metrics, CommandPublish)
	defer func() { timer.Stop(err) }()

	cfg, err := s.gate()
	if err != nil {
		return nil, err
	}
	info, err := s.stamper.Load(dir)
	if err != nil {
		return nil, err
	}

	name := info.Dirname + "@" + info.Version
	archivePath := filepath.Join(s.stagingDir, paths.ArchiveName(info.Dirname, info.Version, s.format.Ext()))
	logger := s.logger.Command(CommandPublish)

	archive, err := s.archiver.Create(ctx, filesystem.ArchiveRequest{
		Source:     dir,
		Output:     archivePath,
		Format:     s.format,
		IgnoreFile: s.ignoreFile,
	})
	if err != nil {
		return nil, errors.FileSystem(err, "failed to archive "+dir)
	}
	s.metrics.SetArchiveEntries(archive.Entries())

	logger.Debug("archive ready",
		zap.String("name", name),
		zap.String("path", archive.Path),
		zap.Int("entries", archive.Entries()),
		zap.Int64("size", archive.Size))

	upload, err := s.registry.Publish(ctx, registry.PublishRequest{
		Origin:      cfg.Origin,
		ArchivePath: archive.Path,
		Author:      info.Author,
		Email:       info.Email,
	})
	if err != nil {
		logger.Debug("upload failed, archive kept", zap.String("path", archive.Path), zap.Error(err))
		return nil, errors.Wrap(errors.CategoryOf(err), err, fmt.Sprintf("Publish failed, archive kept at %s", archive.Path))
	}
	s.metrics.RecordTransfer(monitoring.DirectionUpload, upload.Bytes)

	if err := os.Remove(archive.Path); err != nil {
		logger.Warn("failed to remove published archive", zap.String("path", archive.Path), zap.Error(err))
	}

	return &PublishResult{
		Name:    name,
		Archive: archive.Path,
		Entries: archive.Entries(),
		Size:    archive.Size,
	}, nil
}

// Get downloads component name into dir as <name>.zip
func (s *Service) Get(ctx context.Context, dir, name string) (result *GetResult, err error) {
	timer := monitoring.NewTimer(s.metrics, CommandGet)
	defer func() { timer.Stop(err) }()

	cfg, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireOrigin(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errors.Usage("Missing component name, please run: 'tccm get <component>' to download a component.")
	}
	if err := utils.ValidateComponentName(name); err != nil {
		return nil, errors.Usage(err.Error())
	}

	env, err := s.registry.Lookup(ctx, cfg.Origin, name)
	if err != nil {
		return nil, err
	}

	dest := filepath.Join(dir, paths.DownloadName(name))
	partial := filepath.Join(dir, paths.PartialName(name))
	download, err := s.registry.Fetch(ctx, cfg.Origin, env.Data, dest, partial)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordTransfer(monitoring.DirectionDownload, download.Size)

	s.logger.Command(CommandGet).Debug("component downloaded",
		zap.String("name", name),
		zap.String("path", download.Path),
		zap.Int64("size", download.Size))

	return &GetResult{Name: name, Path: download.Path, Size: download.Size}, nil
}

// gate loads the settings and requires origin, user and email
func (s *Service) gate() (*settings.Settings, error) {
	cfg, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
