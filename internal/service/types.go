package service

import (
	"context"

	"github.com/GriffinCanCode/tccm/internal/domain/settings"
	"github.com/GriffinCanCode/tccm/internal/domain/stamp"
	"github.com/GriffinCanCode/tccm/internal/infrastructure/logging"
	"github.com/GriffinCanCode/tccm/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/tccm/internal/providers/filesystem"
	"github.com/GriffinCanCode/tccm/internal/providers/http/files"
	"github.com/GriffinCanCode/tccm/internal/registry"
)

// Command names used for logging and metrics
const (
	CommandConfig  = "config"
	CommandVersion = "version"
	CommandPublish = "publish"
	CommandGet     = "get"
)

// Registry is the remote side of publish and get
type Registry interface {
	Publish(ctx context.Context, req registry.PublishRequest) (*files.UploadResult, error)
	Lookup(ctx context.Context, origin, name string) (*registry.Envelope, error)
	Fetch(ctx context.Context, origin, dataPath, dest, partial string) (*files.DownloadResult, error)
}

// Archiver builds the archive uploaded by publish
type Archiver interface {
	Create(ctx context.Context, req filesystem.ArchiveRequest) (*filesystem.ArchiveResult, error)
}

// Options wires a Service
type Options struct {
	Store    *settings.Store
	Stamper  *stamp.Stamper
	Archiver Archiver
	Registry Registry
	Metrics  *monitoring.Metrics
	Logger   *logging.Logger

	// StagingDir holds archives between creation and upload
	StagingDir string
	Format     filesystem.Format
	// IgnoreFile is looked up inside the component directory
	IgnoreFile string
}

// ConfigResult is the outcome of Configure
type ConfigResult struct {
	Path     string
	Settings *settings.Settings
}

// PublishResult is the outcome of Publish
type PublishResult struct {
	// Name is "<dirname>@<version>"
	Name    string
	Archive string
	Entries int
	Size    int64
}

// GetResult is the outcome of Get
type GetResult struct {
	Name string
	Path string
	Size int64
}
