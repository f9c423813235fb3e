package stamp

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/tccm/internal/domain/settings"
	"github.com/GriffinCanCode/tccm/internal/infrastructure/logging"
	"github.com/GriffinCanCode/tccm/internal/shared/errors"
	"github.com/GriffinCanCode/tccm/internal/shared/paths"
	"github.com/GriffinCanCode/tccm/internal/shared/utils"
)

var (
	ErrMissingVersion = errors.Usage("Missing version or invalid version, please run: 'tccm version <x.y.z>' to specify the version you want to apply to this component.")
	ErrNotStamped     = errors.Usage("Can't publish before setting version, please run: 'tccm version <x.y.z>' to set the version.")
)

// Info is the content of a stamp file
type Info struct {
	Version string `json:"version"`
	Author  string `json:"author"`
	Email   string `json:"email"`
	Cwd     string `json:"cwd"`
	Dirname string `json:"dirname"`
}

// StaleError reports a stamp recorded for another directory
type StaleError struct {
	Recorded string
	Actual   string
}

func (e *StaleError) Error() string {
	return fmt.Sprintf("%s was stamped in %s, not %s", paths.StampFileName, e.Recorded, e.Actual)
}

// Stamper writes and checks stamps
type Stamper struct {
	logger *logging.Logger
}

// NewStamper creates a stamper
func NewStamper(logger *logging.Logger) *Stamper {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Stamper{logger: logger}
}

// Update stamps dir with version using the author and email from cfg.
// dir must be absolute.
func (s *Stamper) Update(dir, version string, cfg *settings.Settings) (*Info, error) {
	if !utils.IsVersion(version) {
		return nil, ErrMissingVersion
	}
	if !filepath.IsAbs(dir) {
		return nil, errors.Internal(fmt.Errorf("%q is not absolute", dir), "invalid component directory")
	}

	if previous, err := Read(dir); err == nil {
		s.warnOnDowngrade(previous.Version, version)
	}

	info := &Info{
		Version: version,
		Author:  cfg.User,
		Email:   cfg.Email,
		Cwd:     dir,
		Dirname: paths.Dirname(dir),
	}
	if err := Write(dir, info); err != nil {
		return nil, err
	}

	s.logger.Debug("stamp written",
		zap.String("path", paths.StampFile(dir)),
		zap.String("version", version))
	return info, nil
}

// Load reads the stamp of dir and checks it was recorded there
func (s *Stamper) Load(dir string) (*Info, error) {
	info, err := Read(dir)
	if err != nil {
		return nil, err
	}
	if !paths.Same(info.Cwd, dir) {
		stale := &StaleError{Recorded: info.Cwd, Actual: dir}
		s.logger.Debug("stale stamp", zap.String("recorded", info.Cwd), zap.String("actual", dir))
		return nil, errors.Wrap(errors.CategoryUsage, stale, ErrNotStamped.Message())
	}
	return info, nil
}

func (s *Stamper) warnOnDowngrade(previous, next string) {
	prev, err := semver.NewVersion(previous)
	if err != nil {
		return
	}
	nextVer, err := semver.NewVersion(next)
	if err != nil {
		return
	}
	if nextVer.LessThan(prev) {
		s.logger.Warn("new version is lower than the current stamp",
			zap.String("current", prev.String()),
			zap.String("new", nextVer.String()))
	}
}

// Read loads the stamp of dir without checking it
func Read(dir string) (*Info, error) {
	path := paths.StampFile(dir)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNotStamped
	}
	if err != nil {
		return nil, errors.FileSystem(err, "failed to read stamp file")
	}

	var info Info
	if err := sonic.Unmarshal(data, &info); err != nil {
		return nil, errors.FileSystem(err, fmt.Sprintf("%s is not valid JSON", path))
	}
	return &info, nil
}

// Write stores info as the stamp of dir
func Write(dir string, info *Info) error {
	data, err := sonic.Marshal(info)
	if err != nil {
		return errors.Internal(err, "failed to encode stamp")
	}
	if err := utils.WriteFileAtomic(paths.StampFile(dir), data, 0o644); err != nil {
		return errors.FileSystem(err, "failed to write stamp file")
	}
	return nil
}
