package settings

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/tccm/internal/infrastructure/logging"
	"github.com/GriffinCanCode/tccm/internal/shared/errors"
	"github.com/GriffinCanCode/tccm/internal/shared/utils"
)

// Store reads and writes the settings file
type Store struct {
	path   string
	logger *logging.Logger
}

// NewStore creates a store for the file at path
func NewStore(path string, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the settings file location
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted settings, or empty settings when the file
// does not exist yet.
func (s *Store) Load() (*Settings, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.logger.Debug("settings file not found, using empty settings", zap.String("path", s.path))
		return &Settings{}, nil
	}
	if err != nil {
		return nil, errors.FileSystem(err, "failed to read config file")
	}

	var settings Settings
	if len(data) == 0 {
		return &settings, nil
	}
	if err := sonic.Unmarshal(data, &settings); err != nil {
		return nil, errors.FileSystem(err, fmt.Sprintf("config file %s is not valid JSON", s.path))
	}
	return &settings, nil
}

// Save writes settings atomically
func (s *Store) Save(settings *Settings) error {
	data, err := sonic.Marshal(settings)
	if err != nil {
		return errors.Internal(err, "failed to encode settings")
	}
	if err := utils.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return errors.FileSystem(err, "failed to write config file")
	}
	return nil
}

// Apply merges u into the persisted settings and writes the result.
// An empty update is rejected without touching the file.
func (s *Store) Apply(u Update) (*Settings, error) {
	if u.Empty() {
		return nil, ErrInvalidConfiguration
	}
	if err := validateUpdate(u); err != nil {
		return nil, err
	}

	current, err := s.Load()
	if err != nil {
		return nil, err
	}

	current.Merge(u)
	if err := s.Save(current); err != nil {
		return nil, err
	}

	s.logger.Debug("settings saved", zap.String("path", s.path), zap.Strings("fields", u.Fields()))
	return current, nil
}

func validateUpdate(u Update) error {
	checks := []struct {
		value string
		name  string
		max   int
	}{
		{u.Origin, "origin", utils.MaxOriginLength},
		{u.User, "user", utils.MaxUserLength},
		{u.Email, "email", utils.MaxEmailLength},
	}
	for _, c := range checks {
		if err := utils.ValidateString(c.value, c.name, 0, c.max, false); err != nil {
			return errors.Usage(err.Error())
		}
	}
	return nil
}
