package settings

import (
	"github.com/GriffinCanCode/tccm/internal/shared/errors"
)

// Gate errors, one per required field
var (
	ErrMissingOrigin = errors.Usage("Missing origin, please run: 'tccm config --set-origin=http://example.com' to specify the origin host.")
	ErrMissingUser   = errors.Usage("Can't find user, please run: 'tccm config --set-user=username' to specify a user.")
	ErrMissingEmail  = errors.Usage("Can't find email, please run: 'tccm config --set-email=email@address' to specify the email.")

	ErrInvalidConfiguration = errors.Usage("Invalid configuration, please run: 'tccm config --set-origin=<url> | --set-user=<name> | --set-email=<addr>'.")
)

// Settings is the persisted registry configuration
type Settings struct {
	Origin string `json:"origin,omitempty"`
	User   string `json:"user,omitempty"`
	Email  string `json:"email,omitempty"`
}

// Update carries the fields to change; empty fields are left alone
type Update struct {
	Origin string
	User   string
	Email  string
}

// Empty reports whether the update changes nothing
func (u Update) Empty() bool {
	return u.Origin == "" && u.User == "" && u.Email == ""
}

// Fields lists the names of the fields the update sets
func (u Update) Fields() []string {
	var fields []string
	if u.Origin != "" {
		fields = append(fields, "origin")
	}
	if u.User != "" {
		fields = append(fields, "user")
	}
	if u.Email != "" {
		fields = append(fields, "email")
	}
	return fields
}

// Merge applies u on top of s
func (s *Settings) Merge(u Update) {
	if u.Origin != "" {
		s.Origin = u.Origin
	}
	if u.User != "" {
		s.User = u.User
	}
	if u.Email != "" {
		s.Email = u.Email
	}
}

// Validate checks origin, user and email in that order and returns the
// error for the first one missing.
func (s *Settings) Validate() error {
	if err := s.RequireOrigin(); err != nil {
		return err
	}
	if s.User == "" {
		return ErrMissingUser
	}
	if s.Email == "" {
		return ErrMissingEmail
	}
	return nil
}

// RequireOrigin checks only the origin
func (s *Settings) RequireOrigin() error {
	if s == nil || s.Origin == "" {
		return ErrMissingOrigin
	}
	return nil
}
