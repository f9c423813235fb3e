package cli

import (
	"strings"

	"github.com/GriffinCanCode/tccm/internal/domain/settings"
	"github.com/GriffinCanCode/tccm/internal/shared/utils"
)

// Options is the classified form of a command's tokens
type Options struct {
	Command   string
	Origin    string
	User      string
	Email     string
	Version   string
	Component string
	Help      bool
}

// Parse classifies tokens for command. It never fails; later tokens
// overwrite earlier ones of the same kind.
func Parse(command string, tokens []string) Options {
	opts := Options{Command: command}

	for _, token := range tokens {
		switch {
		case token == "-h" || token == "--help":
			opts.Help = true
		case strings.HasPrefix(token, "--") && strings.Index(token, "=") > 0:
			key, value, _ := strings.Cut(token, "=")
			switch key {
			case "--set-origin":
				opts.Origin = value
			case "--set-user":
				opts.User = value
			case "--set-email":
				opts.Email = value
			}
		case utils.IsVersion(token):
			opts.Version = token
		case utils.IsComponentName(token):
			opts.Component = token
		}
	}

	return opts
}

// Update returns the settings fields carried by the options
func (o Options) Update() settings.Update {
	return settings.Update{
		Origin: o.Origin,
		User:   o.User,
		Email:  o.Email,
	}
}
