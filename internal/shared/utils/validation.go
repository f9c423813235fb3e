package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// String length limits
const (
	MaxOriginLength    = 2048
	MaxUserLength      = 256
	MaxEmailLength     = 255
	MaxComponentLength = 256
)

// Regular expressions for token classification
var (
	// VersionPattern matches a three-part numeric version such as 1.0.0
	VersionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	// ComponentPattern matches a component identifier such as lazyload-0.0.1
	ComponentPattern = regexp.MustCompile(`^[a-zA-Z0-9_\-@#\.]+$`)
)

// IsVersion reports whether s is a three-part numeric version
func IsVersion(s string) bool {
	return VersionPattern.MatchString(s)
}

// IsComponentName reports whether s is a component identifier
func IsComponentName(s string) bool {
	return ComponentPattern.MatchString(s)
}

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	if strings.ContainsAny(value, "\x00\r\n") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateComponentName validates the identifier passed to get
func ValidateComponentName(name string) error {
	if err := ValidateString(name, "component name", 1, MaxComponentLength, true); err != nil {
		return err
	}

	if !IsComponentName(name) {
		return fmt.Errorf("component name contains invalid characters (only alphanumeric, '_', '-', '@', '#' and '.' allowed)")
	}

	if name == "." || name == ".." {
		return fmt.Errorf("component name %q is not allowed", name)
	}

	return nil
}
