package errors

import (
	stderrors "errors"
	"fmt"
)

// Category groups errors by how the CLI reports them
type Category string

const (
	CategoryUsage      Category = "usage"
	CategoryFileSystem Category = "filesystem"
	CategoryNetwork    Category = "network"
	CategoryRegistry   Category = "registry"
	CategoryInternal   Category = "internal"
)

// Exit codes returned by the tccm binary
const (
	ExitOK         = 0
	ExitInternal   = 1
	ExitUsage      = 2
	ExitFileSystem = 3
	ExitNetwork    = 4
	ExitRegistry   = 5
)

// Error is a classified error with an optional cause
type Error struct {
	category Category
	message  string
	cause    error
}

// New creates a classified error
func New(category Category, message string) *Error {
	return &Error{category: category, message: message}
}

// Wrap creates a classified error around cause
func Wrap(category Category, cause error, message string) *Error {
	return &Error{category: category, message: message, cause: cause}
}

// Usage reports a problem the user can fix by changing the invocation
func Usage(message string) *Error {
	return New(CategoryUsage, message)
}

// Usagef is Usage with formatting
func Usagef(format string, args ...any) *Error {
	return New(CategoryUsage, fmt.Sprintf(format, args...))
}

// FileSystem wraps a local I/O failure
func FileSystem(cause error, message string) *Error {
	return Wrap(CategoryFileSystem, cause, message)
}

// Network wraps a transport failure
func Network(cause error, message string) *Error {
	return Wrap(CategoryNetwork, cause, message)
}

// Registry reports a negative answer from the registry
func Registry(message string) *Error {
	return New(CategoryRegistry, message)
}

// Internal wraps an unexpected failure
func Internal(cause error, message string) *Error {
	return Wrap(CategoryInternal, cause, message)
}

// Error implements error
func (e *Error) Error() string {
	if e.cause == nil {
		return e.message
	}
	if e.message == "" {
		return e.cause.Error()
	}
	return e.message + ": " + e.cause.Error()
}

// Unwrap returns the cause
func (e *Error) Unwrap() error {
	return e.cause
}

// Category returns the error category
func (e *Error) Category() Category {
	return e.category
}

// Message returns the message without the cause
func (e *Error) Message() string {
	return e.message
}

// As finds the first classified error in err's chain
func As(err error) (*Error, bool) {
	var classified *Error
	if stderrors.As(err, &classified) {
		return classified, true
	}
	return nil, false
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// CategoryOf returns the category of err, internal when unclassified
func CategoryOf(err error) Category {
	if classified, ok := As(err); ok {
		return classified.category
	}
	return CategoryInternal
}

// ExitCode maps err to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	switch CategoryOf(err) {
	case CategoryUsage:
		return ExitUsage
	case CategoryFileSystem:
		return ExitFileSystem
	case CategoryNetwork:
		return ExitNetwork
	case CategoryRegistry:
		return ExitRegistry
	default:
		return ExitInternal
	}
}

// Format renders err as the single line shown to the user.
// Registry messages are shown verbatim.
func Format(err error) string {
	if err == nil {
		return ""
	}
	if CategoryOf(err) == CategoryRegistry {
		return err.Error()
	}
	return "Error: " + err.Error()
}
