// Package errors defines the failure kinds bookshelf reports. Callers branch
// on the kind (missing file, unreadable content, rejected input, unknown
// book) with the Is* helpers instead of matching message text.
package errors

import (
	"errors"
	"fmt"
)

// Is reports whether any error in err's chain matches target.
var Is = errors.Is

// Sentinels matched by the typed errors below.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrMalformed    = errors.New("malformed content")
	ErrNotLoaded    = errors.New("catalog not loaded")
)

// cause renders a wrapped error for inclusion in a message.
func cause(err error) string {
	if err == nil {
		return "unknown cause"
	}
	return err.Error()
}

// NotFoundError reports a missing catalog file or an unknown book
// identifier. Resource tells the two apart.
type NotFoundError struct {
	Resource string
	ID       string
}

// NewNotFoundError returns a NotFoundError for id.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	if e.Resource == "book" {
		return "book with ID " + e.ID + " not found"
	}
	return e.Resource + " " + e.ID + " not found"
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError rejects caller input. Message is shown to the user as is.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// NewValidationError returns a ValidationError for field.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

func (e *ValidationError) Error() string { return e.Message }

// Is matches ErrInvalidInput.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// ConfigError reports an unusable setting or option.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// NewConfigError returns a ConfigError for component wrapping err, which
// may be nil.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

func (e *ConfigError) Error() string {
	if e.Component == "" {
		return "configuration error: " + e.Message
	}
	return "configuration error in " + e.Component + ": " + e.Message
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ParseError reports persisted content that could not be decoded.
type ParseError struct {
	Format string
	File   string
	Err    error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s parse error: %s", e.Format, cause(e.Err))
	}
	return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, cause(e.Err))
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is matches ErrMalformed.
func (e *ParseError) Is(target error) bool { return target == ErrMalformed }

// IOError reports a failed filesystem step such as "read", "write" or
// "rename" on Path.
type IOError struct {
	Operation string
	Path      string
	Err       error
}

// NewIOError returns an IOError wrapping err.
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("IO error during %s: %s", e.Operation, cause(e.Err))
	}
	return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, cause(e.Err))
}

func (e *IOError) Unwrap() error { return e.Err }

// ResourceError reports a catalog or book operation that could not finish.
type ResourceError struct {
	Operation string
	Resource  string
	ID        string
	Err       error
}

func (e *ResourceError) Error() string {
	target := e.Resource
	if e.ID != "" {
		target += " " + e.ID
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, target, cause(e.Err))
}

func (e *ResourceError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsParseError reports whether err is, or wraps, a ParseError.
func IsParseError(err error) bool { return errors.Is(err, ErrMalformed) }

// WrapIO returns nil for a nil err and an *IOError otherwise.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse returns nil for a nil err and a *ParseError otherwise.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Err: err}
}

// WrapResource returns nil for a nil err and a *ResourceError otherwise.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Err: err}
}
