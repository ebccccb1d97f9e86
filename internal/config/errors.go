package config

import (
	"errors"
	"fmt"

	"github.com/dshills/csvscope/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrFileNotFound indicates an explicitly requested configuration file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")

	// ErrUnknownSetting indicates a setting path that csvscope does not define.
	ErrUnknownSetting = errors.New("unknown setting")

	// ErrTypeMismatch indicates the value type doesn't match the expected type.
	ErrTypeMismatch = errors.New("type mismatch")
)

// ParseError represents an error while parsing a configuration file.
type ParseError = loader.ParseError

// OptionError reports a setting whose value cannot be used.
type OptionError struct {
	// Option is the setting path or flag name.
	Option string
	// Value is the offending input as given.
	Value string
	// Reason describes what is wrong with the value.
	Reason string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *OptionError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %s", e.Value, e.Option, e.Reason)
}

// Unwrap returns the underlying error.
func (e *OptionError) Unwrap() error {
	return e.Err
}

// TypeError is returned when a type conversion fails.
type TypeError struct {
	// Path is the setting path.
	Path string
	// Expected is the expected type name.
	Expected string
	// Actual is the actual type name.
	Actual string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("type error for %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// Is implements error matching for TypeError.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}

func optionErr(option string, value any, reason string) *OptionError {
	return &OptionError{Option: option, Value: fmt.Sprint(value), Reason: reason}
}
