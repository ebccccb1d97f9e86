package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/csvscope/internal/config"
)

// Exit codes returned by ExitCode.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ErrNoFile is returned when Run is called without a file to view.
var ErrNoFile = errors.New("no file given")

// UsageError reports a malformed command line.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	if e == nil || e.Err == nil {
		return "usage error"
	}
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// OperationError represents an error during a startup step.
type OperationError struct {
	Op     string // Operation being performed (e.g., "load", "open display")
	Target string // Target of the operation (e.g., file path)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}

	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ExitCode maps an error returned by Run to a process exit code.
// Configuration and usage problems exit with 2; load errors, display
// setup errors and anything else exit with 1. An interrupted session is a clean exit.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, context.Canceled) {
		return ExitOK
	}

	var (
		usageErr  *UsageError
		optionErr *config.OptionError
		parseErr  *config.ParseError
		typeErr   *config.TypeError
	)
	switch {
	case errors.As(err, &usageErr),
		errors.As(err, &optionErr),
		errors.As(err, &parseErr),
		errors.As(err, &typeErr),
		errors.Is(err, config.ErrFileNotFound),
		errors.Is(err, ErrNoFile):
		return ExitUsage
	default:
		return ExitFailure
	}
}
