package cmd

import (
	"errors"
	"fmt"
)

const (
	ExitSuccess     = 0
	ExitError       = 1
	ExitNotFound    = 3
	ExitConfigError = 4
)

// ExitCodeError is an error that carries a process exit code.
type ExitCodeError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitCodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// NotFoundError wraps a missing-input failure (exit code 3).
func NotFoundError(message string, err error) *ExitCodeError {
	return &ExitCodeError{Code: ExitNotFound, Message: message, Err: err}
}

// ConfigError wraps a configuration failure (exit code 4).
func ConfigError(err error) *ExitCodeError {
	return &ExitCodeError{Code: ExitConfigError, Message: "configuration error", Err: err}
}

func notInitialized() *ExitCodeError {
	return &ExitCodeError{Code: ExitConfigError, Message: "run `ftskel init` first"}
}

// GetExitCode returns the exit code carried by err, or 1 for any other error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitError
}
