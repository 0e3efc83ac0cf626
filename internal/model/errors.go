package model

import (
	"errors"
	"fmt"
)

// ErrNothingToPrompt is returned when no variable names were supplied and
// the baseline file has no keys either. This signals misuse (no file, no
// names, nothing to reconcile) rather than a transient condition.
var ErrNothingToPrompt = errors.New("no variable(s) to prompt")

// ErrInvalidName is returned when a requested variable name could not be
// written as a KEY=VALUE line (empty, or containing spaces or "=").
var ErrInvalidName = errors.New("invalid variable name")

// ErrPromptCancelled is returned when the user interrupts the prompt
// (Ctrl+C) or input ends before every question was answered.
var ErrPromptCancelled = errors.New("prompt cancelled")

// ExitCode defines standard CLI exit codes.
// These codes allow scripts and CI systems to programmatically determine
// the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitNothingToPrompt indicates no variable names could be resolved.
	ExitNothingToPrompt ExitCode = 2

	// ExitIOError indicates the .env or sample file could not be read
	// or the result could not be written.
	ExitIOError ExitCode = 3

	// ExitInvalidConfig indicates flags, environment variables, or the
	// config file held an unusable value.
	ExitInvalidConfig ExitCode = 4

	// ExitUserCancelled indicates the user cancelled an interactive prompt.
	ExitUserCancelled ExitCode = 7
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
