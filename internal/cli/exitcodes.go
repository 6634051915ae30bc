package cli

import (
	"context"
	"errors"
	"io/fs"

	"github.com/yaklabco/nomxml/pkg/runner"
)

// Exit codes for nomdump.
const (
	// ExitSuccess indicates every file parsed cleanly.
	ExitSuccess = 0

	// ExitParseFailures indicates the run completed but at least one file failed.
	ExitParseFailures = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74

	// ExitInterrupted indicates the run was cancelled by SIGINT or SIGTERM.
	ExitInterrupted = 130
)

// exitError attaches an exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// ExitCodeFromResult determines the exit code for a completed run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil || !result.HasFailures() {
		return ExitSuccess
	}
	return ExitParseFailures
}

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, ErrParseFailures) {
		return ExitParseFailures
	}
	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}

	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return ExitIOError
	}
	return ExitInternalError
}
