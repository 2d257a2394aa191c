package cli

import (
	"errors"
	"io/fs"
)

// Exit codes for odtmerge.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitNothingFound indicates the document held none of the requested
	// targets, with --strict.
	ExitNothingFound = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitDataError indicates malformed merge data or configuration.
	ExitDataError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrNothingFound is returned by strict runs when no target matched.
var ErrNothingFound = errors.New("no matching targets in document")

// ErrBadData is wrapped around merge data and config parse failures.
var ErrBadData = errors.New("invalid merge data")

// ExitCodeFromError maps an error to a process exit code.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrNothingFound):
		return ExitNothingFound
	case errors.Is(err, ErrBadData):
		return ExitDataError
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
