// Package errors defines application errors and exit code mapping.
package errors

import sterrors "errors"

var (
	// ErrUsage indicates a command usage failure.
	ErrUsage = sterrors.New("usage error")
	// ErrUnsupportedAlgorithm indicates a digest algorithm outside the supported set.
	ErrUnsupportedAlgorithm = sterrors.New("unsupported algorithm")
	// ErrIO indicates a local filesystem read or write failure.
	ErrIO = sterrors.New("io error")
	// ErrCancelled indicates the job set was cancelled before completion.
	ErrCancelled = sterrors.New("cancelled")
)

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	if sterrors.Is(err, ErrUsage) {
		return 2
	}
	if sterrors.Is(err, ErrUnsupportedAlgorithm) {
		return 3
	}

	return 1
}
