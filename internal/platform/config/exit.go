package config

import (
	"fmt"
	"io"
	"os"

	apperrors "github.com/louisbranch/creaturebattle/internal/platform/errors"
)

// Process exit codes.
const (
	// ExitFailure reports a run that failed.
	ExitFailure = 1
	// ExitInvalidInput reports a run rejected for bad flags, records or
	// scenario files.
	ExitInvalidInput = 2
)

// ExitCode maps err to a process exit code.
func ExitCode(err error) int {
	if apperrors.CodeOf(err).InvalidInput() {
		return ExitInvalidInput
	}
	return ExitFailure
}

// Exitf writes a formatted error message to stderr and exits with
// ExitFailure.
func Exitf(format string, args ...any) {
	exitf(os.Stderr, os.Exit, ExitFailure, format, args...)
}

// ExitErr writes err to stderr and exits with ExitCode(err).
func ExitErr(err error) {
	exitf(os.Stderr, os.Exit, ExitCode(err), "Error: %v", err)
}

func exitf(w io.Writer, exit func(int), code int, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
	exit(code)
}
