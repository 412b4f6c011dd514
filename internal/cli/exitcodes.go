package cli

import "errors"

// Exit codes for mdtty.
const (
	// ExitSuccess indicates all files were processed.
	ExitSuccess = 0

	// ExitFailure indicates at least one file failed to process.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64
)

// ErrProcessingFailed is returned when one or more files failed. Per-file
// causes are logged where they occur; this is just the exit-code signal.
var ErrProcessingFailed = errors.New("one or more files failed")

// ErrInvalidUsage wraps command-line errors such as unknown flags so the
// entry point can map them to ExitInvalidUsage.
var ErrInvalidUsage = errors.New("invalid usage")
