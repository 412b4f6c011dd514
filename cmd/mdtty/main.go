// Package main is the entry point for the mdtty CLI.
//
// Install or link the binary as "mdless" to paginate output by default;
// both invocations expose identical flags.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/mdtty/internal/cli"
	"github.com/yaklabco/mdtty/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info, os.Args[0])

	if err := rootCmd.Execute(); err != nil {
		// Per-file causes are logged where they occur; don't repeat them
		// for the aggregate signal.
		if !errors.Is(err, cli.ErrProcessingFailed) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		if errors.Is(err, cli.ErrInvalidUsage) {
			return cli.ExitInvalidUsage
		}
		return cli.ExitFailure
	}

	return cli.ExitSuccess
}
