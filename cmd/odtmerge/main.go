// Package main is the entry point for the odtmerge CLI.
package main

import (
	"errors"
	"os"

	"github.com/lpenaud/odtmerge/internal/cli"
	"github.com/lpenaud/odtmerge/internal/logging"
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
	// Timestamps on stderr only when it is a terminal.
	logging.SetDefault(logging.NewInteractive())

	// Build and execute the root command.
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Don't log ErrNothingFound - it's just a signal for exit code.
		if !errors.Is(err, cli.ErrNothingFound) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCodeFromError(err)
	}

	return cli.ExitSuccess
}
