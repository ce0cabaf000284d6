// Package main is the entry point for the javalex CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/javalex/internal/cli"
	"github.com/yaklabco/javalex/internal/logging"
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

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.Execute()
	if err == nil {
		return cli.ExitSuccess
	}

	// Scan outcomes were already reported; they only pick the exit code.
	if !errors.Is(err, cli.ErrIssuesFound) && !errors.Is(err, cli.ErrWarningsFound) &&
		!errors.Is(err, cli.ErrFilesUnreadable) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}

	return cli.ExitCodeFromError(err)
}
