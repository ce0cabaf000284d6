// Package cli provides the Cobra command structure for javalex.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/javalex/internal/logging"
	"github.com/yaklabco/javalex/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root javalex command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "javalex",
		Short: "A fast, incremental lexer for Java sources",
		Long: `javalex tokenizes Java source code the way an IDE does: every byte of
the input belongs to exactly one token, malformed input never stops the
scan, and lexing can resume from any token boundary.

It understands every language level from Java 1.3 to Java 25, including
text blocks, string templates and markdown doc comments, and can dump
token streams, check sources for lexical errors, or extract doc comments.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", string(config.ColorAuto),
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newTokensCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newDocsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(config.ColorMode(color), os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
