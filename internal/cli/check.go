package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/yaklabco/javalex/internal/logging"
)

var (
	// ErrIssuesFound is returned by check when diagnostics were reported.
	// It only signals the exit code; the diagnostics are already printed.
	ErrIssuesFound = errors.New("lexical issues found")

	// ErrWarningsFound is returned by check in strict mode when only
	// warnings were reported.
	ErrWarningsFound = errors.New("lexical warnings found")

	// ErrFilesUnreadable is returned by check when some files could not be read.
	ErrFilesUnreadable = errors.New("some files could not be read")
)

// checkFlags holds the flags for the check command.
type checkFlags struct {
	scanFlags

	strict bool
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check Java sources for lexical errors",
		Long: `Scan Java source files and directories and report lexical problems:
unterminated literals and comments, characters that start no token, and
syntax the selected language level does not support.

Directories are walked recursively. Files named explicitly are always
scanned, whatever their extension. Pass "-" to check standard input.

Examples:
  javalex check                          Check the current directory
  javalex check src/ test/               Check specific directories
  javalex check --level 11 .             Check against Java 11
  javalex check --format json -o out.json src/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	addScanFlags(cmd, &flags.scanFlags)
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Exit with status 2 when only warnings are found")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	workDir, err := workingDir()
	if err != nil {
		return err
	}

	cliCfg, err := flags.cliConfig(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(ctx, cmd, workDir, cliCfg)
	if err != nil {
		return err
	}

	result, err := scan(ctx, cmd, cfg, workDir, args, scanOptions{})
	if err != nil {
		return err
	}

	logger.Debug("check complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldDocComments, result.Stats.DocComments,
	)

	if err := report(ctx, cmd, cfg, workDir, result, reportOptions{
		showContext: !flags.noContext,
		showSummary: !flags.noSummary,
		compact:     flags.compact,
	}); err != nil {
		return err
	}

	switch ExitCodeFromResult(result, flags.strict) {
	case ExitIssues:
		return ErrIssuesFound
	case ExitWarnings:
		return ErrWarningsFound
	case ExitIOError:
		return ErrFilesUnreadable
	default:
		return nil
	}
}
