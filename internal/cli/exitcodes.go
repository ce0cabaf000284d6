package cli

import (
	"errors"

	"github.com/yaklabco/javalex/internal/configloader"
	"github.com/yaklabco/javalex/pkg/config"
	"github.com/yaklabco/javalex/pkg/runner"
)

// Exit codes for javalex.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitIssues indicates the scan found error diagnostics.
	ExitIssues = 1

	// ExitWarnings indicates the scan found warnings (strict mode only).
	ExitWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code of a scan. Unreadable files
// outrank diagnostics; warnings count only in strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.Stats.FilesErrored > 0 {
		return ExitIOError
	}
	if result.HasFailures() {
		return ExitIssues
	}
	if strict && result.Stats.DiagnosticsBySeverity[config.SeverityWarning] > 0 {
		return ExitWarnings
	}

	return ExitSuccess
}

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	var validationErr *configloader.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrIssuesFound):
		return ExitIssues
	case errors.Is(err, ErrWarningsFound):
		return ExitWarnings
	case errors.Is(err, ErrFilesUnreadable):
		return ExitIOError
	case errors.As(err, &validationErr):
		return ExitConfigError
	default:
		return ExitInternalError
	}
}
