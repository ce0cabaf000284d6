package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/javalex/pkg/config"
	"github.com/yaklabco/javalex/pkg/runner"
)

// sourceIndent aligns source context under the diagnostic line.
const sourceIndent = "        "

// FormatDiagnostic formats a single diagnostic for terminal output.
// When showContext is set and sourceLine is non-empty, the offending line is
// printed underneath with the token range underlined.
func (s *Styles) FormatDiagnostic(diag runner.Diagnostic, showContext bool, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.Path),
		diag.Line,
		diag.Column,
	)

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.Code.Render("("+diag.Code+")"),
	))

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.Column, diag.EndOffset-diag.StartOffset))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a marker under the byte
// range [column, column+width). The marker never extends past the line.
func (s *Styles) FormatSourceContext(line string, column, width int) string {
	var builder strings.Builder

	line = strings.ReplaceAll(line, "\t", " ")
	builder.WriteString(sourceIndent + s.SourceLine.Render(line) + "\n")

	if column <= 0 {
		return builder.String()
	}

	width = min(max(width, 1), max(len(line)-column+1, 1))
	marker := "^" + strings.Repeat("~", width-1)
	builder.WriteString(sourceIndent + strings.Repeat(" ", column-1) + s.Caret.Render(marker) + "\n")

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
