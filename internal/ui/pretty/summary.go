package pretty

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/javalex/pkg/config"
	"github.com/yaklabco/javalex/pkg/runner"
	"github.com/yaklabco/javalex/pkg/token"
)

const (
	summaryDividerWidth = 40
	summaryTopTypes     = 5
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 issues (2 errors, 1 warning) in 2 files, 1840 tokens".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.DiagnosticsTotal == 0 {
		msg := s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked, %d tokens)",
				stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles), stats.TokensTotal))
		if stats.FilesErrored > 0 {
			msg += ", " + s.Failure.Render(fmt.Sprintf("%d unreadable", stats.FilesErrored))
		}
		return msg + "\n"
	}

	var severityParts []string
	if n := stats.DiagnosticsBySeverity[config.SeverityError]; n > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d %s", n, plural(n, "error", "errors"))))
	}
	if n := stats.DiagnosticsBySeverity[config.SeverityWarning]; n > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", n, plural(n, "warning", "warnings"))))
	}
	if n := stats.DiagnosticsBySeverity[config.SeverityInfo]; n > 0 {
		severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", n)))
	}

	issues := fmt.Sprintf("%d %s", stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue", "issues"))
	if len(severityParts) > 0 {
		issues += " (" + strings.Join(severityParts, ", ") + ")"
	}

	issues += fmt.Sprintf(" in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, wordFile, wordFiles))

	parts := []string{issues, s.Dim.Render(fmt.Sprintf("%d tokens", stats.TokensTotal))}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d unreadable", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label, value))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files checked:", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesErrored > 0 {
		row("Files unreadable:", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}
	if stats.FilesWithIssues > 0 {
		row("Files with issues:", s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)))
	}

	builder.WriteString("\n")
	row("Tokens:", s.SummaryValue.Render(strconv.Itoa(stats.TokensTotal)))
	row("Doc comments:", s.SummaryValue.Render(strconv.Itoa(stats.DocComments)))
	for _, tc := range TopTokenTypes(stats.TokensByType, summaryTopTypes) {
		row("  "+tc.Type.String()+":", s.Dim.Render(strconv.Itoa(tc.Count)))
	}

	builder.WriteString("\n")
	row("Total issues:", s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)))
	if n := stats.DiagnosticsBySeverity[config.SeverityError]; n > 0 {
		row("  Errors:", s.Error.Render(strconv.Itoa(n)))
	}
	if n := stats.DiagnosticsBySeverity[config.SeverityWarning]; n > 0 {
		row("  Warnings:", s.Warning.Render(strconv.Itoa(n)))
	}
	if n := stats.DiagnosticsBySeverity[config.SeverityInfo]; n > 0 {
		row("  Info:", s.Info.Render(strconv.Itoa(n)))
	}

	builder.WriteString("\n")

	switch {
	case stats.DiagnosticsBySeverity[config.SeverityError] > 0 || stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Check failed with errors"))
	case stats.DiagnosticsBySeverity[config.SeverityWarning] > 0:
		builder.WriteString(s.Warning.Render("Check completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Check passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// TypeCount pairs a token type with how often it occurred.
type TypeCount struct {
	Type  token.Type
	Count int
}

// TopTokenTypes returns the n most frequent token types, most frequent
// first. Ties are broken by type order so output is stable.
func TopTokenTypes(counts map[token.Type]int, n int) []TypeCount {
	out := make([]TypeCount, 0, len(counts))
	for typ, count := range counts {
		out = append(out, TypeCount{Type: typ, Count: count})
	}
	slices.SortFunc(out, func(a, b TypeCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Type, b.Type)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
