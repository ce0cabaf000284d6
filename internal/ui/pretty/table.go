package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/javalex/pkg/config"
	"github.com/yaklabco/javalex/pkg/runner"
	"github.com/yaklabco/javalex/pkg/token"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minColumnWidth   = 4
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	ellipsis         = "..."
)

// TableRow is one row of cells plus the severity that colors it.
// Rows without a severity render in the plain style.
type TableRow struct {
	Cells    []string
	Severity config.Severity
}

// column describes one table column. The flexible column absorbs any
// shrinking needed to fit the terminal.
type column struct {
	title    string
	minWidth int
	flexible bool
	keepTail bool
}

// TableFormatter formats diagnostics and token dumps as aligned tables.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

//nolint:gochecknoglobals // Read-only column layouts.
var (
	diagnosticColumns = []column{
		{title: "FILE", minWidth: 20, keepTail: true},
		{title: "LOC", minWidth: 8},
		{title: "SEV", minWidth: 7},
		{title: "MESSAGE", minWidth: 30, flexible: true},
		{title: "CODE", minWidth: 12},
	}
	tokenColumns = []column{
		{title: "LOC", minWidth: 8},
		{title: "RANGE", minWidth: 11},
		{title: "TYPE", minWidth: 16},
		{title: "TEXT", minWidth: 20, flexible: true},
	}
)

// FormatTable formats every diagnostic of the result as one table, with a
// light separator between files.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil {
		return ""
	}

	var groups [][]TableRow
	for _, file := range result.Files {
		if len(file.Diagnostics) == 0 {
			continue
		}
		rows := make([]TableRow, 0, len(file.Diagnostics))
		for _, diag := range file.Diagnostics {
			rows = append(rows, DiagnosticToTableRow(diag))
		}
		groups = append(groups, rows)
	}
	if len(groups) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(t.render(diagnosticColumns, groups))
	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")
	return builder.String()
}

// FormatTokenTable formats the retained tokens of one file.
func (t *TableFormatter) FormatTokenTable(file runner.FileOutcome) string {
	if len(file.Tokens) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(file.Tokens))
	for _, tok := range file.Tokens {
		line, col := 0, 0
		if file.Lines != nil {
			line, col = file.Lines.LineAt(tok.StartOffset)
		}
		row := TableRow{Cells: []string{
			fmt.Sprintf("%d:%d", line, col),
			fmt.Sprintf("%d-%d", tok.StartOffset, tok.EndOffset),
			tok.Type.String(),
			QuoteTokenText(tok.Text(file.Content)),
		}}
		if tok.Type == token.BadCharacter || tok.Type == token.DocCommentBadCharacter {
			row.Severity = config.SeverityError
		}
		rows = append(rows, row)
	}

	return t.render(tokenColumns, [][]TableRow{rows})
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats) string {
	parts := []string{
		fmt.Sprintf("%d %s checked", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)),
		fmt.Sprintf("%d tokens", stats.TokensTotal),
	}

	if n := stats.DiagnosticsBySeverity[config.SeverityError]; n > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d errors", n)))
	}
	if n := stats.DiagnosticsBySeverity[config.SeverityWarning]; n > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d warnings", n)))
	}
	if n := stats.DiagnosticsBySeverity[config.SeverityInfo]; n > 0 {
		parts = append(parts, t.styles.Info.Render(fmt.Sprintf("%d info", n)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, t.styles.Failure.Render(fmt.Sprintf("%d unreadable", stats.FilesErrored)))
	}

	return " " + strings.Join(parts, " | ")
}

// DiagnosticToTableRow converts a diagnostic to a table row.
func DiagnosticToTableRow(diag runner.Diagnostic) TableRow {
	return TableRow{
		Cells: []string{
			diag.Path,
			fmt.Sprintf("%d:%d", diag.Line, diag.Column),
			string(diag.Severity),
			diag.Message,
			diag.Code,
		},
		Severity: diag.Severity,
	}
}

func (t *TableFormatter) render(columns []column, groups [][]TableRow) string {
	widths := t.columnWidths(columns, groups)
	total := 0
	for _, w := range widths {
		total += w + tablePadding
	}

	var builder strings.Builder

	titles := make([]string, len(columns))
	for i, col := range columns {
		titles[i] = col.title
	}
	builder.WriteString(t.styles.TableHeader.Render(formatCells(titles, widths, columns)))
	builder.WriteString("\n")
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)))
	builder.WriteString("\n")

	for i, group := range groups {
		if i > 0 {
			builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(lightSeparator, total)))
			builder.WriteString("\n")
		}
		for _, row := range group {
			builder.WriteString(t.rowStyle(row.Severity).Render(formatCells(row.Cells, widths, columns)))
			builder.WriteString("\n")
		}
	}

	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)))
	builder.WriteString("\n")
	return builder.String()
}

// columnWidths sizes each column to its widest cell, then shrinks the
// flexible column (and after it the others) to fit the terminal.
func (t *TableFormatter) columnWidths(columns []column, groups [][]TableRow) []int {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = max(col.minWidth, len(col.title), minColumnWidth)
	}
	for _, group := range groups {
		for _, row := range group {
			for i := range min(len(row.Cells), len(widths)) {
				widths[i] = max(widths[i], len(row.Cells[i]))
			}
		}
	}

	total := 0
	for _, w := range widths {
		total += w + tablePadding
	}

	excess := total - t.termWidth
	for pass := 0; pass < 2 && excess > 0; pass++ {
		for i, col := range columns {
			if excess <= 0 {
				break
			}
			if col.flexible != (pass == 0) {
				continue
			}
			shrink := min(excess, widths[i]-max(col.minWidth, minColumnWidth))
			if shrink > 0 {
				widths[i] -= shrink
				excess -= shrink
			}
		}
	}

	return widths
}

func formatCells(cells []string, widths []int, columns []column) string {
	var builder strings.Builder
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if columns[i].keepTail {
			cell = truncateFilePath(cell, width)
		} else {
			cell = truncateString(cell, width)
		}
		builder.WriteString(" ")
		builder.WriteString(fmt.Sprintf("%-*s", width, cell))
		builder.WriteString(" ")
	}
	return strings.TrimRight(builder.String(), " ")
}

func (t *TableFormatter) rowStyle(severity config.Severity) lipgloss.Style {
	switch severity {
	case config.SeverityError:
		return t.styles.TableErrorRow
	case config.SeverityWarning:
		return t.styles.TableWarnRow
	case config.SeverityInfo:
		return t.styles.TableInfoRow
	default:
		return lipgloss.NewStyle()
	}
}

func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Legend: SEV column gives the severity of each row")
	}

	return t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s  %s  %s",
			t.styles.TableErrorRow.Render("error"),
			t.styles.TableWarnRow.Render("warning"),
			t.styles.TableInfoRow.Render("info")),
	)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= len(ellipsis) {
		return str[:maxLen]
	}
	return str[:maxLen-len(ellipsis)] + ellipsis
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= len(ellipsis) {
		return path[len(path)-maxLen:]
	}
	return ellipsis + path[len(path)-maxLen+len(ellipsis):]
}
