package reporter

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/javalex/internal/ui/pretty"
	"github.com/yaklabco/javalex/pkg/config"
	"github.com/yaklabco/javalex/pkg/runner"
)

// Table layout constants for summary output.
const (
	tableWidth        = 90
	nameColWidth      = 30
	fileColWidth      = 58
	numColWidth       = 8
	maxNameLength     = 28
	maxFilePathLength = 56
	topTokenTypes     = 10
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryReporter formats results as aggregated tables: diagnostics per
// code, issues per file and the most frequent token types.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		return 0, nil
	}

	stats := result.Stats
	if stats.DiagnosticsTotal > 0 {
		r.renderCodeTable(stats, result.Files)
		fmt.Fprintln(r.bw)
		r.renderFileTable(result.Files)
		fmt.Fprintln(r.bw)
	}
	r.renderTokenTable(stats)
	fmt.Fprintln(r.bw)
	fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(stats))

	return stats.DiagnosticsTotal, nil
}

func (r *SummaryReporter) rule() {
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
}

func (r *SummaryReporter) renderCodeTable(stats runner.Stats, files []runner.FileOutcome) {
	type codeRow struct {
		code     string
		count    int
		severity config.Severity
	}

	severityOf := make(map[string]config.Severity)
	for _, file := range files {
		for _, diag := range file.Diagnostics {
			severityOf[diag.Code] = diag.Severity
		}
	}

	rows := make([]codeRow, 0, len(stats.DiagnosticsByCode))
	for code, count := range stats.DiagnosticsByCode {
		rows = append(rows, codeRow{code: code, count: count, severity: severityOf[code]})
	}
	slices.SortFunc(rows, func(a, b codeRow) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.code, b.code)
	})

	fmt.Fprintln(r.bw, r.styles.Bold.Render("Diagnostics by Code"))
	r.rule()
	fmt.Fprintf(r.bw, "%s %s %s\n",
		r.styles.TableHeader.Render(padRight("Code", nameColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Severity", numColWidth+2)),
	)
	r.rule()

	for _, row := range rows {
		name := row.code
		if len(name) > maxNameLength {
			name = name[:maxNameLength] + "…"
		}
		fmt.Fprintf(r.bw, "%s %s %s\n",
			r.severityStyle(row.severity, padRight(name, nameColWidth)),
			padLeft(strconv.Itoa(row.count), numColWidth),
			padLeft(string(row.severity), numColWidth+2),
		)
	}
}

func (r *SummaryReporter) renderFileTable(files []runner.FileOutcome) {
	withIssues := make([]runner.FileOutcome, 0, len(files))
	for _, file := range files {
		if len(file.Diagnostics) > 0 {
			withIssues = append(withIssues, file)
		}
	}
	slices.SortStableFunc(withIssues, func(a, b runner.FileOutcome) int {
		return cmp.Compare(len(b.Diagnostics), len(a.Diagnostics))
	})

	fmt.Fprintln(r.bw, r.styles.Bold.Render("Files Summary"))
	r.rule()
	fmt.Fprintf(r.bw, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Tokens", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Issues", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
	)
	r.rule()

	for _, file := range withIssues {
		path := r.opts.displayPath(file.Path)
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		errors := 0
		worst := config.SeverityInfo
		for _, diag := range file.Diagnostics {
			if diag.Severity == config.SeverityError {
				errors++
			}
			if diag.Severity.Rank() < worst.Rank() {
				worst = diag.Severity
			}
		}

		fmt.Fprintf(r.bw, "%s %s %s %s\n",
			r.severityStyle(worst, padRight(path, fileColWidth)),
			padLeft(strconv.Itoa(file.TokenCount), numColWidth),
			padLeft(strconv.Itoa(len(file.Diagnostics)), numColWidth),
			padLeft(strconv.Itoa(errors), numColWidth),
		)
	}
}

func (r *SummaryReporter) renderTokenTable(stats runner.Stats) {
	fmt.Fprintln(r.bw, r.styles.Bold.Render("Token Types"))
	r.rule()
	fmt.Fprintf(r.bw, "%s %s %s\n",
		r.styles.TableHeader.Render(padRight("Type", nameColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Share", numColWidth)),
	)
	r.rule()

	for _, tc := range pretty.TopTokenTypes(stats.TokensByType, topTokenTypes) {
		share := 0.0
		if stats.TokensTotal > 0 {
			share = float64(tc.Count) * 100 / float64(stats.TokensTotal)
		}
		fmt.Fprintf(r.bw, "%s %s %s\n",
			r.styles.TokenType.Render(padRight(tc.Type.String(), nameColWidth)),
			padLeft(strconv.Itoa(tc.Count), numColWidth),
			padLeft(fmt.Sprintf("%.1f%%", share), numColWidth),
		)
	}
}

func (r *SummaryReporter) severityStyle(sev config.Severity, text string) string {
	switch sev {
	case config.SeverityError:
		return r.styles.TableErrorRow.Render(text)
	case config.SeverityWarning:
		return r.styles.TableWarnRow.Render(text)
	case config.SeverityInfo:
		return r.styles.TableInfoRow.Render(text)
	default:
		return text
	}
}
