package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/javalex/internal/ui/pretty"
	"github.com/yaklabco/javalex/pkg/runner"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TableReporter formats results as aligned tables with color-coded rows.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, getTerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	if r.opts.Tokens {
		for _, file := range result.Files {
			if len(file.Tokens) == 0 {
				continue
			}
			fmt.Fprintln(r.bw, r.styles.Bold.Render(r.opts.displayPath(file.Path)))
			fmt.Fprint(r.bw, r.formatter.FormatTokenTable(file))
			fmt.Fprintln(r.bw)
		}
	}

	total := countDiagnostics(result)
	if total > 0 {
		fmt.Fprint(r.bw, r.formatter.FormatTable(r.relativize(result)))
	}

	if r.opts.ShowSummary {
		if total == 0 {
			fmt.Fprintln(r.bw, r.styles.Success.Render("All files passed!"))
		}
		fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(result.Stats))
	}

	return total, nil
}

// relativize returns a shallow copy of result with display paths on every
// diagnostic.
func (r *TableReporter) relativize(result *runner.Result) *runner.Result {
	if r.opts.WorkingDir == "" {
		return result
	}
	out := &runner.Result{Stats: result.Stats, Files: make([]runner.FileOutcome, len(result.Files))}
	for i, file := range result.Files {
		file.Path = r.opts.displayPath(file.Path)
		diags := make([]runner.Diagnostic, len(file.Diagnostics))
		for j, diag := range file.Diagnostics {
			diag.Path = file.Path
			diags[j] = diag
		}
		file.Diagnostics = diags
		out.Files[i] = file
	}
	return out
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
