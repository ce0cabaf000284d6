package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/javalex/internal/ui/pretty"
	"github.com/yaklabco/javalex/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
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

	var total int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("report cancelled: %w", err)
		}

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(r.opts.displayPath(file.Path)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if r.opts.Tokens {
			r.writeTokens(file)
		}
		total += r.writeDiagnostics(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

func (r *TextReporter) writeTokens(file runner.FileOutcome) {
	fmt.Fprintln(r.bw, r.styles.FilePath.Render(r.opts.displayPath(file.Path))+
		r.styles.Dim.Render(fmt.Sprintf(" (%d tokens)", file.TokenCount)))

	for _, tok := range file.Tokens {
		line, col := 0, 0
		if file.Lines != nil {
			line, col = file.Lines.LineAt(tok.StartOffset)
		}
		fmt.Fprint(r.bw, r.styles.FormatToken(tok, file.Content, line, col))
	}
	fmt.Fprintln(r.bw)
}

func (r *TextReporter) writeDiagnostics(file runner.FileOutcome) int {
	if len(file.Diagnostics) == 0 {
		return 0
	}

	path := r.opts.displayPath(file.Path)
	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Diagnostics)))
	}

	for _, diag := range file.Diagnostics {
		diag.Path = path

		var sourceLine string
		if r.opts.ShowContext && file.Lines != nil {
			sourceLine = string(file.Lines.LineContent(diag.Line))
		}
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(diag, r.opts.ShowContext, sourceLine))
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw)
	}
	return len(file.Diagnostics)
}
