package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/javalex/pkg/runner"
)

// jsonSchemaVersion is bumped whenever the JSON layout changes incompatibly.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string              `json:"path"`
	TokenCount  int                 `json:"tokenCount"`
	DocComments int                 `json:"docComments"`
	Tokens      []JSONToken         `json:"tokens,omitempty"`
	Diagnostics []runner.Diagnostic `json:"diagnostics"`
	Error       string              `json:"error,omitempty"`
}

// JSONToken represents one token of a dump.
type JSONToken struct {
	Type        string `json:"type"`
	StartOffset int    `json:"start"`
	EndOffset   int    `json:"end"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	Text        string `json:"text"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesErrored    int            `json:"filesErrored"`
	Tokens          int            `json:"tokens"`
	DocComments     int            `json:"docComments"`
	TotalIssues     int            `json:"totalIssues"`
	BySeverity      map[string]int `json:"bySeverity"`
	ByCode          map[string]int `json:"byCode"`
	ByTokenType     map[string]int `json:"byTokenType"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			BySeverity:  make(map[string]int),
			ByCode:      make(map[string]int),
			ByTokenType: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		output.Files = append(output.Files, r.buildFile(file))
	}

	stats := result.Stats
	output.Summary.FilesChecked = stats.FilesProcessed
	output.Summary.FilesWithIssues = stats.FilesWithIssues
	output.Summary.FilesErrored = stats.FilesErrored
	output.Summary.Tokens = stats.TokensTotal
	output.Summary.DocComments = stats.DocComments
	output.Summary.TotalIssues = stats.DiagnosticsTotal
	for sev, n := range stats.DiagnosticsBySeverity {
		output.Summary.BySeverity[string(sev)] = n
	}
	for code, n := range stats.DiagnosticsByCode {
		output.Summary.ByCode[code] = n
	}
	for typ, n := range stats.TokensByType {
		output.Summary.ByTokenType[typ.String()] = n
	}

	return output
}

func (r *JSONReporter) buildFile(file runner.FileOutcome) JSONFileResult {
	path := r.opts.displayPath(file.Path)
	out := JSONFileResult{
		Path:        path,
		TokenCount:  file.TokenCount,
		DocComments: file.DocComments,
		Diagnostics: make([]runner.Diagnostic, 0, len(file.Diagnostics)),
	}

	if file.Error != nil {
		out.Error = file.Error.Error()
	}

	for _, diag := range file.Diagnostics {
		diag.Path = path
		out.Diagnostics = append(out.Diagnostics, diag)
	}

	if r.opts.Tokens && len(file.Tokens) > 0 {
		out.Tokens = make([]JSONToken, 0, len(file.Tokens))
		for _, tok := range file.Tokens {
			jt := JSONToken{
				Type:        tok.Type.String(),
				StartOffset: tok.StartOffset,
				EndOffset:   tok.EndOffset,
				Text:        string(tok.Text(file.Content)),
			}
			if file.Lines != nil {
				jt.Line, jt.Column = file.Lines.LineAt(tok.StartOffset)
			}
			out.Tokens = append(out.Tokens, jt)
		}
	}

	return out
}
