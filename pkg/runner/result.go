package runner

import (
	"github.com/yaklabco/javalex/pkg/config"
	"github.com/yaklabco/javalex/pkg/token"
)

// FileOutcome is the scan result for one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Content is the scanned buffer. Only retained with ScanOptions.KeepTokens.
	Content []byte

	// Tokens is the full token list. Only retained with ScanOptions.KeepTokens.
	Tokens []token.Token

	// TokenCount is the number of tokens produced.
	TokenCount int

	// TokensByType counts tokens per type.
	TokensByType map[token.Type]int

	// DocComments is the number of doc comments found.
	DocComments int

	// Diagnostics are the problems found, in source order.
	Diagnostics []Diagnostic

	// Lines maps offsets to line and column numbers.
	Lines *token.Lines

	// Error is set if the file could not be read.
	Error error
}

func (o *FileOutcome) record(tok token.Token, keep bool) {
	o.TokenCount++
	o.TokensByType[tok.Type]++
	if keep {
		o.Tokens = append(o.Tokens, tok)
	}
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully scanned.
	FilesProcessed int

	// FilesErrored is the number of files that could not be read.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int

	// TokensTotal is the number of tokens across all files.
	TokensTotal int

	// TokensByType counts tokens per type across all files.
	TokensByType map[token.Type]int

	// DocComments is the number of doc comments across all files.
	DocComments int

	// DiagnosticsTotal is the total number of diagnostics across all files.
	DiagnosticsTotal int

	// DiagnosticsBySeverity maps severity levels to counts.
	DiagnosticsBySeverity map[config.Severity]int

	// DiagnosticsByCode maps diagnostic codes to counts.
	DiagnosticsByCode map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any diagnostics with error severity occurred.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[config.SeverityError] > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// Diagnostics returns every diagnostic in file order.
func (r *Result) Diagnostics() []Diagnostic {
	var out []Diagnostic
	for _, f := range r.Files {
		out = append(out, f.Diagnostics...)
	}
	return out
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		TokensByType:          make(map[token.Type]int),
		DiagnosticsBySeverity: make(map[config.Severity]int),
		DiagnosticsByCode:     make(map[string]int),
	}
}

// NewResult builds a Result from outcomes that were scanned outside Run,
// such as standard input.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{Stats: newStats()}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.TokensTotal += outcome.TokenCount
	r.Stats.DocComments += outcome.DocComments
	for typ, n := range outcome.TokensByType {
		r.Stats.TokensByType[typ] += n
	}

	if len(outcome.Diagnostics) > 0 {
		r.Stats.FilesWithIssues++
	}
	r.Stats.DiagnosticsTotal += len(outcome.Diagnostics)
	for _, diag := range outcome.Diagnostics {
		r.Stats.DiagnosticsBySeverity[diag.Severity]++
		r.Stats.DiagnosticsByCode[diag.Code]++
	}
}
