package runner

import (
	"fmt"

	"github.com/yaklabco/javalex/pkg/config"
)

// Diagnostic codes reported by the scanner.
const (
	CodeUnterminatedLiteral = "unterminated-literal"
	CodeUnterminatedComment = "unterminated-comment"
	CodeBadCharacter        = "bad-character"
	CodeUnsupportedFeature  = "unsupported-feature"
	CodeDocBadCharacter     = "doc-bad-character"
)

// Diagnostic is a problem found while tokenizing a file.
type Diagnostic struct {
	// Path is the file the diagnostic belongs to.
	Path string `json:"path"`

	// Code identifies the kind of problem.
	Code string `json:"code"`

	// Severity is the resolved severity after config overrides.
	Severity config.Severity `json:"severity"`

	// Message is a human readable description.
	Message string `json:"message"`

	// StartOffset and EndOffset delimit the offending token.
	StartOffset int `json:"start_offset"`
	EndOffset   int `json:"end_offset"`

	// Line and Column are 1-based; Column counts bytes.
	Line   int `json:"line"`
	Column int `json:"column"`
}

// String formats the diagnostic as path:line:col: severity: message [code].
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s [%s]", d.Path, d.Line, d.Column, d.Severity, d.Message, d.Code)
}

// codeInfos documents every diagnostic code and its default severity.
//
//nolint:gochecknoglobals // Read-only lookup table.
var codeInfos = []config.CodeInfo{
	{
		Code:        CodeUnterminatedLiteral,
		Description: "A character, string or text block literal reaches the end of the line or file without its closing quote",
		Severity:    config.SeverityError,
	},
	{
		Code:        CodeUnterminatedComment,
		Description: "A block or doc comment is missing its closing */",
		Severity:    config.SeverityError,
	},
	{
		Code:        CodeBadCharacter,
		Description: "Input that is not part of any Java token",
		Severity:    config.SeverityError,
	},
	{
		Code:        CodeUnsupportedFeature,
		Description: "Syntax that requires a newer language level than the configured one",
		Severity:    config.SeverityWarning,
	},
	{
		Code:        CodeDocBadCharacter,
		Description: "Doc comment text the doc-comment lexer cannot classify (only with expand_docs)",
		Severity:    config.SeverityInfo,
	},
}

// Codes returns the documented diagnostic codes.
func Codes() []config.CodeInfo {
	out := make([]config.CodeInfo, len(codeInfos))
	copy(out, codeInfos)
	return out
}

// defaultSeverity returns the built-in severity of code.
func defaultSeverity(code string) config.Severity {
	for _, info := range codeInfos {
		if info.Code == code {
			return info.Severity
		}
	}
	return config.SeverityWarning
}
