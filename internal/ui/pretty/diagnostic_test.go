package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/javalex/internal/ui/pretty"
	"github.com/yaklabco/javalex/pkg/config"
	"github.com/yaklabco/javalex/pkg/runner"
)

func sampleDiagnostic() runner.Diagnostic {
	return runner.Diagnostic{
		Path:        "src/Main.java",
		Code:        runner.CodeUnterminatedLiteral,
		Severity:    config.SeverityError,
		Message:     "unterminated string literal",
		StartOffset: 40,
		EndOffset:   45,
		Line:        3,
		Column:      9,
	}
}

func TestFormatDiagnostic_Basic(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	result := styles.FormatDiagnostic(sampleDiagnostic(), false, "")

	assert.Contains(t, result, "src/Main.java:3:9")
	assert.Contains(t, result, "error")
	assert.Contains(t, result, "unterminated string literal")
	assert.Contains(t, result, "(unterminated-literal)")
	assert.Equal(t, 1, strings.Count(result, "\n"))
}

func TestFormatDiagnostic_WithContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	result := styles.FormatDiagnostic(sampleDiagnostic(), true, `    s = "oops`)

	lines := strings.Split(strings.TrimRight(result, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], `s = "oops`)
	assert.Equal(t, "        "+strings.Repeat(" ", 8)+"^~~~~", lines[2])
}

func TestFormatSourceContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		line   string
		column int
		width  int
		marker string
	}{
		{name: "single", line: "int x;", column: 5, width: 1, marker: "    ^"},
		{name: "range", line: "int x;", column: 1, width: 3, marker: "^~~"},
		{name: "clamped to line", line: "abc", column: 2, width: 10, marker: " ^~"},
		{name: "zero width", line: "abc", column: 3, width: 0, marker: "  ^"},
		{name: "past end", line: "abc", column: 4, width: 2, marker: "   ^"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := styles.FormatSourceContext(tt.line, tt.column, tt.width)
			lines := strings.Split(strings.TrimRight(result, "\n"), "\n")
			require.Len(t, lines, 2)
			assert.Equal(t, "        "+tt.marker, lines[1])
		})
	}
}

func TestFormatSourceContext_ZeroColumn(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	result := styles.FormatSourceContext("int x;", 0, 1)

	assert.Contains(t, result, "int x;")
	assert.NotContains(t, result, "^")
}

func TestFormatSeverity(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	for _, sev := range []config.Severity{config.SeverityError, config.SeverityWarning, config.SeverityInfo} {
		assert.Equal(t, string(sev), styles.FormatSeverity(sev))
	}
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "A.java (5 issues)", styles.FormatFileHeader("A.java", 5))
	assert.Equal(t, "A.java (1 issue)", styles.FormatFileHeader("A.java", 1))
	assert.Equal(t, "A.java", styles.FormatFileHeader("A.java", 0))
}
