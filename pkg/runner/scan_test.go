package runner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/javalex/pkg/config"
	"github.com/yaklabco/javalex/pkg/langlevel"
	"github.com/yaklabco/javalex/pkg/runner"
	"github.com/yaklabco/javalex/pkg/token"
)

func scanString(opts runner.ScanOptions, content string) runner.FileOutcome {
	return runner.NewScanner(opts).Scan("Test.java", []byte(content), 0)
}

func codes(diags []runner.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func TestScanner_Diagnostics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    langlevel.Level
		content  string
		wantCode string
		wantLine int
		wantCol  int
		wantMsg  string
	}{
		{
			name:     "unterminated string",
			level:    langlevel.Highest,
			content:  "int a = 1;\nString s = \"oops;\n",
			wantCode: runner.CodeUnterminatedLiteral,
			wantLine: 2,
			wantCol:  12,
			wantMsg:  "unterminated string literal",
		},
		{
			name:     "unterminated char",
			level:    langlevel.Highest,
			content:  "char c = 'x",
			wantCode: runner.CodeUnterminatedLiteral,
			wantLine: 1,
			wantCol:  10,
			wantMsg:  "unterminated character literal",
		},
		{
			name:     "unterminated block comment",
			level:    langlevel.Highest,
			content:  "class A {}\n/* open",
			wantCode: runner.CodeUnterminatedComment,
			wantLine: 2,
			wantCol:  1,
			wantMsg:  "unterminated block comment",
		},
		{
			name:     "unterminated doc comment",
			level:    langlevel.Highest,
			content:  "/** docs",
			wantCode: runner.CodeUnterminatedComment,
			wantLine: 1,
			wantCol:  1,
			wantMsg:  "unterminated doc comment",
		},
		{
			name:     "bad character",
			level:    langlevel.Highest,
			content:  "int # x;",
			wantCode: runner.CodeBadCharacter,
			wantLine: 1,
			wantCol:  5,
			wantMsg:  `unexpected input "#"`,
		},
		{
			name:     "text block below 15",
			level:    langlevel.JDK11,
			content:  "String s = \"\"\"\n  hi\n  \"\"\";",
			wantCode: runner.CodeUnsupportedFeature,
			wantLine: 1,
			wantCol:  12,
			wantMsg:  "text blocks require language level 15 or later (configured 11)",
		},
		{
			name:     "string template below 21",
			level:    langlevel.JDK17,
			content:  `s = STR."a\{b}c";`,
			wantCode: runner.CodeUnsupportedFeature,
			wantLine: 1,
			wantCol:  9,
			wantMsg:  "string templates require language level 21 or later (configured 17)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			outcome := scanString(runner.ScanOptions{Level: tt.level}, tt.content)
			require.Len(t, outcome.Diagnostics, 1, "diagnostics: %v", outcome.Diagnostics)

			diag := outcome.Diagnostics[0]
			assert.Equal(t, tt.wantCode, diag.Code)
			assert.Equal(t, tt.wantLine, diag.Line)
			assert.Equal(t, tt.wantCol, diag.Column)
			assert.Equal(t, tt.wantMsg, diag.Message)
			assert.Equal(t, "Test.java", diag.Path)
		})
	}
}

func TestScanner_CleanSourceHasNoDiagnostics(t *testing.T) {
	t.Parallel()

	content := `package a;

/** Doc with {@link String}. */
public class A {
    String t = """
        block
        """;
    String s = STR."x = \{x}";
}
`
	outcome := scanString(runner.ScanOptions{Level: langlevel.JDK21}, content)
	assert.Empty(t, outcome.Diagnostics)
	assert.Equal(t, 1, outcome.DocComments)
	assert.Positive(t, outcome.TokensByType[token.TextBlockLiteral])
	assert.Positive(t, outcome.TokensByType[token.StringTemplateBegin])
}

func TestScanner_SeverityOverrides(t *testing.T) {
	t.Parallel()

	content := "int # x;"

	off := &config.Config{Severity: map[string]config.Severity{runner.CodeBadCharacter: config.SeverityOff}}
	outcome := scanString(runner.ScanOptions{Level: langlevel.Highest, Config: off}, content)
	assert.Empty(t, outcome.Diagnostics)

	warn := &config.Config{Severity: map[string]config.Severity{runner.CodeBadCharacter: config.SeverityWarning}}
	outcome = scanString(runner.ScanOptions{Level: langlevel.Highest, Config: warn}, content)
	require.Len(t, outcome.Diagnostics, 1)
	assert.Equal(t, config.SeverityWarning, outcome.Diagnostics[0].Severity)

	outcome = scanString(runner.ScanOptions{Level: langlevel.Highest}, content)
	require.Len(t, outcome.Diagnostics, 1)
	assert.Equal(t, config.SeverityError, outcome.Diagnostics[0].Severity)
}

func TestScanner_MergeWhitespace(t *testing.T) {
	t.Parallel()

	content := "x ###;"

	plain := scanString(runner.ScanOptions{Level: langlevel.Highest, KeepTokens: true}, content)
	assert.Equal(t, []string{runner.CodeBadCharacter, runner.CodeBadCharacter, runner.CodeBadCharacter}, codes(plain.Diagnostics))

	merged := scanString(runner.ScanOptions{Level: langlevel.Highest, KeepTokens: true, MergeWhitespace: true}, content)
	require.Len(t, merged.Diagnostics, 1)
	assert.Equal(t, `unexpected input "###"`, merged.Diagnostics[0].Message)
	assert.Equal(t, []token.Token{
		{Type: token.Identifier, StartOffset: 0, EndOffset: 1},
		{Type: token.WhiteSpace, StartOffset: 1, EndOffset: 2},
		{Type: token.BadCharacter, StartOffset: 2, EndOffset: 5},
		{Type: token.Semicolon, StartOffset: 5, EndOffset: 6},
	}, merged.Tokens)
}

func TestScanner_MergedTokensKeepMalformedFlag(t *testing.T) {
	t.Parallel()

	outcome := scanString(runner.ScanOptions{Level: langlevel.Highest, MergeWhitespace: true}, `s = "abc`)
	assert.Equal(t, []string{runner.CodeUnterminatedLiteral}, codes(outcome.Diagnostics))
}

func TestScanner_ExpandDocs(t *testing.T) {
	t.Parallel()

	content := "/** Hello {@code x}. */\nclass A {}"
	outcome := scanString(runner.ScanOptions{Level: langlevel.Highest, KeepTokens: true, ExpandDocs: true}, content)

	require.NotEmpty(t, outcome.Tokens)
	assert.True(t, token.ValidateTokens(outcome.Tokens, 0, len(content)))
	assert.Equal(t, 1, outcome.DocComments)
	assert.Zero(t, outcome.TokensByType[token.DocComment])
	assert.Equal(t, 1, outcome.TokensByType[token.DocCommentStart])
	assert.Equal(t, 1, outcome.TokensByType[token.DocCommentEnd])
	assert.Equal(t, 1, outcome.TokensByType[token.DocInlineTagStart])
	assert.Equal(t, token.DocCommentStart, outcome.Tokens[0].Type)
}

func TestScanner_ByteOrderMark(t *testing.T) {
	t.Parallel()

	content := []byte("\xEF\xBB\xBFclass A {}")
	outcome := runner.NewScanner(runner.ScanOptions{Level: langlevel.Highest, KeepTokens: true}).Scan("A.java", content, 3)

	assert.Empty(t, outcome.Diagnostics)
	assert.True(t, token.ValidateTokens(outcome.Tokens, 3, len(content)))
	assert.Equal(t, content, outcome.Content)
}

func TestScanner_TokensDroppedWithoutKeep(t *testing.T) {
	t.Parallel()

	outcome := scanString(runner.ScanOptions{Level: langlevel.Highest}, "class A {}\n")
	assert.Nil(t, outcome.Tokens)
	assert.Nil(t, outcome.Content)
	assert.Equal(t, 7, outcome.TokenCount)
}

func TestCodes(t *testing.T) {
	t.Parallel()

	infos := runner.Codes()
	require.Len(t, infos, 5)
	for _, info := range infos {
		assert.True(t, info.Severity.IsValid(), info.Code)
		assert.NotEmpty(t, info.Description, info.Code)
	}

	infos[0].Code = "mutated"
	assert.NotEqual(t, "mutated", runner.Codes()[0].Code)
}

func TestDiagnosticString(t *testing.T) {
	t.Parallel()

	d := runner.Diagnostic{
		Path: "A.java", Line: 3, Column: 7, Severity: config.SeverityError,
		Message: "unexpected input \"#\"", Code: runner.CodeBadCharacter,
	}
	assert.Equal(t, `A.java:3:7: error: unexpected input "#" [bad-character]`, d.String())
}
