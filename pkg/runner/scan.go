package runner

import (
	"fmt"

	"github.com/yaklabco/javalex/pkg/config"
	"github.com/yaklabco/javalex/pkg/javadoc"
	"github.com/yaklabco/javalex/pkg/javalexer"
	"github.com/yaklabco/javalex/pkg/langlevel"
	"github.com/yaklabco/javalex/pkg/lexer"
	"github.com/yaklabco/javalex/pkg/token"
)

// mergeable are the token types combined when MergeWhitespace is set.
//
//nolint:gochecknoglobals // Read-only lookup table.
var mergeable = token.NewSet(token.WhiteSpace, token.BadCharacter)

// Scanner tokenizes buffers with a fixed set of options. A Scanner reuses
// its lexers and is not safe for concurrent use; the runner creates one per
// worker.
type Scanner struct {
	opts ScanOptions
	top  lexer.Lexer
	docs *javadoc.Lexer
}

// NewScanner creates a Scanner.
func NewScanner(opts ScanOptions) *Scanner {
	var top lexer.Lexer = javalexer.New(opts.Level)
	if opts.MergeWhitespace {
		top = lexer.NewMergingLexer(top, mergeable)
	}
	return &Scanner{
		opts: opts,
		top:  top,
		docs: javadoc.New(opts.Level),
	}
}

// Scan tokenizes content[start:] and returns the outcome for path. A start
// past zero skips a byte order mark; offsets stay relative to content.
func (s *Scanner) Scan(path string, content []byte, start int) FileOutcome {
	outcome := FileOutcome{
		Path:         path,
		Lines:        token.BuildLines(content),
		TokensByType: make(map[token.Type]int),
	}
	if s.opts.KeepTokens {
		outcome.Content = content
	}

	s.top.Start(content, start, len(content), 0)
	for {
		tok := lexer.Current(s.top)
		if tok.Type == token.EOF {
			break
		}

		s.inspect(&outcome, content, tok, lexer.Malformed(s.top))

		if tok.Type.IsDocComment() {
			outcome.DocComments++
		}
		if s.opts.ExpandDocs && tok.Type.IsDocComment() {
			s.expandDoc(&outcome, content, tok)
		} else {
			outcome.record(tok, s.opts.KeepTokens)
		}

		s.top.Advance()
	}

	return outcome
}

// expandDoc records the doc-comment tokens of a doc comment in place of it.
func (s *Scanner) expandDoc(outcome *FileOutcome, content []byte, doc token.Token) {
	s.docs.Start(content, doc.StartOffset, doc.EndOffset, 0)
	for {
		tok := lexer.Current(s.docs)
		if tok.Type == token.EOF {
			return
		}
		if tok.Type == token.DocCommentBadCharacter {
			s.report(outcome, tok, CodeDocBadCharacter,
				fmt.Sprintf("unexpected %q in doc comment", tok.Text(content)))
		}
		outcome.record(tok, s.opts.KeepTokens)
		s.docs.Advance()
	}
}

// inspect turns a Java token into zero or more diagnostics.
func (s *Scanner) inspect(outcome *FileOutcome, content []byte, tok token.Token, malformed bool) {
	if malformed {
		if tok.Type.IsComment() {
			s.report(outcome, tok, CodeUnterminatedComment, "unterminated "+describe(tok.Type))
		} else {
			s.report(outcome, tok, CodeUnterminatedLiteral, "unterminated "+describe(tok.Type))
		}
	}

	switch tok.Type {
	case token.BadCharacter:
		s.report(outcome, tok, CodeBadCharacter, fmt.Sprintf("unexpected input %q", tok.Text(content)))
	case token.TextBlockLiteral:
		s.requireFeature(outcome, tok, langlevel.TextBlocks, "text blocks")
	case token.TextBlockTemplateBegin:
		s.requireFeature(outcome, tok, langlevel.TextBlocks, "text blocks")
		s.requireFeature(outcome, tok, langlevel.StringTemplates, "string templates")
	case token.StringTemplateBegin:
		s.requireFeature(outcome, tok, langlevel.StringTemplates, "string templates")
	}
}

func (s *Scanner) requireFeature(outcome *FileOutcome, tok token.Token, feature langlevel.Feature, name string) {
	if s.opts.Level.Supports(feature) {
		return
	}
	s.report(outcome, tok, CodeUnsupportedFeature,
		fmt.Sprintf("%s require language level %s or later (configured %s)",
			name, langlevel.Minimum(feature), s.opts.Level))
}

// report appends a diagnostic unless its code is turned off.
func (s *Scanner) report(outcome *FileOutcome, tok token.Token, code, message string) {
	severity := s.opts.Config.SeverityFor(code, defaultSeverity(code))
	if severity == config.SeverityOff {
		return
	}

	line, col := outcome.Lines.LineAt(tok.StartOffset)
	outcome.Diagnostics = append(outcome.Diagnostics, Diagnostic{
		Path:        outcome.Path,
		Code:        code,
		Severity:    severity,
		Message:     message,
		StartOffset: tok.StartOffset,
		EndOffset:   tok.EndOffset,
		Line:        line,
		Column:      col,
	})
}

// describe names a token type for messages.
func describe(t token.Type) string {
	switch t {
	case token.CharacterLiteral:
		return "character literal"
	case token.StringLiteral, token.StringTemplateBegin, token.StringTemplateMid, token.StringTemplateEnd:
		return "string literal"
	case token.TextBlockLiteral, token.TextBlockTemplateBegin, token.TextBlockTemplateMid, token.TextBlockTemplateEnd:
		return "text block"
	case token.DocComment:
		return "doc comment"
	case token.CStyleComment:
		return "block comment"
	default:
		return t.String()
	}
}
