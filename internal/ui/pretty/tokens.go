package pretty

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/javalex/pkg/token"
)

// maxTokenText limits how much of a token's text is echoed in dumps.
const maxTokenText = 60

// tokenTypeWidth pads type names so token text lines up.
const tokenTypeWidth = 30

// FormatToken formats one token of a dump as "line:col  TYPE  "text"".
func (s *Styles) FormatToken(tok token.Token, buf []byte, line, column int) string {
	loc := fmt.Sprintf("%d:%d", line, column)
	return fmt.Sprintf("  %s  %s  %s\n",
		s.Location.Render(fmt.Sprintf("%-9s", loc)),
		s.tokenStyle(tok.Type).Render(fmt.Sprintf("%-*s", tokenTypeWidth, tok.Type.String())),
		s.TokenText.Render(QuoteTokenText(tok.Text(buf))),
	)
}

// QuoteTokenText quotes token text for display, shortening long tokens.
func QuoteTokenText(text []byte) string {
	if len(text) > maxTokenText {
		return strconv.Quote(string(text[:maxTokenText])) + "..."
	}
	return strconv.Quote(string(text))
}

func (s *Styles) tokenStyle(typ token.Type) lipgloss.Style {
	switch {
	case typ.IsKeyword():
		return s.TokenKeyword
	case typ.IsLiteral():
		return s.TokenLiteral
	case typ.IsDocComment() || typ.IsDoc():
		return s.TokenDoc
	case typ.IsComment():
		return s.TokenComment
	case typ == token.BadCharacter || typ == token.DocCommentBadCharacter:
		return s.Error
	default:
		return s.TokenType
	}
}
