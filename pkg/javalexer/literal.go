package javalexer

import "github.com/yaklabco/javalex/pkg/token"

type literalKind int

const (
	charLiteral literalKind = iota
	stringLiteral
	textBlockLiteral
)

func (k literalKind) quote() rune {
	if k == charLiteral {
		return '\''
	}
	return '"'
}

// fragmentTypes maps a literal kind to its whole, begin, mid and end token types.
//
//nolint:gochecknoglobals // Read-only lookup table.
var fragmentTypes = map[literalKind][4]token.Type{
	stringLiteral: {
		token.StringLiteral, token.StringTemplateBegin, token.StringTemplateMid, token.StringTemplateEnd,
	},
	textBlockLiteral: {
		token.TextBlockLiteral, token.TextBlockTemplateBegin, token.TextBlockTemplateMid, token.TextBlockTemplateEnd,
	},
}

// openingType is the type of a literal that starts at its opening quote.
func openingType(kind literalKind, fragment bool) token.Type {
	if kind == charLiteral {
		return token.CharacterLiteral
	}
	if fragment {
		return fragmentTypes[kind][1]
	}
	return fragmentTypes[kind][0]
}

// resumedType is the type of a literal tail that starts at a fragment's closing brace.
func resumedType(kind literalKind, fragment bool) token.Type {
	if fragment {
		return fragmentTypes[kind][2]
	}
	return fragmentTypes[kind][3]
}

// scanLiteral sets tokenEnd to the end of the literal whose body starts at
// offset. It reports true when the body stops at a \{ fragment opener, in
// which case a new template frame has been pushed.
//
// A raw backslash always consumes the character after it, so an escaped or
// unicode-encoded quote never closes the literal. Unterminated literals end
// before the line terminator (text blocks at the boundary) and are marked
// malformed.
func (l *Lexer) scanLiteral(offset int, kind literalKind) bool {
	pos := offset
	for pos < l.bufferEnd {
		if l.buf[pos] == '\\' {
			pos++
			if pos >= l.bufferEnd {
				break
			}
			c, n := l.charAt(pos)
			if c == '{' && kind != charLiteral {
				l.openFragment(kind == textBlockLiteral)
				l.tokenEnd = pos + n
				return true
			}
			pos += n
			continue
		}

		c, n := l.charAt(pos)
		switch {
		case c == kind.quote() && kind == textBlockLiteral:
			pos += n
			if end, ok := l.closingQuotes(pos); ok {
				l.tokenEnd = end
				return false
			}
			continue
		case c == kind.quote():
			l.tokenEnd = pos + n
			return false
		case (c == '\n' || c == '\r') && kind != textBlockLiteral:
			l.tokenEnd = pos
			l.malformed = true
			return false
		}
		pos += n
	}

	l.tokenEnd = pos
	l.malformed = true
	return false
}

// closingQuotes checks for the second and third quote of a text block
// delimiter at pos.
func (l *Lexer) closingQuotes(pos int) (int, bool) {
	for range 2 {
		if pos >= l.bufferEnd {
			return 0, false
		}
		c, n := l.charAt(pos)
		if c != '"' {
			return 0, false
		}
		pos += n
	}
	return pos, true
}

// openFragment records a \{ opener. A default top frame is replaced rather
// than stacked on.
func (l *Lexer) openFragment(textBlock bool) {
	f := frame{textBlock: textBlock, depth: 1}
	if top := l.stack.top(); top.isDefault() {
		*top = f
		return
	}
	l.stack.push(f)
}
