// Package javalexer implements the Java source scanner: a hand-written core
// for whitespace, comments, literals and string template fragments, backed by
// a secondary scanner for identifiers, keywords, numbers and operators.
//
// Unicode escapes (\uXXXX) are decoded before every character comparison
// outside comments. Offsets are byte offsets into the scanned buffer.
package javalexer

import (
	"unicode/utf8"

	"github.com/yaklabco/javalex/pkg/langlevel"
	"github.com/yaklabco/javalex/pkg/lexer"
	"github.com/yaklabco/javalex/pkg/token"
)

// Compile-time interface check.
var _ lexer.Lexer = (*Lexer)(nil)

// Lexer scans Java source. A Lexer holds one scan session and must not be
// shared between goroutines; the buffer it scans may be.
type Lexer struct {
	level langlevel.Level

	buf         []byte
	bufferIndex int
	bufferEnd   int
	tokenEnd    int
	tokenType   token.Type

	stack stateStack

	started   bool
	resolved  bool
	malformed bool

	// Stack snapshot taken before the current token was located.
	tokenState  int
	tokenFrames []int
}

// New creates a Java lexer gated by the given language level.
func New(level langlevel.Level) *Lexer {
	return &Lexer{level: level}
}

// Level returns the language level the lexer was created with.
func (l *Lexer) Level() langlevel.Level {
	return l.level
}

// Start implements lexer.Lexer. The initial state is a packed template
// frame as returned by State; 0 starts a fresh scan.
func (l *Lexer) Start(buf []byte, startOffset, endOffset, initialState int) {
	l.buf = buf
	l.bufferIndex = startOffset
	l.tokenEnd = startOffset
	l.bufferEnd = endOffset
	l.stack.reset(initialState)
	l.started = true
	l.resolved = false
	l.malformed = false
}

// TokenType implements lexer.Lexer.
func (l *Lexer) TokenType() token.Type {
	l.locate("TokenType")
	return l.tokenType
}

// TokenStart implements lexer.Lexer.
func (l *Lexer) TokenStart() int {
	l.locate("TokenStart")
	return l.bufferIndex
}

// TokenEnd implements lexer.Lexer.
func (l *Lexer) TokenEnd() int {
	l.locate("TokenEnd")
	return l.tokenEnd
}

// Advance implements lexer.Lexer.
func (l *Lexer) Advance() {
	l.locate("Advance")
	l.resolved = false
}

// State implements lexer.Lexer. It is the packed top frame as it was before
// the current token was scanned.
func (l *Lexer) State() int {
	l.locate("State")
	return l.tokenState
}

// Malformed reports whether the current token was cut short by error
// recovery: an unterminated literal or block comment.
func (l *Lexer) Malformed() bool {
	l.locate("Malformed")
	return l.malformed
}

// CurrentPosition implements lexer.Lexer. The position carries the whole
// template stack, so restoring inside nested fragments is exact.
func (l *Lexer) CurrentPosition() lexer.Position {
	l.locate("CurrentPosition")
	pos := lexer.NewPosition(l.bufferIndex, l.tokenState)
	if len(l.tokenFrames) > 1 {
		pos.Frames = append([]int(nil), l.tokenFrames...)
	}
	return pos
}

// Restore implements lexer.Lexer.
func (l *Lexer) Restore(pos lexer.Position) {
	lexer.MustStart(l.started, "javalexer.Lexer", "Restore")
	l.bufferIndex = pos.Offset
	l.tokenEnd = pos.Offset
	if len(pos.Frames) > 0 {
		l.stack.resetPacked(pos.Frames)
	} else {
		l.stack.reset(pos.State)
	}
	l.resolved = false
	l.malformed = false
}

// Buffer implements lexer.Lexer.
func (l *Lexer) Buffer() []byte {
	return l.buf
}

// BufferEnd implements lexer.Lexer.
func (l *Lexer) BufferEnd() int {
	return l.bufferEnd
}

// charAt decodes the character at pos: a unicode escape, a UTF-8 sequence
// or a single byte.
func (l *Lexer) charAt(pos int) (rune, int) {
	if l.buf[pos] >= utf8.RuneSelf {
		return utf8.DecodeRune(l.buf[pos:l.bufferEnd])
	}
	return DecodeEscape(l.buf, pos, l.bufferEnd)
}

func (l *Lexer) locate(op string) {
	lexer.MustStart(l.started, "javalexer.Lexer", op)
	if l.resolved {
		return
	}
	l.resolved = true
	l.malformed = false
	l.tokenState = l.stack.top().pack()
	l.tokenFrames = l.stack.packInto(l.tokenFrames)

	l.bufferIndex = l.tokenEnd
	if l.bufferIndex >= l.bufferEnd {
		l.bufferIndex = l.bufferEnd
		l.tokenEnd = l.bufferEnd
		l.tokenType = token.EOF
		return
	}

	c, n := l.charAt(l.bufferIndex)
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		l.tokenType = token.WhiteSpace
		l.tokenEnd = l.whitespaceEnd(l.bufferIndex + n)
	case '{':
		if top := l.stack.top(); top.depth > 0 {
			top.depth++
		}
		l.tokenType = token.LBrace
		l.tokenEnd = l.bufferIndex + n
	case '}':
		l.locateClosingBrace(n)
	case '/':
		l.locateSlash(n)
	case '#':
		if l.bufferIndex == 0 && n == 1 && l.hasPrefixAt(1, "!") {
			l.tokenType = token.EndOfLineComment
			l.tokenEnd = l.lineTerminator(2)
		} else {
			l.flexLocate()
		}
	case '\'':
		l.scanLiteral(l.bufferIndex+n, charLiteral)
		l.tokenType = token.CharacterLiteral
	case '"':
		l.locateQuote(n)
	default:
		l.flexLocate()
	}

	if l.tokenEnd > l.bufferEnd {
		l.tokenEnd = l.bufferEnd
	}
}

func (l *Lexer) whitespaceEnd(offset int) int {
	pos := offset
	for pos < l.bufferEnd {
		c, n := l.charAt(pos)
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' && c != '\f' {
			break
		}
		pos += n
	}
	return pos
}

func (l *Lexer) locateClosingBrace(n int) {
	top := l.stack.top()
	switch {
	case top.depth == 1:
		kind := stringLiteral
		if top.textBlock {
			kind = textBlockLiteral
		}
		l.stack.pop()
		fragment := l.scanLiteral(l.bufferIndex+n, kind)
		l.tokenType = resumedType(kind, fragment)
	case top.depth > 1:
		top.depth--
		l.tokenType = token.RBrace
		l.tokenEnd = l.bufferIndex + n
	default:
		l.tokenType = token.RBrace
		l.tokenEnd = l.bufferIndex + n
	}
}

func (l *Lexer) locateSlash(l1 int) {
	start := l.bufferIndex
	if start+l1 >= l.bufferEnd {
		l.flexLocate()
		return
	}

	next, l2 := l.charAt(start + l1)
	switch next {
	case '/':
		body := start + l1 + l2
		// The third slash is matched raw, as are the /// prefixes of the
		// following lines and the doc lexer's markdown check.
		if l.level.Supports(langlevel.MarkdownDocComments) && body < l.bufferEnd && l.buf[body] == '/' {
			l.tokenType = token.MarkdownDocComment
			l.tokenEnd = l.closingMarkdown(body + 1)
			return
		}
		l.tokenType = token.EndOfLineComment
		l.tokenEnd = l.lineTerminator(body)
	case '*':
		third := start + l1 + l2
		if third < l.bufferEnd {
			if c, l3 := l.charAt(third); c == '*' {
				fourth := third + l3
				if fourth < l.bufferEnd {
					if c, l4 := l.charAt(fourth); c == '/' {
						l.tokenType = token.CStyleComment
						l.tokenEnd = fourth + l4
						return
					}
				}
				l.tokenType = token.DocComment
				l.tokenEnd = l.closingComment(fourth)
				return
			}
		}
		l.tokenType = token.CStyleComment
		l.tokenEnd = l.closingComment(third)
	default:
		l.flexLocate()
	}
}

func (l *Lexer) locateQuote(l1 int) {
	second := l.bufferIndex + l1
	if second < l.bufferEnd {
		if c, l2 := l.charAt(second); c == '"' {
			third := second + l2
			if third < l.bufferEnd {
				if c, l3 := l.charAt(third); c == '"' {
					fragment := l.scanLiteral(third+l3, textBlockLiteral)
					l.tokenType = openingType(textBlockLiteral, fragment)
					return
				}
			}
			l.tokenType = token.StringLiteral
			l.tokenEnd = third
			return
		}
	}

	fragment := l.scanLiteral(second, stringLiteral)
	l.tokenType = openingType(stringLiteral, fragment)
}
