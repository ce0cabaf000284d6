package javalexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/javalex/pkg/token"
)

// flexLocate scans identifiers, keywords, numbers and operators. It always
// consumes at least one character; anything unrecognized is a bad character.
func (l *Lexer) flexLocate() {
	start := l.bufferIndex
	c, n := l.charAt(start)

	switch {
	case isJavaIdentifierStart(c):
		l.tokenType, l.tokenEnd = l.scanIdentifier(start)
	case c >= '0' && c <= '9':
		l.tokenType, l.tokenEnd = l.scanNumber(start)
	case c == '.' && l.isDigitAt(start+n):
		l.tokenType, l.tokenEnd = l.scanNumber(start)
	default:
		l.tokenType, l.tokenEnd = l.scanOperator(c, start+n)
	}
}

// peek decodes the character at pos, or returns -1 at the boundary.
func (l *Lexer) peek(pos int) (rune, int) {
	if pos >= l.bufferEnd {
		return -1, 0
	}
	return l.charAt(pos)
}

func (l *Lexer) isDigitAt(pos int) bool {
	c, _ := l.peek(pos)
	return c >= '0' && c <= '9'
}

func (l *Lexer) scanIdentifier(start int) (token.Type, int) {
	var word strings.Builder
	pos := start
	for pos < l.bufferEnd {
		c, n := l.charAt(pos)
		if pos > start && !isJavaIdentifierPart(c) {
			break
		}
		if word.Len() <= maxKeywordLen {
			word.WriteRune(c)
		}
		pos += n
	}
	return keywordType(word.String(), l.level), pos
}

func (l *Lexer) scanNumber(start int) (token.Type, int) {
	c, n := l.charAt(start)
	pos := start

	if c == '0' {
		next, m := l.peek(start + n)
		switch next {
		case 'x', 'X':
			return l.scanHexNumber(start + n + m)
		case 'b', 'B':
			pos = l.skipWhile(start+n+m, isBinaryDigit)
			return l.integerSuffix(pos)
		}
	}

	floating := false
	pos = l.skipWhile(pos, isDecimalDigit)
	if c, n := l.peek(pos); c == '.' {
		floating = true
		pos = l.skipWhile(pos+n, isDecimalDigit)
	}
	if c, n := l.peek(pos); c == 'e' || c == 'E' {
		floating = true
		pos = l.scanExponent(pos + n)
	}

	if typ, end, ok := l.floatSuffix(pos); ok {
		return typ, end
	}
	if floating {
		return token.DoubleLiteral, pos
	}
	return l.integerSuffix(pos)
}

func (l *Lexer) scanHexNumber(offset int) (token.Type, int) {
	pos := l.skipWhile(offset, isHexDigit)
	floating := false
	if c, n := l.peek(pos); c == '.' {
		floating = true
		pos = l.skipWhile(pos+n, isHexDigit)
	}
	if c, n := l.peek(pos); c == 'p' || c == 'P' {
		floating = true
		pos = l.scanExponent(pos + n)
	}
	if !floating {
		return l.integerSuffix(pos)
	}
	if typ, end, ok := l.floatSuffix(pos); ok {
		return typ, end
	}
	return token.DoubleLiteral, pos
}

func (l *Lexer) scanExponent(offset int) int {
	pos := offset
	if c, n := l.peek(pos); c == '+' || c == '-' {
		pos += n
	}
	return l.skipWhile(pos, isDecimalDigit)
}

func (l *Lexer) integerSuffix(pos int) (token.Type, int) {
	if c, n := l.peek(pos); c == 'l' || c == 'L' {
		return token.LongLiteral, pos + n
	}
	return token.IntegerLiteral, pos
}

func (l *Lexer) floatSuffix(pos int) (token.Type, int, bool) {
	switch c, n := l.peek(pos); c {
	case 'f', 'F':
		return token.FloatLiteral, pos + n, true
	case 'd', 'D':
		return token.DoubleLiteral, pos + n, true
	default:
		return token.EOF, pos, false
	}
}

func (l *Lexer) skipWhile(offset int, accept func(rune) bool) int {
	pos := offset
	for pos < l.bufferEnd {
		c, n := l.charAt(pos)
		if !accept(c) && c != '_' {
			break
		}
		pos += n
	}
	return pos
}

// operatorTail lists, per leading character, the longer operators that
// start with it, longest first, followed by the single-character type.
type operatorTail struct {
	suffix string
	typ    token.Type
}

//nolint:gochecknoglobals // Read-only lookup table.
var operators = map[rune][]operatorTail{
	'(': {{"", token.LParenth}},
	')': {{"", token.RParenth}},
	'[': {{"", token.LBracket}},
	']': {{"", token.RBracket}},
	';': {{"", token.Semicolon}},
	',': {{"", token.Comma}},
	'@': {{"", token.At}},
	'~': {{"", token.Tilde}},
	'?': {{"", token.Quest}},
	'>': {{"", token.GT}},
	'.': {{"..", token.Ellipsis}, {"", token.Dot}},
	':': {{":", token.DoubleColon}, {"", token.Colon}},
	'=': {{"=", token.EqEq}, {"", token.Eq}},
	'!': {{"=", token.NE}, {"", token.Excl}},
	'<': {{"<=", token.LtLtEq}, {"<", token.LtLt}, {"=", token.LE}, {"", token.LT}},
	'&': {{"&", token.AndAnd}, {"=", token.AndEq}, {"", token.And}},
	'|': {{"|", token.OrOr}, {"=", token.OrEq}, {"", token.Or}},
	'+': {{"+", token.PlusPlus}, {"=", token.PlusEq}, {"", token.Plus}},
	'-': {{"-", token.MinusMinus}, {"=", token.MinusEq}, {">", token.Arrow}, {"", token.Minus}},
	'*': {{"=", token.AsteriskEq}, {"", token.Asterisk}},
	'/': {{"=", token.DivEq}, {"", token.Div}},
	'^': {{"=", token.XorEq}, {"", token.Xor}},
	'%': {{"=", token.PercEq}, {"", token.Perc}},
}

func (l *Lexer) scanOperator(c rune, offset int) (token.Type, int) {
	for _, op := range operators[c] {
		if end, ok := l.matchSuffix(offset, op.suffix); ok {
			return op.typ, end
		}
	}
	return token.BadCharacter, offset
}

// matchSuffix matches decoded characters of suffix starting at offset.
func (l *Lexer) matchSuffix(offset int, suffix string) (int, bool) {
	pos := offset
	for _, want := range suffix {
		c, n := l.peek(pos)
		if c != want {
			return 0, false
		}
		pos += n
	}
	return pos, true
}

func isDecimalDigit(c rune) bool { return c >= '0' && c <= '9' }

func isBinaryDigit(c rune) bool { return c == '0' || c == '1' }

func isHexDigit(c rune) bool {
	return isDecimalDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isJavaIdentifierStart(c rune) bool {
	if c < 0 {
		return false
	}
	if c < utf8.RuneSelf {
		return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
	}
	return unicode.IsLetter(c) || unicode.In(c, unicode.Sc, unicode.Pc, unicode.Nl)
}

func isJavaIdentifierPart(c rune) bool {
	if isJavaIdentifierStart(c) || isDecimalDigit(c) {
		return true
	}
	if c < utf8.RuneSelf {
		return isIdentifierIgnorable(c)
	}
	return unicode.In(c, unicode.Nd, unicode.Mn, unicode.Mc, unicode.Cf) || isIdentifierIgnorable(c)
}

// isIdentifierIgnorable matches the ISO control characters that Java allows
// inside identifiers.
func isIdentifierIgnorable(c rune) bool {
	return (c >= 0 && c <= 0x08) || (c >= 0x0e && c <= 0x1b) || (c >= 0x7f && c <= 0x9f)
}
