package javadoc

import (
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/javalex/pkg/token"
)

// docState is a state of the inner doc-token machine.
type docState int

const (
	stInitial docState = iota
	stCommentDataStart
	stCommentData
	stTagDocSpace
	stParamTagSpace
	stTagValue
	stTagValueInParen
	stTagValueInLtGt
	stInlineTagName
	stCodeTag
	stCodeTagSpace
)

//nolint:gochecknoglobals // Read-only lookup table.
var docStateNames = [...]string{
	"INITIAL", "COMMENT_DATA_START", "COMMENT_DATA", "TAG_DOC_SPACE", "PARAM_TAG_SPACE",
	"DOC_TAG_VALUE", "DOC_TAG_VALUE_IN_PAREN", "DOC_TAG_VALUE_IN_LTGT", "INLINE_TAG_NAME",
	"CODE_TAG", "CODE_TAG_SPACE",
}

func (s docState) String() string {
	if s >= 0 && int(s) < len(docStateNames) {
		return docStateNames[s]
	}
	return "UNKNOWN"
}

// Inline tags whose body is literal text with balanced braces.
//
//nolint:gochecknoglobals // Read-only lookup table.
var codeTags = map[string]bool{
	"@code":    true,
	"@literal": true,
}

// scanner is the inner doc-token machine. It is positioned explicitly with
// goTo before every token and keeps its state between tokens.
type scanner struct {
	buf []byte
	pos int
	end int

	state    docState
	braces   int
	generics bool
	markdown bool
}

func (s *scanner) reset(buf []byte, start, end int, state docState, braces int) {
	s.buf = buf
	s.pos = start
	s.end = end
	s.state = state
	s.braces = braces
}

func (s *scanner) goTo(offset int) {
	s.pos = offset
}

// next scans one token at the current position and returns its type and
// end offset. It always consumes at least one byte.
func (s *scanner) next() (token.Type, int) {
	start := s.pos
	typ := s.scan()
	if s.pos <= start {
		s.pos = start + 1
	}
	if s.pos > s.end {
		s.pos = s.end
	}
	return typ, s.pos
}

func (s *scanner) scan() token.Type {
	if !s.markdown && s.hasPrefix("*/") {
		s.pos += 2
		return token.DocCommentEnd
	}

	switch s.state {
	case stInitial:
		return s.scanInitial()
	case stCommentDataStart, stCommentData:
		return s.scanCommentData()
	case stTagDocSpace, stParamTagSpace:
		return s.scanTagSpace()
	case stTagValue:
		return s.scanTagValue()
	case stTagValueInParen:
		return s.scanTagValueInParen()
	case stTagValueInLtGt:
		return s.scanTagValueInLtGt()
	case stInlineTagName:
		return s.scanInlineTagName()
	case stCodeTagSpace, stCodeTag:
		return s.scanCodeTag()
	default:
		s.pos++
		return token.DocCommentBadCharacter
	}
}

func (s *scanner) scanInitial() token.Type {
	opener := "/**"
	if s.markdown {
		opener = "///"
	}
	if s.hasPrefix(opener) {
		s.pos += len(opener)
		s.state = stCommentDataStart
		return token.DocCommentStart
	}
	s.pos++
	s.state = stCommentData
	return token.DocCommentBadCharacter
}

func (s *scanner) scanCommentData() token.Type {
	c := s.buf[s.pos]

	switch {
	case s.state == stCommentDataStart && isDocSpace(c):
		s.pos = s.skipWhile(s.pos, isDocSpace)
		return token.DocSpace
	case s.state == stCommentData && isLineBreak(c):
		s.pos = s.skipWhile(s.skipWhile(s.pos, isLineBreak), isDocSpace)
		return token.DocSpace
	case isHorizontalSpace(c):
		s.pos = s.skipWhile(s.pos, isHorizontalSpace)
		s.state = stCommentData
		return token.DocCommentData
	case s.state == stCommentDataStart && c == '@':
		return s.scanBlockTag()
	case c == '{':
		return s.scanInlineTagStart()
	case c == '}':
		s.pos++
		s.state = stCommentData
		return token.DocInlineTagEnd
	}

	if s.markdown {
		switch c {
		case '`':
			s.pos = s.skipWhile(s.pos, func(b byte) bool { return b == '`' })
			s.state = stCommentData
			return token.DocInlineCodeFence
		case '[':
			s.pos++
			s.state = stCommentData
			return token.DocLBracket
		case ']':
			s.pos++
			s.state = stCommentData
			return token.DocRBracket
		}
	}

	s.pos = s.dataEnd(s.pos + 1)
	s.state = stCommentData
	return token.DocCommentData
}

// scanBlockTag scans "@name" at the start of a line.
func (s *scanner) scanBlockTag() token.Type {
	nameEnd := s.tagNameEnd(s.pos+1, false)
	if nameEnd == s.pos+1 {
		s.pos++
		s.state = stCommentData
		return token.DocCommentData
	}

	name := string(s.buf[s.pos:nameEnd])
	s.pos = nameEnd
	if name == "@param" {
		s.state = stParamTagSpace
	} else {
		s.state = stTagDocSpace
	}
	return token.DocTagName
}

func (s *scanner) scanInlineTagStart() token.Type {
	s.pos++
	if s.pos < s.end && s.buf[s.pos] == '@' {
		s.state = stInlineTagName
		return token.DocInlineTagStart
	}
	s.state = stCommentData
	return token.DocCommentData
}

func (s *scanner) scanInlineTagName() token.Type {
	nameEnd := s.pos
	if s.buf[s.pos] == '@' {
		nameEnd = s.tagNameEnd(s.pos+1, true)
	}
	if nameEnd <= s.pos+1 {
		s.pos++
		s.state = stCommentData
		return token.DocCommentBadCharacter
	}

	name := string(s.buf[s.pos:nameEnd])
	s.pos = nameEnd
	switch {
	case codeTags[name]:
		s.state = stCodeTagSpace
		s.braces = 0
	case name == "@param":
		s.state = stParamTagSpace
	default:
		s.state = stTagDocSpace
	}
	return token.DocTagName
}

// scanTagSpace handles the space after a tag name. A block tag followed by
// text that cannot be a reference goes straight to comment data.
func (s *scanner) scanTagSpace() token.Type {
	c := s.buf[s.pos]
	switch {
	case isDocSpace(c):
		s.pos = s.skipWhile(s.pos, isDocSpace)
		if s.pos < s.end && (s.buf[s.pos] == '<' || s.buf[s.pos] == '"' || s.buf[s.pos] == '{') && s.state == stTagDocSpace {
			s.state = stCommentData
		} else {
			s.state = stTagValue
		}
		return token.DocSpace
	case c == '}':
		s.pos++
		s.state = stCommentData
		return token.DocInlineTagEnd
	default:
		s.pos++
		s.state = stCommentData
		return token.DocCommentBadCharacter
	}
}

func (s *scanner) scanTagValue() token.Type {
	c := s.buf[s.pos]
	switch {
	case isDocSpace(c):
		s.pos = s.skipWhile(s.pos, isDocSpace)
		s.state = stCommentData
		return token.DocSpace
	case c == '(':
		s.pos++
		s.state = stTagValueInParen
		return token.DocTagValueLParen
	case c == '#':
		s.pos++
		return token.DocTagValueSharp
	case c == '<':
		s.pos++
		if s.generics {
			s.state = stTagValueInLtGt
			return token.DocTagValueLT
		}
		s.state = stCommentData
		return token.DocCommentData
	case c == '}':
		s.pos++
		s.state = stCommentData
		return token.DocInlineTagEnd
	}

	if end := s.runeRunEnd(s.pos, isTagValueRune); end > s.pos {
		s.pos = end
		return token.DocTagValueToken
	}
	s.pos++
	s.state = stCommentData
	return token.DocCommentData
}

func (s *scanner) scanTagValueInParen() token.Type {
	c := s.buf[s.pos]
	switch {
	case isDocSpace(c):
		s.pos = s.skipWhile(s.pos, isDocSpace)
		return token.DocSpace
	case c == ')':
		s.pos++
		s.state = stTagValue
		return token.DocTagValueRParen
	case c == ',':
		s.pos++
		return token.DocTagValueComma
	}

	if end := s.runeRunEnd(s.pos, isTagValueRune); end > s.pos {
		s.pos = end
		return token.DocTagValueToken
	}
	s.pos++
	return token.DocCommentBadCharacter
}

func (s *scanner) scanTagValueInLtGt() token.Type {
	if s.buf[s.pos] == '>' {
		s.pos++
		s.state = stCommentData
		return token.DocTagValueGT
	}

	r, size := s.decodeRune(s.pos)
	if isJavaLetter(r) {
		s.pos = s.runeRunEnd(s.pos+size, func(r rune) bool {
			return isJavaLetter(r) || unicode.IsDigit(r) || r == ':' || r == '.' || r == '-'
		})
		return token.DocTagValueToken
	}
	s.pos++
	return token.DocCommentBadCharacter
}

func (s *scanner) scanCodeTag() token.Type {
	c := s.buf[s.pos]
	switch {
	case s.state == stCodeTagSpace && isDocSpace(c):
		s.pos = s.skipWhile(s.pos, isDocSpace)
		s.state = stCodeTag
		return token.DocSpace
	case isLineBreak(c):
		s.pos = s.skipWhile(s.skipWhile(s.pos, isLineBreak), isDocSpace)
		return token.DocSpace
	case c == '{':
		s.pos++
		s.braces++
		s.state = stCodeTag
		return token.DocCommentData
	case c == '}':
		s.pos++
		if s.braces > 0 {
			s.braces--
			return token.DocCommentData
		}
		s.state = stCommentData
		return token.DocInlineTagEnd
	}

	s.state = stCodeTag
	pos := s.pos + 1
	for pos < s.end {
		b := s.buf[pos]
		if b == '{' || b == '}' || isLineBreak(b) || (!s.markdown && b == '*' && pos+1 < s.end && s.buf[pos+1] == '/') {
			break
		}
		pos++
	}
	s.pos = pos
	return token.DocCommentData
}

// tagNameEnd returns the end of a tag name starting at offset. Inline tag
// names also stop at '}'.
func (s *scanner) tagNameEnd(offset int, inline bool) int {
	pos := offset
	for pos < s.end {
		b := s.buf[pos]
		if isDocSpace(b) || (inline && b == '}') || (!s.markdown && b == '*' && pos+1 < s.end && s.buf[pos+1] == '/') {
			break
		}
		pos++
	}
	return pos
}

// dataEnd returns the end of a run of plain comment text.
func (s *scanner) dataEnd(offset int) int {
	pos := offset
	for pos < s.end {
		b := s.buf[pos]
		if isDocSpace(b) || b == '{' || b == '}' {
			break
		}
		if !s.markdown && b == '*' && pos+1 < s.end && s.buf[pos+1] == '/' {
			break
		}
		if s.markdown && (b == '`' || b == '[' || b == ']') {
			break
		}
		pos++
	}
	return pos
}

func (s *scanner) hasPrefix(prefix string) bool {
	return s.pos+len(prefix) <= s.end && string(s.buf[s.pos:s.pos+len(prefix)]) == prefix
}

func (s *scanner) skipWhile(offset int, accept func(byte) bool) int {
	pos := offset
	for pos < s.end && accept(s.buf[pos]) {
		pos++
	}
	return pos
}

func (s *scanner) decodeRune(pos int) (rune, int) {
	if s.buf[pos] < utf8.RuneSelf {
		return rune(s.buf[pos]), 1
	}
	return utf8.DecodeRune(s.buf[pos:s.end])
}

func (s *scanner) runeRunEnd(offset int, accept func(rune) bool) int {
	pos := offset
	for pos < s.end {
		r, size := s.decodeRune(pos)
		if !accept(r) {
			break
		}
		pos += size
	}
	return pos
}

func isDocSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\f' || b == '\n' || b == '\r'
}

func isHorizontalSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\f'
}

func isLineBreak(b byte) bool {
	return b == '\n' || b == '\r'
}

func isJavaLetter(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isTagValueRune(r rune) bool {
	return isJavaLetter(r) || unicode.IsDigit(r) || r == '.' || r == '[' || r == ']'
}
