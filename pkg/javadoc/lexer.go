// Package javadoc tokenizes the text of a single doc comment, either a
// /** ... */ block or a run of /// markdown lines, into markers, whitespace,
// comment data, tags and tag values.
//
// The lexer is meant to be started on the exact range of a DocComment or
// MarkdownDocComment token produced by the Java lexer.
package javadoc

import (
	"github.com/yaklabco/javalex/pkg/langlevel"
	"github.com/yaklabco/javalex/pkg/lexer"
	"github.com/yaklabco/javalex/pkg/token"
)

// Packed state layout.
const (
	stateMask      = 0xff
	braceShift     = 8
	braceMask      = 0xff
	afterBreakBit  = 1 << 16
	leadingBit     = 1 << 17
	markdownBit    = 1 << 18
	maxBraceDepth  = braceMask
	markdownPrefix = "///"
)

// Lexer is the doc comment lexer: a leading-marker stripper over the inner
// doc-token machine, with adjacent comment data and space merged.
type Lexer struct {
	*lexer.MergingLexer

	stripper *stripper
}

// Compile-time interface check.
var _ lexer.Lexer = (*Lexer)(nil)

// New creates a doc comment lexer. The level gates <T> type parameter
// values after @param.
func New(level langlevel.Level) *Lexer {
	s := &stripper{inner: &scanner{generics: level.Supports(langlevel.Generics)}}
	return &Lexer{
		MergingLexer: lexer.NewMergingLexer(s, token.NewSet(token.DocCommentData, token.DocSpace)),
		stripper:     s,
	}
}

// Markdown reports whether the current scan treats the comment as a run of
// /// lines.
func (l *Lexer) Markdown() bool {
	return l.stripper.markdown
}

// stripper classifies the leading marker and leading whitespace of every
// comment line and delegates everything else to the inner machine.
type stripper struct {
	inner *scanner

	buf         []byte
	bufferIndex int
	bufferEnd   int
	tokenEnd    int
	tokenType   token.Type

	afterLineBreak bool
	inLeadingSpace bool
	markdown       bool

	started    bool
	resolved   bool
	tokenState int
}

func (s *stripper) Start(buf []byte, startOffset, endOffset, initialState int) {
	s.buf = buf
	s.bufferIndex = startOffset
	s.tokenEnd = startOffset
	s.bufferEnd = endOffset
	// A fresh start picks the mode from the prefix; a resumed scan keeps the
	// mode it was saved with.
	if initialState == 0 {
		s.markdown = hasPrefixAt(buf, startOffset, endOffset, markdownPrefix)
	} else {
		s.markdown = initialState&markdownBit != 0
	}
	s.afterLineBreak = initialState&afterBreakBit != 0
	s.inLeadingSpace = initialState&leadingBit != 0
	s.inner.markdown = s.markdown
	s.inner.reset(buf, startOffset, endOffset, docState(initialState&stateMask), (initialState>>braceShift)&braceMask)
	s.started = true
	s.resolved = false
}

func (s *stripper) TokenType() token.Type {
	s.locate("TokenType")
	return s.tokenType
}

func (s *stripper) TokenStart() int {
	s.locate("TokenStart")
	return s.bufferIndex
}

func (s *stripper) TokenEnd() int {
	s.locate("TokenEnd")
	return s.tokenEnd
}

func (s *stripper) Advance() {
	s.locate("Advance")
	s.resolved = false
}

func (s *stripper) State() int {
	s.locate("State")
	return s.tokenState
}

func (s *stripper) CurrentPosition() lexer.Position {
	s.locate("CurrentPosition")
	return lexer.NewPosition(s.bufferIndex, s.tokenState)
}

func (s *stripper) Restore(pos lexer.Position) {
	lexer.MustStart(s.started, "javadoc.Lexer", "Restore")
	s.Start(s.buf, pos.Offset, s.bufferEnd, pos.State)
}

func (s *stripper) Buffer() []byte {
	return s.buf
}

func (s *stripper) BufferEnd() int {
	return s.bufferEnd
}

func (s *stripper) packState() int {
	braces := min(s.inner.braces, maxBraceDepth)
	state := int(s.inner.state)&stateMask | braces<<braceShift
	if s.afterLineBreak {
		state |= afterBreakBit
	}
	if s.inLeadingSpace {
		state |= leadingBit
	}
	if s.markdown {
		state |= markdownBit
	}
	return state
}

func (s *stripper) locate(op string) {
	lexer.MustStart(s.started, "javadoc.Lexer", op)
	if s.resolved {
		return
	}
	s.resolved = true
	s.tokenState = s.packState()

	s.locateToken()
	if s.tokenType == token.DocSpace {
		s.afterLineBreak = containsLineBreak(s.buf[s.bufferIndex:s.tokenEnd])
	}
}

func (s *stripper) locateToken() {
	if s.tokenEnd >= s.bufferEnd {
		s.tokenType = token.EOF
		s.bufferIndex = s.bufferEnd
		s.tokenEnd = s.bufferEnd
		return
	}
	s.bufferIndex = s.tokenEnd

	if s.afterLineBreak {
		s.afterLineBreak = false
		s.tokenEnd = s.leadingMarkerEnd(s.tokenEnd)
		s.inLeadingSpace = true
		if s.bufferIndex < s.tokenEnd {
			s.tokenType = token.DocCommentLeadingAsterisks
			return
		}
	}

	if s.inLeadingSpace {
		s.inLeadingSpace = false
		lineFeed := false
		for s.tokenEnd < s.bufferEnd && isDocSpace(s.buf[s.tokenEnd]) {
			if s.buf[s.tokenEnd] == '\n' {
				lineFeed = true
			}
			s.tokenEnd++
		}

		state := s.inner.state
		if state == stCommentData || s.startsDataAt(s.tokenEnd) {
			s.inner.state = stCommentDataStart
		}

		if s.bufferIndex < s.tokenEnd {
			switch {
			case lineFeed, state == stParamTagSpace, state == stTagDocSpace,
				state == stInlineTagName, state == stTagValueInParen:
				s.tokenType = token.DocSpace
			default:
				s.tokenType = token.DocCommentData
			}
			return
		}
	}

	s.inner.goTo(s.bufferIndex)
	s.tokenType, s.tokenEnd = s.inner.next()
}

// leadingMarkerEnd skips a run of '*' not followed by '/', or a single ///
// in markdown mode.
func (s *stripper) leadingMarkerEnd(offset int) int {
	if s.markdown {
		if hasPrefixAt(s.buf, offset, s.bufferEnd, markdownPrefix) {
			return offset + len(markdownPrefix)
		}
		return offset
	}

	pos := offset
	for pos < s.bufferEnd && s.buf[pos] == '*' && (pos+1 >= s.bufferEnd || s.buf[pos+1] != '/') {
		pos++
	}
	return pos
}

// startsDataAt reports whether the character at pos starts a new line of
// comment data: a tag, an inline tag, a quoted reference or an HTML link.
func (s *stripper) startsDataAt(pos int) bool {
	if pos >= s.bufferEnd {
		return false
	}
	switch s.buf[pos] {
	case '@', '{', '"', '<':
		return true
	default:
		return false
	}
}

func hasPrefixAt(buf []byte, offset, end int, prefix string) bool {
	return offset >= 0 && offset+len(prefix) <= end && string(buf[offset:offset+len(prefix)]) == prefix
}

func containsLineBreak(text []byte) bool {
	for _, b := range text {
		if isLineBreak(b) {
			return true
		}
	}
	return false
}
