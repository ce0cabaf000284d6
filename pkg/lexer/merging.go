package lexer

import "github.com/yaklabco/javalex/pkg/token"

// Compile-time interface check.
var _ Lexer = (*MergingLexer)(nil)

// MergingLexer reports runs of adjacent tokens of the same mergeable type as
// a single token. Only the reported range changes; buffer data is never copied.
type MergingLexer struct {
	delegate Lexer
	mergeSet token.Set

	started   bool
	resolved  bool
	malformed bool
	tok       token.Token
	position  Position
}

// NewMergingLexer wraps delegate, merging consecutive tokens whose type is in mergeSet.
func NewMergingLexer(delegate Lexer, mergeSet token.Set) *MergingLexer {
	return &MergingLexer{delegate: delegate, mergeSet: mergeSet}
}

// Delegate returns the wrapped lexer.
func (m *MergingLexer) Delegate() Lexer {
	return m.delegate
}

// Start implements Lexer.
func (m *MergingLexer) Start(buf []byte, startOffset, endOffset, initialState int) {
	m.delegate.Start(buf, startOffset, endOffset, initialState)
	m.started = true
	m.resolved = false
}

// TokenType implements Lexer.
func (m *MergingLexer) TokenType() token.Type {
	m.locate("TokenType")
	return m.tok.Type
}

// TokenStart implements Lexer.
func (m *MergingLexer) TokenStart() int {
	m.locate("TokenStart")
	return m.tok.StartOffset
}

// TokenEnd implements Lexer.
func (m *MergingLexer) TokenEnd() int {
	m.locate("TokenEnd")
	return m.tok.EndOffset
}

// Advance implements Lexer.
func (m *MergingLexer) Advance() {
	m.locate("Advance")
	m.resolved = false
}

// State implements Lexer. It is the delegate's state at the start of the merged token.
func (m *MergingLexer) State() int {
	m.locate("State")
	return m.position.State
}

// Malformed reports whether the delegate flagged any token of the merged
// run as cut short by error recovery.
func (m *MergingLexer) Malformed() bool {
	m.locate("Malformed")
	return m.malformed
}

// CurrentPosition implements Lexer.
func (m *MergingLexer) CurrentPosition() Position {
	m.locate("CurrentPosition")
	return m.position.Clone()
}

// Restore implements Lexer.
func (m *MergingLexer) Restore(pos Position) {
	m.delegate.Restore(pos)
	m.started = true
	m.resolved = false
}

// Buffer implements Lexer.
func (m *MergingLexer) Buffer() []byte {
	return m.delegate.Buffer()
}

// BufferEnd implements Lexer.
func (m *MergingLexer) BufferEnd() int {
	return m.delegate.BufferEnd()
}

func (m *MergingLexer) locate(op string) {
	MustStart(m.started, "MergingLexer", op)
	if m.resolved {
		return
	}
	m.resolved = true

	m.position = m.delegate.CurrentPosition()
	m.tok = Current(m.delegate)
	m.malformed = Malformed(m.delegate)
	if m.tok.Type == token.EOF {
		return
	}

	m.delegate.Advance()
	if !m.mergeSet.Contains(m.tok.Type) {
		return
	}
	for m.delegate.TokenType() == m.tok.Type {
		m.tok.EndOffset = m.delegate.TokenEnd()
		m.malformed = m.malformed || Malformed(m.delegate)
		m.delegate.Advance()
	}
}
