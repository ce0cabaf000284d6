package javalexer

import (
	"github.com/yaklabco/javalex/pkg/lexer"
	"github.com/yaklabco/javalex/pkg/token"
)

// Compile-time interface check.
var _ lexer.Lexer = (*BracketEscapeLexer)(nil)

// BracketEscapeLexer reads escaped brackets, as in the markdown reference
// [String\[\]], as bracket tokens. A lone backslash bad character directly
// followed by a bracket is reported as one LBracket or RBracket token
// covering both. Every other token passes through unchanged.
type BracketEscapeLexer struct {
	delegate lexer.Lexer

	started  bool
	resolved bool
	tok      token.Token
	position lexer.Position
}

// NewBracketEscapeLexer wraps delegate.
func NewBracketEscapeLexer(delegate lexer.Lexer) *BracketEscapeLexer {
	return &BracketEscapeLexer{delegate: delegate}
}

// Start implements lexer.Lexer.
func (b *BracketEscapeLexer) Start(buf []byte, startOffset, endOffset, initialState int) {
	b.delegate.Start(buf, startOffset, endOffset, initialState)
	b.started = true
	b.resolved = false
}

// TokenType implements lexer.Lexer.
func (b *BracketEscapeLexer) TokenType() token.Type {
	b.locate("TokenType")
	return b.tok.Type
}

// TokenStart implements lexer.Lexer.
func (b *BracketEscapeLexer) TokenStart() int {
	b.locate("TokenStart")
	return b.tok.StartOffset
}

// TokenEnd implements lexer.Lexer.
func (b *BracketEscapeLexer) TokenEnd() int {
	b.locate("TokenEnd")
	return b.tok.EndOffset
}

// Advance implements lexer.Lexer.
func (b *BracketEscapeLexer) Advance() {
	b.locate("Advance")
	b.resolved = false
}

// State implements lexer.Lexer.
func (b *BracketEscapeLexer) State() int {
	b.locate("State")
	return b.position.State
}

// CurrentPosition implements lexer.Lexer.
func (b *BracketEscapeLexer) CurrentPosition() lexer.Position {
	b.locate("CurrentPosition")
	return b.position.Clone()
}

// Restore implements lexer.Lexer.
func (b *BracketEscapeLexer) Restore(pos lexer.Position) {
	b.delegate.Restore(pos)
	b.started = true
	b.resolved = false
}

// Buffer implements lexer.Lexer.
func (b *BracketEscapeLexer) Buffer() []byte {
	return b.delegate.Buffer()
}

// BufferEnd implements lexer.Lexer.
func (b *BracketEscapeLexer) BufferEnd() int {
	return b.delegate.BufferEnd()
}

// locate leaves the delegate positioned just past the reported token.
func (b *BracketEscapeLexer) locate(op string) {
	lexer.MustStart(b.started, "BracketEscapeLexer", op)
	if b.resolved {
		return
	}
	b.resolved = true

	b.position = b.delegate.CurrentPosition()
	b.tok = lexer.Current(b.delegate)
	if b.tok.Type == token.EOF {
		return
	}
	b.delegate.Advance()

	if b.tok.Type != token.BadCharacter || b.tok.Len() != 1 || b.delegate.Buffer()[b.tok.StartOffset] != '\\' {
		return
	}

	next := lexer.Current(b.delegate)
	if next.StartOffset != b.tok.EndOffset || next.Len() != 1 {
		return
	}
	if next.Type != token.LBracket && next.Type != token.RBracket {
		return
	}
	b.tok.Type = next.Type
	b.tok.EndOffset = next.EndOffset
	b.delegate.Advance()
}
