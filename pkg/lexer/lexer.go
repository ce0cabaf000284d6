// Package lexer defines the restartable lexer contract shared by the Java
// scanner family, plus wrappers and helpers that compose over any Lexer.
//
// A Lexer is a scan session over a borrowed, read-only buffer. The current
// token is located lazily: the accessors resolve it on first use and
// Advance discards it. Lexers never fail on malformed input; they always
// make forward progress and report best-effort token boundaries.
package lexer

import (
	"slices"

	"github.com/yaklabco/javalex/pkg/token"
)

// Lexer is a resumable tokenizer over a byte buffer.
type Lexer interface {
	// Start begins or restarts a scan of buf[startOffset:endOffset] in the
	// given initial state. Use 0 for a fresh scan.
	Start(buf []byte, startOffset, endOffset, initialState int)

	// TokenType returns the current token's type, or token.EOF at the end.
	TokenType() token.Type

	// TokenStart returns the inclusive start offset of the current token.
	TokenStart() int

	// TokenEnd returns the exclusive end offset of the current token.
	TokenEnd() int

	// Advance discards the current token.
	Advance()

	// State returns an opaque state that, passed to Start together with
	// TokenStart, resumes scanning at the current token.
	State() int

	// CurrentPosition snapshots the scan so it can be resumed with Restore.
	CurrentPosition() Position

	// Restore resumes scanning from a snapshot taken on the same buffer.
	Restore(pos Position)

	// Buffer returns the buffer being scanned.
	Buffer() []byte

	// BufferEnd returns the scan boundary.
	BufferEnd() int
}

// Position is a restore point: the start offset of a token and the state
// the lexer was in when that token was located.
type Position struct {
	Offset int
	State  int

	// Frames optionally carries a lexer-specific snapshot of deeper state
	// that does not fit into State. Lexers that need it copy it in and out;
	// a Position built from Offset and State alone is always accepted.
	Frames []int
}

// NewPosition builds a restore point from an offset and a packed state.
func NewPosition(offset, state int) Position {
	return Position{Offset: offset, State: state}
}

// Clone returns a deep copy of p.
func (p Position) Clone() Position {
	p.Frames = slices.Clone(p.Frames)
	return p
}

// MalformedReporter is implemented by lexers that flag tokens closed by
// error recovery, such as an unterminated string literal.
type MalformedReporter interface {
	Malformed() bool
}

// Malformed reports whether l flags its current token as malformed. Lexers
// that do not implement MalformedReporter never do.
func Malformed(l Lexer) bool {
	r, ok := l.(MalformedReporter)
	return ok && r.Malformed()
}

// Current returns the current token of l as a value.
func Current(l Lexer) token.Token {
	return token.Token{Type: l.TokenType(), StartOffset: l.TokenStart(), EndOffset: l.TokenEnd()}
}

// Collect drains l from its current position and returns the tokens.
func Collect(l Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := Current(l)
		if tok.Type == token.EOF {
			return tokens
		}
		tokens = append(tokens, tok)
		l.Advance()
	}
}

// Tokenize starts l over buf[startOffset:endOffset] in the fresh state and
// returns every token up to the scan boundary.
func Tokenize(l Lexer, buf []byte, startOffset, endOffset int) []token.Token {
	l.Start(buf, startOffset, endOffset, 0)
	return Collect(l)
}

// TokenizeAll tokenizes the whole buffer.
func TokenizeAll(l Lexer, buf []byte) []token.Token {
	return Tokenize(l, buf, 0, len(buf))
}

// MustStart panics with a descriptive message when a lexer is used before
// Start. It is the only panic in the lexer family and signals caller misuse.
func MustStart(started bool, name, op string) {
	if !started {
		panic(name + ": " + op + " called before Start")
	}
}
