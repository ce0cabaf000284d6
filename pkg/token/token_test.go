package token_test

import (
	"testing"

	"github.com/yaklabco/javalex/pkg/token"
)

func TestType_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ  token.Type
		want string
	}{
		{typ: token.WhiteSpace, want: "WHITE_SPACE"},
		{typ: token.Identifier, want: "IDENTIFIER"},
		{typ: token.StringLiteral, want: "STRING_LITERAL"},
		{typ: token.DocComment, want: "DOC_COMMENT"},
		{typ: token.MarkdownDocComment, want: "MARKDOWN_DOC_COMMENT"},
		{typ: token.DocTagName, want: "DOC_TAG_NAME"},
		{typ: token.Type(9999), want: "Type(9999)"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, typ := range []token.Type{
		token.WhiteSpace, token.Keyword, token.TextBlockTemplateMid,
		token.Arrow, token.DocInlineCodeFence,
	} {
		got, ok := token.Parse(typ.String())
		if !ok || got != typ {
			t.Errorf("Parse(%q) = %v, %v; want %v, true", typ.String(), got, ok, typ)
		}
	}

	if _, ok := token.Parse("NOT_A_TOKEN"); ok {
		t.Error("Parse of an unknown name succeeded")
	}
}

func TestType_Classification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		typ   token.Type
		check func(token.Type) bool
		want  bool
	}{
		{name: "line comment is comment", typ: token.EndOfLineComment, check: token.Type.IsComment, want: true},
		{name: "doc comment is comment", typ: token.DocComment, check: token.Type.IsComment, want: true},
		{name: "markdown doc is doc comment", typ: token.MarkdownDocComment, check: token.Type.IsDocComment, want: true},
		{name: "block comment is not doc comment", typ: token.CStyleComment, check: token.Type.IsDocComment, want: false},
		{name: "string is literal", typ: token.StringLiteral, check: token.Type.IsLiteral, want: true},
		{name: "template end is literal", typ: token.TextBlockTemplateEnd, check: token.Type.IsLiteral, want: true},
		{name: "template begin is fragment", typ: token.StringTemplateBegin, check: token.Type.IsTemplateFragment, want: true},
		{name: "whole string is not fragment", typ: token.StringLiteral, check: token.Type.IsTemplateFragment, want: false},
		{name: "null is keyword", typ: token.NullKeyword, check: token.Type.IsKeyword, want: true},
		{name: "identifier is not keyword", typ: token.Identifier, check: token.Type.IsKeyword, want: false},
		{name: "arrow is operator", typ: token.Arrow, check: token.Type.IsOperator, want: true},
		{name: "brace is operator", typ: token.LBrace, check: token.Type.IsOperator, want: true},
		{name: "tag name is doc", typ: token.DocTagName, check: token.Type.IsDoc, want: true},
		{name: "eof is not doc", typ: token.EOF, check: token.Type.IsDoc, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.check(tt.typ); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSet(t *testing.T) {
	t.Parallel()

	set := token.NewSet(token.WhiteSpace, token.BadCharacter, token.WhiteSpace)
	if set.Len() != 2 {
		t.Errorf("Len() = %d, want 2", set.Len())
	}
	if !set.Contains(token.WhiteSpace) || !set.Contains(token.BadCharacter) {
		t.Error("set is missing a member")
	}
	if set.Contains(token.Identifier) {
		t.Error("set contains a non-member")
	}

	var empty token.Set
	if empty.Contains(token.WhiteSpace) || empty.Len() != 0 {
		t.Error("zero Set is not empty")
	}
}

func TestToken_Text(t *testing.T) {
	t.Parallel()

	buf := []byte("int x;")
	tok := token.Token{Type: token.Identifier, StartOffset: 4, EndOffset: 5}

	if got := string(tok.Text(buf)); got != "x" {
		t.Errorf("Text() = %q, want %q", got, "x")
	}
	if tok.Len() != 1 || tok.IsEmpty() {
		t.Errorf("Len() = %d, IsEmpty() = %v", tok.Len(), tok.IsEmpty())
	}

	outOfRange := token.Token{StartOffset: 4, EndOffset: 10}
	if outOfRange.Text(buf) != nil {
		t.Error("Text() of an out-of-range token is not nil")
	}
}

func TestValidateTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tokens []token.Token
		start  int
		end    int
		want   bool
	}{
		{name: "empty range", tokens: nil, start: 3, end: 3, want: true},
		{name: "empty tokens non-empty range", tokens: nil, start: 0, end: 1, want: false},
		{
			name: "contiguous",
			tokens: []token.Token{
				{Type: token.Keyword, StartOffset: 0, EndOffset: 3},
				{Type: token.WhiteSpace, StartOffset: 3, EndOffset: 4},
				{Type: token.Identifier, StartOffset: 4, EndOffset: 5},
			},
			start: 0, end: 5, want: true,
		},
		{
			name: "gap",
			tokens: []token.Token{
				{Type: token.Keyword, StartOffset: 0, EndOffset: 3},
				{Type: token.Identifier, StartOffset: 4, EndOffset: 5},
			},
			start: 0, end: 5, want: false,
		},
		{
			name: "overlap",
			tokens: []token.Token{
				{Type: token.Keyword, StartOffset: 0, EndOffset: 3},
				{Type: token.Identifier, StartOffset: 2, EndOffset: 5},
			},
			start: 0, end: 5, want: false,
		},
		{
			name:   "empty token",
			tokens: []token.Token{{Type: token.Keyword, StartOffset: 0, EndOffset: 0}},
			start:  0, end: 0, want: false,
		},
		{
			name:   "short of end",
			tokens: []token.Token{{Type: token.Keyword, StartOffset: 0, EndOffset: 3}},
			start:  0, end: 5, want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := token.ValidateTokens(tt.tokens, tt.start, tt.end); got != tt.want {
				t.Errorf("ValidateTokens() = %v, want %v", got, tt.want)
			}
		})
	}
}
