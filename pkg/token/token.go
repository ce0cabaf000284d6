// Package token defines the token vocabulary shared by the Java lexer family.
package token

import "strconv"

// Type classifies a token produced by a lexer.
type Type uint16

// EOF is reported by a lexer once the scan boundary has been reached.
const EOF Type = 0

// Java source tokens.
const (
	WhiteSpace Type = iota + 1
	BadCharacter

	EndOfLineComment
	CStyleComment
	DocComment         // /** ... */
	MarkdownDocComment // run of /// lines

	Identifier
	IntegerLiteral
	LongLiteral
	FloatLiteral
	DoubleLiteral
	CharacterLiteral
	StringLiteral
	TextBlockLiteral
	StringTemplateBegin
	StringTemplateMid
	StringTemplateEnd
	TextBlockTemplateBegin
	TextBlockTemplateMid
	TextBlockTemplateEnd

	TrueKeyword
	FalseKeyword
	NullKeyword
	Keyword // reserved word other than the literal keywords

	LParenth
	RParenth
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Comma
	Dot
	Ellipsis
	At
	DoubleColon

	Eq
	GT
	LT
	Excl
	Tilde
	Quest
	Colon
	Arrow
	EqEq
	LE
	NE
	AndAnd
	OrOr
	PlusPlus
	MinusMinus
	Plus
	Minus
	Asterisk
	Div
	And
	Or
	Xor
	Perc
	LtLt
	PlusEq
	MinusEq
	AsteriskEq
	DivEq
	AndEq
	OrEq
	XorEq
	PercEq
	LtLtEq

	javaEnd
)

// Doc comment tokens, produced by the doc-comment sub-lexer.
const (
	DocCommentStart Type = iota + 100
	DocCommentEnd
	DocSpace
	DocCommentData
	DocCommentLeadingAsterisks
	DocTagName
	DocTagValueToken
	DocTagValueDot
	DocTagValueComma
	DocTagValueLParen
	DocTagValueRParen
	DocTagValueSharp
	DocTagValueLT
	DocTagValueGT
	DocInlineTagStart
	DocInlineTagEnd
	DocCommentBadCharacter
	DocLBracket
	DocRBracket
	DocInlineCodeFence

	docEnd
)

//nolint:gochecknoglobals // Read-only lookup table.
var names = map[Type]string{
	EOF:                    "EOF",
	WhiteSpace:             "WHITE_SPACE",
	BadCharacter:           "BAD_CHARACTER",
	EndOfLineComment:       "END_OF_LINE_COMMENT",
	CStyleComment:          "C_STYLE_COMMENT",
	DocComment:             "DOC_COMMENT",
	MarkdownDocComment:     "MARKDOWN_DOC_COMMENT",
	Identifier:             "IDENTIFIER",
	IntegerLiteral:         "INTEGER_LITERAL",
	LongLiteral:            "LONG_LITERAL",
	FloatLiteral:           "FLOAT_LITERAL",
	DoubleLiteral:          "DOUBLE_LITERAL",
	CharacterLiteral:       "CHARACTER_LITERAL",
	StringLiteral:          "STRING_LITERAL",
	TextBlockLiteral:       "TEXT_BLOCK_LITERAL",
	StringTemplateBegin:    "STRING_TEMPLATE_BEGIN",
	StringTemplateMid:      "STRING_TEMPLATE_MID",
	StringTemplateEnd:      "STRING_TEMPLATE_END",
	TextBlockTemplateBegin: "TEXT_BLOCK_TEMPLATE_BEGIN",
	TextBlockTemplateMid:   "TEXT_BLOCK_TEMPLATE_MID",
	TextBlockTemplateEnd:   "TEXT_BLOCK_TEMPLATE_END",
	TrueKeyword:            "TRUE_KEYWORD",
	FalseKeyword:           "FALSE_KEYWORD",
	NullKeyword:            "NULL_KEYWORD",
	Keyword:                "KEYWORD",
	LParenth:               "LPARENTH",
	RParenth:               "RPARENTH",
	LBrace:                 "LBRACE",
	RBrace:                 "RBRACE",
	LBracket:               "LBRACKET",
	RBracket:               "RBRACKET",
	Semicolon:              "SEMICOLON",
	Comma:                  "COMMA",
	Dot:                    "DOT",
	Ellipsis:               "ELLIPSIS",
	At:                     "AT",
	DoubleColon:            "DOUBLE_COLON",
	Eq:                     "EQ",
	GT:                     "GT",
	LT:                     "LT",
	Excl:                   "EXCL",
	Tilde:                  "TILDE",
	Quest:                  "QUEST",
	Colon:                  "COLON",
	Arrow:                  "ARROW",
	EqEq:                   "EQEQ",
	LE:                     "LE",
	NE:                     "NE",
	AndAnd:                 "ANDAND",
	OrOr:                   "OROR",
	PlusPlus:               "PLUSPLUS",
	MinusMinus:             "MINUSMINUS",
	Plus:                   "PLUS",
	Minus:                  "MINUS",
	Asterisk:               "ASTERISK",
	Div:                    "DIV",
	And:                    "AND",
	Or:                     "OR",
	Xor:                    "XOR",
	Perc:                   "PERC",
	LtLt:                   "LTLT",
	PlusEq:                 "PLUSEQ",
	MinusEq:                "MINUSEQ",
	AsteriskEq:             "ASTERISKEQ",
	DivEq:                  "DIVEQ",
	AndEq:                  "ANDEQ",
	OrEq:                   "OREQ",
	XorEq:                  "XOREQ",
	PercEq:                 "PERCEQ",
	LtLtEq:                 "LTLTEQ",

	DocCommentStart:            "DOC_COMMENT_START",
	DocCommentEnd:              "DOC_COMMENT_END",
	DocSpace:                   "DOC_SPACE",
	DocCommentData:             "DOC_COMMENT_DATA",
	DocCommentLeadingAsterisks: "DOC_COMMENT_LEADING_ASTERISKS",
	DocTagName:                 "DOC_TAG_NAME",
	DocTagValueToken:           "DOC_TAG_VALUE_TOKEN",
	DocTagValueDot:             "DOC_TAG_VALUE_DOT",
	DocTagValueComma:           "DOC_TAG_VALUE_COMMA",
	DocTagValueLParen:          "DOC_TAG_VALUE_LPAREN",
	DocTagValueRParen:          "DOC_TAG_VALUE_RPAREN",
	DocTagValueSharp:           "DOC_TAG_VALUE_SHARP_TOKEN",
	DocTagValueLT:              "DOC_TAG_VALUE_LT",
	DocTagValueGT:              "DOC_TAG_VALUE_GT",
	DocInlineTagStart:          "DOC_INLINE_TAG_START",
	DocInlineTagEnd:            "DOC_INLINE_TAG_END",
	DocCommentBadCharacter:     "DOC_COMMENT_BAD_CHARACTER",
	DocLBracket:                "DOC_LBRACKET",
	DocRBracket:                "DOC_RBRACKET",
	DocInlineCodeFence:         "DOC_INLINE_CODE_FENCE",
}

// String returns the upper-case name of the token type.
func (t Type) String() string {
	if name, ok := names[t]; ok {
		return name
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// IsComment reports whether t is one of the comment types.
func (t Type) IsComment() bool {
	switch t {
	case EndOfLineComment, CStyleComment, DocComment, MarkdownDocComment:
		return true
	default:
		return false
	}
}

// IsDocComment reports whether t is a doc comment of either flavor.
func (t Type) IsDocComment() bool {
	return t == DocComment || t == MarkdownDocComment
}

// IsLiteral reports whether t is a literal, including template fragments.
func (t Type) IsLiteral() bool {
	return t >= IntegerLiteral && t <= TextBlockTemplateEnd
}

// IsTemplateFragment reports whether t is a begin, mid or end template fragment.
func (t Type) IsTemplateFragment() bool {
	return t >= StringTemplateBegin && t <= TextBlockTemplateEnd
}

// IsKeyword reports whether t is a reserved word.
func (t Type) IsKeyword() bool {
	return t >= TrueKeyword && t <= Keyword
}

// IsOperator reports whether t is a separator or operator.
func (t Type) IsOperator() bool {
	return t >= LParenth && t < javaEnd
}

// IsDoc reports whether t belongs to the doc-comment vocabulary.
func (t Type) IsDoc() bool {
	return t >= DocCommentStart && t < docEnd
}

// Parse resolves a token type from its String form.
func Parse(name string) (Type, bool) {
	for t, n := range names {
		if n == name {
			return t, true
		}
	}
	return EOF, false
}

// Set is an immutable set of token types.
type Set struct {
	members map[Type]struct{}
}

// NewSet creates a set holding the given types.
func NewSet(types ...Type) Set {
	members := make(map[Type]struct{}, len(types))
	for _, t := range types {
		members[t] = struct{}{}
	}
	return Set{members: members}
}

// Contains reports whether t is in the set.
func (s Set) Contains(t Type) bool {
	_, ok := s.members[t]
	return ok
}

// Len returns the number of types in the set.
func (s Set) Len() int {
	return len(s.members)
}

// Token represents a classified span of bytes in a source buffer.
type Token struct {
	// Type classifies what this token represents.
	Type Type

	// StartOffset is the byte index where this token begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where this token ends (exclusive).
	EndOffset int
}

// Text returns the source text of this token from the given buffer.
func (t Token) Text(buf []byte) []byte {
	if t.StartOffset < 0 || t.EndOffset > len(buf) || t.StartOffset > t.EndOffset {
		return nil
	}
	return buf[t.StartOffset:t.EndOffset]
}

// Len returns the length of this token in bytes.
func (t Token) Len() int {
	return t.EndOffset - t.StartOffset
}

// IsEmpty returns true if this token has zero length.
func (t Token) IsEmpty() bool {
	return t.StartOffset == t.EndOffset
}

// ValidateTokens checks that a token slice is contiguous, non-overlapping and
// covers exactly [startOffset, endOffset).
func ValidateTokens(tokens []Token, startOffset, endOffset int) bool {
	if len(tokens) == 0 {
		return startOffset == endOffset
	}

	if tokens[0].StartOffset != startOffset {
		return false
	}

	if tokens[len(tokens)-1].EndOffset != endOffset {
		return false
	}

	for i := range tokens {
		if tokens[i].EndOffset <= tokens[i].StartOffset {
			return false
		}
		if i > 0 && tokens[i].StartOffset != tokens[i-1].EndOffset {
			return false
		}
	}

	return true
}
