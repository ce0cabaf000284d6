package javalexer

import (
	"github.com/yaklabco/javalex/pkg/langlevel"
	"github.com/yaklabco/javalex/pkg/token"
)

// Reserved words. Contextual keywords (var, record, yield, sealed, permits,
// module and friends) are identifiers at the lexical level.
//
//nolint:gochecknoglobals // Read-only lookup table.
var keywords = map[string]token.Type{
	"abstract": token.Keyword, "assert": token.Keyword, "boolean": token.Keyword,
	"break": token.Keyword, "byte": token.Keyword, "case": token.Keyword,
	"catch": token.Keyword, "char": token.Keyword, "class": token.Keyword,
	"const": token.Keyword, "continue": token.Keyword, "default": token.Keyword,
	"do": token.Keyword, "double": token.Keyword, "else": token.Keyword,
	"enum": token.Keyword, "extends": token.Keyword, "final": token.Keyword,
	"finally": token.Keyword, "float": token.Keyword, "for": token.Keyword,
	"goto": token.Keyword, "if": token.Keyword, "implements": token.Keyword,
	"import": token.Keyword, "instanceof": token.Keyword, "int": token.Keyword,
	"interface": token.Keyword, "long": token.Keyword, "native": token.Keyword,
	"new": token.Keyword, "package": token.Keyword, "private": token.Keyword,
	"protected": token.Keyword, "public": token.Keyword, "return": token.Keyword,
	"short": token.Keyword, "static": token.Keyword, "strictfp": token.Keyword,
	"super": token.Keyword, "switch": token.Keyword, "synchronized": token.Keyword,
	"this": token.Keyword, "throw": token.Keyword, "throws": token.Keyword,
	"transient": token.Keyword, "try": token.Keyword, "void": token.Keyword,
	"volatile": token.Keyword, "while": token.Keyword,

	"true":  token.TrueKeyword,
	"false": token.FalseKeyword,
	"null":  token.NullKeyword,
}

// Keywords introduced after the oldest supported level.
//
//nolint:gochecknoglobals // Read-only lookup table.
var gatedKeywords = map[string]langlevel.Feature{
	"assert": langlevel.AssertKeyword,
	"enum":   langlevel.EnumKeyword,
}

const maxKeywordLen = len("synchronized")

// keywordType classifies a decoded identifier.
func keywordType(word string, level langlevel.Level) token.Type {
	typ, ok := keywords[word]
	if !ok {
		return token.Identifier
	}
	if feature, gated := gatedKeywords[word]; gated && !level.Supports(feature) {
		return token.Identifier
	}
	return typ
}

// IsKeyword reports whether word is a reserved word at the given level.
func IsKeyword(word string, level langlevel.Level) bool {
	return keywordType(word, level) != token.Identifier
}
