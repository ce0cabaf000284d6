package javadoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/javalex/pkg/javadoc"
	"github.com/yaklabco/javalex/pkg/langlevel"
	"github.com/yaklabco/javalex/pkg/lexer"
	"github.com/yaklabco/javalex/pkg/token"
)

type tok struct {
	Type token.Type
	Text string
}

func scan(t *testing.T, level langlevel.Level, content string) []tok {
	t.Helper()

	buf := []byte(content)
	tokens := lexer.TokenizeAll(javadoc.New(level), buf)
	require.True(t, token.ValidateTokens(tokens, 0, len(buf)), "tokens must cover the input: %v", tokens)

	got := make([]tok, 0, len(tokens))
	for _, tk := range tokens {
		got = append(got, tok{Type: tk.Type, Text: string(tk.Text(buf))})
	}
	return got
}

func TestLexer_BlockComment(t *testing.T) {
	t.Parallel()

	got := scan(t, langlevel.Highest, "/**\n * Hello\n */")
	assert.Equal(t, []tok{
		{token.DocCommentStart, "/**"},
		{token.DocSpace, "\n "},
		{token.DocCommentLeadingAsterisks, "*"},
		{token.DocCommentData, " Hello"},
		{token.DocSpace, "\n "},
		{token.DocCommentEnd, "*/"},
	}, got)
}

func TestLexer_InlineLink(t *testing.T) {
	t.Parallel()

	got := scan(t, langlevel.Highest, "/** Hello {@link Foo#bar(int, String)} */")
	assert.Equal(t, []tok{
		{token.DocCommentStart, "/**"},
		{token.DocSpace, " "},
		{token.DocCommentData, "Hello "},
		{token.DocInlineTagStart, "{"},
		{token.DocTagName, "@link"},
		{token.DocSpace, " "},
		{token.DocTagValueToken, "Foo"},
		{token.DocTagValueSharp, "#"},
		{token.DocTagValueToken, "bar"},
		{token.DocTagValueLParen, "("},
		{token.DocTagValueToken, "int"},
		{token.DocTagValueComma, ","},
		{token.DocSpace, " "},
		{token.DocTagValueToken, "String"},
		{token.DocTagValueRParen, ")"},
		{token.DocInlineTagEnd, "}"},
		{token.DocCommentData, " "},
		{token.DocCommentEnd, "*/"},
	}, got)
}

func TestLexer_BlockTags(t *testing.T) {
	t.Parallel()

	content := "/**\n * @param <T> the type\n * @return value\n */"

	got := scan(t, langlevel.Highest, content)
	assert.Equal(t, []tok{
		{token.DocCommentStart, "/**"},
		{token.DocSpace, "\n "},
		{token.DocCommentLeadingAsterisks, "*"},
		{token.DocCommentData, " "},
		{token.DocTagName, "@param"},
		{token.DocSpace, " "},
		{token.DocTagValueLT, "<"},
		{token.DocTagValueToken, "T"},
		{token.DocTagValueGT, ">"},
		{token.DocCommentData, " the type"},
		{token.DocSpace, "\n "},
		{token.DocCommentLeadingAsterisks, "*"},
		{token.DocCommentData, " "},
		{token.DocTagName, "@return"},
		{token.DocSpace, " "},
		{token.DocTagValueToken, "value"},
		{token.DocSpace, "\n "},
		{token.DocCommentEnd, "*/"},
	}, got)

	t.Run("type parameters need generics", func(t *testing.T) {
		t.Parallel()

		old := scan(t, langlevel.JDK1_4, content)
		assert.Contains(t, old, tok{token.DocCommentData, "<T> the type"})
		assert.NotContains(t, old, tok{token.DocTagValueLT, "<"})
	})
}

func TestLexer_CodeTag(t *testing.T) {
	t.Parallel()

	got := scan(t, langlevel.Highest, "/** {@code a{b}c} x */")
	assert.Equal(t, []tok{
		{token.DocCommentStart, "/**"},
		{token.DocSpace, " "},
		{token.DocInlineTagStart, "{"},
		{token.DocTagName, "@code"},
		{token.DocSpace, " "},
		{token.DocCommentData, "a{b}c"},
		{token.DocInlineTagEnd, "}"},
		{token.DocCommentData, " x "},
		{token.DocCommentEnd, "*/"},
	}, got)
}

func TestLexer_Markdown(t *testing.T) {
	t.Parallel()

	lex := javadoc.New(langlevel.Highest)
	buf := []byte("/// Hello [Foo]\n/// `code` more")
	lex.Start(buf, 0, len(buf), 0)
	assert.True(t, lex.Markdown())

	tokens := lexer.Collect(lex)
	got := make([]tok, 0, len(tokens))
	for _, tk := range tokens {
		got = append(got, tok{Type: tk.Type, Text: string(tk.Text(buf))})
	}

	assert.Equal(t, []tok{
		{token.DocCommentStart, "///"},
		{token.DocSpace, " "},
		{token.DocCommentData, "Hello "},
		{token.DocLBracket, "["},
		{token.DocCommentData, "Foo"},
		{token.DocRBracket, "]"},
		{token.DocSpace, "\n"},
		{token.DocCommentLeadingAsterisks, "///"},
		{token.DocCommentData, " "},
		{token.DocInlineCodeFence, "`"},
		{token.DocCommentData, "code"},
		{token.DocInlineCodeFence, "`"},
		{token.DocCommentData, " more"},
	}, got)
}

func TestLexer_MarkdownKeepsAsterisks(t *testing.T) {
	t.Parallel()

	got := scan(t, langlevel.Highest, "/// list:\n/// * item */")
	assert.NotContains(t, got, tok{token.DocCommentEnd, "*/"})
	assert.Contains(t, got, tok{token.DocCommentLeadingAsterisks, "///"})
}

func TestLexer_MarkdownModeDecidedAtStart(t *testing.T) {
	t.Parallel()

	lex := javadoc.New(langlevel.Highest)
	buf := []byte("/** a\n/// b */")
	lex.Start(buf, 0, len(buf), 0)
	assert.False(t, lex.Markdown())

	tokens := lexer.Collect(lex)
	assert.Equal(t, token.DocCommentEnd, tokens[len(tokens)-1].Type)
	for _, tk := range tokens {
		assert.NotEqual(t, "///", string(tk.Text(buf)))
	}
}

func TestLexer_RestoreKeepsBlockMode(t *testing.T) {
	t.Parallel()

	buf := []byte("/** {@code ///x} */")
	lex := javadoc.New(langlevel.Highest)
	lex.Start(buf, 0, len(buf), 0)

	var pos lexer.Position
	for ; lex.TokenType() != token.EOF; lex.Advance() {
		if string(buf[lex.TokenStart():lex.TokenEnd()]) == "///x" {
			pos = lex.CurrentPosition()
		}
	}
	require.Equal(t, 11, pos.Offset)

	lex.Restore(pos)
	assert.False(t, lex.Markdown())
	tokens := lexer.Collect(lex)
	require.NotEmpty(t, tokens)
	last := tokens[len(tokens)-1]
	assert.Equal(t, token.DocCommentEnd, last.Type)
	assert.Equal(t, "*/", string(last.Text(buf)))
}

func TestLexer_BadStart(t *testing.T) {
	t.Parallel()

	got := scan(t, langlevel.Highest, "x y")
	require.NotEmpty(t, got)
	assert.Equal(t, token.DocCommentBadCharacter, got[0].Type)
}

//nolint:gochecknoglobals // Shared test fixture.
var resumeCorpus = []string{
	"/**\n * Hello\n */",
	"/** Hello {@link Foo#bar(int, String)} */",
	"/**\n * @param <T> the type\n * @return value\n */",
	"/** {@code a{b{c}}d}\n * {@literal x} */",
	"/// Hello [Foo]\n/// `code` more\n///   @see Bar",
	"/**\n * @throws IOException when {@code io} fails\n *\n * <p>text\n */",
	"/** {@code ///x} */",
	"/**///<*/\n",
	"/**\n////**<",
}

func TestLexer_RestoreIsIdempotent(t *testing.T) {
	t.Parallel()

	for _, content := range resumeCorpus {
		t.Run(content, func(t *testing.T) {
			t.Parallel()

			buf := []byte(content)
			lex := javadoc.New(langlevel.Highest)
			lex.Start(buf, 0, len(buf), 0)

			var tokens []token.Token
			var positions []lexer.Position
			for lex.TokenType() != token.EOF {
				positions = append(positions, lex.CurrentPosition())
				tokens = append(tokens, lexer.Current(lex))
				lex.Advance()
			}
			require.True(t, token.ValidateTokens(tokens, 0, len(buf)))

			for k, pos := range positions {
				restored := javadoc.New(langlevel.Highest)
				restored.Start(buf, 0, len(buf), 0)
				restored.Restore(pos)
				assert.Equal(t, tokens[k:], lexer.Collect(restored), "restore at token %d", k)

				restarted := javadoc.New(langlevel.Highest)
				restarted.Start(buf, pos.Offset, len(buf), pos.State)
				assert.Equal(t, tokens[k:], lexer.Collect(restarted), "restart at token %d", k)
			}
		})
	}
}

func TestLexer_PanicsBeforeStart(t *testing.T) {
	t.Parallel()

	lex := javadoc.New(langlevel.Highest)
	assert.PanicsWithValue(t, "MergingLexer: TokenStart called before Start", func() {
		lex.TokenStart()
	})
}
