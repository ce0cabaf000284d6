package doccomment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/javalex/pkg/doccomment"
	"github.com/yaklabco/javalex/pkg/langlevel"
)

const classicSource = `/**
 * Returns the sum.
 * Uses {@code a + b} and {@link Math#addExact(int, int) exact}.
 *
 * @param a the first value
 * @param b the second value
 * @return the sum
 * @throws ArithmeticException if it overflows
 * @see Math
 */
public static int add(int a, int b) { return a + b; }
`

const markdownSource = "/// Returns the [List] of [names][String#valueOf(int)].\n" +
	"/// Use `[notARef]` or [String\\[\\]] here.\n" +
	"///\n" +
	"/// @param count how many\n" +
	"int f(int count);\n"

func extractOne(t *testing.T, source string) doccomment.Comment {
	t.Helper()

	comments := doccomment.NewExtractor(langlevel.Default).Extract([]byte(source))
	require.Len(t, comments, 1)
	return comments[0]
}

func TestExtract_Classic(t *testing.T) {
	t.Parallel()

	c := extractOne(t, classicSource)

	assert.False(t, c.Markdown)
	assert.Equal(t, 1, c.Line)
	assert.Equal(t, 1, c.Column)
	assert.Equal(t, 0, c.StartOffset)
	assert.Equal(t, "*/", classicSource[c.EndOffset-2:c.EndOffset])
	assert.Equal(t,
		"Returns the sum.\nUses {@code a + b} and {@link Math#addExact(int, int) exact}.",
		c.Description)
	assert.Equal(t, "Returns the sum.", c.Summary())
	assert.Equal(t, "public static int add(int a, int b)", c.Declaration)
}

func TestExtract_ClassicTags(t *testing.T) {
	t.Parallel()

	c := extractOne(t, classicSource)

	type tagView struct{ Name, Value, Text string }
	got := make([]tagView, 0, len(c.Tags))
	for _, tag := range c.Tags {
		got = append(got, tagView{tag.Name, tag.Value, tag.Text})
	}
	assert.Equal(t, []tagView{
		{"@param", "a", "the first value"},
		{"@param", "b", "the second value"},
		{"@return", "", "the sum"},
		{"@throws", "ArithmeticException", "if it overflows"},
		{"@see", "Math", ""},
	}, got)

	assert.Len(t, c.TagsNamed("@param"), 2)
	assert.Empty(t, c.TagsNamed("@since"))
}

func TestExtract_ClassicInlineTags(t *testing.T) {
	t.Parallel()

	c := extractOne(t, classicSource)

	require.Len(t, c.InlineTags, 2)

	code := c.InlineTags[0]
	assert.Equal(t, "@code", code.Name)
	assert.Equal(t, "a + b", code.Body)
	assert.Equal(t, "{@code a + b}", code.Raw)
	assert.Equal(t, -1, code.Section)
	assert.Equal(t, "{", classicSource[code.Offset:code.Offset+1])

	link := c.InlineTags[1]
	assert.Equal(t, "@link", link.Name)
	assert.Equal(t, "Math#addExact(int, int) exact", link.Body)
	assert.Equal(t, "{@link Math#addExact(int, int) exact}", link.Raw)
}

func TestExtract_ClassicReferences(t *testing.T) {
	t.Parallel()

	c := extractOne(t, classicSource)

	type refView struct {
		Kind          doccomment.ReferenceKind
		Target, Label string
	}
	got := make([]refView, 0, len(c.References))
	for _, ref := range c.References {
		got = append(got, refView{ref.Kind, ref.Target, ref.Label})
	}
	assert.Equal(t, []refView{
		{doccomment.RefLink, "Math#addExact(int, int)", "exact"},
		{doccomment.RefThrows, "ArithmeticException", ""},
		{doccomment.RefSee, "Math", ""},
	}, got)
	assert.Equal(t, "exact", c.References[0].Text())
	assert.Equal(t, "Math", c.References[2].Text())
}

func TestExtract_Markdown(t *testing.T) {
	t.Parallel()

	c := extractOne(t, markdownSource)

	assert.True(t, c.Markdown)
	assert.Equal(t,
		"Returns the [List] of [names][String#valueOf(int)].\nUse `[notARef]` or [String\\[\\]] here.",
		c.Description)
	assert.Equal(t, "int f(int count)", c.Declaration)

	require.Len(t, c.Tags, 1)
	assert.Equal(t, "@param", c.Tags[0].Name)
	assert.Equal(t, "count", c.Tags[0].Value)
	assert.Equal(t, "how many", c.Tags[0].Text)
}

func TestExtract_MarkdownReferences(t *testing.T) {
	t.Parallel()

	c := extractOne(t, markdownSource)

	require.Len(t, c.References, 3)

	list := c.References[0]
	assert.Equal(t, doccomment.RefMarkdown, list.Kind)
	assert.Equal(t, "List", list.Target)
	assert.Empty(t, list.Label)
	assert.Equal(t, "[List]", list.Raw)
	assert.Equal(t, "[List]", markdownSource[list.Offset:list.Offset+len("[List]")])

	full := c.References[1]
	assert.Equal(t, "String#valueOf(int)", full.Target)
	assert.Equal(t, "names", full.Label)
	assert.Equal(t, "[names][String#valueOf(int)]", full.Raw)

	escaped := c.References[2]
	assert.Equal(t, "String[]", escaped.Target)
	assert.Equal(t, `[String\[\]]`, escaped.Raw)
}

func TestExtract_MarkdownSkipsLinksAndProse(t *testing.T) {
	t.Parallel()

	source := "/// See [the docs](https://example.com) and [two words].\n" +
		"///\n" +
		"/// [ref]: https://example.com\n" +
		"class A {}\n"

	c := extractOne(t, source)
	assert.Empty(t, c.References)
	assert.Equal(t, "class A", c.Declaration)
}

func TestExtract_MarkdownIndentation(t *testing.T) {
	t.Parallel()

	source := "///   Title\n" +
		"///\n" +
		"///       indented code\n" +
		"class A {}\n"

	c := extractOne(t, source)
	assert.Equal(t, "Title\n\n    indented code", c.Description)
}

func TestExtract_MultipleComments(t *testing.T) {
	t.Parallel()

	source := `/** Type. */
@Deprecated
public class A {
    /** Field. */
    private int x = 1;

    /* not a doc comment */
    /** Dangling. */
}
`
	comments := doccomment.NewExtractor(langlevel.Default).Extract([]byte(source))
	require.Len(t, comments, 3)

	assert.Equal(t, "Type.", comments[0].Description)
	assert.Equal(t, "@Deprecated public class A", comments[0].Declaration)

	assert.Equal(t, "Field.", comments[1].Description)
	assert.Equal(t, "private int x", comments[1].Declaration)
	assert.Equal(t, 4, comments[1].Line)
	assert.Equal(t, 5, comments[1].Column)

	assert.Equal(t, "Dangling.", comments[2].Description)
	assert.Empty(t, comments[2].Declaration)
}

func TestExtract_NoComments(t *testing.T) {
	t.Parallel()

	comments := doccomment.NewExtractor(langlevel.Default).Extract([]byte("class A { // line\n /* block */ }\n"))
	assert.Empty(t, comments)
}

func TestExtract_MarkdownBeforeLevel(t *testing.T) {
	t.Parallel()

	comments := doccomment.NewExtractor(langlevel.JDK21).Extract([]byte("/// Not a doc comment.\nclass A {}\n"))
	assert.Empty(t, comments)
}

func TestParse_Range(t *testing.T) {
	t.Parallel()

	source := []byte("int x;\n/** Hello {@literal <b>}. */\n")
	start := len("int x;\n")
	end := len(source) - 1

	c := doccomment.NewExtractor(langlevel.Default).Parse(source, start, end)
	assert.Equal(t, 2, c.Line)
	assert.Equal(t, 1, c.Column)
	assert.Equal(t, "Hello {@literal <b>}.", c.Description)
	require.Len(t, c.InlineTags, 1)
	assert.Equal(t, "<b>", c.InlineTags[0].Body)
	assert.Empty(t, c.Declaration)
}

func TestComment_Summary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		description string
		want        string
	}{
		{name: "empty", description: "", want: ""},
		{name: "single sentence", description: "Does a thing", want: "Does a thing"},
		{name: "first sentence", description: "First one. Second one.", want: "First one."},
		{name: "across lines", description: "Spans\n  two lines. Then more.", want: "Spans two lines."},
		{name: "abbreviation-like dot", description: "Uses java.util.List here", want: "Uses java.util.List here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := doccomment.Comment{Description: tt.description}
			assert.Equal(t, tt.want, c.Summary())
		})
	}
}
