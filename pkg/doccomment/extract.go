package doccomment

import (
	"bytes"
	"slices"
	"strings"

	"github.com/yaklabco/javalex/pkg/javadoc"
	"github.com/yaklabco/javalex/pkg/javalexer"
	"github.com/yaklabco/javalex/pkg/langlevel"
	"github.com/yaklabco/javalex/pkg/lexer"
	"github.com/yaklabco/javalex/pkg/token"
)

// maxDeclaration caps the declaration text kept per comment.
const maxDeclaration = 200

// Extractor finds and parses the doc comments of Java source buffers.
// An Extractor is not safe for concurrent use.
type Extractor struct {
	java *javalexer.Lexer
	docs *javadoc.Lexer
	refs *javalexer.BracketEscapeLexer
}

// NewExtractor creates an extractor for the given language level.
func NewExtractor(level langlevel.Level) *Extractor {
	return &Extractor{
		java: javalexer.New(level),
		docs: javadoc.New(level),
		refs: javalexer.NewBracketEscapeLexer(javalexer.New(level)),
	}
}

// Extract returns every doc comment in content, in source order.
func (e *Extractor) Extract(content []byte) []Comment {
	tokens := lexer.TokenizeAll(e.java, content)
	lines := token.BuildLines(content)

	var comments []Comment
	for i, tok := range tokens {
		if !tok.Type.IsDocComment() {
			continue
		}
		c := e.parse(content, tok.StartOffset, tok.EndOffset, lines)
		c.Declaration = declaration(content, tokens[i+1:])
		comments = append(comments, c)
	}
	return comments
}

// Parse parses the doc comment occupying content[start:end]. The range must
// be exactly one DocComment or MarkdownDocComment token.
func (e *Extractor) Parse(content []byte, start, end int) Comment {
	return e.parse(content, start, end, token.BuildLines(content))
}

func (e *Extractor) parse(content []byte, start, end int, lines *token.Lines) Comment {
	c := Comment{StartOffset: start, EndOffset: end}
	c.Line, c.Column = lines.LineAt(start)

	e.docs.Start(content, start, end, 0)
	c.Markdown = e.docs.Markdown()

	indent := 0
	if c.Markdown {
		indent = markdownIndent(content[start:end])
	}

	w := newWalker(content, c.Markdown, indent)
	w.walk(e.docs)
	w.finish(&c)

	c.References = e.references(content, w)
	return c
}

// markdownIndent is the indentation common to every non-blank /// line,
// measured after the slashes.
func markdownIndent(text []byte) int {
	indent := -1
	for _, line := range bytes.Split(text, []byte("\n")) {
		line = bytes.TrimLeft(line, " \t\f")
		line = bytes.TrimPrefix(line, []byte(markdownSlashes))
		body := bytes.TrimLeft(line, " \t\f")
		if len(bytes.TrimSpace(body)) == 0 {
			continue
		}
		width := len(line) - len(body)
		if indent < 0 || width < indent {
			indent = width
		}
	}
	return max(indent, 0)
}

const markdownSlashes = "///"

// declaration collapses the tokens following a doc comment up to the first
// body, initializer or terminator into one line of source.
func declaration(content []byte, rest []token.Token) string {
	var builder strings.Builder
	gap := false
	for _, tok := range rest {
		switch {
		case tok.Type == token.WhiteSpace || (tok.Type.IsComment() && !tok.Type.IsDocComment()):
			gap = builder.Len() > 0
			continue
		case tok.Type.IsDocComment():
			return builder.String()
		}
		switch tok.Type {
		case token.LBrace, token.RBrace, token.Semicolon, token.Eq, token.Arrow:
			return builder.String()
		}
		if gap {
			builder.WriteByte(' ')
			gap = false
		}
		builder.Write(tok.Text(content))
		if builder.Len() >= maxDeclaration {
			return builder.String()[:maxDeclaration]
		}
	}
	return builder.String()
}

// references collects the element references of a walked comment, ordered
// by source offset.
func (e *Extractor) references(content []byte, w *walker) []Reference {
	var refs []Reference

	for _, tag := range w.inline {
		var kind ReferenceKind
		switch tag.Name {
		case "@link":
			kind = RefLink
		case "@linkplain":
			kind = RefLinkPlain
		default:
			continue
		}
		target, label := splitReference(tag.Body)
		if target == "" {
			continue
		}
		refs = append(refs, Reference{Kind: kind, Target: target, Label: label, Offset: tag.Offset})
	}

	for _, tag := range w.tags {
		if tag.Value == "" {
			continue
		}
		switch tag.Name {
		case "@see":
			refs = append(refs, Reference{Kind: RefSee, Target: tag.Value, Label: tag.Text, Offset: tag.Offset})
		case "@throws", "@exception":
			refs = append(refs, Reference{Kind: RefThrows, Target: tag.Value, Offset: tag.Offset})
		}
	}

	refs = append(refs, e.markdownReferences(content, w.brackets)...)

	slices.SortStableFunc(refs, func(a, b Reference) int {
		return a.Offset - b.Offset
	})
	return refs
}

// markdownReferences turns bracket groups into reference links. Adjacent
// groups form a full reference [label][target]; a lone group is a collapsed
// reference [target]. Groups followed by '(' or ':' are ordinary markdown
// links or link definitions.
func (e *Extractor) markdownReferences(content []byte, groups []bracketGroup) []Reference {
	var refs []Reference
	for i := 0; i < len(groups); i++ {
		g := groups[i]
		if i+1 < len(groups) && groups[i+1].start == g.end {
			full := groups[i+1]
			i++
			if followedByLink(content, full.end) {
				continue
			}
			target, ok := e.validReference(content, full.start+1, full.end-1)
			if !ok {
				continue
			}
			refs = append(refs, Reference{
				Kind:   RefMarkdown,
				Target: target,
				Label:  string(content[g.start+1 : g.end-1]),
				Raw:    string(content[g.start:full.end]),
				Offset: g.start,
			})
			continue
		}
		if followedByLink(content, g.end) {
			continue
		}
		target, ok := e.validReference(content, g.start+1, g.end-1)
		if !ok {
			continue
		}
		refs = append(refs, Reference{
			Kind:   RefMarkdown,
			Target: target,
			Raw:    string(content[g.start:g.end]),
			Offset: g.start,
		})
	}
	return refs
}

func followedByLink(content []byte, offset int) bool {
	return offset < len(content) && (content[offset] == '(' || content[offset] == ':')
}

// validReference lexes content[start:end] as Java and accepts it when it
// reads as a program element reference such as "List#add(int, Object)" or
// "String[]". It returns the reference with escapes and spacing normalized.
func (e *Extractor) validReference(content []byte, start, end int) (string, bool) {
	if start >= end {
		return "", false
	}

	var builder strings.Builder
	depth := 0
	e.refs.Start(content, start, end, 0)
	for tok := lexer.Current(e.refs); tok.Type != token.EOF; tok = lexer.Current(e.refs) {
		text := tok.Text(content)
		switch tok.Type {
		case token.WhiteSpace:
			if depth == 0 || bytes.ContainsAny(text, "\r\n") {
				return "", false
			}
		case token.Identifier, token.Keyword, token.TrueKeyword, token.FalseKeyword,
			token.NullKeyword, token.Dot, token.Ellipsis:
			builder.Write(text)
		case token.Comma:
			builder.WriteString(", ")
		case token.LParenth:
			depth++
			builder.Write(text)
		case token.RParenth:
			if depth == 0 {
				return "", false
			}
			depth--
			builder.Write(text)
		case token.LBracket, token.RBracket:
			builder.WriteByte(text[len(text)-1])
		case token.BadCharacter:
			if string(text) != "#" {
				return "", false
			}
			builder.Write(text)
		default:
			return "", false
		}
		e.refs.Advance()
	}

	if depth != 0 || builder.Len() == 0 {
		return "", false
	}
	return builder.String(), true
}

// splitReference splits an inline link body into its target and label at
// the first whitespace outside parentheses.
func splitReference(body string) (string, string) {
	depth := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '(':
			depth++
		case ')':
			depth = max(depth-1, 0)
		case ' ', '\t', '\n', '\r', '\f':
			if depth == 0 {
				return body[:i], strings.Join(strings.Fields(body[i:]), " ")
			}
		}
	}
	return body, ""
}
