package doccomment

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Renderer renders parsed doc comments as HTML fragments. Markdown comments
// go through a GFM markdown converter; classic comments are HTML already and
// only have their inline tags expanded.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Render writes c as an HTML fragment: the description followed by a
// definition list of block tags.
func (r *Renderer) Render(w io.Writer, c *Comment) error {
	var out bytes.Buffer

	out.WriteString(`<div class="description">`)
	description, err := r.section(c, -1, c.Description)
	if err != nil {
		return err
	}
	out.WriteString(description)
	out.WriteString("</div>\n")

	if len(c.Tags) > 0 {
		out.WriteString("<dl class=\"tags\">\n")
		for i, tag := range c.Tags {
			text, err := r.section(c, i, tag.Text)
			if err != nil {
				return err
			}
			out.WriteString("<dt>" + escape(tag.Name) + "</dt><dd>")
			if tag.Value != "" {
				out.WriteString("<code>" + escape(tag.Value) + "</code>")
				if text != "" {
					out.WriteByte(' ')
				}
			}
			out.WriteString(text)
			out.WriteString("</dd>\n")
		}
		out.WriteString("</dl>\n")
	}

	if _, err := w.Write(out.Bytes()); err != nil {
		return fmt.Errorf("write rendered comment: %w", err)
	}
	return nil
}

// replacement swaps one source fragment of a section for HTML.
type replacement struct {
	offset int
	raw    string
	html   string
}

// section renders the description (index -1) or the text of block tag index.
func (r *Renderer) section(c *Comment, index int, text string) (string, error) {
	var repl []replacement
	for _, tag := range c.InlineTags {
		if tag.Section == index {
			repl = append(repl, replacement{offset: tag.Offset, raw: tag.Raw, html: expandInline(tag)})
		}
	}
	if c.Markdown {
		for _, ref := range c.References {
			if ref.Kind == RefMarkdown {
				repl = append(repl, replacement{offset: ref.Offset, raw: ref.Raw, html: anchor(ref.Target, ref.Text(), true)})
			}
		}
	}
	slices.SortStableFunc(repl, func(a, b replacement) int {
		return a.offset - b.offset
	})
	text = substitute(text, repl)

	if !c.Markdown {
		return text, nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	rendered := strings.TrimSpace(buf.String())
	if index >= 0 && strings.Count(rendered, "<p>") == 1 {
		rendered = strings.TrimSuffix(strings.TrimPrefix(rendered, "<p>"), "</p>")
	}
	return rendered, nil
}

// substitute applies replacements in order, each searched for after the
// previous one. Replacements whose text is not found are skipped.
func substitute(text string, repl []replacement) string {
	var builder strings.Builder
	cursor := 0
	for _, rp := range repl {
		if rp.raw == "" {
			continue
		}
		idx := strings.Index(text[cursor:], rp.raw)
		if idx < 0 {
			continue
		}
		builder.WriteString(text[cursor : cursor+idx])
		builder.WriteString(rp.html)
		cursor += idx + len(rp.raw)
	}
	builder.WriteString(text[cursor:])
	return builder.String()
}

func expandInline(tag InlineTag) string {
	switch tag.Name {
	case "@code":
		return "<code>" + escape(tag.Body) + "</code>"
	case "@literal":
		return escape(tag.Body)
	case "@link", "@linkplain":
		target, label := splitReference(tag.Body)
		if label == "" {
			label = target
		}
		return anchor(target, label, tag.Name == "@link")
	default:
		return "<code>" + escape(tag.Raw) + "</code>"
	}
}

func anchor(target, label string, code bool) string {
	text := escape(label)
	if code {
		text = "<code>" + text + "</code>"
	}
	return `<a href="#` + escape(target) + `">` + text + "</a>"
}

func escape(text string) string {
	return string(util.EscapeHTML([]byte(text)))
}
