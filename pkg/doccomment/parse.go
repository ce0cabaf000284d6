package doccomment

import (
	"strings"

	"github.com/yaklabco/javalex/pkg/lexer"
	"github.com/yaklabco/javalex/pkg/token"
)

// valueTags take a reference-like first argument.
//
//nolint:gochecknoglobals // Read-only lookup table.
var valueTags = map[string]bool{
	"@param":       true,
	"@throws":      true,
	"@exception":   true,
	"@see":         true,
	"@serialField": true,
	"@uses":        true,
	"@provides":    true,
}

// inlineCapture accumulates one open inline tag.
type inlineCapture struct {
	offset  int
	name    string
	raw     strings.Builder
	body    strings.Builder
	section int
}

// bracketGroup is an unescaped [ ... ] span outside code, in source offsets.
type bracketGroup struct {
	start int
	end   int
}

// walker turns the doc token stream of one comment into sections.
type walker struct {
	content  []byte
	markdown bool

	sections []*strings.Builder
	tags     []Tag
	inline   []InlineTag

	// Line start handling: whitespace seen since the last line break is
	// held back until the first visible character decides how much of it
	// is indentation.
	atLineStart bool
	hadMarker   bool
	pending     string
	indent      int

	// Block tag value collection.
	valueOpen  bool
	valueParen int

	open []*inlineCapture

	fence        int
	bracketDepth int
	bracketOpen  int
	brackets     []bracketGroup
}

func newWalker(content []byte, markdown bool, indent int) *walker {
	return &walker{
		content:     content,
		markdown:    markdown,
		sections:    []*strings.Builder{{}},
		atLineStart: true,
		hadMarker:   true,
		indent:      indent,
	}
}

// section returns the builder receiving text right now.
func (w *walker) section() *strings.Builder {
	return w.sections[len(w.sections)-1]
}

// sectionIndex is -1 for the description, otherwise the tag index.
func (w *walker) sectionIndex() int {
	return len(w.sections) - 2
}

func (w *walker) walk(l lexer.Lexer) {
	for {
		tok := lexer.Current(l)
		if tok.Type == token.EOF {
			return
		}
		w.token(tok, string(tok.Text(w.content)))
		l.Advance()
	}
}

func (w *walker) token(tok token.Token, text string) {
	switch tok.Type {
	case token.DocCommentStart, token.DocCommentEnd:
		return

	case token.DocCommentLeadingAsterisks:
		if w.atLineStart {
			w.pending = ""
			w.hadMarker = true
			return
		}
		w.emit(text, false)

	case token.DocSpace:
		w.space(text)

	case token.DocInlineTagStart:
		w.emit(text, false)
		capture := &inlineCapture{offset: tok.StartOffset, section: w.sectionIndex()}
		capture.raw.WriteString(text)
		w.open = append(w.open, capture)

	case token.DocInlineTagEnd:
		if len(w.open) == 0 {
			w.emit(text, false)
			return
		}
		w.emit(text, true)
		w.closeInline()

	case token.DocTagName:
		switch {
		case len(w.open) > 0 && w.open[len(w.open)-1].name == "":
			w.emit(text, true)
			w.open[len(w.open)-1].name = text
		case len(w.open) == 0:
			w.startBlockTag(tok, text)
		default:
			w.emit(text, false)
		}

	case token.DocTagValueToken, token.DocTagValueDot, token.DocTagValueComma,
		token.DocTagValueLParen, token.DocTagValueRParen, token.DocTagValueSharp,
		token.DocTagValueLT, token.DocTagValueGT:
		if w.valueOpen && len(w.open) == 0 {
			w.appendValue(tok.Type, text)
			return
		}
		w.emit(text, false)

	case token.DocInlineCodeFence:
		w.closeValue()
		w.emit(text, false)
		switch {
		case w.fence == 0:
			w.fence = len(text)
		case w.fence == len(text):
			w.fence = 0
		}

	case token.DocLBracket, token.DocRBracket:
		w.closeValue()
		w.emit(text, false)
		w.bracket(tok)

	default:
		w.closeValue()
		w.emit(text, false)
	}
}

// space handles a whitespace token, which may cross line breaks.
func (w *walker) space(text string) {
	if w.valueOpen && len(w.open) == 0 {
		if w.valueParen > 0 {
			if tag := &w.tags[len(w.tags)-1]; !strings.HasSuffix(tag.Value, " ") {
				tag.Value += " "
			}
			return
		}
		if w.tags[len(w.tags)-1].Value != "" || strings.ContainsAny(text, "\r\n") {
			w.valueOpen = false
		}
		if !strings.ContainsAny(text, "\r\n") {
			return
		}
	}

	last := strings.LastIndexAny(text, "\r\n")
	if last < 0 {
		w.emit(text, false)
		return
	}

	for _, line := range splitLines(text[:last+1]) {
		w.emit(line, false)
		w.newline()
	}
	w.atLineStart = true
	w.hadMarker = false
	w.pending = text[last+1:]
}

// newline writes a line break to every sink, dropping held indentation.
func (w *walker) newline() {
	w.pending = ""
	w.atLineStart = false
	w.write("\n", false)
}

// emit writes visible text, first resolving held line-start indentation.
// skipTopBody keeps the text out of the innermost inline tag body.
func (w *walker) emit(text string, skipTopBody bool) {
	if text == "" {
		return
	}
	if w.atLineStart {
		trimmed := strings.TrimLeft(text, " \t\f")
		w.pending += text[:len(text)-len(trimmed)]
		if trimmed == "" {
			return
		}
		w.write(w.pending[w.stripWidth(w.pending):], false)
		w.pending = ""
		w.atLineStart = false
		text = trimmed
	}
	w.write(text, skipTopBody)
}

// stripWidth is how much of the indentation ws is removed.
func (w *walker) stripWidth(ws string) int {
	switch {
	case w.markdown:
		return min(len(ws), w.indent)
	case w.hadMarker:
		return min(len(ws), 1)
	default:
		return len(ws)
	}
}

func (w *walker) write(text string, skipTopBody bool) {
	if text == "" {
		return
	}
	w.section().WriteString(text)
	for i, capture := range w.open {
		capture.raw.WriteString(text)
		if capture.name == "" || (skipTopBody && i == len(w.open)-1) {
			continue
		}
		capture.body.WriteString(text)
	}
}

func (w *walker) closeInline() {
	capture := w.open[len(w.open)-1]
	w.open = w.open[:len(w.open)-1]
	w.inline = append(w.inline, InlineTag{
		Name:    capture.name,
		Body:    strings.TrimSpace(capture.body.String()),
		Raw:     capture.raw.String(),
		Offset:  capture.offset,
		Section: capture.section,
	})
}

func (w *walker) startBlockTag(tok token.Token, name string) {
	w.closeValue()
	w.pending = ""
	w.atLineStart = false
	w.tags = append(w.tags, Tag{Name: name, Offset: tok.StartOffset})
	w.sections = append(w.sections, &strings.Builder{})
	w.valueOpen = valueTags[name]
	w.valueParen = 0
}

func (w *walker) appendValue(typ token.Type, text string) {
	switch typ {
	case token.DocTagValueLParen:
		w.valueParen++
	case token.DocTagValueRParen:
		w.valueParen = max(w.valueParen-1, 0)
	}
	w.tags[len(w.tags)-1].Value += text
}

func (w *walker) closeValue() {
	w.valueOpen = false
	w.valueParen = 0
}

// bracket tracks unescaped markdown brackets outside code spans.
func (w *walker) bracket(tok token.Token) {
	if !w.markdown || w.fence > 0 {
		return
	}
	if tok.StartOffset > 0 && w.content[tok.StartOffset-1] == '\\' {
		return
	}
	if tok.Type == token.DocLBracket {
		if w.bracketDepth == 0 {
			w.bracketOpen = tok.StartOffset
		}
		w.bracketDepth++
		return
	}
	if w.bracketDepth == 0 {
		return
	}
	w.bracketDepth--
	if w.bracketDepth == 0 {
		w.brackets = append(w.brackets, bracketGroup{start: w.bracketOpen, end: tok.EndOffset})
	}
}

// finish builds the comment from the collected sections.
func (w *walker) finish(c *Comment) {
	for len(w.open) > 0 {
		w.closeInline()
	}

	c.Description = normalizeSection(w.sections[0].String())
	c.Tags = w.tags
	for i := range c.Tags {
		c.Tags[i].Text = strings.TrimLeft(normalizeSection(w.sections[i+1].String()), " \t")
	}
	c.InlineTags = w.inline
	for i := range c.InlineTags {
		c.InlineTags[i].Raw = trimLineEnds(c.InlineTags[i].Raw)
	}
}

// normalizeSection trims trailing space from every line and drops leading
// and trailing blank lines.
func normalizeSection(text string) string {
	lines := strings.Split(trimLineEnds(text), "\n")
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func trimLineEnds(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\f")
	}
	return strings.Join(lines, "\n")
}

// splitLines splits text ending in a line break into lines without their
// terminators, treating CRLF as one break.
func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	return lines
}
