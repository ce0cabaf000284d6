// Package doccomment extracts and parses Java doc comments: classic /** */
// blocks and /// markdown runs. It strips comment markers, splits the body
// into a description and block tags, collects inline tags and references,
// and renders comments as HTML.
package doccomment

import (
	"strings"
)

// Comment is one parsed doc comment.
type Comment struct {
	// StartOffset and EndOffset delimit the comment in the source buffer.
	StartOffset int `json:"startOffset"`
	EndOffset   int `json:"endOffset"`

	// Line and Column locate the comment start (1-based, byte columns).
	Line   int `json:"line"`
	Column int `json:"column"`

	// Markdown is set for /// comments.
	Markdown bool `json:"markdown"`

	// Description is the text before the first block tag, markers stripped.
	Description string `json:"description"`

	// Tags are the block tags in source order.
	Tags []Tag `json:"tags,omitempty"`

	// InlineTags are the inline tags in source order, including those inside
	// block tag text.
	InlineTags []InlineTag `json:"inlineTags,omitempty"`

	// References are the program element references found in the comment.
	References []Reference `json:"references,omitempty"`

	// Declaration is the source of the declaration that follows the
	// comment, whitespace collapsed. Empty for dangling comments.
	Declaration string `json:"declaration,omitempty"`
}

// Summary returns the first sentence of the description, whitespace
// collapsed.
func (c *Comment) Summary() string {
	text := strings.Join(strings.Fields(c.Description), " ")
	if idx := strings.Index(text, ". "); idx >= 0 {
		return text[:idx+1]
	}
	return text
}

// TagsNamed returns the block tags called name, such as "@param".
func (c *Comment) TagsNamed(name string) []Tag {
	var out []Tag
	for _, tag := range c.Tags {
		if tag.Name == name {
			out = append(out, tag)
		}
	}
	return out
}

// Tag is a block tag such as "@param count the number of items".
type Tag struct {
	// Name includes the leading '@'.
	Name string `json:"name"`

	// Value is the reference-like argument of tags that take one (@param,
	// @throws, @exception, @see, @serialField, @uses, @provides).
	Value string `json:"value,omitempty"`

	// Text is the remaining tag text.
	Text string `json:"text,omitempty"`

	// Offset is the source offset of the tag name.
	Offset int `json:"offset"`
}

// InlineTag is an inline tag such as "{@code a + b}".
type InlineTag struct {
	// Name includes the leading '@'.
	Name string `json:"name"`

	// Body is the text between the name and the closing brace, trimmed.
	Body string `json:"body"`

	// Raw is the tag as it appears in the stripped section text.
	Raw string `json:"raw,omitempty"`

	// Offset is the source offset of the opening brace.
	Offset int `json:"offset"`

	// Section is -1 when the tag is part of the description, otherwise the
	// index of the block tag whose text contains it.
	Section int `json:"section"`
}

// ReferenceKind says where a reference came from.
type ReferenceKind string

// Reference kinds.
const (
	RefLink      ReferenceKind = "link"
	RefLinkPlain ReferenceKind = "linkplain"
	RefSee       ReferenceKind = "see"
	RefThrows    ReferenceKind = "throws"
	RefMarkdown  ReferenceKind = "markdown"
)

// Reference is a link to a program element, such as "List#add(Object)".
type Reference struct {
	Kind ReferenceKind `json:"kind"`

	// Target is the element reference with escapes removed.
	Target string `json:"target"`

	// Label is the link text, when one was given.
	Label string `json:"label,omitempty"`

	// Raw is the source text of a markdown reference link, brackets included.
	Raw string `json:"raw,omitempty"`

	// Offset is the source offset where the reference starts.
	Offset int `json:"offset"`
}

// Text returns the label when present, otherwise the target.
func (r Reference) Text() string {
	if r.Label != "" {
		return r.Label
	}
	return r.Target
}
