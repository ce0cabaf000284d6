package token

import "sort"

// LineInfo holds the byte range of one source line.
type LineInfo struct {
	// StartOffset is the byte index of the first byte of the line.
	StartOffset int

	// NewlineStart is the byte index where the line terminator begins,
	// or the end of content for the last line.
	NewlineStart int

	// EndOffset is the byte index just past the line terminator.
	EndOffset int
}

// Lines maps byte offsets in a buffer to 1-based line and column numbers.
type Lines struct {
	content []byte
	lines   []LineInfo
}

// BuildLines constructs line metadata from content.
// It handles LF, CRLF and lone CR line endings, matching the lexer's notion
// of a line terminator.
func BuildLines(content []byte) *Lines {
	idx := &Lines{content: content}
	if len(content) == 0 {
		return idx
	}

	lineStart := 0
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			newlineStart := i
			if i > 0 && content[i-1] == '\r' {
				newlineStart = i - 1
			}
			idx.lines = append(idx.lines, LineInfo{StartOffset: lineStart, NewlineStart: newlineStart, EndOffset: i + 1})
			lineStart = i + 1
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				continue
			}
			idx.lines = append(idx.lines, LineInfo{StartOffset: lineStart, NewlineStart: i, EndOffset: i + 1})
			lineStart = i + 1
		}
	}

	idx.lines = append(idx.lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return idx
}

// Count returns the number of lines.
func (l *Lines) Count() int {
	return len(l.lines)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
// Returns (0, 0) if the offset is out of range.
func (l *Lines) LineAt(offset int) (int, int) {
	if offset < 0 || len(l.lines) == 0 {
		return 0, 0
	}

	if offset >= len(l.content) {
		last := l.lines[len(l.lines)-1]
		return len(l.lines), offset - last.StartOffset + 1
	}

	lineIdx := sort.Search(len(l.lines), func(i int) bool {
		return l.lines[i].EndOffset > offset
	})
	if lineIdx >= len(l.lines) {
		lineIdx = len(l.lines) - 1
	}

	info := l.lines[lineIdx]
	if offset < info.StartOffset {
		return 0, 0
	}

	return lineIdx + 1, offset - info.StartOffset + 1
}

// LineContent returns the content of a 1-based line number, excluding the terminator.
// Returns nil if the line number is out of range.
func (l *Lines) LineContent(line int) []byte {
	if line < 1 || line > len(l.lines) {
		return nil
	}

	info := l.lines[line-1]
	return l.content[info.StartOffset:info.NewlineStart]
}
