package javalexer

// Comment bodies are scanned on raw bytes: unicode escapes are not decoded
// inside comments, so */ does not close a block comment.

// lineTerminator returns the offset of the first '\n' or '\r' at or after
// offset, or the scan boundary.
func (l *Lexer) lineTerminator(offset int) int {
	pos := offset
	for pos < l.bufferEnd {
		if c := l.buf[pos]; c == '\n' || c == '\r' {
			break
		}
		pos++
	}
	return pos
}

// closingComment returns the offset just past the first "*/" at or after
// offset. Unterminated comments end at the scan boundary and are marked
// malformed.
func (l *Lexer) closingComment(offset int) int {
	pos := offset
	for pos < l.bufferEnd-1 {
		if l.buf[pos] == '*' && l.buf[pos+1] == '/' {
			return pos + 2
		}
		pos++
	}
	l.malformed = true
	return l.bufferEnd
}

// closingMarkdown returns the end of a run of /// lines whose first line
// body starts at offset. A line continues the run when, after one line
// terminator and optional horizontal whitespace, it starts with ///.
// The final line terminator is not part of the run.
func (l *Lexer) closingMarkdown(offset int) int {
	end := l.lineTerminator(offset)
	for end < l.bufferEnd {
		pos := end
		if l.buf[pos] == '\r' && pos+1 < l.bufferEnd && l.buf[pos+1] == '\n' {
			pos += 2
		} else {
			pos++
		}
		for pos < l.bufferEnd && isHorizontalSpace(l.buf[pos]) {
			pos++
		}
		if !l.hasPrefixAt(pos, "///") {
			break
		}
		end = l.lineTerminator(pos + 3)
	}
	return end
}

func (l *Lexer) hasPrefixAt(pos int, prefix string) bool {
	if pos+len(prefix) > l.bufferEnd {
		return false
	}
	return string(l.buf[pos:pos+len(prefix)]) == prefix
}

func isHorizontalSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\f'
}
