package javalexer

// DecodeEscape returns the character at buf[offset] together with the number
// of bytes it occupies in the source.
//
// A backslash that starts a unicode escape (one or more 'u' followed by four
// hex digits, all before end) decodes to the UTF-16 code unit it names. A
// backslash preceded by an odd run of backslashes is itself escaped and
// never starts a unicode escape. Anything else is returned unchanged with a
// length of 1.
func DecodeEscape(buf []byte, offset, end int) (rune, int) {
	c := buf[offset]
	if c != '\\' {
		return rune(c), 1
	}

	pos := offset + 1
	if pos >= end || buf[pos] != 'u' {
		return '\\', 1
	}

	escaped := false
	for i := offset - 1; i >= 0 && buf[i] == '\\'; i-- {
		escaped = !escaped
	}
	if escaped {
		return '\\', 1
	}

	for pos < end && buf[pos] == 'u' {
		pos++
	}
	if pos+4 > end {
		return '\\', 1
	}

	var code rune
	for _, b := range buf[pos : pos+4] {
		digit, ok := hexValue(b)
		if !ok {
			return '\\', 1
		}
		code = code<<4 | digit
	}

	return code, pos + 4 - offset
}

func hexValue(b byte) (rune, bool) {
	switch {
	case b >= '0' && b <= '9':
		return rune(b - '0'), true
	case b >= 'a' && b <= 'f':
		return rune(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return rune(b-'A') + 10, true
	default:
		return 0, false
	}
}
