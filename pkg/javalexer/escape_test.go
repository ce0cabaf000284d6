package javalexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/javalex/pkg/javalexer"
)

func TestDecodeEscape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		content    string
		offset     int
		end        int // 0 means len(content)
		wantChar   rune
		wantLength int
	}{
		{"plain character", "a", 0, 0, 'a', 1},
		{"simple escape", `\u0041`, 0, 0, 'A', 6},
		{"lowercase hex", `\u00e9`, 0, 0, '\u00e9', 6},
		{"repeated u", `\uuu0041`, 0, 0, 'A', 8},
		{"quote escape", `\u0022`, 0, 0, '"', 6},
		{"escaped backslash", `\\u0041`, 1, 0, '\\', 1},
		{"backslash before backslash", `\\u0041`, 0, 0, '\\', 1},
		{"two backslashes before escape", `\\\u0041`, 2, 0, 'A', 6},
		{"three backslashes before escape", `\\\\u0041`, 3, 0, '\\', 1},
		{"four backslashes before escape", `\\\\\u0041`, 4, 0, 'A', 6},
		{"too few digits", `\u004`, 0, 0, '\\', 1},
		{"bad hex digit", `\u00g1`, 0, 0, '\\', 1},
		{"not a unicode escape", `\n`, 0, 0, '\\', 1},
		{"lone backslash", `\`, 0, 0, '\\', 1},
		{"digits past boundary", `\u0041`, 0, 5, '\\', 1},
		{"mid buffer", `x\u0078y`, 1, 0, 'x', 6},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			buf := []byte(testCase.content)
			end := testCase.end
			if end == 0 {
				end = len(buf)
			}

			gotChar, gotLength := javalexer.DecodeEscape(buf, testCase.offset, end)
			assert.Equal(t, testCase.wantChar, gotChar)
			assert.Equal(t, testCase.wantLength, gotLength)
		})
	}
}

func TestPackState(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, javalexer.PackState(false, 0))

	textBlock, depth := javalexer.UnpackState(javalexer.PackState(true, 3))
	assert.True(t, textBlock)
	assert.Equal(t, 3, depth)

	textBlock, depth = javalexer.UnpackState(javalexer.PackState(false, 1))
	assert.False(t, textBlock)
	assert.Equal(t, 1, depth)
}
