package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/javalex/internal/ui/pretty"
	"github.com/yaklabco/javalex/pkg/token"
)

func TestFormatToken(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	buf := []byte("return \"hi\\n\";")

	out := styles.FormatToken(token.Token{Type: token.StringLiteral, StartOffset: 7, EndOffset: 13}, buf, 2, 8)

	assert.True(t, strings.HasPrefix(out, "  2:8 "))
	assert.Contains(t, out, "STRING_LITERAL")
	assert.Contains(t, out, `"\"hi\\n\""`)
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestQuoteTokenText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"a\tb"`, pretty.QuoteTokenText([]byte("a\tb")))

	long := []byte(strings.Repeat("x", 100))
	quoted := pretty.QuoteTokenText(long)
	assert.True(t, strings.HasSuffix(quoted, `"...`))
	assert.Less(t, len(quoted), 100)
}
