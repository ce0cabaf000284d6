package langlevel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/javalex/pkg/langlevel"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    langlevel.Level
		wantErr bool
	}{
		{"1.3", langlevel.JDK1_3, false},
		{"1.8", langlevel.JDK1_8, false},
		{"8", langlevel.JDK1_8, false},
		{"JDK_1_8", langlevel.JDK1_8, false},
		{"jdk17", langlevel.JDK17, false},
		{" 21 ", langlevel.JDK21, false},
		{"25", langlevel.JDK25, false},
		{"2", 0, true},
		{"26", 0, true},
		{"latest", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := langlevel.Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1.4", langlevel.JDK1_4.String())
	assert.Equal(t, "1.8", langlevel.JDK1_8.String())
	assert.Equal(t, "9", langlevel.JDK9.String())
	assert.Equal(t, "21", langlevel.JDK21.String())

	for l := langlevel.JDK1_3; l <= langlevel.Highest; l++ {
		parsed, err := langlevel.Parse(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, parsed)
	}
}

func TestSupports(t *testing.T) {
	t.Parallel()

	assert.False(t, langlevel.JDK1_3.Supports(langlevel.AssertKeyword))
	assert.True(t, langlevel.JDK1_4.Supports(langlevel.AssertKeyword))
	assert.False(t, langlevel.JDK1_4.Supports(langlevel.EnumKeyword))
	assert.True(t, langlevel.JDK1_5.Supports(langlevel.Generics))
	assert.False(t, langlevel.JDK14.Supports(langlevel.TextBlocks))
	assert.True(t, langlevel.JDK15.Supports(langlevel.TextBlocks))
	assert.False(t, langlevel.JDK20.Supports(langlevel.StringTemplates))
	assert.True(t, langlevel.JDK23.Supports(langlevel.MarkdownDocComments))
	assert.False(t, langlevel.Highest.Supports(langlevel.Feature(99)))

	assert.Equal(t, langlevel.JDK15, langlevel.Minimum(langlevel.TextBlocks))
	assert.True(t, langlevel.JDK21.AtLeast(langlevel.JDK17))
}

func TestUnmarshalText(t *testing.T) {
	t.Parallel()

	var l langlevel.Level
	require.NoError(t, l.UnmarshalText([]byte("17")))
	assert.Equal(t, langlevel.JDK17, l)
	require.Error(t, l.UnmarshalText([]byte("x")))

	text, err := langlevel.JDK1_8.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1.8", string(text))
}
