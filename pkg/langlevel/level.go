// Package langlevel models the Java language level used to gate syntax.
package langlevel

import (
	"fmt"
	"strconv"
	"strings"
)

// Level is an ordered Java language level. Larger values are newer.
type Level int

// Known language levels.
const (
	JDK1_3 Level = iota
	JDK1_4
	JDK1_5
	JDK1_6
	JDK1_7
	JDK1_8
	JDK9
	JDK10
	JDK11
	JDK12
	JDK13
	JDK14
	JDK15
	JDK16
	JDK17
	JDK18
	JDK19
	JDK20
	JDK21
	JDK22
	JDK23
	JDK24
	JDK25
)

// Highest is the newest level this module knows about.
const Highest = JDK25

// Default is the level used when none is configured.
const Default = Highest

// Feature names a piece of syntax gated by a minimum level.
type Feature int

// Features consulted by the lexers.
const (
	AssertKeyword Feature = iota
	EnumKeyword
	Generics
	TextBlocks
	StringTemplates
	MarkdownDocComments
)

//nolint:gochecknoglobals // Read-only lookup table.
var featureMinimum = map[Feature]Level{
	AssertKeyword:       JDK1_4,
	EnumKeyword:         JDK1_5,
	Generics:            JDK1_5,
	TextBlocks:          JDK15,
	StringTemplates:     JDK21,
	MarkdownDocComments: JDK23,
}

// AtLeast reports whether l is the same as or newer than other.
func (l Level) AtLeast(other Level) bool {
	return l >= other
}

// Supports reports whether the feature is available at this level.
func (l Level) Supports(f Feature) bool {
	minimum, ok := featureMinimum[f]
	if !ok {
		return false
	}
	return l >= minimum
}

// Minimum returns the oldest level supporting f.
func Minimum(f Feature) Level {
	return featureMinimum[f]
}

// Major returns the feature release number (3 for 1.3, 8 for 1.8, 21 for 21).
func (l Level) Major() int {
	return int(l) + 3
}

// String returns the conventional name of the level ("1.8", "17").
func (l Level) String() string {
	major := l.Major()
	if major <= 8 {
		return "1." + strconv.Itoa(major)
	}
	return strconv.Itoa(major)
}

// IsValid reports whether l is a known level.
func (l Level) IsValid() bool {
	return l >= JDK1_3 && l <= Highest
}

// Parse converts "1.8", "8", "JDK_1_8", "jdk17" or "21" into a Level.
func Parse(text string) (Level, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.TrimPrefix(s, "jdk")
	s = strings.TrimPrefix(s, "_")
	s = strings.ReplaceAll(s, "_", ".")
	s = strings.TrimPrefix(s, "1.")

	major, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid language level %q", text)
	}

	level := Level(major - 3)
	if !level.IsValid() {
		return 0, fmt.Errorf("unsupported language level %q: must be between %s and %s", text, JDK1_3, Highest)
	}
	return level, nil
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
