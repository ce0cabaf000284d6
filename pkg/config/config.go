// Package config defines core configuration types for javalex.
// These types are pure data structures; discovery and merging live in the
// configloader package.
package config

import (
	"fmt"

	"github.com/yaklabco/javalex/pkg/langlevel"
)

// Severity represents the severity level of a scan diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"

	// SeverityOff suppresses a diagnostic code entirely.
	SeverityOff Severity = "off"
)

// IsValid returns true if the severity is known.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo, SeverityOff:
		return true
	default:
		return false
	}
}

// Rank orders severities from most to least severe; lower is worse.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	default:
		return 3
	}
}

// Config is the root configuration structure for javalex.
type Config struct {
	// LanguageLevel is the Java level used to gate syntax ("1.8", "17", "21").
	// Empty means langlevel.Default.
	LanguageLevel string `yaml:"language_level,omitempty"`

	// Extensions lists the file extensions treated as Java source.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// Jobs specifies the number of parallel workers (0 = auto).
	Jobs int `yaml:"jobs,omitempty"`

	// MergeWhitespace reports runs of whitespace and comment data as one token.
	MergeWhitespace *bool `yaml:"merge_whitespace,omitempty"`

	// ExpandDocs re-scans doc comments with the doc-comment lexer.
	ExpandDocs *bool `yaml:"expand_docs,omitempty"`

	// DetectLanguage classifies files with unknown extensions by content.
	DetectLanguage *bool `yaml:"detect_language,omitempty"`

	// IncludeVendored scans dependency directories such as node_modules.
	IncludeVendored *bool `yaml:"include_vendored,omitempty"`

	// MaxFileSize skips files larger than this many bytes (0 = no limit).
	MaxFileSize int64 `yaml:"max_file_size,omitempty"`

	// Severity overrides the severity of individual diagnostic codes.
	Severity map[string]Severity `yaml:"severity,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Color is the color mode: auto, always or never.
	Color ColorMode `yaml:"-"`

	// Output is a file path to write the report to instead of stdout.
	Output string `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		LanguageLevel:   langlevel.Default.String(),
		Extensions:      []string{".java"},
		Jobs:            0, // 0 means use GOMAXPROCS
		MergeWhitespace: Bool(false),
		ExpandDocs:      Bool(false),
		DetectLanguage:  Bool(false),
		IncludeVendored: Bool(false),
		Severity:        make(map[string]Severity),
		Format:          FormatText,
		Color:           ColorAuto,
	}
}

// Bool returns a pointer to v, for populating optional fields.
func Bool(v bool) *bool {
	return &v
}

func boolValue(v *bool) bool {
	return v != nil && *v
}

// Level resolves LanguageLevel, falling back to langlevel.Default when unset.
func (c *Config) Level() (langlevel.Level, error) {
	if c == nil || c.LanguageLevel == "" {
		return langlevel.Default, nil
	}
	level, err := langlevel.Parse(c.LanguageLevel)
	if err != nil {
		return 0, fmt.Errorf("language_level: %w", err)
	}
	return level, nil
}

// MergeWhitespaceEnabled reports whether token merging is on.
func (c *Config) MergeWhitespaceEnabled() bool {
	return c != nil && boolValue(c.MergeWhitespace)
}

// ExpandDocsEnabled reports whether doc comments are expanded.
func (c *Config) ExpandDocsEnabled() bool {
	return c != nil && boolValue(c.ExpandDocs)
}

// DetectLanguageEnabled reports whether content-based detection is on.
func (c *Config) DetectLanguageEnabled() bool {
	return c != nil && boolValue(c.DetectLanguage)
}

// IncludeVendoredEnabled reports whether vendored directories are scanned.
func (c *Config) IncludeVendoredEnabled() bool {
	return c != nil && boolValue(c.IncludeVendored)
}

// SeverityFor returns the configured severity for a diagnostic code, or def
// when the code has no override.
func (c *Config) SeverityFor(code string, def Severity) Severity {
	if c == nil {
		return def
	}
	if sev, ok := c.Severity[code]; ok && sev != "" {
		return sev
	}
	return def
}
