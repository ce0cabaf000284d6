package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every diagnostic code with its default severity.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Codes describes the diagnostic codes listed by the full template.
	Codes []CodeInfo
}

// CodeInfo describes a diagnostic code for template generation.
type CodeInfo struct {
	Code        string
	Description string
	Severity    Severity
}

const templateHeader = `# javalex configuration
# See: https://github.com/yaklabco/javalex
`

const minimalBody = `
# Java language level used to gate syntax (1.3 through 25)
language_level: "%s"

# File extensions treated as Java source
extensions:
  - .java

# Number of parallel workers (0 = auto)
# jobs: 0

# Report runs of whitespace as a single token
# merge_whitespace: false

# Re-scan doc comments with the doc-comment lexer
# expand_docs: false

# Classify files with unknown extensions by content
# detect_language: false

# Scan dependency directories such as node_modules
# include_vendored: false

# Skip files larger than this many bytes (0 = no limit)
# max_file_size: 0

# File patterns to ignore (glob patterns)
# ignore:
#   - "build/**"
#   - "target/**"
`

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(templateHeader)
	fmt.Fprintf(&buf, minimalBody, NewConfig().LanguageLevel)

	if opts.Full && len(opts.Codes) > 0 {
		writeSeveritySection(&buf, opts.Codes)
	}

	if opts.Format == "json" {
		return templateToJSON(buf.Bytes())
	}

	return buf.Bytes(), nil
}

// writeSeveritySection documents each diagnostic code under a severity map.
func writeSeveritySection(buf *bytes.Buffer, codes []CodeInfo) {
	sorted := make([]CodeInfo, len(codes))
	copy(sorted, codes)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Code < sorted[j].Code
	})

	buf.WriteString("\n# Diagnostic severities: error, warning, info, or off\nseverity:\n")
	for _, info := range sorted {
		fmt.Fprintf(buf, "\n  # %s\n", wrapComment(info.Description, commentWrapWidth))
		fmt.Fprintf(buf, "  %s: %s\n", info.Code, info.Severity)
	}
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// templateToJSON converts the active (uncommented) settings of a YAML
// template to JSON.
func templateToJSON(yamlContent []byte) ([]byte, error) {
	var settings map[string]any
	if err := yaml.Unmarshal(yamlContent, &settings); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return strings.TrimSuffix(templateHeader, "\n")
}
