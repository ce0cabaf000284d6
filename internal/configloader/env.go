package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/javalex/pkg/config"
)

// envVarPrefix is the prefix for all javalex environment variables.
const envVarPrefix = "JAVALEX_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"LANGUAGE_LEVEL":   {field: "language_level", typ: envTypeString, description: "Java language level (1.3 through 25)"},
	"JOBS":             {field: "jobs", typ: envTypeInt, description: "Number of parallel workers (0 = auto)"},
	"IGNORE":           {field: "ignore", typ: envTypeSlice, description: "Comma-separated list of ignore patterns"},
	"EXTENSIONS":       {field: "extensions", typ: envTypeSlice, description: "Comma-separated list of Java file extensions"},
	"MERGE_WHITESPACE": {field: "merge_whitespace", typ: envTypeBool, description: "Merge whitespace runs: true or false"},
	"EXPAND_DOCS":      {field: "expand_docs", typ: envTypeBool, description: "Expand doc comments: true or false"},
	"DETECT_LANGUAGE":  {field: "detect_language", typ: envTypeBool, description: "Classify unknown files by content: true or false"},
	"INCLUDE_VENDORED": {field: "include_vendored", typ: envTypeBool, description: "Scan vendored directories: true or false"},
	"MAX_FILE_SIZE":    {field: "max_file_size", typ: envTypeInt, description: "Skip files larger than this many bytes"},
	"FORMAT":           {field: "format", typ: envTypeString, description: "Output format: text, table, json, or summary"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with JAVALEX_ (e.g., JAVALEX_LANGUAGE_LEVEL).
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.LookupEnv)
}

// loadFromLookup applies overrides using lookup, in a stable order so the
// first reported error does not depend on map iteration.
func loadFromLookup(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)

	for _, suffix := range suffixes {
		envVar := envVarPrefix + suffix
		value, ok := lookup(envVar)
		if !ok || value == "" {
			continue
		}

		if err := applyEnvValue(cfg, envMappings[suffix], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "language_level":
		cfg.LanguageLevel = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "merge_whitespace":
		cfg.MergeWhitespace = config.Bool(value)
	case "expand_docs":
		cfg.ExpandDocs = config.Bool(value)
	case "detect_language":
		cfg.DetectLanguage = config.Bool(value)
	case "include_vendored":
		cfg.IncludeVendored = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int64) error {
	switch field {
	case "jobs":
		cfg.Jobs = int(value)
	case "max_file_size":
		cfg.MaxFileSize = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "extensions":
		cfg.Extensions = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		out[envVarPrefix+suffix] = mapping.description
	}
	return out
}
