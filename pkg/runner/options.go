// Package runner tokenizes many Java files concurrently and turns recovered
// lexer errors into diagnostics.
package runner

import (
	"fmt"

	"github.com/yaklabco/javalex/pkg/config"
	"github.com/yaklabco/javalex/pkg/langlevel"
)

// Options controls multi-file scanning behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions considered Java source.
	// Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// DetectLanguage classifies extensionless files by content.
	DetectLanguage bool

	// IncludeVendored scans directories such as node_modules that are
	// skipped by default.
	IncludeVendored bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// MaxFileSize skips files larger than this many bytes. 0 means no limit.
	MaxFileSize int64

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Scan configures how each file is tokenized.
	Scan ScanOptions
}

// ScanOptions controls how a single buffer is tokenized.
type ScanOptions struct {
	// Level gates syntax in the Java and doc-comment lexers.
	Level langlevel.Level

	// MergeWhitespace reports adjacent whitespace and bad-character tokens
	// as a single token.
	MergeWhitespace bool

	// ExpandDocs replaces each doc comment token by its doc-comment tokens.
	ExpandDocs bool

	// KeepTokens retains the token list in each outcome. When false only
	// counts and diagnostics are kept.
	KeepTokens bool

	// Config supplies per-code severity overrides. May be nil.
	Config *config.Config
}

// DefaultExtensions returns the default set of Java file extensions.
func DefaultExtensions() []string {
	return []string{".java"}
}

// OptionsFromConfig derives runner options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	level, err := cfg.Level()
	if err != nil {
		return Options{}, fmt.Errorf("resolve language level: %w", err)
	}

	return Options{
		Extensions:      cfg.Extensions,
		ExcludeGlobs:    cfg.Ignore,
		DetectLanguage:  cfg.DetectLanguageEnabled(),
		IncludeVendored: cfg.IncludeVendoredEnabled(),
		MaxFileSize:     cfg.MaxFileSize,
		Jobs:            cfg.Jobs,
		Scan: ScanOptions{
			Level:           level,
			MergeWhitespace: cfg.MergeWhitespaceEnabled(),
			ExpandDocs:      cfg.ExpandDocsEnabled(),
			Config:          cfg,
		},
	}, nil
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
