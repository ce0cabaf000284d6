package runner_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/javalex/pkg/config"
	"github.com/yaklabco/javalex/pkg/fsutil"
	"github.com/yaklabco/javalex/pkg/langlevel"
	"github.com/yaklabco/javalex/pkg/runner"
	"github.com/yaklabco/javalex/pkg/token"
)

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.New(runner.Options{WorkingDir: t.TempDir()}).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.False(t, result.HasIssues())
}

func TestRunner_Run_AggregatesStats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"A.java": "class A {}\n",
		"B.java": "/** B. */\nclass B { String s = \"x; }\n",
		"C.java": "int # y;\n",
	})

	result, err := runner.New(runner.Options{
		WorkingDir: dir,
		Scan:       runner.ScanOptions{Level: langlevel.Highest},
	}).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, "A.java", filepath.Base(result.Files[0].Path))
	assert.Equal(t, "B.java", filepath.Base(result.Files[1].Path))
	assert.Equal(t, "C.java", filepath.Base(result.Files[2].Path))

	stats := result.Stats
	assert.Equal(t, 3, stats.FilesDiscovered)
	assert.Equal(t, 3, stats.FilesProcessed)
	assert.Equal(t, 2, stats.FilesWithIssues)
	assert.Equal(t, 2, stats.DiagnosticsTotal)
	assert.Equal(t, 1, stats.DocComments)
	assert.Equal(t, 2, stats.DiagnosticsBySeverity[config.SeverityError])
	assert.Equal(t, 1, stats.DiagnosticsByCode[runner.CodeUnterminatedLiteral])
	assert.Equal(t, 1, stats.DiagnosticsByCode[runner.CodeBadCharacter])
	assert.Equal(t, 3, stats.TokensByType[token.Keyword], "class, class and int")

	total := 0
	for _, f := range result.Files {
		total += f.TokenCount
	}
	assert.Equal(t, total, stats.TokensTotal)

	assert.True(t, result.HasIssues())
	assert.True(t, result.HasFailures())
	assert.Len(t, result.Diagnostics(), 2)
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := make(map[string]string)
	for i := range 20 {
		files[fmt.Sprintf("pkg%d/F%d.java", i%3, i)] = fmt.Sprintf("class F%d { char c = '%d; }\n", i, i)
	}
	writeTree(t, dir, files)

	run := func(jobs int) *runner.Result {
		result, err := runner.New(runner.Options{
			WorkingDir: dir,
			Jobs:       jobs,
			Scan:       runner.ScanOptions{Level: langlevel.Highest, KeepTokens: true},
		}).Run(context.Background())
		require.NoError(t, err)
		return result
	}

	serial := run(1)
	parallel := run(8)

	require.Len(t, parallel.Files, len(serial.Files))
	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
		assert.Equal(t, serial.Files[i].Tokens, parallel.Files[i].Tokens)
		assert.Equal(t, serial.Files[i].Diagnostics, parallel.Files[i].Diagnostics)
	}
	assert.Equal(t, serial.Stats, parallel.Stats)
}

func TestRunner_Run_ReadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"Small.java": "class S {}",
		"Big.java":   "class Big { /* padding padding padding padding */ }",
	})

	result, err := runner.New(runner.Options{
		WorkingDir:  dir,
		MaxFileSize: 20,
	}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.FilesProcessed)
	require.ErrorIs(t, result.Files[0].Error, fsutil.ErrTooLarge)
	assert.NoError(t, result.Files[1].Error)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"A.java": "class A {}"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New(runner.Options{WorkingDir: dir}).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.LanguageLevel = "17"
	cfg.Ignore = []string{"build"}
	cfg.ExpandDocs = config.Bool(true)
	cfg.Jobs = 3

	opts, err := runner.OptionsFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, langlevel.JDK17, opts.Scan.Level)
	assert.True(t, opts.Scan.ExpandDocs)
	assert.False(t, opts.Scan.MergeWhitespace)
	assert.Equal(t, []string{"build"}, opts.ExcludeGlobs)
	assert.Equal(t, 3, opts.Jobs)
	assert.Same(t, cfg, opts.Scan.Config)

	cfg.LanguageLevel = "bogus"
	_, err = runner.OptionsFromConfig(cfg)
	require.Error(t, err)
}

func TestNewResult(t *testing.T) {
	t.Parallel()

	outcome := runner.NewScanner(runner.ScanOptions{Level: langlevel.Highest}).Scan("<stdin>", []byte("x #"), 0)
	result := runner.NewResult(outcome)

	assert.Equal(t, 1, result.Stats.FilesProcessed)
	assert.Equal(t, 1, result.Stats.DiagnosticsTotal)
	assert.True(t, result.HasFailures())

	var nilResult *runner.Result
	assert.False(t, nilResult.HasFailures())
	assert.False(t, nilResult.HasIssues())
}
