package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/javalex/pkg/runner"
)

// writeTree creates files (slash-separated, relative to dir) with content.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func discover(t *testing.T, opts runner.Options) []string {
	t.Helper()
	files, err := runner.Discover(context.Background(), opts)
	require.NoError(t, err)

	rel := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(opts.WorkingDir, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	return rel
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/main/java/App.java":  "class App {}",
		"src/main/java/Util.JAVA": "class Util {}",
		"src/test/java/AppT.java": "class AppT {}",
		"README.md":               "# readme",
		"build.gradle":            "plugins {}",
	})

	got := discover(t, runner.Options{WorkingDir: dir})
	assert.Equal(t, []string{
		"src/main/java/App.java",
		"src/main/java/Util.JAVA",
		"src/test/java/AppT.java",
	}, got)
}

func TestDiscover_SingleFileBypassesExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"Snippet.txt": "int x = 1;"})

	got := discover(t, runner.Options{WorkingDir: dir, Paths: []string{"Snippet.txt"}})
	assert.Equal(t, []string{"Snippet.txt"}, got)
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"A.java": "",
		"B.jav":  "",
		"C.kt":   "",
	})

	got := discover(t, runner.Options{WorkingDir: dir, Extensions: []string{".jav"}})
	assert.Equal(t, []string{"B.jav"}, got)
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/App.java":                     "",
		"src/generated/Parser.java":        "",
		"target/classes/Gen.java":          "",
		"module/target/Other.java":         "",
		"src/AppTest.java":                 "",
		"src/deep/nested/generated/X.java": "",
	})

	got := discover(t, runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"target", "**/generated/**", "*Test.java"},
	})
	assert.Equal(t, []string{"src/App.java"}, got)
}

func TestDiscover_HiddenAndVendored(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"App.java":                "",
		".Hidden.java":            "",
		".git/Config.java":        "",
		"node_modules/lib/X.java": "",
		"vendor/acme/Vendor.java": "",
	})

	got := discover(t, runner.Options{WorkingDir: dir})
	assert.Equal(t, []string{"App.java"}, got)

	got = discover(t, runner.Options{WorkingDir: dir, IncludeVendored: true})
	assert.Equal(t, []string{"App.java", "node_modules/lib/X.java", "vendor/acme/Vendor.java"}, got)
}

func TestDiscover_DetectLanguage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"launch/hello": "#!/usr/bin/java --source 21\nclass Hello {}\n",
		"launch/notes": "just some words",
		"App.java":     "",
	})

	got := discover(t, runner.Options{WorkingDir: dir})
	assert.Equal(t, []string{"App.java"}, got)

	got = discover(t, runner.Options{WorkingDir: dir, DetectLanguage: true})
	assert.Equal(t, []string{"App.java", "launch/hello"}, got)
}

func TestDiscover_Deduplication(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"src/A.java": ""})

	got := discover(t, runner.Options{WorkingDir: dir, Paths: []string{".", "src", "src/A.java"}})
	assert.Equal(t, []string{"src/A.java"}, got)
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"missing"},
	})
	require.Error(t, err)
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"real/Doc.java": ""})

	external := t.TempDir()
	writeTree(t, external, map[string]string{"External.java": ""})

	if err := os.Symlink(external, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	got := discover(t, runner.Options{WorkingDir: dir})
	assert.Equal(t, []string{"real/Doc.java"}, got)

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.ElementsMatch(t, []string{"Doc.java", "External.java"}, names)
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{".java"}, runner.DefaultExtensions())
}
