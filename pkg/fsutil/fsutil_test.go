package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/javalex/pkg/fsutil"
)

func TestReadSource(t *testing.T) {
	t.Parallel()

	t.Run("plain file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "A.java")
		require.NoError(t, os.WriteFile(path, []byte("class A {}"), 0o600))

		src, err := fsutil.ReadSource(context.Background(), path, 0)
		require.NoError(t, err)
		assert.Equal(t, path, src.Path)
		assert.Equal(t, 0, src.BodyStart)
		assert.Equal(t, "class A {}", string(src.Body()))
		assert.Equal(t, os.FileMode(0o600), src.Mode.Perm())
	})

	t.Run("byte order mark is skipped", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "B.java")
		require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBFclass B {}"), 0o644))

		src, err := fsutil.ReadSource(context.Background(), path, 0)
		require.NoError(t, err)
		assert.Equal(t, 3, src.BodyStart)
		assert.Equal(t, "class B {}", string(src.Body()))
		assert.Len(t, src.Content, 13)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.ReadSource(context.Background(), filepath.Join(t.TempDir(), "nope.java"), 0)
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.ReadSource(context.Background(), t.TempDir(), 0)
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("size limit", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "Big.java")
		require.NoError(t, os.WriteFile(path, make([]byte, 64), 0o644))

		_, err := fsutil.ReadSource(context.Background(), path, 32)
		require.ErrorIs(t, err, fsutil.ErrTooLarge)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := fsutil.ReadSource(ctx, "whatever.java", 0)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates and overwrites", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".javalex.yml")
		ctx := context.Background()

		require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("jobs: 1\n"), 0))
		require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("jobs: 2\n"), 0))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "jobs: 2\n", string(got))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, info.Mode().Perm())
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, fsutil.WriteAtomic(context.Background(), filepath.Join(dir, "out.json"), []byte("{}"), 0o600))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "out.json", entries[0].Name())
	})

	t.Run("missing directory fails", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "out.txt")
		require.Error(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.txt")
	ctx := context.Background()

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte("a"), 0)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("a"), 0)
	require.NoError(t, err)
	assert.False(t, written)

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("b"), 0)
	require.NoError(t, err)
	assert.True(t, written)
}
