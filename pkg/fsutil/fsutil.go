// Package fsutil provides the file system helpers javalex needs: reading
// source files for scanning and writing reports and config files atomically.
package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrTooLarge indicates the file exceeds the configured size limit.
	ErrTooLarge = errors.New("file too large")
)

// utf8BOM is the byte order mark some editors prepend to Java sources.
//
//nolint:gochecknoglobals // Read-only constant bytes.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Source is a file loaded for scanning.
type Source struct {
	// Path is the path the file was read from.
	Path string

	// Content is the raw file content, including any byte order mark.
	Content []byte

	// Mode is the file's permission and mode bits.
	Mode os.FileMode

	// ModTime is the file's modification time.
	ModTime time.Time

	// BodyStart is the offset where source text begins: 3 when the file
	// starts with a UTF-8 byte order mark, otherwise 0.
	BodyStart int
}

// Body returns the content after any byte order mark.
func (s *Source) Body() []byte {
	return s.Content[s.BodyStart:]
}

// ReadSource reads a file for scanning. A maxSize of 0 disables the size check.
func ReadSource(ctx context.Context, path string, maxSize int64) (*Source, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("read source: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, classify(path, "stat", err)
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	if maxSize > 0 && stat.Size() > maxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrTooLarge, path, stat.Size(), maxSize)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(path, "read", err)
	}

	src := &Source{
		Path:    path,
		Content: content,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
	}
	if bytes.HasPrefix(content, utf8BOM) {
		src.BodyStart = len(utf8BOM)
	}

	return src, nil
}

// classify wraps an os error with the matching sentinel.
func classify(path, op string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
}
