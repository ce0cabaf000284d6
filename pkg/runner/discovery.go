package runner

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/javalex/pkg/langdetect"
)

// sniffSize is how much of an extensionless file is read for detection.
const sniffSize = 4096

// Discover finds Java files matching opts. It returns a deterministically
// sorted, de-duplicated list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		opts:       opts,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		seen:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := d.walk(ctx, absPath); err != nil {
				return nil, err
			}
			continue
		}

		// Explicitly named files bypass extension checks but not excludes.
		if !d.excluded(absPath) {
			d.add(absPath)
		}
	}

	sort.Strings(d.files)
	return d.files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

type discoverer struct {
	opts       Options
	workDir    string
	extensions []string
	seen       map[string]struct{}
	files      []string
}

func (d *discoverer) add(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

// rel returns path relative to the working directory in slash form.
func (d *discoverer) rel(p string) string {
	relPath, err := filepath.Rel(d.workDir, p)
	if err != nil {
		relPath = p
	}
	return filepath.ToSlash(relPath)
}

func (d *discoverer) excluded(p string) bool {
	relPath := d.rel(p)
	for _, pattern := range d.opts.ExcludeGlobs {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// walk collects matching files under root.
func (d *discoverer) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if p == root {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") || d.excluded(p) {
				return filepath.SkipDir
			}
			if !d.opts.IncludeVendored && langdetect.IsVendored(d.rel(p)+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			descend, err := d.followSymlink(ctx, p)
			if err != nil || descend {
				return err
			}
		}

		if strings.HasPrefix(entry.Name(), ".") || d.excluded(p) {
			return nil
		}

		if d.isJava(p) {
			d.add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// followSymlink walks a directory symlink target when allowed. It reports
// true when the link was a directory and has been handled.
func (d *discoverer) followSymlink(ctx context.Context, p string) (bool, error) {
	realPath, err := filepath.EvalSymlinks(p)
	if err != nil {
		return true, nil // broken link
	}
	info, err := os.Stat(realPath)
	if err != nil {
		return true, nil //nolint:nilerr // inaccessible target is skipped
	}
	if !info.IsDir() {
		return false, nil
	}
	if d.opts.FollowSymlinks {
		return true, d.walk(ctx, realPath)
	}
	return true, nil
}

// isJava decides by extension, or by content for extensionless files when
// DetectLanguage is set.
func (d *discoverer) isJava(p string) bool {
	ext := filepath.Ext(p)
	if ext == "" {
		return d.opts.DetectLanguage && sniffJava(p)
	}
	for _, e := range d.extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

func sniffJava(p string) bool {
	f, err := os.Open(p)
	if err != nil {
		return false
	}
	defer f.Close()

	head, err := io.ReadAll(io.LimitReader(f, sniffSize))
	if err != nil {
		return false
	}
	return langdetect.IsJava("", head)
}

// matchGlob matches a slash-separated relative path against a glob.
// Patterns without a slash match any single path segment, so "build"
// excludes every build directory. "**" matches zero or more segments.
func matchGlob(relPath, pattern string) bool {
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
	segments := strings.Split(relPath, "/")

	if !strings.Contains(pattern, "/") {
		for _, seg := range segments {
			if ok, err := path.Match(pattern, seg); err == nil && ok {
				return true
			}
		}
		return false
	}

	return matchSegments(strings.Split(strings.TrimSuffix(pattern, "/"), "/"), segments)
}

func matchSegments(pattern, segments []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			if len(rest) == 0 {
				return true
			}
			for i := range len(segments) + 1 {
				if matchSegments(rest, segments[i:]) {
					return true
				}
			}
			return false
		}

		if len(segments) == 0 {
			return false
		}
		if ok, err := path.Match(pattern[0], segments[0]); err != nil || !ok {
			return false
		}
		pattern, segments = pattern[1:], segments[1:]
	}
	return len(segments) == 0
}
