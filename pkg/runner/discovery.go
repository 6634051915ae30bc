package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/nomxml/pkg/langdetect"
)

// Discover finds markup files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
//
// Files named explicitly in opts.Paths are taken whatever their extension,
// unless an exclude pattern matches them. Files found by walking a directory
// must carry one of the extensions, or pass content sniffing when
// opts.Detect is set.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := absWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	w := &walker{
		ctx:     ctx,
		opts:    opts,
		workDir: workDir,
		exts:    make(map[string]struct{}),
		seen:    make(map[string]struct{}),
		dirs:    make(map[string]struct{}),
	}
	for _, ext := range opts.effectiveExtensions() {
		w.exts[strings.ToLower(ext)] = struct{}{}
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}
		if err := w.add(input); err != nil {
			return nil, err
		}
	}

	slices.Sort(w.files)
	return w.files, nil
}

func absWorkDir(dir string) (string, error) {
	if dir != "" {
		return filepath.Abs(dir)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return wd, nil
}

// walker accumulates discovered files across every input path.
type walker struct {
	ctx     context.Context
	opts    Options
	workDir string
	exts    map[string]struct{}
	seen    map[string]struct{}
	// dirs holds the real paths of followed directory symlinks.
	dirs  map[string]struct{}
	files []string
}

// add resolves one input path and collects the files it names.
func (w *walker) add(input string) error {
	target := input
	if !filepath.IsAbs(target) {
		target = filepath.Join(w.workDir, target)
	}
	target = filepath.Clean(target)

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}
	if info.IsDir() {
		return w.walk(target)
	}
	if !w.excluded(target) {
		w.collect(target)
	}
	return nil
}

func (w *walker) collect(file string) {
	if _, dup := w.seen[file]; dup {
		return
	}
	w.seen[file] = struct{}{}
	w.files = append(w.files, file)
}

func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(current string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}
		return w.visit(root, current, entry)
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// visit decides what happens to one entry below root.
func (w *walker) visit(root, current string, entry fs.DirEntry) error {
	hidden := strings.HasPrefix(entry.Name(), ".") && current != root

	if entry.IsDir() {
		if hidden || w.excluded(current) {
			return filepath.SkipDir
		}
		return nil
	}
	if hidden {
		return nil
	}

	if entry.Type()&fs.ModeSymlink != 0 {
		target, err := filepath.EvalSymlinks(current)
		if err != nil {
			return nil //nolint:nilerr // dangling links are skipped
		}
		info, err := os.Stat(target)
		if err != nil {
			return nil //nolint:nilerr // unreadable link targets are skipped
		}
		if info.IsDir() {
			return w.follow(target)
		}
	}

	if w.accept(current) {
		w.collect(current)
	}
	return nil
}

// follow walks the target of a directory symlink once, when enabled.
// WalkDir does not descend through links, so target is walked directly.
func (w *walker) follow(target string) error {
	if !w.opts.FollowSymlinks {
		return nil
	}
	if _, done := w.dirs[target]; done {
		return nil
	}
	w.dirs[target] = struct{}{}
	return w.walk(target)
}

// accept applies the include, exclude and extension rules to a walked file.
func (w *walker) accept(file string) bool {
	rel := w.rel(file)
	if matchAny(rel, w.opts.ExcludeGlobs) {
		return false
	}
	if len(w.opts.IncludeGlobs) > 0 && !matchAny(rel, w.opts.IncludeGlobs) {
		return false
	}
	if _, ok := w.exts[strings.ToLower(filepath.Ext(file))]; ok {
		return true
	}
	return w.opts.Detect && sniffMarkup(file)
}

func (w *walker) excluded(file string) bool {
	return matchAny(w.rel(file), w.opts.ExcludeGlobs)
}

// rel returns file relative to the working directory, slash separated.
func (w *walker) rel(file string) string {
	rel, err := filepath.Rel(w.workDir, file)
	if err != nil {
		rel = file
	}
	return filepath.ToSlash(rel)
}

// sniffMarkup reads the head of file and reports whether it looks like markup.
// Unreadable files are not markup.
func sniffMarkup(file string) bool {
	f, err := os.Open(file)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, langdetect.SniffSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false
	}
	return langdetect.LooksLikeMarkup(file, head[:n])
}

func matchAny(rel string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(pattern string) bool {
		return matchGlob(rel, pattern)
	})
}

// matchGlob matches a slash-separated relative path against pattern.
// A "**" segment spans any number of directories, so "vendor/**" also
// matches the vendor directory itself. A pattern without a slash is tried
// against the base name as well.
func matchGlob(rel, pattern string) bool {
	pattern = filepath.ToSlash(pattern)
	if matchSegments(strings.Split(rel, "/"), strings.Split(pattern, "/")) {
		return true
	}
	if !strings.Contains(pattern, "/") {
		ok, err := path.Match(pattern, path.Base(rel))
		return err == nil && ok
	}
	return false
}

func matchSegments(parts, pattern []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			for skip := 0; skip <= len(parts); skip++ {
				if matchSegments(parts[skip:], pattern[1:]) {
					return true
				}
			}
			return false
		}
		if len(parts) == 0 {
			return false
		}
		ok, err := path.Match(pattern[0], parts[0])
		if err != nil || !ok {
			return false
		}
		parts, pattern = parts[1:], pattern[1:]
	}
	return len(parts) == 0
}
