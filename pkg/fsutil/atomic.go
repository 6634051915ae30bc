package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission of files created without an explicit mode.
const DefaultFileMode os.FileMode = 0o644

const dirMode os.FileMode = 0o755

// WriteFileAtomic replaces path with content. The bytes are staged in a temp
// file next to path and renamed over it, so a reader sees either the old
// file or the complete new one. Missing parent directories are created.
// A zero mode keeps the mode of an existing file, or uses DefaultFileMode.
func WriteFileAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}

	if mode == 0 {
		mode = DefaultFileMode
		if info, err := os.Stat(path); err == nil {
			mode = info.Mode().Perm()
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	staged, err := stage(dir, filepath.Base(path), content, mode)
	if err != nil {
		return err
	}
	if err := os.Rename(staged, path); err != nil {
		_ = os.Remove(staged)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// stage writes content to a synced temp file in dir and returns its name.
// The temp file is removed again on any failure.
func stage(dir, base string, content []byte, mode os.FileMode) (name string, err error) {
	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	name = tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(name)
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Chmod(mode); err != nil {
		return "", fmt.Errorf("chmod temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return "", fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return name, nil
}

// WriteFileAtomicIfChanged calls WriteFileAtomic unless path already holds
// content. It reports whether anything was written.
func WriteFileAtomicIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, content) {
		return false, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("read existing: %w", err)
	}

	if err := WriteFileAtomic(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}
