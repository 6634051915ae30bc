package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/nomxml/pkg/fsutil"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes new file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "report.txt")
		require.NoError(t, fsutil.WriteFileAtomic(context.Background(), path, []byte("dump"), 0))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "dump", string(got))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, info.Mode().Perm())
	})

	t.Run("overwrites existing file with mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "report.txt")
		require.NoError(t, os.WriteFile(path, []byte("old content"), 0o644))

		require.NoError(t, fsutil.WriteFileAtomic(context.Background(), path, []byte("new"), 0o600))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("zero mode keeps the existing mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "report.txt")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))
		require.NoError(t, os.Chmod(path, 0o600))

		require.NoError(t, fsutil.WriteFileAtomic(context.Background(), path, []byte("new"), 0))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "nested", "report.json")
		require.NoError(t, fsutil.WriteFileAtomic(context.Background(), path, []byte("{}"), 0))

		_, err := os.Stat(path)
		require.NoError(t, err)
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, fsutil.WriteFileAtomic(context.Background(), filepath.Join(dir, "a.txt"), []byte("a"), 0))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := filepath.Join(t.TempDir(), "a.txt")
		require.ErrorIs(t, fsutil.WriteFileAtomic(ctx, path, []byte("a"), 0), context.Canceled)

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestWriteFileAtomicIfChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), ".nomdump.yml")

	written, err := fsutil.WriteFileAtomicIfChanged(ctx, path, []byte("mode: file\n"), 0)
	require.NoError(t, err)
	assert.True(t, written, "new file is written")

	written, err = fsutil.WriteFileAtomicIfChanged(ctx, path, []byte("mode: file\n"), 0)
	require.NoError(t, err)
	assert.False(t, written, "identical content is skipped")

	written, err = fsutil.WriteFileAtomicIfChanged(ctx, path, []byte("mode: memory\n"), 0)
	require.NoError(t, err)
	assert.True(t, written, "changed content is written")
}
