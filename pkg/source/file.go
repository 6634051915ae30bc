package source

import (
	"errors"
	"fmt"
	"os"
)

// Compile-time interface checks.
var (
	_ Source = (*File)(nil)
	_ Source = (*Memory)(nil)
	_ Source = (*ReaderAt)(nil)
)

// File reads characters from a file it opened itself and owns.
// Each byte of the file is one character.
type File struct {
	byteStream

	path string
	file *os.File
}

// OpenFile opens path for reading. The caller must Close the returned File,
// or hand it to a parser that closes it on Reset.
func OpenFile(path string, opts ...Option) (*File, error) {
	resolved := buildOptions(opts)

	handle, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	stat, err := handle.Stat()
	if err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !stat.Mode().IsRegular() {
		_ = handle.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}

	return &File{
		byteStream: newByteStream(handle, stat.Size(), resolved.charset),
		path:       path,
		file:       handle,
	}, nil
}

// Path returns the name the file was opened with.
func (f *File) Path() string {
	return f.path
}

// Close releases the file handle. Calling Close more than once is harmless.
func (f *File) Close() error {
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	f.rs = nil
	if err != nil && !errors.Is(err, os.ErrClosed) {
		return fmt.Errorf("close %s: %w", f.path, err)
	}
	return nil
}
