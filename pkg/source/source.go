// Package source provides the character streams the nomxml parser reads from.
//
// A Source hands out one character at a time and can report its length,
// reposition itself and tell whether the underlying medium is exhausted.
// Three implementations ship with the package: File (an on-disk file the
// source owns), Memory (a caller-owned byte slice) and ReaderAt (a
// caller-owned random-access medium read through a private cursor). Any other
// type implementing Source may be plugged in through an Opener.
package source

import (
	"errors"
	"io"
)

// Sentinel errors returned by sources.
var (
	// ErrSeekRange is returned when Seek is asked for an offset beyond Len.
	ErrSeekRange = errors.New("seek offset out of range")

	// ErrClosed is returned when a closed source is repositioned.
	ErrClosed = errors.New("source is closed")

	// ErrNotRegular is returned when OpenFile is pointed at a directory or device.
	ErrNotRegular = errors.New("not a regular file")

	// ErrUnsupportedCharset is returned when a charset does not map one byte
	// to one character.
	ErrUnsupportedCharset = errors.New("unsupported charset")
)

// Source is a character supply for one parse session.
type Source interface {
	// Len returns the total number of characters in the medium.
	Len() int

	// Seek repositions the source so the next ReadChar returns the character
	// at offset. It fails when offset exceeds Len.
	Seek(offset int) error

	// ReadChar returns the next character. The boolean is false when the
	// medium is exhausted or a read failed.
	ReadChar() (rune, bool)

	// AtEnd reports whether the medium has been read to its end. A source
	// whose ReadChar failed while AtEnd is false stopped on an I/O error.
	AtEnd() bool
}

// Opener constructs a private Source for one parse session. Parsers call it
// once per session so two sessions never share a cursor.
type Opener func() (Source, error)

// FileOpener returns an Opener that opens path as a File.
func FileOpener(path string, opts ...Option) Opener {
	return func() (Source, error) {
		return OpenFile(path, opts...)
	}
}

// MemoryOpener returns an Opener that reads from data.
func MemoryOpener(data []byte, opts ...Option) Opener {
	return func() (Source, error) {
		return NewMemory(data, opts...), nil
	}
}

// ReaderAtOpener returns an Opener that reads size bytes from r through a
// fresh private cursor on every call.
func ReaderAtOpener(r io.ReaderAt, size int64, opts ...Option) Opener {
	return func() (Source, error) {
		return NewReaderAt(r, size, opts...), nil
	}
}

// Option configures a built-in source.
type Option func(*options)

type options struct {
	charset Charset
}

func buildOptions(opts []Option) options {
	resolved := options{charset: Latin1}
	for _, opt := range opts {
		if opt != nil {
			opt(&resolved)
		}
	}
	return resolved
}

// WithCharset selects the single-byte code page used to turn input bytes
// into characters. The default is ISO-8859-1.
func WithCharset(cs Charset) Option {
	return func(o *options) {
		o.charset = cs
	}
}
