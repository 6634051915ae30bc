package source

import (
	"fmt"
	"io"
)

// Memory reads characters from a byte slice owned by the caller.
// The slice must not be modified while a session reads from it.
type Memory struct {
	data    []byte
	pos     int
	charset Charset
}

// NewMemory returns a Memory positioned at the start of data.
func NewMemory(data []byte, opts ...Option) *Memory {
	resolved := buildOptions(opts)
	return &Memory{data: data, charset: resolved.charset}
}

// Len implements Source.
func (m *Memory) Len() int {
	return len(m.data)
}

// Seek implements Source. An offset past the end leaves the source at its end.
func (m *Memory) Seek(offset int) error {
	if offset < 0 || offset > len(m.data) {
		m.pos = len(m.data)
		return fmt.Errorf("%w: %d not in [0, %d]", ErrSeekRange, offset, len(m.data))
	}
	m.pos = offset
	return nil
}

// ReadChar implements Source.
func (m *Memory) ReadChar() (rune, bool) {
	if m.pos >= len(m.data) {
		return 0, false
	}
	b := m.data[m.pos]
	m.pos++
	return m.charset.Decode(b), true
}

// AtEnd implements Source.
func (m *Memory) AtEnd() bool {
	return m.pos >= len(m.data)
}

// ReaderAt reads characters from a random-access medium the caller owns,
// such as an *os.File opened elsewhere. Every ReaderAt keeps its own cursor,
// so several of them may read the same medium without disturbing each other.
// The medium is never closed by the source.
type ReaderAt struct {
	byteStream
}

// NewReaderAt returns a ReaderAt over the first size bytes of r.
func NewReaderAt(r io.ReaderAt, size int64, opts ...Option) *ReaderAt {
	resolved := buildOptions(opts)
	section := io.NewSectionReader(r, 0, size)
	return &ReaderAt{byteStream: newByteStream(section, size, resolved.charset)}
}
