package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// streamBufferSize is the read-ahead buffer for seekable byte streams (32 KiB).
const streamBufferSize = 32 * 1024

// byteStream reads characters from a seekable byte stream, one byte per
// character. It backs both File and ReaderAt.
type byteStream struct {
	rs      io.ReadSeeker
	br      *bufio.Reader
	size    int64
	eof     bool
	err     error
	charset Charset
}

func newByteStream(rs io.ReadSeeker, size int64, charset Charset) byteStream {
	return byteStream{
		rs:      rs,
		br:      bufio.NewReaderSize(rs, streamBufferSize),
		size:    size,
		charset: charset,
	}
}

// Len implements Source.
func (s *byteStream) Len() int {
	return int(s.size)
}

// Seek implements Source.
func (s *byteStream) Seek(offset int) error {
	if s.rs == nil {
		return ErrClosed
	}
	if offset < 0 || int64(offset) > s.size {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrSeekRange, offset, s.size)
	}
	if _, err := s.rs.Seek(int64(offset), io.SeekStart); err != nil {
		s.err = err
		return fmt.Errorf("seek to %d: %w", offset, err)
	}
	s.br.Reset(s.rs)
	s.eof = false
	s.err = nil
	return nil
}

// ReadChar implements Source.
func (s *byteStream) ReadChar() (rune, bool) {
	if s.rs == nil || s.eof || s.err != nil {
		return 0, false
	}
	b, err := s.br.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.eof = true
		} else {
			s.err = err
		}
		return 0, false
	}
	return s.charset.Decode(b), true
}

// AtEnd implements Source.
func (s *byteStream) AtEnd() bool {
	return s.rs == nil || s.eof
}

// Err returns the read error that stopped the stream, if any.
// Reaching the end of the stream is not an error.
func (s *byteStream) Err() error {
	return s.err
}

// Charset returns the charset used to decode bytes.
func (s *byteStream) Charset() Charset {
	return s.charset
}
