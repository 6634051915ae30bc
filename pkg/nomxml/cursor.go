package nomxml

import (
	"github.com/yaklabco/nomxml/pkg/source"
)

// cursor is the read position of a session: the current character, whether
// one is available, and how many characters have been consumed so far.
type cursor struct {
	src  source.Source
	cur  rune
	have bool
	pos  int
}

// advance replaces the current character with the next one from the source.
// It returns false when no character could be read.
func (c *cursor) advance() bool {
	c.cur = 0
	c.have = false
	if c.src == nil {
		return false
	}
	ch, ok := c.src.ReadChar()
	if !ok {
		return false
	}
	c.cur = ch
	c.have = true
	c.pos++
	return true
}

// is reports whether the current character is ch.
func (c *cursor) is(ch rune) bool {
	return c.have && c.cur == ch
}

// atSpace reports whether the current character is ASCII whitespace.
// NBSP and NEL from a code page are content, not padding.
func (c *cursor) atSpace() bool {
	if !c.have {
		return false
	}
	switch c.cur {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// skipSpace consumes whitespace.
func (c *cursor) skipSpace() {
	for c.atSpace() {
		c.advance()
	}
}

// exhausted reports whether the source ran out of input cleanly.
func (c *cursor) exhausted() bool {
	return !c.have && (c.src == nil || c.src.AtEnd())
}

// stalled reports whether the last read failed before the end of the medium.
func (c *cursor) stalled() bool {
	return !c.have && c.src != nil && !c.src.AtEnd()
}

// readErr returns the cause recorded by the source for a failed read, if the
// source exposes one.
func (c *cursor) readErr() error {
	if reporter, ok := c.src.(interface{ Err() error }); ok {
		return reporter.Err()
	}
	return nil
}
