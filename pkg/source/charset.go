package source

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// Charset decodes one input byte into one character.
// The zero value behaves like Latin1.
type Charset struct {
	name string
	cmap *charmap.Charmap
}

// Latin1 maps every byte to the code point of the same value.
//
//nolint:gochecknoglobals // Read-only default charset.
var Latin1 = Charset{name: "ISO-8859-1"}

// LookupCharset resolves an IANA charset name such as "windows-1252" or
// "koi8-r". Only single-byte code pages are accepted; multi-byte encodings
// such as UTF-8 or UTF-16 fail with ErrUnsupportedCharset.
func LookupCharset(name string) (Charset, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Latin1, nil
	}

	enc, err := ianaindex.IANA.Encoding(trimmed)
	if err != nil {
		return Charset{}, fmt.Errorf("%w: %q: %w", ErrUnsupportedCharset, name, err)
	}
	if enc == nil {
		return Charset{}, fmt.Errorf("%w: %q has no decoder", ErrUnsupportedCharset, name)
	}

	cmap, ok := enc.(*charmap.Charmap)
	if !ok {
		return Charset{}, fmt.Errorf("%w: %q is not a single-byte code page", ErrUnsupportedCharset, name)
	}

	canonical, err := ianaindex.IANA.Name(enc)
	if err != nil {
		canonical = trimmed
	}

	return Charset{name: canonical, cmap: cmap}, nil
}

// Name returns the canonical IANA name of the charset.
func (c Charset) Name() string {
	if c.name == "" {
		return Latin1.name
	}
	return c.name
}

// Decode returns the character for input byte b.
func (c Charset) Decode(b byte) rune {
	if c.cmap == nil {
		return rune(b)
	}
	return c.cmap.DecodeByte(b)
}

// String implements fmt.Stringer.
func (c Charset) String() string {
	return c.Name()
}
