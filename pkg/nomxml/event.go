// Package nomxml is a small pull parser for XML-like markup.
//
// A Parser turns a character stream into a flat sequence of events: an Open
// for every begin tag, a Text for the characters between tags and a Close for
// every end tag. Self-closing tags and processing instructions produce an
// Open immediately followed by a synthesized Close. Comments and marked
// sections such as CDATA are skipped and produce no events.
//
// Typical use:
//
//	parser := nomxml.New()
//	defer parser.Close()
//	if err := parser.BeginFile("note.xml"); err != nil {
//	    return err
//	}
//	for {
//	    event, err := parser.Next()
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return fmt.Errorf("near offset %d: %w", parser.Offset(), err)
//	    }
//	    switch ev := event.(type) {
//	    case nomxml.Open:
//	    case nomxml.Text:
//	    case nomxml.Close:
//	    }
//	}
//
// The parser is deliberately tolerant. It does not expand entities, resolve
// namespaces or validate against a DTD, and it treats every input byte as
// one character.
package nomxml

import "strconv"

// Kind identifies the variant of an Event.
type Kind uint8

// Event kinds.
const (
	KindOpen Kind = iota + 1
	KindText
	KindClose
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindText:
		return "text"
	case KindClose:
		return "close"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Event is one structural unit produced by Parser.Next.
// It is implemented only by Open, Text and Close.
type Event interface {
	// Kind reports which variant the event is.
	Kind() Kind

	// TagName returns the name of the element the event belongs to.
	TagName() string

	event()
}

// Attribute is one name/value pair from a begin tag.
// Value is empty when the attribute had no "=value" part.
type Attribute struct {
	Name  string
	Value string
}

// Open is produced for every begin tag.
type Open struct {
	// Name is the tag name. Processing instructions keep their name without
	// the leading '?'.
	Name string

	// Offset is the zero-based character offset of the '<' that started the tag.
	Offset int

	// Attrs holds the attributes in the order they appeared. Duplicate names
	// are kept.
	Attrs []Attribute
}

// Text is produced for the characters found between tags.
type Text struct {
	// Name is the name of the enclosing element.
	Name string

	// Value is the literal run of characters, whitespace included.
	Value string
}

// Close is produced for every end tag, explicit or synthesized.
type Close struct {
	Name string
}

// Kind implements Event.
func (Open) Kind() Kind { return KindOpen }

// Kind implements Event.
func (Text) Kind() Kind { return KindText }

// Kind implements Event.
func (Close) Kind() Kind { return KindClose }

// TagName implements Event.
func (o Open) TagName() string { return o.Name }

// TagName implements Event.
func (t Text) TagName() string { return t.Name }

// TagName implements Event.
func (c Close) TagName() string { return c.Name }

func (Open) event()  {}
func (Text) event()  {}
func (Close) event() {}

// Attr returns the value of the first attribute called name.
func (o Open) Attr(name string) (string, bool) {
	for _, attr := range o.Attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// clone returns a copy of o that shares no memory with the parser.
func (o Open) clone() Open {
	if o.Attrs != nil {
		attrs := make([]Attribute, len(o.Attrs))
		copy(attrs, o.Attrs)
		o.Attrs = attrs
	}
	return o
}
