package nomxml

import (
	"fmt"

	"github.com/yaklabco/nomxml/internal/logging"
)

// Section terminators for skipped "<!" forms.
const (
	commentEnd = "-->"
	sectionEnd = "]]>"
)

// parseEndTag decodes "</name>". The '<' has been consumed and the '/' is
// the current character.
func (p *Parser) parseEndTag() (Event, error) {
	tagOffset := p.cur.pos - 2
	p.cur.advance() // '/'

	name, ok := p.cur.nextToken(attrDelims)
	if !ok {
		return nil, p.unexpectedEnd("end tag")
	}

	if !p.cur.is('>') {
		if !p.cur.have {
			return nil, p.unexpectedEnd(fmt.Sprintf("end tag '%s'", name))
		}
		return nil, p.fail(MalformedTag, nil, "expected '>' at end of tag: %s", name)
	}
	p.cur.advance() // '>'

	top := p.stack.top()
	if top == nil {
		return nil, p.failAt(tagOffset, StructuralMismatch, "unexpected end tag outside of all tags: %s", name)
	}
	if name != top.open.Name {
		return nil, p.failAt(tagOffset, StructuralMismatch,
			"mismatched end tag, found '%s', expected '%s'", name, top.open.Name)
	}

	elem := p.stack.pop()
	return p.emit(elem.close), nil
}

// skipBangTag consumes a comment or marked section. The '<' has been
// consumed and the '!' is the current character.
func (p *Parser) skipBangTag() error {
	p.cur.advance() // '!'

	switch {
	case p.cur.is('['):
		p.cur.advance()
		return p.skipPast(sectionEnd, "marked section")
	case p.cur.is('-'):
		p.cur.advance()
		if p.cur.is('-') {
			p.cur.advance()
			return p.skipPast(commentEnd, "comment")
		}
		if !p.cur.have {
			return p.unexpectedEnd("comment")
		}
	case !p.cur.have:
		return p.unexpectedEnd("tag beginning with '!'")
	}

	return p.fail(MalformedTag, nil, "malformed tag beginning with '!'")
}

// skipPast consumes characters up to and including terminator.
func (p *Parser) skipPast(terminator, what string) error {
	term := []rune(terminator)
	window := make([]rune, 0, len(term))
	skipped := 0

	for p.cur.have {
		if len(window) == len(term) {
			copy(window, window[1:])
			window = window[:len(term)-1]
		}
		window = append(window, p.cur.cur)
		p.cur.advance()
		skipped++

		if string(window) == terminator {
			p.debug("skipped "+what, "chars", skipped, logging.FieldOffset, p.cur.pos)
			return nil
		}
	}

	return p.unexpectedEnd("unterminated " + what)
}

// parseBeginTag decodes a begin tag or processing instruction:
//
//	<name [attr[=value] ...] [/]>
//	<?name [attr[=value] ...] ?>
//
// Some real-world files close processing instructions with "?/>", so a '/'
// after the closing '?' is accepted too. The '<' has been consumed and the
// character after it is current.
func (p *Parser) parseBeginTag() (Event, error) {
	open := Open{Offset: p.cur.pos - 2}

	processing := false
	if p.cur.is('?') {
		processing = true
		p.cur.advance()
	}

	name, ok := p.cur.nextToken(nameDelims)
	if !ok {
		return nil, p.unexpectedEnd("begin tag")
	}
	open.Name = name

	for !p.cur.is('/') && !p.cur.is('>') && !p.cur.is('?') {
		if !p.cur.have {
			return nil, p.unexpectedEnd(fmt.Sprintf("tag '%s'", name))
		}

		before := p.cur.pos
		attrName, _ := p.cur.nextToken(attrDelims)
		attr := Attribute{Name: attrName}
		if p.cur.is('=') {
			p.cur.advance()
			attr.Value, _ = p.cur.nextToken(attrDelims)
		}

		if p.cur.pos == before {
			return nil, p.fail(MalformedTag, nil, "unexpected '%c' in tag '%s'", p.cur.cur, name)
		}
		open.Attrs = append(open.Attrs, attr)
	}

	selfClosing := false
	if processing {
		if !p.cur.is('?') {
			return nil, p.fail(MalformedTag, nil, "expected '?' at end of tag '%s'", name)
		}
		selfClosing = true
		p.cur.advance()
	}

	if p.cur.is('/') {
		selfClosing = true
		p.cur.advance()
	}

	if !p.cur.is('>') {
		if !p.cur.have {
			return nil, p.unexpectedEnd(fmt.Sprintf("tag '%s'", name))
		}
		return nil, p.fail(MalformedTag, nil, "expected '>' at end of tag '%s'", name)
	}
	p.cur.advance() // '>'

	p.stack.push(open)
	if selfClosing {
		p.state = stateSyntheticClose
	}

	return p.emit(open.clone()), nil
}
