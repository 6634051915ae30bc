package nomxml

import "strings"

// delimSet is the set of characters that end an unquoted token.
type delimSet string

const (
	// attrDelims ends attribute names and values, and end-tag names.
	attrDelims delimSet = "=><? \r\n\t"

	// nameDelims ends begin-tag names. It includes '/' so the slash of a
	// self-closing tag stays current instead of becoming part of the name.
	nameDelims delimSet = "/><? \r\n\t"
)

func (d delimSet) has(ch rune) bool {
	return strings.ContainsRune(string(d), ch)
}

// nextToken extracts the next token at the cursor.
//
// Leading whitespace is skipped. A token starting with a double or single
// quote runs to the matching quote, which is consumed but not returned; an
// unterminated quote runs to the end of input. Any other token runs until a
// character in delims, which is left as the current character. Trailing
// whitespace is skipped as well.
//
// The boolean is false only when the token is empty and no character is left
// to look at, which tells "next character is a delimiter" apart from "no
// more data".
func (c *cursor) nextToken(delims delimSet) (string, bool) {
	var token strings.Builder

	c.skipSpace()

	if c.is('"') || c.is('\'') {
		quote := c.cur
		c.advance()
		for c.have && c.cur != quote {
			token.WriteRune(c.cur)
			c.advance()
		}
		if c.is(quote) {
			c.advance()
		}
	} else {
		for c.have && !delims.has(c.cur) {
			token.WriteRune(c.cur)
			c.advance()
		}
	}

	c.skipSpace()

	if token.Len() == 0 && !c.have {
		return "", false
	}
	return token.String(), true
}
