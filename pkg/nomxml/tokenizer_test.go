package nomxml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/nomxml/pkg/source"
)

func newCursor(input string) *cursor {
	c := &cursor{src: source.NewMemory([]byte(input))}
	c.advance()
	return c
}

func TestNextToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		delims  delimSet
		want    string
		wantOK  bool
		current rune
	}{
		{name: "stops at delimiter", input: "name=value", delims: attrDelims, want: "name", wantOK: true, current: '='},
		{name: "skips surrounding whitespace", input: "  name  >", delims: attrDelims, want: "name", wantOK: true, current: '>'},
		{name: "double quoted", input: `"a b>c" x`, delims: attrDelims, want: "a b>c", wantOK: true, current: 'x'},
		{name: "single quoted", input: `'it"s'/`, delims: attrDelims, want: `it"s`, wantOK: true, current: '/'},
		{name: "unterminated quote runs to end", input: `"abc`, delims: attrDelims, want: "abc", wantOK: true},
		{name: "empty quoted value", input: `"">`, delims: attrDelims, want: "", wantOK: true, current: '>'},
		{name: "slash ends begin tag name", input: "br/>", delims: nameDelims, want: "br", wantOK: true, current: '/'},
		{name: "slash belongs to attribute value", input: "a/b>", delims: attrDelims, want: "a/b", wantOK: true, current: '>'},
		{name: "delimiter first", input: ">", delims: attrDelims, want: "", wantOK: true, current: '>'},
		{name: "token at end of input", input: "tail", delims: attrDelims, want: "tail", wantOK: true},
		{name: "whitespace only", input: "   ", delims: attrDelims, want: "", wantOK: false},
		{name: "empty input", input: "", delims: attrDelims, want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newCursor(tt.input)
			got, ok := c.nextToken(tt.delims)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
			if tt.current == 0 {
				assert.False(t, c.have, "no character should be left")
			} else {
				assert.True(t, c.is(tt.current), "current is %q", c.cur)
			}
		})
	}
}

func TestCursor_Position(t *testing.T) {
	t.Parallel()

	c := newCursor("ab")
	assert.Equal(t, 1, c.pos)
	assert.True(t, c.is('a'))

	assert.True(t, c.advance())
	assert.Equal(t, 2, c.pos)

	assert.False(t, c.advance())
	assert.Equal(t, 2, c.pos, "failed reads do not count")
	assert.True(t, c.exhausted())
	assert.False(t, c.stalled())
}

func TestElementStack(t *testing.T) {
	t.Parallel()

	var stack elementStack
	assert.Nil(t, stack.top())
	assert.Equal(t, []string{}, stack.names())

	stack.push(Open{Name: "a"})
	stack.push(Open{Name: "b", Offset: 3})
	assert.Equal(t, 2, stack.len())
	assert.Equal(t, []string{"a", "b"}, stack.names())

	top := stack.top()
	require.NotNil(t, top)
	top.text = Text{Name: "b", Value: "x"}

	elem := stack.pop()
	assert.Equal(t, "b", elem.open.Name)
	assert.Equal(t, Text{Name: "b", Value: "x"}, elem.text)
	assert.Equal(t, Close{Name: "b"}, elem.close)
	assert.Equal(t, []string{"a"}, stack.names())

	stack.reset()
	assert.Zero(t, stack.len())
	assert.Nil(t, stack.top())
}

func TestOpen_AttrAndClone(t *testing.T) {
	t.Parallel()

	open := Open{Name: "x", Attrs: []Attribute{{Name: "k", Value: "1"}, {Name: "k", Value: "2"}}}

	value, ok := open.Attr("k")
	assert.True(t, ok)
	assert.Equal(t, "1", value, "first duplicate wins")

	_, ok = open.Attr("missing")
	assert.False(t, ok)

	copied := open.clone()
	copied.Attrs[0].Value = "changed"
	assert.Equal(t, "1", open.Attrs[0].Value)

	assert.Nil(t, Open{Name: "y"}.clone().Attrs)
}
