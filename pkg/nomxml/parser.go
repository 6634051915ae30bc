package nomxml

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/nomxml/internal/logging"
	"github.com/yaklabco/nomxml/pkg/source"
)

// maxExcerptRunes bounds how much offending text is quoted in error messages.
const maxExcerptRunes = 64

// state is the iterator state of a Parser.
type state uint8

const (
	// stateIdle means no session has been started since the last Reset.
	stateIdle state = iota

	// stateAwaiting is the steady state between events.
	stateAwaiting

	// stateSyntheticClose means the last Open was self-closing and its Close
	// is produced by the next call without reading input.
	stateSyntheticClose

	// stateClosed means the session ended, cleanly or with an error.
	stateClosed
)

// Option configures a Parser.
type Option func(*Parser)

// WithLogger traces sessions, events and failures at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithSourceOptions sets source options applied by BeginFile and BeginMemory
// before any per-call options.
func WithSourceOptions(opts ...source.Option) Option {
	return func(p *Parser) {
		p.sourceOpts = append(p.sourceOpts, opts...)
	}
}

// Parser produces events from one input session at a time.
//
// A Parser is not safe for concurrent use. Parse independent documents with
// independent parsers.
type Parser struct {
	cur   cursor
	stack elementStack
	state state

	err  *Error
	done error

	owned io.Closer

	logger     *log.Logger
	sourceOpts []source.Option
}

// New returns an idle Parser.
func New(opts ...Option) *Parser {
	parser := &Parser{}
	for _, opt := range opts {
		if opt != nil {
			opt(parser)
		}
	}
	return parser
}

// BeginFile starts a session on the named file. The parser owns the file
// handle and closes it on Reset.
func (p *Parser) BeginFile(path string, opts ...source.Option) error {
	return p.begin(source.FileOpener(path, p.mergeSourceOptions(opts)...))
}

// BeginMemory starts a session on data. The caller keeps ownership of data
// and must not modify it until the session ends.
func (p *Parser) BeginMemory(data []byte, opts ...source.Option) error {
	return p.begin(source.MemoryOpener(data, p.mergeSourceOptions(opts)...))
}

// BeginSource starts a session on a caller-supplied source. open is called
// once and must return a Source private to this session; if it also
// implements io.Closer it is closed on Reset.
func (p *Parser) BeginSource(open source.Opener) error {
	if open == nil {
		p.Reset()
		return p.fail(IOFailure, nil, "no input source supplied")
	}
	return p.begin(open)
}

func (p *Parser) mergeSourceOptions(opts []source.Option) []source.Option {
	merged := make([]source.Option, 0, len(p.sourceOpts)+len(opts))
	merged = append(merged, p.sourceOpts...)
	return append(merged, opts...)
}

func (p *Parser) begin(open source.Opener) error {
	p.Reset()

	src, err := open()
	if err != nil {
		return p.fail(IOFailure, err, "failed opening input")
	}

	p.cur.src = src
	if closer, ok := src.(io.Closer); ok {
		p.owned = closer
	}
	p.state = stateAwaiting
	p.debug("parse session started", logging.FieldLength, src.Len())

	// Prime the current character.
	if !p.cur.advance() && p.cur.stalled() {
		return p.fail(IOFailure, p.cur.readErr(), "failed reading input")
	}

	return nil
}

// Next returns the next event.
//
// At the clean end of input Next returns io.EOF. On a fatal condition it
// returns an *Error whose Kind classifies the failure. Either way the session
// is over and every later call returns the same error.
func (p *Parser) Next() (Event, error) {
	switch p.state {
	case stateIdle:
		return nil, io.EOF
	case stateClosed:
		return nil, p.done
	case stateSyntheticClose:
		p.state = stateAwaiting
		elem := p.stack.pop()
		return p.emit(elem.close), nil
	case stateAwaiting:
	}

	for {
		leading := p.scanSpace()

		if !p.cur.have {
			return nil, p.endOfInput()
		}

		if !p.cur.is('<') {
			return p.parseText(leading)
		}

		p.cur.advance() // '<'

		switch {
		case !p.cur.have:
			return nil, p.unexpectedEnd("tag")
		case p.cur.is('/'):
			return p.parseEndTag()
		case p.cur.is('!'):
			if err := p.skipBangTag(); err != nil {
				return nil, err
			}
		default:
			return p.parseBeginTag()
		}
	}
}

// scanSpace consumes whitespace and returns it.
func (p *Parser) scanSpace() string {
	if !p.cur.atSpace() {
		return ""
	}
	var buf strings.Builder
	for p.cur.atSpace() {
		buf.WriteRune(p.cur.cur)
		p.cur.advance()
	}
	return buf.String()
}

// parseText reads the value text of the innermost open element. Characters
// already consumed as leading whitespace are passed in prefix.
func (p *Parser) parseText(prefix string) (Event, error) {
	var buf strings.Builder
	buf.WriteString(prefix)
	for p.cur.have && p.cur.cur != '<' {
		buf.WriteRune(p.cur.cur)
		p.cur.advance()
	}
	if p.cur.stalled() {
		return nil, p.fail(IOFailure, p.cur.readErr(), "failed reading input")
	}

	value := buf.String()

	top := p.stack.top()
	if top == nil {
		return nil, p.fail(UnexpectedContent, nil, "unexpected data outside of all tags: '%s'", excerpt(value))
	}

	top.text = Text{Name: top.open.Name, Value: value}
	return p.emit(top.text), nil
}

// endOfInput ends the session when no character is left.
func (p *Parser) endOfInput() error {
	if p.cur.stalled() {
		return p.fail(IOFailure, p.cur.readErr(), "failed reading input")
	}
	if top := p.stack.top(); top != nil {
		return p.fail(PrematureEOF, nil, "unexpected end of input, %d open element(s), innermost '%s'",
			p.stack.len(), top.open.Name)
	}

	p.state = stateClosed
	p.done = io.EOF
	p.debug("parse session finished", logging.FieldOffset, p.cur.pos)
	return io.EOF
}

// unexpectedEnd fails the session because input stopped inside a construct.
func (p *Parser) unexpectedEnd(inside string) error {
	if p.cur.stalled() {
		return p.fail(IOFailure, p.cur.readErr(), "failed reading input")
	}
	return p.fail(PrematureEOF, nil, "unexpected end of input in %s", inside)
}

func (p *Parser) fail(kind ErrorKind, cause error, format string, args ...any) error {
	return p.terminate(&Error{
		Kind:   kind,
		Offset: p.cur.pos,
		Msg:    fmt.Sprintf(format, args...),
		Err:    cause,
	})
}

func (p *Parser) failAt(offset int, kind ErrorKind, format string, args ...any) error {
	return p.terminate(&Error{
		Kind:   kind,
		Offset: offset,
		Msg:    fmt.Sprintf(format, args...),
	})
}

func (p *Parser) terminate(err *Error) error {
	p.err = err
	p.state = stateClosed
	p.done = err
	p.debug("parse failed",
		logging.FieldKind, err.Kind,
		logging.FieldOffset, err.Offset,
		logging.FieldError, err.Msg)
	return err
}

func (p *Parser) emit(event Event) Event {
	p.debug("event",
		logging.FieldKind, event.Kind(),
		logging.FieldName, event.TagName(),
		logging.FieldOffset, p.cur.pos,
		logging.FieldDepth, p.stack.len())
	return event
}

func (p *Parser) debug(msg string, keyvals ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, keyvals...)
	}
}

// Err returns the error that ended the session, or nil if there was none.
func (p *Parser) Err() error {
	if p.err == nil {
		return nil
	}
	return p.err
}

// ErrorText describes the fatal condition that ended the session. It is
// empty exactly when no fatal condition has occurred.
func (p *Parser) ErrorText() string {
	if p.err == nil {
		return ""
	}
	return p.err.Msg
}

// Offset returns the number of characters consumed so far.
func (p *Parser) Offset() int {
	return p.cur.pos
}

// AtEnd reports whether the input has been consumed entirely.
func (p *Parser) AtEnd() bool {
	return p.cur.src == nil || p.cur.exhausted()
}

// Depth returns the number of open elements.
func (p *Parser) Depth() int {
	return p.stack.len()
}

// OpenElements returns the names of the open elements, outermost first.
func (p *Parser) OpenElements() []string {
	return p.stack.names()
}

// Reset ends the current session, discarding parser state and closing any
// source the parser owns. Calling Reset on an idle parser has no effect.
func (p *Parser) Reset() {
	_ = p.release()
}

// Close is Reset, reporting any error from closing the owned source.
func (p *Parser) Close() error {
	return p.release()
}

func (p *Parser) release() error {
	var err error
	if p.owned != nil {
		if closeErr := p.owned.Close(); closeErr != nil {
			err = fmt.Errorf("close input: %w", closeErr)
		}
		p.owned = nil
	}

	p.stack.reset()
	p.cur = cursor{}
	p.err = nil
	p.done = nil
	p.state = stateIdle
	return err
}

// excerpt shortens s for quoting in an error message.
func excerpt(s string) string {
	if utf8.RuneCountInString(s) <= maxExcerptRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxExcerptRunes]) + "..."
}
