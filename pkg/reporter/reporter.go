// Package reporter renders parse results as dumps, JSON documents or
// summary tables.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/nomxml/pkg/config"
	"github.com/yaklabco/nomxml/pkg/runner"
)

// Reporter writes a parse result in one output format.
type Reporter interface {
	// Report writes result and returns how many files failed.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Format names a Reporter implementation.
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatSummary Format = "summary"
)

// formats holds a constructor per format and whether it renders events.
//
//nolint:gochecknoglobals // read-only table
var formats = map[Format]struct {
	build  func(Options) Reporter
	events bool
}{
	FormatText:    {func(o Options) Reporter { return NewTextReporter(o) }, true},
	FormatJSON:    {func(o Options) Reporter { return NewJSONReporter(o) }, true},
	FormatSummary: {func(o Options) Reporter { return NewSummaryReporter(o) }, false},
}

func (f Format) String() string { return string(f) }

// IsValid reports whether f names a known format. The empty format is not
// valid here; ParseFormat maps it to text.
func (f Format) IsValid() bool {
	_, ok := formats[f]
	return ok
}

// ParseFormat resolves a format name, defaulting "" to text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	if f := Format(name); f.IsValid() {
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q; valid formats: text, json, summary", name)
}

// FromConfig resolves a configured output format.
func FromConfig(format config.OutputFormat) (Format, error) {
	return ParseFormat(string(format))
}

// NeedsEvents reports whether format prints individual events, which the
// runner then has to keep.
func NeedsEvents(format Format) bool {
	if format == "" {
		format = FormatText
	}
	return formats[format].events
}

// New returns the Reporter for opts.Format, writing to stdout when
// opts.Writer is nil.
func New(opts Options) (Reporter, error) {
	format, err := ParseFormat(string(opts.Format))
	if err != nil {
		return nil, fmt.Errorf("unsupported format: %w", err)
	}
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	return formats[format].build(opts), nil
}
