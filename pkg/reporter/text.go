package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/nomxml/internal/ui/pretty"
	"github.com/yaklabco/nomxml/pkg/config"
	"github.com/yaklabco/nomxml/pkg/nomxml"
	"github.com/yaklabco/nomxml/pkg/runner"
)

// TextReporter writes an indented dump of every file's events.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
	width  int
	indent string
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)

	indent := opts.Indent
	if indent <= 0 {
		indent = config.DefaultIndent
	}

	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
		width:  opts.lineWidth(),
		indent: strings.Repeat(" ", indent),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to dump."))
		}
		return 0, nil
	}

	var failed int
	for idx, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return failed, fmt.Errorf("report cancelled: %w", err)
		}
		if idx > 0 {
			fmt.Fprintln(r.bw)
		}
		if !r.reportFile(file) {
			failed++
		}
	}

	if r.opts.ShowSummary && len(result.Files) > 1 {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return failed, nil
}

// reportFile dumps one file and reports whether it parsed cleanly.
func (r *TextReporter) reportFile(file runner.FileOutcome) bool {
	path := r.opts.displayPath(file.Path)

	if !file.Started {
		fmt.Fprintln(r.bw, r.styles.Error.Render("Failed to begin parsing file:  "+path))
		r.writeError(file)
		return false
	}

	fmt.Fprintln(r.bw, r.styles.Banner.Render(fmt.Sprintf("BEGIN DUMP OF FILE '%s'", path)))

	level := 1
	for _, event := range file.Events {
		switch ev := event.(type) {
		case nomxml.Open:
			r.writeOpen(level, ev)
			level++
		case nomxml.Text:
			if !r.opts.Compact {
				r.writeText(level, ev)
			}
		case nomxml.Close:
			level--
			r.writeLine(level, r.styles.Keyword.Render("END")+" "+r.quotedName(ev.Name))
		}
	}

	if file.Failed() {
		r.writeError(file)
		fmt.Fprintln(r.bw, r.styles.Failure.Render("Terminating with error."))
		return false
	}

	fmt.Fprintln(r.bw, r.styles.Banner.Render(fmt.Sprintf("END DUMP OF FILE '%s'", path)))
	return true
}

func (r *TextReporter) writeOpen(level int, open nomxml.Open) {
	r.writeLine(level, fmt.Sprintf("%s %s, %s",
		r.styles.Keyword.Render("BEGIN"),
		r.quotedName(open.Name),
		r.styles.Dim.Render(fmt.Sprintf("offset=%d", open.Offset))))

	if r.opts.Compact {
		return
	}

	for idx, attr := range open.Attrs {
		prefix := fmt.Sprintf("ATTRIBUTE %d:  '%s'='", idx, attr.Name)
		value := r.fit(attr.Value, level+1, utf8.RuneCountInString(prefix)+1)
		r.writeLine(level+1, fmt.Sprintf("%s  '%s'='%s'",
			r.styles.Keyword.Render(fmt.Sprintf("ATTRIBUTE %d:", idx)),
			r.styles.AttrName.Render(attr.Name),
			r.styles.AttrValue.Render(value)))
	}
}

func (r *TextReporter) writeText(level int, text nomxml.Text) {
	prefix := fmt.Sprintf("NAME '%s', VALUE '", text.Name)
	value := r.fit(text.Value, level, utf8.RuneCountInString(prefix)+1)
	r.writeLine(level, fmt.Sprintf("%s %s, %s '%s'",
		r.styles.Keyword.Render("NAME"),
		r.quotedName(text.Name),
		r.styles.Keyword.Render("VALUE"),
		r.styles.TextValue.Render(value)))
}

func (r *TextReporter) writeError(file runner.FileOutcome) {
	text := file.ErrorText
	if text == "" && file.Err != nil {
		text = file.Err.Error()
	}
	fmt.Fprintln(r.bw, r.styles.Error.Render("Error:  "+text))
	fmt.Fprintf(r.bw, "Near offset:  %d\n", file.Offset)
}

func (r *TextReporter) writeLine(level int, line string) {
	fmt.Fprintln(r.bw, strings.Repeat(r.indent, max(level, 0))+line)
}

func (r *TextReporter) quotedName(name string) string {
	return "'" + r.styles.TagName.Render(name) + "'"
}

// fit truncates value so that a line at level with overhead fixed
// characters stays within the configured width.
func (r *TextReporter) fit(value string, level, overhead int) string {
	if r.width <= 0 {
		return value
	}
	room := r.width - level*len(r.indent) - overhead
	return pretty.TruncateString(value, max(room, minValueWidth))
}
