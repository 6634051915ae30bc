package reporter

import (
	"bufio"
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/nomxml/internal/ui/pretty"
	"github.com/yaklabco/nomxml/pkg/runner"
)

// Layout constants for the failure breakdown table.
const (
	kindTableWidth = 40
	kindColWidth   = 28
	numColWidth    = 7
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryReporter formats results as a per-file statistics table followed
// by a breakdown of failures.
type SummaryReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &SummaryReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, tableWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to parse."))
		return 0, nil
	}

	display := *result
	display.Files = make([]runner.FileOutcome, len(result.Files))
	for idx, file := range result.Files {
		file.Path = r.opts.displayPath(file.Path)
		display.Files[idx] = file
	}

	fmt.Fprint(r.bw, r.formatter.FormatTable(&display))
	fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(result.Stats, result.Elapsed.Round(time.Millisecond).String()))

	if result.HasFailures() {
		fmt.Fprintln(r.bw)
		r.renderKindTable(result.Stats.FailuresByKind)
		fmt.Fprintln(r.bw)
		for _, file := range display.Failures() {
			fmt.Fprint(r.bw, r.styles.FormatFailure(file))
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	}

	return result.Stats.FilesFailed, nil
}

func (r *SummaryReporter) renderKindTable(byKind map[string]int) {
	fmt.Fprintln(r.bw, r.styles.Bold.Render("Failures by kind"))
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", kindTableWidth)))

	// Header - pad first, then style
	fmt.Fprintf(r.bw, "%s %s\n",
		r.styles.TableHeader.Render(padRight("Kind", kindColWidth)),
		r.styles.TableHeader.Render(padLeft("Files", numColWidth)),
	)
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("─", kindTableWidth)))

	for _, kind := range slices.Sorted(maps.Keys(byKind)) {
		fmt.Fprintf(r.bw, "%s %s\n",
			r.styles.TableFailRow.Render(padRight(kind, kindColWidth)),
			padLeft(strconv.Itoa(byKind[kind]), numColWidth),
		)
	}
}
