package pretty

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/nomxml/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(count int, one, many string) string {
	if count == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files parsed, 1 failed (1 premature-eof), 412 events".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	total := stats.FilesParsed + stats.FilesFailed

	if stats.FilesFailed == 0 {
		return s.Success.Render(fmt.Sprintf("%d %s parsed", total, plural(total, wordFile, wordFiles))) +
			s.Dim.Render(fmt.Sprintf(", %d events", stats.Events)) + "\n"
	}

	var kindParts []string
	for _, kind := range slices.Sorted(maps.Keys(stats.FailuresByKind)) {
		kindParts = append(kindParts, fmt.Sprintf("%d %s", stats.FailuresByKind[kind], kind))
	}

	parts := []string{
		fmt.Sprintf("%d %s parsed", total, plural(total, wordFile, wordFiles)),
		s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesFailed)) +
			" (" + strings.Join(kindParts, ", ") + ")",
		s.Dim.Render(fmt.Sprintf("%d events", stats.Events)),
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	// Files
	builder.WriteString("  Files parsed:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesParsed+stats.FilesFailed)) + "\n")

	if stats.FilesFailed > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesFailed)) + "\n")
		for _, kind := range slices.Sorted(maps.Keys(stats.FailuresByKind)) {
			builder.WriteString(fmt.Sprintf("    %-17s%s\n", kind+":",
				s.Error.Render(strconv.Itoa(stats.FailuresByKind[kind]))))
		}
	}

	builder.WriteString("\n")

	// Events
	builder.WriteString("  Events:            " +
		s.SummaryValue.Render(strconv.Itoa(stats.Events)) + "\n")
	builder.WriteString("    Elements:        " +
		s.SummaryValue.Render(strconv.Itoa(stats.Opens)) + "\n")
	builder.WriteString("    Attributes:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.Attributes)) + "\n")
	builder.WriteString("    Text runs:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.Texts)) + "\n")
	builder.WriteString("    Max depth:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.MaxDepth)) + "\n")

	builder.WriteString("\n")

	// Overall status
	if stats.FilesFailed > 0 {
		builder.WriteString(s.Failure.Render("Parse failed"))
	} else {
		builder.WriteString(s.Success.Render("Parse succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
