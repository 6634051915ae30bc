package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/nomxml/pkg/runner"
)

// Table formatting constants.
const (
	okStatus         = "ok"
	tablePadding     = 2
	tableColumnCount = 6 // FILE, EVENTS, ELEMENTS, ATTRS, DEPTH, STATUS
	numColumnWidth   = 8
	minFileWidth     = 20
	minStatusWidth   = 24
	heavySeparator   = "="
	defaultTermWidth = 100
)

// TableRow represents a single row in the per-file table.
type TableRow struct {
	File     string
	Events   int
	Elements int
	Attrs    int
	Depth    int
	Status   string
	Failed   bool
}

// RowFromOutcome converts a file outcome to a table row.
func RowFromOutcome(file runner.FileOutcome) TableRow {
	row := TableRow{
		File:     file.Path,
		Events:   file.Stats.Events(),
		Elements: file.Stats.Opens,
		Attrs:    file.Stats.Attributes,
		Depth:    file.Stats.MaxDepth,
		Status:   okStatus,
	}
	if file.Failed() {
		row.Failed = true
		row.Status = fmt.Sprintf("%s @%d", file.Kind(), file.Offset)
	}
	return row
}

// TableFormatter formats per-file statistics as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

type columnWidths struct {
	file   int
	status int
}

// FormatTable formats runner results as a styled table.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(result.Files))
	for _, file := range result.Files {
		rows = append(rows, RowFromOutcome(file))
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

// calculateColumnWidths sizes the text columns to their content, shrinking
// the file column when the table would overflow the terminal.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		file:   minFileWidth,
		status: minStatusWidth,
	}

	for _, row := range rows {
		widths.file = max(widths.file, len(row.File))
		widths.status = max(widths.status, len(row.Status))
	}

	if total := t.calculateTotalWidth(widths); total > t.termWidth {
		widths.file = max(minFileWidth, widths.file-(total-t.termWidth))
	}

	return widths
}

// calculateTotalWidth calculates the total table width from column widths.
func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.file + widths.status + 4*numColumnWidth + tablePadding*tableColumnCount
}

// formatHeader formats the table header row.
func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %*s  %*s  %*s  %*s  %-*s ",
		widths.file, "FILE",
		numColumnWidth, "EVENTS",
		numColumnWidth, "ELEMENTS",
		numColumnWidth, "ATTRS",
		numColumnWidth, "DEPTH",
		widths.status, "STATUS",
	)
	return t.styles.TableHeader.Render(header)
}

// formatSeparator formats a separator line.
func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, t.calculateTotalWidth(widths)))
}

// formatRow formats a single table row, highlighting failed files.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := fmt.Sprintf(" %-*s  %*s  %*s  %*s  %*s  %-*s ",
		widths.file, truncateFilePath(row.File, widths.file),
		numColumnWidth, strconv.Itoa(row.Events),
		numColumnWidth, strconv.Itoa(row.Elements),
		numColumnWidth, strconv.Itoa(row.Attrs),
		numColumnWidth, strconv.Itoa(row.Depth),
		widths.status, row.Status,
	)
	return t.getRowStyle(row).Render(content)
}

func (t *TableFormatter) getRowStyle(row TableRow) lipgloss.Style {
	if row.Failed {
		return t.styles.TableFailRow
	}
	return t.styles.TableOKRow
}

// formatLegend explains the STATUS column.
func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Legend: STATUS is ok or <error kind> @<offset>")
	}
	return t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s = parsed  %s = failed near offset",
			t.styles.Success.Render(okStatus),
			t.styles.TableFailRow.Render("kind @offset")),
	)
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{
		fmt.Sprintf("%d files", stats.FilesParsed+stats.FilesFailed),
		fmt.Sprintf("%d events", stats.Events),
	}

	if stats.FilesFailed > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d failed", stats.FilesFailed)))
	}

	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

// TruncateString shortens str to maxLen characters, ending in "..." when
// anything was cut.
func TruncateString(str string, maxLen int) string {
	if utf8.RuneCountInString(str) <= maxLen {
		return str
	}
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(str)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
