// Package pretty renders nomdump's terminal output with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ANSI 256 palette indices.
const (
	colorRed     = lipgloss.Color("9")
	colorGreen   = lipgloss.Color("10")
	colorYellow  = lipgloss.Color("11")
	colorBlue    = lipgloss.Color("12")
	colorMagenta = lipgloss.Color("13")
	colorCyan    = lipgloss.Color("14")
	colorGray    = lipgloss.Color("8")
	colorSilver  = lipgloss.Color("7")
)

// Styles holds one lipgloss style per output element. With color disabled
// every field is the zero style, which renders text unchanged.
type Styles struct {
	Error lipgloss.Style

	// Failure lines: path:offset: kind: message.
	FilePath lipgloss.Style
	Location lipgloss.Style
	Kind     lipgloss.Style
	Message  lipgloss.Style

	// Event dumps.
	Banner    lipgloss.Style
	Keyword   lipgloss.Style
	TagName   lipgloss.Style
	AttrName  lipgloss.Style
	AttrValue lipgloss.Style
	TextValue lipgloss.Style

	// Run summaries.
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Per-file tables.
	TableHeader    lipgloss.Style
	TableFailRow   lipgloss.Style
	TableOKRow     lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns the colored styles, or plain ones when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return &Styles{}
	}

	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	bold := lipgloss.NewStyle().Bold(true)

	return &Styles{
		Error: fg(colorRed).Bold(true),

		FilePath: bold,
		Location: fg(colorGray),
		Kind:     fg(colorMagenta),

		Banner:    fg(colorCyan).Bold(true),
		Keyword:   fg(colorGray),
		TagName:   fg(colorBlue).Bold(true),
		AttrName:  fg(colorYellow),
		AttrValue: fg(colorGreen),
		TextValue: fg(colorSilver),

		SummaryTitle: bold,
		Success:      fg(colorGreen).Bold(true),
		Failure:      fg(colorRed).Bold(true),

		TableHeader:    fg(colorSilver).Bold(true),
		TableFailRow:   fg(colorRed),
		TableLegend:    fg(colorGray).Italic(true),
		TableSeparator: fg(colorGray),

		Dim:  fg(colorGray),
		Bold: bold,
	}
}

// IsColorEnabled resolves a color mode ("auto", "always" or "never") for
// writer. Auto, the default for any other value, colors only terminals and
// honors NO_COLOR.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
