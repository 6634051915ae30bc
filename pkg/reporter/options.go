package reporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/nomxml/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// minValueWidth is the narrowest a truncated value gets.
const minValueWidth = 16

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowSummary appends aggregate statistics when more than one file
	// was processed.
	ShowSummary bool

	// Compact drops attribute and value lines from text dumps and minifies
	// JSON.
	Compact bool

	// Indent is the number of spaces per nesting level in text dumps.
	Indent int

	// MaxWidth bounds text dump lines by truncating values. Zero means the
	// terminal width when Writer is a terminal and no limit otherwise.
	// Negative disables truncation.
	MaxWidth int

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       string(config.ColorAuto),
		ShowSummary: true,
		Compact:     false,
		Indent:      config.DefaultIndent,
	}
}

// displayPath returns path relative to WorkingDir when it lies beneath it.
func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" {
		return path
	}
	rel, err := filepath.Rel(o.WorkingDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// lineWidth resolves MaxWidth against the writer. Zero means unlimited.
func (o Options) lineWidth() int {
	switch {
	case o.MaxWidth < 0:
		return 0
	case o.MaxWidth > 0:
		return o.MaxWidth
	default:
		return terminalWidth(o.Writer)
	}
}

// terminalWidth returns the width of the terminal behind writer, or zero
// when writer is not a terminal.
func terminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		fd := int(f.Fd())
		if !term.IsTerminal(fd) {
			return 0
		}
		width, _, err := term.GetSize(fd)
		if err == nil && width > 0 {
			return width
		}
		return defaultTermWidth
	}
	return 0
}

// tableWidth returns the width tables should fit in.
func tableWidth(writer io.Writer) int {
	if width := terminalWidth(writer); width > 0 {
		return width
	}
	return defaultTermWidth
}
