// Package config defines core configuration types for nomdump.
// These types are pure data structures with no dependencies on the loaders that fill them.
package config

// ReadMode selects how a file's characters reach the parser.
type ReadMode string

const (
	// ModeFile streams the file through a buffered handle owned by the parser.
	ModeFile ReadMode = "file"

	// ModeMemory loads the whole file first and parses the buffer.
	ModeMemory ReadMode = "memory"

	// ModeInterface opens the file itself and hands the parser a
	// caller-supplied source reading through it.
	ModeInterface ReadMode = "interface"
)

// IsValid returns true if the read mode is known.
func (m ReadMode) IsValid() bool {
	switch m {
	case ModeFile, ModeMemory, ModeInterface:
		return true
	default:
		return false
	}
}

// ReadModes returns every valid read mode.
func ReadModes() []ReadMode {
	return []ReadMode{ModeFile, ModeMemory, ModeInterface}
}

// OutputFormat specifies the output format for dumps.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSummary:
		return true
	default:
		return false
	}
}

// ColorMode controls styled output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is known.
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// DefaultCharset is the code page used when none is configured.
const DefaultCharset = "ISO-8859-1"

// DefaultIndent is the number of spaces per nesting level in text dumps.
const DefaultIndent = 4

// DefaultExtensions lists the file extensions treated as markup during discovery.
func DefaultExtensions() []string {
	return []string{
		".xml", ".xsd", ".xsl", ".xslt", ".svg",
		".rss", ".atom", ".plist", ".xhtml", ".config",
	}
}

// Config is the root configuration structure for nomdump.
type Config struct {
	// Mode selects the input source variant ("file", "memory" or "interface").
	Mode ReadMode `yaml:"mode,omitempty"`

	// Charset is the IANA name of the single-byte code page used to decode input.
	Charset string `yaml:"charset,omitempty"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"format,omitempty"`

	// Extensions lists the file extensions picked up when walking directories.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// Detect enables content sniffing for files without a known extension.
	// A nil value means "not set" so lower-precedence layers can be kept.
	Detect *bool `yaml:"detect,omitempty"`

	// FollowSymlinks walks into symlinked directories during discovery.
	FollowSymlinks bool `yaml:"follow_symlinks,omitempty"`

	// Jobs specifies the number of parallel workers. 0 means GOMAXPROCS.
	Jobs int `yaml:"jobs,omitempty"`

	// Indent is the number of spaces per nesting level in text output.
	Indent int `yaml:"indent,omitempty"`

	// CLI-level options (not persisted to config files).

	// Color controls styled output.
	Color ColorMode `yaml:"-"`

	// Output is the file the report is written to. Empty means stdout.
	Output string `yaml:"-"`

	// Strict turns validation warnings into errors.
	Strict bool `yaml:"-"`

	// Compact drops text events and attribute lines from text dumps.
	Compact bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	detect := false
	return &Config{
		Mode:       ModeFile,
		Charset:    DefaultCharset,
		Format:     FormatText,
		Extensions: DefaultExtensions(),
		Ignore:     nil,
		Detect:     &detect,
		Jobs:       0,
		Indent:     DefaultIndent,
		Color:      ColorAuto,
	}
}

// DetectEnabled reports whether content sniffing is on.
func (c *Config) DetectEnabled() bool {
	return c != nil && c.Detect != nil && *c.Detect
}
