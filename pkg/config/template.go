package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every option with its allowed values.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// OptionInfo documents one configuration key for template generation.
type OptionInfo struct {
	Key         string
	Description string
	Allowed     []string
	Example     string
}

// Options returns the documented configuration keys in template order.
func Options() []OptionInfo {
	modes := make([]string, 0, len(ReadModes()))
	for _, mode := range ReadModes() {
		modes = append(modes, string(mode))
	}

	return []OptionInfo{
		{
			Key: "mode",
			Description: "How files reach the parser. file streams through a buffered handle, " +
				"memory loads the whole file first, interface reads through a caller-owned handle.",
			Allowed: modes,
			Example: string(ModeFile),
		},
		{
			Key: "charset",
			Description: "IANA name of the single-byte code page used to decode input bytes. " +
				"Multi-byte encodings such as UTF-8 are rejected.",
			Example: DefaultCharset,
		},
		{
			Key:         "format",
			Description: "Report format.",
			Allowed:     []string{string(FormatText), string(FormatJSON), string(FormatSummary)},
			Example:     string(FormatText),
		},
		{
			Key:         "extensions",
			Description: "File extensions picked up when walking directories.",
			Example:     "[" + strings.Join(DefaultExtensions(), ", ") + "]",
		},
		{
			Key:         "ignore",
			Description: "Glob patterns for files and directories to skip.",
			Example:     `["vendor/**", "testdata/broken/**"]`,
		},
		{
			Key:         "detect",
			Description: "Sniff files without a known extension and include those that look like markup.",
			Allowed:     []string{"true", "false"},
			Example:     "false",
		},
		{
			Key:         "follow_symlinks",
			Description: "Walk into directories reached through symbolic links. Each target is walked once.",
			Allowed:     []string{"true", "false"},
			Example:     "false",
		},
		{
			Key:         "jobs",
			Description: "Number of parallel workers (0 = auto based on CPU cores).",
			Example:     "0",
		},
		{
			Key:         "indent",
			Description: "Spaces per nesting level in text dumps.",
			Example:     fmt.Sprint(DefaultIndent),
		},
	}
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate(), nil
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Input source: file, memory or interface
mode: file

# Single-byte code page used to decode input
# charset: ISO-8859-1

# Report format: text, json or summary
# format: text

# Number of parallel workers (0 = auto)
# jobs: 0

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
`)

	return buf.Bytes()
}

// generateFullTemplate creates a template with every option documented.
func generateFullTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n#\n# This template lists every option with its default value.\n")
	buf.WriteString("# Uncomment and modify settings as needed.\n")

	for _, opt := range Options() {
		fmt.Fprintf(&buf, "\n# %s\n", wrapComment(opt.Description, commentWrapWidth))
		if len(opt.Allowed) > 0 {
			fmt.Fprintf(&buf, "# Allowed: %s\n", strings.Join(opt.Allowed, ", "))
		}
		fmt.Fprintf(&buf, "# %s: %s\n", opt.Key, opt.Example)
	}

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n# ")
}

// templateToJSON renders the defaults as a JSON document.
func templateToJSON() ([]byte, error) {
	defaults := NewConfig()

	cfg := map[string]any{
		"mode":            defaults.Mode,
		"charset":         defaults.Charset,
		"format":          defaults.Format,
		"extensions":      defaults.Extensions,
		"ignore":          []string{},
		"detect":          defaults.DetectEnabled(),
		"follow_symlinks": defaults.FollowSymlinks,
		"jobs":            defaults.Jobs,
		"indent":          defaults.Indent,
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# nomdump configuration
# See: https://github.com/yaklabco/nomxml`
}
