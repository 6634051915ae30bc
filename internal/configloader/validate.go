package configloader

import (
	"fmt"
	"path"
	"strings"

	"github.com/yaklabco/nomxml/pkg/config"
	"github.com/yaklabco/nomxml/pkg/source"
)

const maxIndent = 16

// ValidationError is one problem with a resolved configuration.
type ValidationError struct {
	Field   string // e.g. "charset" or "ignore[2]"
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationResult separates fatal problems from warnings. Warnings only
// fail a load in strict mode.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a merged configuration. Empty fields are left to defaults
// and are not reported.
func Validate(cfg *config.Config) *ValidationResult {
	r := &ValidationResult{}
	if cfg == nil {
		return r
	}

	if cfg.Mode != "" && !cfg.Mode.IsValid() {
		r.fail("mode", cfg.Mode, "invalid mode %q; must be one of: file, memory, interface", cfg.Mode)
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		r.fail("format", cfg.Format, "invalid format %q; must be one of: text, json, summary", cfg.Format)
	}
	if cfg.Color != "" && !cfg.Color.IsValid() {
		r.fail("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}
	if cfg.Charset != "" {
		if _, err := source.LookupCharset(cfg.Charset); err != nil {
			r.fail("charset", cfg.Charset, "%v", err)
		}
	}
	if cfg.Jobs < 0 {
		r.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Indent < 0 || cfg.Indent > maxIndent {
		r.fail("indent", cfg.Indent, "indent must be between 0 and %d", maxIndent)
	}

	if cfg.Extensions != nil && len(cfg.Extensions) == 0 && !cfg.DetectEnabled() {
		r.warn("extensions", nil, "no extensions configured and detection is off; directories will yield no files")
	}
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || strings.ContainsAny(ext, `/\`) {
			r.warn(fmt.Sprintf("extensions[%d]", i), ext, "extension %q should look like \".xml\"; it will never match", ext)
		}
	}

	for i, pattern := range cfg.Ignore {
		if _, err := path.Match(pattern, ""); err != nil {
			r.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	return r
}
