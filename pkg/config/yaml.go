package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlIndent is the indentation of every YAML document nomdump writes.
const yamlIndent = 2

// WriteYAML encodes the persisted fields of c to w. CLI-only fields carry
// the "-" tag and never appear.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close encoder: %w", err)
	}
	return nil
}

// ToYAML returns c as a YAML document, or nil for a nil config.
func (c *Config) ToYAML() ([]byte, error) {
	return c.ToYAMLWithHeader("")
}

// ToYAMLWithHeader is ToYAML preceded by header and a blank line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if header != "" {
		buf.WriteString(strings.TrimRight(header, "\n"))
		buf.WriteString("\n\n")
	}
	if err := c.WriteYAML(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromYAML decodes a configuration document. JSON documents are accepted
// too. Unknown keys are errors, and a document holding only comments
// yields an empty Config.
func FromYAML(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	cfg := new(Config)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Clone returns a copy of c sharing no slices or pointers with it.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	dup := *c
	dup.Extensions = slices.Clone(c.Extensions)
	dup.Ignore = slices.Clone(c.Ignore)
	if c.Detect != nil {
		dup.Detect = new(bool)
		*dup.Detect = *c.Detect
	}
	return &dup
}
