package configloader

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/nomxml/pkg/config"
)

const envPrefix = "NOMDUMP_"

// envVar binds one NOMDUMP_* variable to the config field it overrides.
type envVar struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, raw string) error
}

//nolint:gochecknoglobals // read-only table
var envVars = []envVar{
	{"MODE", "Input source: file, memory or interface", func(cfg *config.Config, raw string) error {
		cfg.Mode = config.ReadMode(raw)
		return nil
	}},
	{"CHARSET", "Single-byte code page used to decode input", func(cfg *config.Config, raw string) error {
		cfg.Charset = raw
		return nil
	}},
	{"FORMAT", "Output format: text, json or summary", func(cfg *config.Config, raw string) error {
		cfg.Format = config.OutputFormat(raw)
		return nil
	}},
	{"EXTENSIONS", "Comma-separated list of file extensions", func(cfg *config.Config, raw string) error {
		cfg.Extensions = splitList(raw)
		return nil
	}},
	{"IGNORE", "Comma-separated list of ignore patterns", func(cfg *config.Config, raw string) error {
		cfg.Ignore = splitList(raw)
		return nil
	}},
	{"DETECT", "Sniff files without a known extension: true or false", func(cfg *config.Config, raw string) error {
		detect, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("want true/false/1/0, got %q", raw)
		}
		cfg.Detect = &detect
		return nil
	}},
	{"FOLLOW_SYMLINKS", "Walk into symlinked directories: true or false", func(cfg *config.Config, raw string) error {
		follow, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("want true/false/1/0, got %q", raw)
		}
		cfg.FollowSymlinks = follow
		return nil
	}},
	{"JOBS", "Number of parallel workers (0 = auto)", intSetter(func(cfg *config.Config, n int) { cfg.Jobs = n })},
	{"INDENT", "Spaces per nesting level in text dumps", intSetter(func(cfg *config.Config, n int) { cfg.Indent = n })},
}

func intSetter(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("want an integer, got %q", raw)
		}
		set(cfg, n)
		return nil
	}
}

// applyEnv overrides cfg with every non-empty NOMDUMP_* variable lookup finds.
func applyEnv(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}
	for _, v := range envVars {
		name := envPrefix + v.suffix
		raw, ok := lookup(name)
		if !ok || raw == "" {
			continue
		}
		if err := v.apply(cfg, raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping blank items.
func splitList(raw string) []string {
	var items []string
	for item := range strings.SplitSeq(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns the supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	out := make([]EnvVar, 0, len(envVars))
	for _, v := range envVars {
		out = append(out, EnvVar{Name: envPrefix + v.suffix, Description: v.description})
	}
	slices.SortFunc(out, func(a, b EnvVar) int { return cmp.Compare(a.Name, b.Name) })
	return out
}
