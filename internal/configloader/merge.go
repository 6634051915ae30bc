package configloader

import "github.com/yaklabco/nomxml/pkg/config"

// overlay sets *dst to v unless v is the zero value.
func overlay[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

// merge returns base with every field override sets laid on top. Zero
// scalars, nil slices and a nil Detect leave base alone. Plain booleans can
// only be switched on by a later layer.
func merge(base, override *config.Config) *config.Config {
	switch {
	case base == nil:
		return override
	case override == nil:
		return base
	}

	out := *base
	overlay(&out.Mode, override.Mode)
	overlay(&out.Charset, override.Charset)
	overlay(&out.Format, override.Format)
	overlay(&out.Jobs, override.Jobs)
	overlay(&out.Indent, override.Indent)
	overlay(&out.Color, override.Color)
	overlay(&out.Output, override.Output)
	overlay(&out.Strict, override.Strict)
	overlay(&out.Compact, override.Compact)
	overlay(&out.FollowSymlinks, override.FollowSymlinks)

	if override.Detect != nil {
		detect := *override.Detect
		out.Detect = &detect
	}
	if override.Extensions != nil {
		out.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		out.Ignore = override.Ignore
	}
	return &out
}

// MergeAll folds configs left to right, later ones winning. It returns nil
// for no configs.
func MergeAll(configs ...*config.Config) *config.Config {
	var out *config.Config
	for _, cfg := range configs {
		out = merge(out, cfg)
	}
	return out
}
