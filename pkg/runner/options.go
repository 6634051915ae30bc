// Package runner provides multi-file parsing orchestration.
package runner

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/nomxml/pkg/config"
)

// Options controls multi-file parsing behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// picked up when walking directories. Defaults to config.DefaultExtensions().
	Extensions []string

	// IncludeGlobs are additional glob patterns to include, relative to WorkingDir.
	// Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	// These merge ignore rules from config and CLI (e.g. --ignore).
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Detect sniffs the content of files whose extension is not in
	// Extensions and keeps the ones that look like markup.
	Detect bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Mode selects the input source variant. Empty means config.ModeFile.
	Mode config.ReadMode

	// Charset is the IANA name of the code page used to decode input.
	// Empty means ISO-8859-1.
	Charset string

	// KeepEvents records every event in FileOutcome.Events. Without it only
	// the counters are kept.
	KeepEvents bool

	// Logger receives per-file progress and the parser trace at debug level.
	// Nil discards.
	Logger *log.Logger
}

// OptionsFromConfig builds Options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, paths []string, workDir string) Options {
	opts := Options{
		Paths:      paths,
		WorkingDir: workDir,
	}
	if cfg == nil {
		return opts
	}

	opts.Extensions = cfg.Extensions
	opts.ExcludeGlobs = cfg.Ignore
	opts.Detect = cfg.DetectEnabled()
	opts.FollowSymlinks = cfg.FollowSymlinks
	opts.Jobs = cfg.Jobs
	opts.Mode = cfg.Mode
	opts.Charset = cfg.Charset
	return opts
}

// DefaultExtensions returns the default set of markup file extensions.
func DefaultExtensions() []string {
	return config.DefaultExtensions()
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// effectiveMode returns the read mode, defaulting to file.
func (o Options) effectiveMode() config.ReadMode {
	if o.Mode == "" {
		return config.ModeFile
	}
	return o.Mode
}
