// Package cli provides the Cobra command structure for nomdump.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/nomxml/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root nomdump command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "nomdump",
		Short: "Dump the event stream of XML-like markup files",
		Long: `nomdump runs a pull-based streaming parser over XML-like markup and
prints the events it produces: element begins with their attributes, text
values and element ends, each with the character offset it was found at.

The parser is lenient about what it accepts (no DTDs, no namespaces, no
entity expansion) and strict about structure: mismatched or missing end
tags stop the dump with an error and the offset it was detected at.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withExitCode(ExitInvalidUsage, err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newDumpCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// usageArgs reports positional argument errors as invalid usage.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return withExitCode(ExitInvalidUsage, validate(cmd, args))
	}
}
