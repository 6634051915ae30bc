package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/nomxml/internal/logging"
	"github.com/yaklabco/nomxml/pkg/config"
	"github.com/yaklabco/nomxml/pkg/fsutil"
	"github.com/yaklabco/nomxml/pkg/reporter"
)

// ErrParseFailures is returned when at least one file failed to parse.
var ErrParseFailures = errors.New("parse failures found")

// outputFilePermissions is the file mode for report files written with --output.
const outputFilePermissions = 0o644

type dumpFlags struct {
	source   sourceFlags
	format   string
	output   string
	compact  bool
	indent   int
	maxWidth int
}

func newDumpCommand() *cobra.Command {
	flags := &dumpFlags{}

	cmd := &cobra.Command{
		Use:   "dump [paths...]",
		Short: "Dump the parse events of markup files",
		Long:  dumpLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, args, flags)
		},
	}

	addDumpFlags(cmd, flags)

	return cmd
}

const dumpLongDescription = `Parse markup files and print every event the parser produces.

By default, dumps all .xml, .xsd, .xsl, .xslt, .svg, .rss, .atom, .plist,
.xhtml and .config files in the current directory and subdirectories.
Files named explicitly are dumped whatever their extension.

Examples:
  nomdump dump                      # Dump current directory
  nomdump dump feed.rss             # Dump a single file
  nomdump dump --mode memory conf/  # Load each file into memory first
  nomdump dump --charset windows-1252 legacy.xml
  nomdump dump --format json -o events.json
  nomdump dump --format summary     # Per-file counts only`

func runDump(cmd *cobra.Command, args []string, flags *dumpFlags) error {
	cliCfg := &config.Config{}
	if err := flags.source.apply(cmd, cliCfg); err != nil {
		return err
	}
	if flags.format != "" {
		format := config.OutputFormat(flags.format)
		if !format.IsValid() {
			return withExitCode(ExitInvalidUsage,
				fmt.Errorf("invalid format %q: must be text, json or summary", flags.format))
		}
		cliCfg.Format = format
	}
	cliCfg.Output = flags.output
	cliCfg.Compact = flags.compact
	cliCfg.Indent = flags.indent

	sess, err := resolveSession(cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg := sess.config

	format, err := reporter.FromConfig(cfg.Format)
	if err != nil {
		return withExitCode(ExitConfigError, fmt.Errorf("invalid format: %w", err))
	}

	ctx := commandContext(cmd)
	result, err := sess.run(ctx, args, reporter.NeedsEvents(format))
	if err != nil {
		return err
	}

	var writer io.Writer = cmd.OutOrStdout()
	var buf bytes.Buffer
	color := string(cfg.Color)
	if cfg.Output != "" {
		writer = &buf
		color = string(config.ColorNever)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      writer,
		Format:      format,
		Color:       color,
		ShowSummary: true,
		Compact:     cfg.Compact,
		Indent:      cfg.Indent,
		MaxWidth:    flags.maxWidth,
		WorkingDir:  sess.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		sess.logger.Error("report failed", logging.FieldError, err)
		return withExitCode(ExitIOError, fmt.Errorf("report results: %w", err))
	}

	if cfg.Output != "" {
		if err := fsutil.WriteFileAtomic(ctx, cfg.Output, buf.Bytes(), outputFilePermissions); err != nil {
			return withExitCode(ExitIOError, fmt.Errorf("write output: %w", err))
		}
		sess.logger.Debug("report written", logging.FieldOutput, cfg.Output)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrParseFailures
	}

	return nil
}

func addDumpFlags(cmd *cobra.Command, flags *dumpFlags) {
	addSourceFlags(cmd, &flags.source)
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, summary (default text)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "omit attribute and value lines; minify JSON")
	cmd.Flags().IntVar(&flags.indent, "indent", 0, "spaces per nesting level in text dumps (default 4)")
	cmd.Flags().IntVar(&flags.maxWidth, "max-width", 0,
		"truncate values to fit this line width (0 = terminal width, -1 = never)")
}
