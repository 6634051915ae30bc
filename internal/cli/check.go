package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/nomxml/internal/ui/pretty"
	"github.com/yaklabco/nomxml/pkg/config"
)

type checkFlags struct {
	source sourceFlags
	quiet  bool
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Parse markup files and report only failures",
		Long: `Parse markup files without printing their events.

Every file that fails is reported on one line as path:offset: kind: message,
followed by a one-line summary. The exit status is 1 when any file failed.

Examples:
  nomdump check                  # Check current directory
  nomdump check site/ feeds/     # Check two directories
  nomdump check --quiet data/    # Failures only, no summary`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	addSourceFlags(cmd, &flags.source)
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "print failures only")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	cliCfg := &config.Config{}
	if err := flags.source.apply(cmd, cliCfg); err != nil {
		return err
	}

	sess, err := resolveSession(cmd, cliCfg)
	if err != nil {
		return err
	}

	result, err := sess.run(commandContext(cmd), args, false)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(string(sess.config.Color), out))

	var report strings.Builder
	for _, failed := range result.Failures() {
		failed.Path = relativePath(sess.workDir, failed.Path)
		report.WriteString(styles.FormatFailure(failed))
	}
	if !flags.quiet {
		report.WriteString(styles.FormatSummaryOneLine(result.Stats))
	}

	if _, err := fmt.Fprint(out, report.String()); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("write report: %w", err))
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrParseFailures
	}
	return nil
}

// relativePath shortens path against workDir when it lies beneath it.
func relativePath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
