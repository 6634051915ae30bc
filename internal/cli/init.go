package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/nomxml/internal/configloader"
	"github.com/yaklabco/nomxml/internal/logging"
	"github.com/yaklabco/nomxml/pkg/config"
	"github.com/yaklabco/nomxml/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new nomdump configuration file",
		Long: `Create a new .nomdump.yml configuration file in the current directory
with the default read mode, charset, output format and file extensions.

Examples:
  nomdump init                      Create minimal .nomdump.yml
  nomdump init --full               Document every option and its values
  nomdump init --format json        Create .nomdump.json instead
  nomdump init --output custom.yml  Write to a custom file path`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every option documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .nomdump.yml or .nomdump.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()
	logger.SetOutput(cmd.OutOrStdout())

	// Validate format
	if flags.format != "yaml" && flags.format != "json" {
		return withExitCode(ExitInvalidUsage,
			fmt.Errorf("invalid format %q: must be yaml or json", flags.format))
	}

	// Determine output path
	outputPath := flags.output
	if outputPath == "" {
		if flags.format == "json" {
			outputPath = ".nomdump.json"
		} else {
			outputPath = configloader.ProjectConfigName()
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && !flags.force {
		overwrite, err := confirmOverwrite(cmd.InOrStdin(), cmd.OutOrStdout(), outputPath)
		if err != nil {
			return err
		}
		if !overwrite {
			return withExitCode(ExitInvalidUsage,
				fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	changed, err := fsutil.WriteFileAtomicIfChanged(commandContext(cmd), absPath, content, configFilePermissions)
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("write file: %w", err))
	}
	if !changed {
		logger.Info("configuration file already up to date", logging.FieldPath, outputPath)
		return nil
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.full {
		logger.Info("full template documents every option and its allowed values")
	}
	logger.Info("run 'nomdump dump' to print the events of the configured files")

	return nil
}

// confirmOverwrite asks before replacing an existing file. Without a
// terminal on stdin it declines.
func confirmOverwrite(in io.Reader, out io.Writer, path string) (bool, error) {
	stdin, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(stdin.Fd())) {
		return false, nil
	}

	if _, err := fmt.Fprintf(out, "%s already exists. Overwrite? [y/N] ", path); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
