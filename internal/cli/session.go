package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/nomxml/internal/configloader"
	"github.com/yaklabco/nomxml/internal/logging"
	"github.com/yaklabco/nomxml/pkg/config"
	"github.com/yaklabco/nomxml/pkg/runner"
)

// sourceFlags are the input selection flags shared by dump and check.
type sourceFlags struct {
	mode    string
	charset string
	ignore  []string
	detect  bool
	follow  bool
	jobs    int
	strict  bool
}

func addSourceFlags(cmd *cobra.Command, flags *sourceFlags) {
	cmd.Flags().StringVar(&flags.mode, "mode", "", "input source: file, memory, interface (default file)")
	cmd.Flags().StringVar(&flags.charset, "charset", "",
		"single-byte code page used to decode input (default ISO-8859-1)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.detect, "detect", false, "sniff files without a known extension for markup")
	cmd.Flags().BoolVar(&flags.follow, "follow-symlinks", false, "walk into symlinked directories")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat configuration warnings as errors")
}

// apply copies explicitly set flags into cfg. Unset flags leave the
// lower-precedence layers in charge.
func (f *sourceFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if f.mode != "" {
		mode := config.ReadMode(f.mode)
		if !mode.IsValid() {
			return withExitCode(ExitInvalidUsage,
				fmt.Errorf("invalid mode %q: must be one of %v", f.mode, config.ReadModes()))
		}
		cfg.Mode = mode
	}
	cfg.Charset = f.charset
	cfg.Ignore = f.ignore
	cfg.Jobs = f.jobs
	cfg.Strict = f.strict
	cfg.FollowSymlinks = f.follow
	if cmd.Flags().Changed("detect") {
		detect := f.detect
		cfg.Detect = &detect
	}

	if cmd.Flags().Changed("color") {
		colorMode, err := cmd.Flags().GetString("color")
		if err != nil {
			return fmt.Errorf("get color flag: %w", err)
		}
		color := config.ColorMode(colorMode)
		if !color.IsValid() {
			return withExitCode(ExitInvalidUsage,
				fmt.Errorf("invalid color mode %q: must be auto, always or never", colorMode))
		}
		cfg.Color = color
	}

	return nil
}

// session is a resolved configuration ready to drive a run.
type session struct {
	config  *config.Config
	workDir string
	logger  *log.Logger
}

// resolveSession loads and merges configuration with cliCfg on top.
func resolveSession(cmd *cobra.Command, cliCfg *config.Config) (*session, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Logger:       logger,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, withExitCode(ExitConfigError,
			errors.Join(errors.New("failed to load configuration"), err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	finalCfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldMode, finalCfg.Mode,
		logging.FieldCharset, finalCfg.Charset,
		logging.FieldFormat, finalCfg.Format,
		logging.FieldDetect, finalCfg.DetectEnabled(),
		logging.FieldJobs, finalCfg.Jobs,
	)

	return &session{config: finalCfg, workDir: workDir, logger: logger}, nil
}

// run parses every file selected by paths.
func (s *session) run(ctx context.Context, paths []string, keepEvents bool) (*runner.Result, error) {
	opts := runner.OptionsFromConfig(s.config, paths, s.workDir)
	opts.KeepEvents = keepEvents
	opts.Logger = s.logger

	s.logger.Debug("starting run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := runner.New(s.logger).Run(ctx, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, withExitCode(ExitIOError, errors.Join(errors.New("run failed"), err))
	}

	s.logger.Debug("run finished",
		logging.FieldFilesParsed, result.Stats.FilesParsed,
		logging.FieldFilesFailed, result.Stats.FilesFailed,
		logging.FieldEvents, result.Stats.Events,
		logging.FieldElapsed, result.Elapsed,
	)

	return result, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
