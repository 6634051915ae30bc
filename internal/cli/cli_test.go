package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/nomxml/internal/cli"
	"github.com/yaklabco/nomxml/pkg/runner"
)

func testBuildInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "nomdump", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing persistent flag --%s", name)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())

	for _, name := range []string{"dump", "check", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if assert.NoError(t, err, "subcommand %q", name) {
			assert.Equal(t, name, subCmd.Name())
		}
	}
}

func TestSubcommandFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		command string
		flags   []string
	}{
		{
			command: "dump",
			flags: []string{
				"mode", "charset", "format", "ignore", "detect", "follow-symlinks", "jobs",
				"output", "compact", "indent", "max-width", "strict",
			},
		},
		{
			command: "check",
			flags:   []string{"mode", "charset", "ignore", "detect", "follow-symlinks", "jobs", "strict", "quiet"},
		},
		{
			command: "init",
			flags:   []string{"force", "full", "format", "output"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(testBuildInfo())
			subCmd, _, err := cmd.Find([]string{tt.command})
			require.NoError(t, err)

			for _, name := range tt.flags {
				assert.NotNil(t, subCmd.Flags().Lookup(name), "%s is missing --%s", tt.command, name)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())

	output := stdout.String()
	assert.Contains(t, output, "nomdump")
	assert.Contains(t, output, "test-version")
	assert.Contains(t, output, "test-commit")
	assert.Contains(t, output, "test-date")
}

func TestVersionCommand_Short(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"version", "--short"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "test-version\n", stdout.String())
}

func TestVersionCommand_RejectsArguments(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"version", "extra"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testBuildInfo())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"dump", "--no-such-flag"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(nil))
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(&runner.Result{}))

	failed := &runner.Result{Stats: runner.Stats{FilesFailed: 1}}
	assert.Equal(t, cli.ExitParseFailures, cli.ExitCodeFromResult(failed))
}

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "parse failures", err: cli.ErrParseFailures, want: cli.ExitParseFailures},
		{name: "wrapped parse failures", err: fmt.Errorf("dump: %w", cli.ErrParseFailures), want: cli.ExitParseFailures},
		{name: "missing file", err: fmt.Errorf("stat x.xml: %w", fs.ErrNotExist), want: cli.ExitIOError},
		{name: "permission", err: fmt.Errorf("open x.xml: %w", fs.ErrPermission), want: cli.ExitIOError},
		{name: "interrupted", err: fmt.Errorf("run: %w", context.Canceled), want: cli.ExitInterrupted},
		{name: "anything else", err: errors.New("boom"), want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeFromError(tt.err))
		})
	}
}
