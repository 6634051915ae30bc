// Command nomdump parses XML-like markup files and dumps or checks their
// event streams.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/yaklabco/nomxml/internal/cli"
	"github.com/yaklabco/nomxml/internal/logging"
)

// Set with -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals // ldflags targets
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	root := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date})

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return cli.ExitSuccess
	case errors.Is(err, cli.ErrParseFailures):
		// already reported
	case errors.Is(err, context.Canceled):
		logging.Default().Warn("interrupted")
	default:
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCodeFromError(err)
}
