package logging_test

import (
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/nomxml/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]log.Level{
		"debug":   log.DebugLevel,
		"DEBUG":   log.DebugLevel,
		" Info ":  log.InfoLevel,
		"warn":    log.WarnLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"fatal":   log.InfoLevel,
		"":        log.InfoLevel,
		"verbose": log.InfoLevel,
	}

	for name, want := range cases {
		assert.Equal(t, want, logging.ParseLevel(name), "level %q", name)
	}
}

func TestNew_UsesParsedLevel(t *testing.T) {
	t.Parallel()

	logger := logging.New("error")
	require.NotNil(t, logger)
	assert.Equal(t, log.ErrorLevel, logger.GetLevel())
}

func TestNewInteractiveAndDiscard(t *testing.T) {
	t.Parallel()

	assert.Equal(t, log.InfoLevel, logging.NewInteractive().GetLevel())
	assert.Equal(t, log.FatalLevel, logging.Discard().GetLevel())
}

// The default logger is process-wide, so these subtests run serially.
func TestDefaultLogger(t *testing.T) {
	original := logging.Default()
	require.NotNil(t, original)
	t.Cleanup(func() { logging.SetDefault(original) })

	t.Run("set default", func(t *testing.T) {
		replacement := logging.New("info")
		logging.SetDefault(replacement)
		assert.Same(t, replacement, logging.Default())
	})

	t.Run("set level", func(t *testing.T) {
		logging.SetDefault(logging.New("info"))

		logging.SetLevel("debug")
		assert.Equal(t, log.DebugLevel, logging.Default().GetLevel())

		logging.SetLevel("error")
		assert.Equal(t, log.ErrorLevel, logging.Default().GetLevel())
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	logger := logging.New("debug")
	ctx := logging.WithLogger(context.Background(), logger)
	assert.Same(t, logger, logging.FromContext(ctx))

	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))

	//nolint:staticcheck // nil contexts are tolerated on purpose
	assert.Same(t, logger, logging.FromContext(logging.WithLogger(nil, logger)))
}
