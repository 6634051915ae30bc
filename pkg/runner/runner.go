package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/nomxml/internal/logging"
	"github.com/yaklabco/nomxml/pkg/config"
	"github.com/yaklabco/nomxml/pkg/fsutil"
	"github.com/yaklabco/nomxml/pkg/nomxml"
	"github.com/yaklabco/nomxml/pkg/source"
)

// Runner orchestrates multi-file parsing.
type Runner struct {
	logger *log.Logger
}

// New creates a new Runner. A nil logger discards.
func New(logger *log.Logger) *Runner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Runner{logger: logger}
}

// Run discovers files under opts.Paths and parses them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Parses files concurrently using a worker pool, one parser per worker
//   - Aggregates results into a single Result with statistics
//   - Respects context cancellation between events
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	mode := opts.effectiveMode()
	if !mode.IsValid() {
		return nil, fmt.Errorf("unknown read mode %q", mode)
	}

	charset, err := source.LookupCharset(opts.Charset)
	if err != nil {
		return nil, fmt.Errorf("resolve charset: %w", err)
	}

	// Discover files.
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	logger := r.runLogger(opts)
	logger.Debug("files discovered",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldMode, mode,
		logging.FieldCharset, charset.Name())

	if len(files) == 0 {
		result.Elapsed = time.Since(start)
		return result, nil
	}

	// Determine job count.
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	// Don't use more workers than files.
	if jobs > len(files) {
		jobs = len(files)
	}

	task := fileTask{
		mode:       mode,
		charset:    charset,
		keepEvents: opts.KeepEvents,
		logger:     logger,
	}

	// Create channels.
	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	// Start workers.
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task.worker(ctx, workCh, outCh)
		}()
	}

	// Feed work in a separate goroutine.
	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	// Close outCh when all workers are done.
	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Collect results.
	// Use a map to maintain order since workers may complete out of order.
	outcomes := make(map[string]FileOutcome, len(files))

	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	// Build result in deterministic order.
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}
	result.Elapsed = time.Since(start)

	logger.Debug("run finished",
		logging.FieldFilesParsed, result.Stats.FilesParsed,
		logging.FieldFilesFailed, result.Stats.FilesFailed,
		logging.FieldEvents, result.Stats.Events,
		logging.FieldElapsed, result.Elapsed)

	// Check for context error.
	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// ParseFile parses a single file with the settings in opts, ignoring the
// discovery and concurrency settings.
func (r *Runner) ParseFile(ctx context.Context, path string, opts Options) (FileOutcome, error) {
	mode := opts.effectiveMode()
	if !mode.IsValid() {
		return FileOutcome{}, fmt.Errorf("unknown read mode %q", mode)
	}

	charset, err := source.LookupCharset(opts.Charset)
	if err != nil {
		return FileOutcome{}, fmt.Errorf("resolve charset: %w", err)
	}

	task := fileTask{
		mode:       mode,
		charset:    charset,
		keepEvents: opts.KeepEvents,
		logger:     r.runLogger(opts),
	}

	parser := task.newParser()
	defer parser.Reset()

	outcome := task.parse(ctx, parser, path)
	if ctx.Err() != nil {
		return outcome, fmt.Errorf("parse cancelled: %w", ctx.Err())
	}
	return outcome, nil
}

func (r *Runner) runLogger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.logger
}

// fileTask holds the per-run settings every worker applies.
type fileTask struct {
	mode       config.ReadMode
	charset    source.Charset
	keepEvents bool
	logger     *log.Logger
}

func (t fileTask) newParser() *nomxml.Parser {
	return nomxml.New(
		nomxml.WithLogger(t.logger),
		nomxml.WithSourceOptions(source.WithCharset(t.charset)),
	)
}

// worker parses files from workCh and sends outcomes to outCh.
func (t fileTask) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome) {
	parser := t.newParser()
	defer parser.Reset()

	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := t.parse(ctx, parser, path)
		if ctx.Err() != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// parse runs one session on path and drains it.
func (t fileTask) parse(ctx context.Context, parser *nomxml.Parser, path string) FileOutcome {
	start := time.Now()
	outcome := FileOutcome{Path: path}

	closeInput, err := t.begin(ctx, parser, path)
	if closeInput != nil {
		defer closeInput()
	}

	if err == nil {
		outcome.Started = true
		err = t.drain(ctx, parser, &outcome)
	}

	outcome.Err = err
	outcome.ErrorText = parser.ErrorText()
	outcome.Offset = parser.Offset()
	var parseErr *nomxml.Error
	if errors.As(err, &parseErr) {
		outcome.Offset = parseErr.Offset
	}
	outcome.Elapsed = time.Since(start)

	if closeErr := parser.Close(); closeErr != nil && outcome.Err == nil {
		outcome.Err = &nomxml.Error{Kind: nomxml.IOFailure, Offset: outcome.Offset, Msg: "failed closing input", Err: closeErr}
	}
	if outcome.ErrorText == "" {
		if errors.As(outcome.Err, &parseErr) {
			outcome.ErrorText = parseErr.Msg
		}
	}

	if outcome.Err != nil {
		t.logger.Debug("file failed",
			logging.FieldPath, path,
			logging.FieldKind, outcome.Kind(),
			logging.FieldOffset, outcome.Offset,
			logging.FieldError, outcome.Err)
	} else {
		t.logger.Debug("file parsed",
			logging.FieldPath, path,
			logging.FieldEvents, outcome.Stats.Events(),
			logging.FieldElapsed, outcome.Elapsed)
	}

	return outcome
}

// begin starts a session in the configured mode. The returned function, if
// any, releases resources the runner opened on the parser's behalf and must
// run after the session is over.
func (t fileTask) begin(ctx context.Context, parser *nomxml.Parser, path string) (func(), error) {
	switch t.mode {
	case config.ModeMemory:
		data, _, err := fsutil.ReadFile(ctx, path)
		if errors.Is(err, fsutil.ErrEmptyFile) {
			data, err = nil, nil
		}
		if err != nil {
			return nil, &nomxml.Error{Kind: nomxml.IOFailure, Msg: "failed loading file into memory", Err: err}
		}
		return nil, parser.BeginMemory(data)

	case config.ModeInterface:
		file, err := os.Open(path)
		if err != nil {
			return nil, &nomxml.Error{Kind: nomxml.IOFailure, Msg: "failed opening input", Err: err}
		}
		closeFile := func() { _ = file.Close() }

		info, err := file.Stat()
		if err != nil {
			return closeFile, &nomxml.Error{Kind: nomxml.IOFailure, Msg: "failed opening input", Err: err}
		}
		if !info.Mode().IsRegular() {
			return closeFile, &nomxml.Error{Kind: nomxml.IOFailure, Msg: "failed opening input", Err: source.ErrNotRegular}
		}
		return closeFile, parser.BeginSource(source.ReaderAtOpener(file, info.Size(), source.WithCharset(t.charset)))

	default:
		return nil, parser.BeginFile(path)
	}
}

// drain pulls events until the session ends, recording them in outcome.
// It returns nil after a clean end.
func (t fileTask) drain(ctx context.Context, parser *nomxml.Parser, outcome *FileOutcome) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		event, err := parser.Next()
		if err != nil {
			var parseErr *nomxml.Error
			if !errors.As(err, &parseErr) && errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		outcome.Stats.observe(event, parser.Depth())
		if t.keepEvents {
			outcome.Events = append(outcome.Events, event)
		}
	}
}
