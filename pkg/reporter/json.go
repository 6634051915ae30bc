package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/nomxml/pkg/nomxml"
	"github.com/yaklabco/nomxml/pkg/runner"
)

// jsonSchemaVersion is bumped whenever the document layout changes.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path   string        `json:"path"`
	Events []JSONEvent   `json:"events"`
	Stats  JSONFileStats `json:"stats"`
	Error  *JSONError    `json:"error,omitempty"`
}

// JSONEvent represents one parser event. Offset and Attrs are set for open
// events, Value for text events.
type JSONEvent struct {
	Kind   string          `json:"kind"`
	Name   string          `json:"name"`
	Offset *int            `json:"offset,omitempty"`
	Attrs  []JSONAttribute `json:"attrs,omitempty"`
	Value  *string         `json:"value,omitempty"`
}

// JSONAttribute is one attribute of an open event.
type JSONAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// JSONError describes why a file failed.
type JSONError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Offset  int    `json:"offset"`
}

// JSONFileStats counts the events of one file.
type JSONFileStats struct {
	Events     int `json:"events"`
	Elements   int `json:"elements"`
	Attributes int `json:"attributes"`
	Texts      int `json:"texts"`
	MaxDepth   int `json:"maxDepth"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesParsed    int            `json:"filesParsed"`
	FilesFailed    int            `json:"filesFailed"`
	Events         int            `json:"events"`
	Elements       int            `json:"elements"`
	Attributes     int            `json:"attributes"`
	Texts          int            `json:"texts"`
	MaxDepth       int            `json:"maxDepth"`
	FailuresByKind map[string]int `json:"failuresByKind"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesFailed, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			FailuresByKind: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		output.Files = append(output.Files, r.buildFile(file))
	}

	stats := result.Stats
	output.Summary.FilesParsed = stats.FilesParsed
	output.Summary.FilesFailed = stats.FilesFailed
	output.Summary.Events = stats.Events
	output.Summary.Elements = stats.Opens
	output.Summary.Attributes = stats.Attributes
	output.Summary.Texts = stats.Texts
	output.Summary.MaxDepth = stats.MaxDepth
	for kind, count := range stats.FailuresByKind {
		output.Summary.FailuresByKind[kind] = count
	}

	return output
}

func (r *JSONReporter) buildFile(file runner.FileOutcome) JSONFileResult {
	fileResult := JSONFileResult{
		Path:   r.opts.displayPath(file.Path),
		Events: make([]JSONEvent, 0, len(file.Events)),
		Stats: JSONFileStats{
			Events:     file.Stats.Events(),
			Elements:   file.Stats.Opens,
			Attributes: file.Stats.Attributes,
			Texts:      file.Stats.Texts,
			MaxDepth:   file.Stats.MaxDepth,
		},
	}

	for _, event := range file.Events {
		fileResult.Events = append(fileResult.Events, toJSONEvent(event))
	}

	if file.Failed() {
		message := file.ErrorText
		if message == "" {
			message = file.Err.Error()
		}
		kind := file.Kind()
		if kind == 0 {
			kind = nomxml.IOFailure
		}
		fileResult.Error = &JSONError{
			Kind:    kind.String(),
			Message: message,
			Offset:  file.Offset,
		}
	}

	return fileResult
}

func toJSONEvent(event nomxml.Event) JSONEvent {
	out := JSONEvent{
		Kind: event.Kind().String(),
		Name: event.TagName(),
	}

	switch ev := event.(type) {
	case nomxml.Open:
		offset := ev.Offset
		out.Offset = &offset
		for _, attr := range ev.Attrs {
			out.Attrs = append(out.Attrs, JSONAttribute(attr))
		}
	case nomxml.Text:
		value := ev.Value
		out.Value = &value
	}

	return out
}
