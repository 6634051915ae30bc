package runner

import (
	"time"

	"github.com/yaklabco/nomxml/pkg/nomxml"
)

// FileStats counts the events produced for one file.
type FileStats struct {
	Opens      int
	Texts      int
	Closes     int
	Attributes int

	// MaxDepth is the deepest nesting reached.
	MaxDepth int
}

// Events returns the total number of events.
func (s FileStats) Events() int {
	return s.Opens + s.Texts + s.Closes
}

// observe counts event. depth is the number of open elements after it.
func (s *FileStats) observe(event nomxml.Event, depth int) {
	switch ev := event.(type) {
	case nomxml.Open:
		s.Opens++
		s.Attributes += len(ev.Attrs)
		s.MaxDepth = max(s.MaxDepth, depth)
	case nomxml.Text:
		s.Texts++
	case nomxml.Close:
		s.Closes++
	}
}

// FileOutcome is the result of parsing one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Started reports whether the session began. False means the input
	// could not be opened or loaded and Err says why.
	Started bool

	// Events holds every event produced, in order, when Options.KeepEvents
	// is set. A failed file keeps the events produced before the failure.
	Events []nomxml.Event

	// Err is the terminal error of the session, nil after a clean end.
	// Parse failures are *nomxml.Error values.
	Err error

	// ErrorText is the parser's description of the failure.
	ErrorText string

	// Offset is where a failed session's error was detected (the
	// *nomxml.Error offset, e.g. the '<' of a mismatched end tag). For a
	// clean session it is the number of characters consumed.
	Offset int

	// Stats counts the events produced.
	Stats FileStats

	// Elapsed is the wall time spent on the file.
	Elapsed time.Duration
}

// Failed reports whether the file ended with an error.
func (o FileOutcome) Failed() bool {
	return o.Err != nil
}

// Kind returns the classification of the failure, or zero for a clean file.
func (o FileOutcome) Kind() nomxml.ErrorKind {
	return nomxml.KindOf(o.Err)
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesParsed is the number of files parsed to a clean end.
	FilesParsed int

	// FilesFailed is the number of files that ended with an error.
	FilesFailed int

	// Events is the total number of events across all files.
	Events int

	Opens      int
	Texts      int
	Closes     int
	Attributes int

	// MaxDepth is the deepest nesting reached in any file.
	MaxDepth int

	// FailuresByKind maps error kind names to counts.
	FailuresByKind map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Elapsed is the wall time of the whole run.
	Elapsed time.Duration
}

// HasFailures reports whether any file ended with an error.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesFailed > 0
}

// Failures returns the outcomes of the files that ended with an error.
func (r *Result) Failures() []FileOutcome {
	if r == nil {
		return nil
	}
	var failed []FileOutcome
	for _, file := range r.Files {
		if file.Failed() {
			failed = append(failed, file)
		}
	}
	return failed
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		FailuresByKind: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	r.Stats.Events += outcome.Stats.Events()
	r.Stats.Opens += outcome.Stats.Opens
	r.Stats.Texts += outcome.Stats.Texts
	r.Stats.Closes += outcome.Stats.Closes
	r.Stats.Attributes += outcome.Stats.Attributes
	r.Stats.MaxDepth = max(r.Stats.MaxDepth, outcome.Stats.MaxDepth)

	if outcome.Err == nil {
		r.Stats.FilesParsed++
		return
	}

	r.Stats.FilesFailed++
	kind := outcome.Kind().String()
	if outcome.Kind() == 0 {
		kind = nomxml.IOFailure.String()
	}
	r.Stats.FailuresByKind[kind]++
}
