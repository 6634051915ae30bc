package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/nomxml/internal/ui/pretty"
	"github.com/yaklabco/nomxml/pkg/nomxml"
	"github.com/yaklabco/nomxml/pkg/runner"
)

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path:  "a.xml",
				Stats: runner.FileStats{Opens: 3, Texts: 1, Closes: 3, Attributes: 2, MaxDepth: 2},
			},
			{
				Path:   "b.xml",
				Offset: 6,
				Err:    &nomxml.Error{Kind: nomxml.StructuralMismatch, Offset: 6},
				Stats:  runner.FileStats{Opens: 2, MaxDepth: 2},
			},
		},
		Stats: runner.Stats{FilesParsed: 1, FilesFailed: 1, Events: 9},
	}
}

func TestRowFromOutcome(t *testing.T) {
	result := sampleResult()

	ok := pretty.RowFromOutcome(result.Files[0])
	assert.Equal(t, pretty.TableRow{File: "a.xml", Events: 7, Elements: 3, Attrs: 2, Depth: 2, Status: "ok"}, ok)

	failed := pretty.RowFromOutcome(result.Files[1])
	assert.True(t, failed.Failed)
	assert.Equal(t, "structural-mismatch @6", failed.Status)
}

func TestFormatTable(t *testing.T) {
	styles := pretty.NewStyles(false)
	formatter := pretty.NewTableFormatter(styles, false, 0)

	out := formatter.FormatTable(sampleResult())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)

	assert.Contains(t, lines[0], "FILE")
	assert.Contains(t, lines[0], "STATUS")
	assert.True(t, strings.HasPrefix(lines[1], "===="))
	assert.Contains(t, lines[2], "a.xml")
	assert.Contains(t, lines[2], " ok")
	assert.Contains(t, lines[3], "structural-mismatch @6")
	assert.Contains(t, lines[5], "Legend")

	assert.Empty(t, formatter.FormatTable(nil))
	assert.Empty(t, formatter.FormatTable(&runner.Result{}))
}

func TestFormatTable_LongPathsAreShortened(t *testing.T) {
	styles := pretty.NewStyles(false)
	formatter := pretty.NewTableFormatter(styles, false, 80)

	long := strings.Repeat("d/", 40) + "file.xml"
	out := formatter.FormatTable(&runner.Result{Files: []runner.FileOutcome{{Path: long}}})

	assert.Contains(t, out, "...")
	assert.Contains(t, out, "file.xml")
	assert.NotContains(t, out, long)
}

func TestFormatTableSummary(t *testing.T) {
	styles := pretty.NewStyles(false)
	formatter := pretty.NewTableFormatter(styles, false, 0)

	assert.Equal(t, " 2 files | 9 events | 1 failed | 3ms",
		formatter.FormatTableSummary(sampleResult().Stats, "3ms"))
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{in: "short", maxLen: 10, want: "short"},
		{in: "exactly", maxLen: 7, want: "exactly"},
		{in: "truncate me", maxLen: 8, want: "trunc..."},
		{in: "abcdef", maxLen: 2, want: "ab"},
		{in: "äöüäöü", maxLen: 5, want: "äö..."},
		{in: "abc", maxLen: 0, want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pretty.TruncateString(tt.in, tt.maxLen), tt.in)
	}
}
