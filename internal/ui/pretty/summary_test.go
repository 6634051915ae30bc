package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/nomxml/internal/ui/pretty"
	"github.com/yaklabco/nomxml/pkg/runner"
)

func TestFormatSummary_Clean(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesParsed: 4,
		Events:      120,
		Opens:       50,
		Texts:       20,
		Closes:      50,
		Attributes:  31,
		MaxDepth:    6,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files parsed:      4")
	assert.Contains(t, result, "Events:            120")
	assert.Contains(t, result, "Elements:        50")
	assert.Contains(t, result, "Attributes:      31")
	assert.Contains(t, result, "Max depth:       6")
	assert.Contains(t, result, "Parse succeeded")
	assert.NotContains(t, result, "Files failed:")
}

func TestFormatSummary_WithFailures(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesParsed:    2,
		FilesFailed:    3,
		FailuresByKind: map[string]int{"premature-eof": 2, "malformed-tag": 1},
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Files parsed:      5")
	assert.Contains(t, result, "Files failed:      3")
	assert.Contains(t, result, "premature-eof:   2")
	assert.Contains(t, result, "malformed-tag:   1")
	assert.Contains(t, result, "Parse failed")
}

func TestFormatSummaryOneLine_Clean(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "1 file parsed, 7 events\n",
		styles.FormatSummaryOneLine(runner.Stats{FilesParsed: 1, Events: 7}))
	assert.Equal(t, "0 files parsed, 0 events\n",
		styles.FormatSummaryOneLine(runner.Stats{}))
}

func TestFormatSummaryOneLine_WithFailures(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesParsed:    1,
		FilesFailed:    2,
		Events:         9,
		FailuresByKind: map[string]int{"structural-mismatch": 1, "premature-eof": 1},
	}

	assert.Equal(t,
		"3 files parsed, 2 failed (1 premature-eof, 1 structural-mismatch), 9 events\n",
		styles.FormatSummaryOneLine(stats))
}
