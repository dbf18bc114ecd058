package pretty_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/codesurf/internal/ui/pretty"
	"github.com/yaklabco/codesurf/pkg/config"
	"github.com/yaklabco/codesurf/pkg/lint"
	"github.com/yaklabco/codesurf/pkg/runner"
)

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", &buf))
	// A plain buffer is not a TTY.
	assert.False(t, pretty.IsColorEnabled("auto", &buf))
}

func TestFormatFinding(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	f := lint.Finding{
		RuleID:   "unused-identifier",
		Message:  "'x' is declared but never used",
		Severity: config.SeverityWarning,
		Range: lint.Range{
			Start: lint.Position{Line: 2, Column: 6},
			End:   lint.Position{Line: 2, Column: 7},
		},
		Suggestion: "Remove the unused declaration of 'x'",
	}

	out := styles.FormatFinding("src/app.js", &f, false, "")

	// Positions render 1-based.
	assert.Contains(t, out, "src/app.js:3:7")
	assert.Contains(t, out, "warning")
	assert.Contains(t, out, "'x' is declared but never used")
	assert.Contains(t, out, "(unused-identifier)")
	assert.Contains(t, out, "Suggestion:")
}

func TestFormatSourceContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	out := styles.FormatSourceContext("const x = 1;", 6)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "const x = 1;")
	// Caret sits under column 6 of the source line.
	assert.Equal(t, strings.Index(lines[0], "const")+6, strings.Index(lines[1], "^"))
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	clean := styles.FormatSummaryOneLine(runner.Stats{FilesProcessed: 4})
	assert.Contains(t, clean, "No issues found")
	assert.Contains(t, clean, "4 files checked")

	dirty := styles.FormatSummaryOneLine(runner.Stats{
		FilesProcessed:  3,
		FilesWithIssues: 2,
		FindingsTotal:   5,
		FindingsBySeverity: map[string]int{
			"error":   1,
			"warning": 4,
		},
	})
	assert.Contains(t, dirty, "5 issues")
	assert.Contains(t, dirty, "1 errors")
	assert.Contains(t, dirty, "4 warnings")
	assert.Contains(t, dirty, "in 2 files")
}

func TestFormatSummaryStatus(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	failed := styles.FormatSummary(runner.Stats{
		FindingsTotal:      1,
		FindingsBySeverity: map[string]int{"error": 1},
	})
	assert.Contains(t, failed, "Analysis failed with errors")

	warned := styles.FormatSummary(runner.Stats{
		FindingsTotal:      1,
		FindingsBySeverity: map[string]int{"warning": 1},
	})
	assert.Contains(t, warned, "Analysis completed with warnings")

	passed := styles.FormatSummary(runner.Stats{FindingsBySeverity: map[string]int{}})
	assert.Contains(t, passed, "Analysis passed")
}
