package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/codesurf/pkg/config"
	"github.com/yaklabco/codesurf/pkg/lint"
)

func mkFinding(ruleID string, severity config.Severity) lint.Finding {
	return lint.NewFindingAt(ruleID, lint.Range{}, "msg").
		WithSeverity(severity).
		WithCategory(config.CategoryCodeSmell).
		Build()
}

func TestFilterDropsUnknownAndDisabled(t *testing.T) {
	t.Parallel()

	set := lint.ResolvedSet{
		"keep": {Enabled: true, Severity: config.SeverityWarning},
		"off":  {Enabled: false, Severity: config.SeverityWarning},
	}

	findings := []lint.Finding{
		mkFinding("keep", config.SeverityWarning),
		mkFinding("off", config.SeverityWarning),
		mkFinding("unknown", config.SeverityWarning),
	}

	out := lint.Filter(findings, set, config.NewConfig())
	require.Len(t, out, 1)
	assert.Equal(t, "keep", out[0].RuleID)
}

func TestFilterSeverityVisibility(t *testing.T) {
	t.Parallel()

	set := lint.ResolvedSet{
		"r": {Enabled: true, Severity: config.SeverityWarning},
	}
	cfg := config.NewConfig()
	cfg.Visibility = map[string]bool{"info": false}

	findings := []lint.Finding{
		mkFinding("r", config.SeverityError),
		mkFinding("r", config.SeverityInfo),
		mkFinding("r", config.SeverityWarning),
	}

	out := lint.Filter(findings, set, cfg)
	require.Len(t, out, 2)
	assert.Equal(t, config.SeverityError, out[0].Severity)
	assert.Equal(t, config.SeverityWarning, out[1].Severity)
}

func TestFilterPreservesOrderAndInput(t *testing.T) {
	t.Parallel()

	set := lint.ResolvedSet{
		"a": {Enabled: true, Severity: config.SeverityWarning},
		"b": {Enabled: true, Severity: config.SeverityWarning},
	}

	findings := []lint.Finding{
		mkFinding("a", config.SeverityWarning),
		mkFinding("unknown", config.SeverityWarning),
		mkFinding("b", config.SeverityWarning),
	}
	original := make([]lint.Finding, len(findings))
	copy(original, findings)

	out := lint.Filter(findings, set, config.NewConfig())
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].RuleID)
	assert.Equal(t, "b", out[1].RuleID)
	assert.Equal(t, original, findings, "input slice must not be mutated")
}

func TestFilterIdempotent(t *testing.T) {
	t.Parallel()

	set := lint.ResolvedSet{
		"a": {Enabled: true, Severity: config.SeverityWarning},
		"b": {Enabled: false, Severity: config.SeverityWarning},
	}
	cfg := config.NewConfig()
	cfg.Visibility = map[string]bool{"info": false}

	findings := []lint.Finding{
		mkFinding("a", config.SeverityWarning),
		mkFinding("a", config.SeverityInfo),
		mkFinding("b", config.SeverityWarning),
	}

	once := lint.Filter(findings, set, cfg)
	twice := lint.Filter(once, set, cfg)
	assert.Equal(t, once, twice)
}

func TestFilterEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, lint.Filter(nil, lint.ResolvedSet{}, config.NewConfig()))
	assert.Empty(t, lint.Filter([]lint.Finding{}, nil, nil))
}
