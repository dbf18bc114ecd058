package configloader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/codesurf/internal/configloader"
	"github.com/yaklabco/codesurf/pkg/config"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestMergeAllPrecedence(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	mid := &config.Config{SeverityDefault: "info", Jobs: 2}
	top := &config.Config{Jobs: 8}

	merged := configloader.MergeAll(base, mid, top)
	require.NotNil(t, merged)

	assert.Equal(t, "info", merged.SeverityDefault)
	assert.Equal(t, 8, merged.Jobs)
	// Untouched defaults survive.
	assert.Equal(t, "python3", merged.Python.Interpreter)
}

func TestMergeAllNilHandling(t *testing.T) {
	t.Parallel()

	assert.Nil(t, configloader.MergeAll())

	cfg := config.NewConfig()
	assert.Same(t, cfg, configloader.MergeAll(cfg, nil))
	assert.Same(t, cfg, configloader.MergeAll(nil, cfg))
}

func TestMergeRuleConfigDeep(t *testing.T) {
	t.Parallel()

	base := &config.Config{
		Rules: map[string]config.RuleConfig{
			"long-function": {
				Severity: strPtr("warning"),
				Options:  map[string]any{"max_lines": 50},
			},
		},
	}
	override := &config.Config{
		Rules: map[string]config.RuleConfig{
			"long-function": {
				Enabled: boolPtr(false),
				Options: map[string]any{"max_lines": 100},
			},
			"high-complexity": {
				Options: map[string]any{"max": 15},
			},
		},
	}

	merged := configloader.MergeAll(base, override)

	rc := merged.Rules["long-function"]
	require.NotNil(t, rc.Enabled)
	assert.False(t, *rc.Enabled)
	require.NotNil(t, rc.Severity)
	assert.Equal(t, "warning", *rc.Severity)
	assert.Equal(t, 100, rc.Options["max_lines"])

	assert.Equal(t, 15, merged.Rules["high-complexity"].Options["max"])

	// The base config's option map must not be mutated by the merge.
	assert.Equal(t, 50, base.Rules["long-function"].Options["max_lines"])
}

func TestMergeLanguagesAndVisibility(t *testing.T) {
	t.Parallel()

	base := &config.Config{
		Languages: map[string]map[string]config.RuleConfig{
			"typescript": {
				"long-function": {Options: map[string]any{"max_lines": 80}},
			},
		},
		Visibility: map[string]bool{"info": false},
	}
	override := &config.Config{
		Languages: map[string]map[string]config.RuleConfig{
			"typescript": {
				"unused-identifier": {Enabled: boolPtr(false)},
			},
			"python": {
				"long-function": {Enabled: boolPtr(false)},
			},
		},
		Visibility: map[string]bool{"info": true, "warning": false},
	}

	merged := configloader.MergeAll(base, override)

	ts := merged.Languages["typescript"]
	assert.Contains(t, ts, "long-function")
	assert.Contains(t, ts, "unused-identifier")
	assert.Contains(t, merged.Languages, "python")

	assert.True(t, merged.Visibility["info"])
	assert.False(t, merged.Visibility["warning"])
}

func TestMergeSliceReplacement(t *testing.T) {
	t.Parallel()

	base := &config.Config{Ignore: []string{"dist/**", "vendor/**"}}
	override := &config.Config{Ignore: []string{"build/**"}}

	merged := configloader.MergeAll(base, override)
	assert.Equal(t, []string{"build/**"}, merged.Ignore)

	// A nil slice in the override leaves the base value alone.
	merged = configloader.MergeAll(base, &config.Config{})
	assert.Equal(t, []string{"dist/**", "vendor/**"}, merged.Ignore)
}
