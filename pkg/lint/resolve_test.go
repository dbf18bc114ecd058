package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/codesurf/pkg/config"
	"github.com/yaklabco/codesurf/pkg/lint"
)

// stubRule is a minimal rule used to exercise resolution.
type stubRule struct {
	lint.BaseRule
	enabled  bool
	severity config.Severity
}

func newStubRule(id string, enabled bool, severity config.Severity) *stubRule {
	return &stubRule{
		BaseRule: lint.NewBaseRule(id, id, "stub rule", config.CategoryCodeSmell, nil),
		enabled:  enabled,
		severity: severity,
	}
}

func (r *stubRule) DefaultEnabled() bool             { return r.enabled }
func (r *stubRule) DefaultSeverity() config.Severity { return r.severity }

func stubRegistry() *lint.Registry {
	registry := lint.NewRegistry()
	registry.Register(newStubRule("rule-a", true, config.SeverityWarning))
	registry.Register(newStubRule("rule-b", true, config.SeverityInfo))
	registry.Register(newStubRule("rule-c", false, config.SeverityError))
	return registry
}

func resolvedIDs(resolved []lint.ResolvedRule) []string {
	ids := make([]string, 0, len(resolved))
	for _, rr := range resolved {
		ids = append(ids, rr.Rule.ID())
	}
	return ids
}

func TestResolveRulesDefaults(t *testing.T) {
	t.Parallel()

	resolved := lint.ResolveRules(stubRegistry(), "javascript", config.NewConfig())
	assert.Equal(t, []string{"rule-a", "rule-b"}, resolvedIDs(resolved))
}

func TestResolveRulesNilConfig(t *testing.T) {
	t.Parallel()

	resolved := lint.ResolveRules(stubRegistry(), "javascript", nil)
	assert.Equal(t, []string{"rule-a", "rule-b"}, resolvedIDs(resolved))
}

func TestResolveRulesAllowList(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.EnableRules = []string{"rule-b", "rule-c", "no-such-rule"}

	// The allow-list intersects with the registered set and overrides
	// default enablement.
	resolved := lint.ResolveRules(stubRegistry(), "javascript", cfg)
	assert.Equal(t, []string{"rule-b", "rule-c"}, resolvedIDs(resolved))
}

func TestResolveRulesDisableWinsOverAllowList(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.EnableRules = []string{"rule-a", "rule-b"}
	cfg.DisableRules = []string{"rule-b"}

	resolved := lint.ResolveRules(stubRegistry(), "javascript", cfg)
	assert.Equal(t, []string{"rule-a"}, resolvedIDs(resolved))
}

func TestResolveRulesConfigOverrides(t *testing.T) {
	t.Parallel()

	enabled := true
	disabled := false
	sevError := string(config.SeverityError)
	sevBogus := "catastrophic"

	cfg := config.NewConfig()
	cfg.Rules["rule-a"] = config.RuleConfig{Enabled: &disabled}
	cfg.Rules["rule-b"] = config.RuleConfig{Severity: &sevError}
	cfg.Rules["rule-c"] = config.RuleConfig{Enabled: &enabled, Severity: &sevBogus}

	resolved := lint.ResolveRules(stubRegistry(), "javascript", cfg)
	require.Equal(t, []string{"rule-b", "rule-c"}, resolvedIDs(resolved))

	assert.Equal(t, config.SeverityError, resolved[0].Severity)
	// Invalid configured severity keeps the rule default.
	assert.Equal(t, config.SeverityError, resolved[1].Severity)
}

func TestResolveRulesLanguagePrecedence(t *testing.T) {
	t.Parallel()

	disabled := false
	sevInfo := string(config.SeverityInfo)

	cfg := config.NewConfig()
	cfg.Rules["rule-a"] = config.RuleConfig{Enabled: &disabled}
	cfg.Languages = map[string]map[string]config.RuleConfig{
		"typescript": {
			"rule-a": {Severity: &sevInfo},
		},
	}

	// For typescript the per-language entry replaces the global one, so
	// the global disable does not apply.
	tsResolved := lint.ResolveRules(stubRegistry(), "typescript", cfg)
	require.Contains(t, resolvedIDs(tsResolved), "rule-a")
	for _, rr := range tsResolved {
		if rr.Rule.ID() == "rule-a" {
			assert.Equal(t, config.SeverityInfo, rr.Severity)
		}
	}

	jsResolved := lint.ResolveRules(stubRegistry(), "javascript", cfg)
	assert.NotContains(t, resolvedIDs(jsResolved), "rule-a")
}

func TestResolveSnapshotCoversAllRules(t *testing.T) {
	t.Parallel()

	set := lint.ResolveSnapshot(stubRegistry(), "javascript", config.NewConfig())
	require.Len(t, set, 3)

	assert.True(t, set["rule-a"].Enabled)
	assert.False(t, set["rule-c"].Enabled)
	assert.Equal(t, config.SeverityInfo, set["rule-b"].Severity)
}

func TestResolveExternal(t *testing.T) {
	t.Parallel()

	disabled := false
	sevError := string(config.SeverityError)

	cfg := config.NewConfig()
	cfg.Rules["py-disabled"] = config.RuleConfig{Enabled: &disabled}
	cfg.Rules["py-promoted"] = config.RuleConfig{Severity: &sevError}

	set := lint.ResolveSnapshot(stubRegistry(), "python", cfg)

	set.ResolveExternal("py-plain", "python", config.SeverityWarning, cfg)
	set.ResolveExternal("py-disabled", "python", config.SeverityWarning, cfg)
	set.ResolveExternal("py-promoted", "python", config.SeverityWarning, cfg)

	assert.Equal(t, lint.ResolvedEntry{Enabled: true, Severity: config.SeverityWarning}, set["py-plain"])
	assert.False(t, set["py-disabled"].Enabled)
	assert.Equal(t, config.SeverityError, set["py-promoted"].Severity)

	// Known rule IDs keep their snapshot entry.
	set.ResolveExternal("rule-c", "python", config.SeverityWarning, cfg)
	assert.False(t, set["rule-c"].Enabled)
}
