package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/codesurf/pkg/config"
	"github.com/yaklabco/codesurf/pkg/lint"
)

// analyze runs a single rule over src as JavaScript with default config.
func analyze(t *testing.T, rule lint.Rule, src string) []lint.Finding {
	t.Helper()
	return analyzeWith(t, rule, src, config.NewConfig())
}

// analyzeWith runs a single rule over src as JavaScript with the given config.
func analyzeWith(t *testing.T, rule lint.Rule, src string, cfg *config.Config) []lint.Finding {
	t.Helper()

	registry := lint.NewRegistry()
	registry.Register(rule)
	engine := lint.NewEngine(registry, nil)

	report, err := engine.AnalyzeFileAs(context.Background(), "test.js", []byte(src), "javascript", cfg)
	require.NoError(t, err)
	return report.Results
}

// ruleOptions builds a config that sets options for one rule.
func ruleOptions(ruleID string, options map[string]any) *config.Config {
	cfg := config.NewConfig()
	cfg.Rules[ruleID] = config.RuleConfig{Options: options}
	return cfg
}
