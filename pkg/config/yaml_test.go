package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/codesurf/pkg/config"
)

func TestFromYAML(t *testing.T) {
	t.Parallel()

	data := []byte(`
severity_default: error
visibility:
  info: false
ignore:
  - "node_modules/**"
python:
  interpreter: python3.12
  script: tools/ast_parser.py
  timeout_seconds: 10
rules:
  long-function:
    enabled: true
    severity: warning
    options:
      max_lines: 80
languages:
  typescript:
    unused-identifier:
      enabled: false
`)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.SeverityDefault)
	assert.False(t, cfg.SeverityVisible(config.SeverityInfo))
	assert.Equal(t, []string{"node_modules/**"}, cfg.Ignore)
	assert.Equal(t, "python3.12", cfg.Python.Interpreter)
	assert.Equal(t, 10, cfg.Python.TimeoutSeconds)

	rc, ok := cfg.RuleFor("javascript", "long-function")
	require.True(t, ok)
	require.NotNil(t, rc.Enabled)
	assert.True(t, *rc.Enabled)
	assert.Equal(t, 80, rc.Options["max_lines"])

	rc, ok = cfg.RuleFor("typescript", "unused-identifier")
	require.True(t, ok)
	require.NotNil(t, rc.Enabled)
	assert.False(t, *rc.Enabled)
}

func TestFromYAMLDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte("severity_default: warning\n"))
	require.NoError(t, err)

	assert.NotNil(t, cfg.Rules, "rules map is always usable")
	assert.Equal(t, "python3", cfg.Python.Interpreter)
	assert.Equal(t, config.DefaultPythonTimeoutSeconds, cfg.Python.TimeoutSeconds)
}

func TestFromYAMLInvalid(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("rules: [not, a, map]"))
	assert.Error(t, err)
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	enabled := false
	sev := "info"

	cfg := config.NewConfig()
	cfg.SeverityDefault = "error"
	cfg.Ignore = []string{"dist/**"}
	cfg.Rules["async-no-await"] = config.RuleConfig{Enabled: &enabled, Severity: &sev}

	data, err := cfg.ToYAML()
	require.NoError(t, err)

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg.SeverityDefault, parsed.SeverityDefault)
	assert.Equal(t, cfg.Ignore, parsed.Ignore)

	rc, ok := parsed.RuleFor("javascript", "async-no-await")
	require.True(t, ok)
	assert.False(t, *rc.Enabled)
	assert.Equal(t, "info", *rc.Severity)
}

func TestDefaultTemplateParses(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte(config.DefaultTemplate))
	require.NoError(t, err)
	assert.Equal(t, "warning", cfg.SeverityDefault)
	assert.Equal(t, 30, cfg.Python.TimeoutSeconds)
}

func TestClone(t *testing.T) {
	t.Parallel()

	enabled := true
	cfg := config.NewConfig()
	cfg.Rules["r"] = config.RuleConfig{Enabled: &enabled, Options: map[string]any{"max": 5}}
	cfg.Visibility = map[string]bool{"info": false}
	cfg.EnableRules = []string{"r"}

	clone := cfg.Clone()
	require.NotNil(t, clone)

	// Mutating the clone must not leak into the original.
	*clone.Rules["r"].Enabled = false
	clone.Visibility["info"] = true
	clone.EnableRules[0] = "other"

	assert.True(t, *cfg.Rules["r"].Enabled)
	assert.False(t, cfg.Visibility["info"])
	assert.Equal(t, "r", cfg.EnableRules[0])

	var nilCfg *config.Config
	assert.Nil(t, nilCfg.Clone())
}
