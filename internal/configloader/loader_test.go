package configloader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/codesurf/internal/configloader"
	"github.com/yaklabco/codesurf/pkg/config"
	_ "github.com/yaklabco/codesurf/pkg/lint/rules" // register built-in rules
)

// writeConfigFile writes a config file into dir and returns its path.
func writeConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// isolatedLoadOptions returns LoadOptions that ignore machine-level state so
// tests see only what they create themselves.
func isolatedLoadOptions(workDir string) configloader.LoadOptions {
	return configloader.LoadOptions{
		WorkingDir:         workDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	result, err := configloader.Load(context.Background(), isolatedLoadOptions(t.TempDir()))
	require.NoError(t, err)

	assert.Equal(t, "warning", result.Config.SeverityDefault)
	assert.Equal(t, config.FormatText, result.Config.Format)
	assert.Equal(t, "python3", result.Config.Python.Interpreter)
	assert.Equal(t, config.DefaultPythonTimeoutSeconds, result.Config.Python.TimeoutSeconds)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoadProjectConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfigFile(t, dir, ".codesurf.yml", `
severity_default: error
ignore:
  - "dist/**"
rules:
  long-function:
    options:
      max_lines: 80
`)

	result, err := configloader.Load(context.Background(), isolatedLoadOptions(dir))
	require.NoError(t, err)

	assert.Equal(t, []string{path}, result.LoadedFrom)
	assert.Equal(t, "error", result.Config.SeverityDefault)
	assert.Equal(t, []string{"dist/**"}, result.Config.Ignore)

	rc, ok := result.Config.RuleFor("javascript", "long-function")
	require.True(t, ok)
	assert.Equal(t, 80, rc.Options["max_lines"])

	// Fields the file is silent on keep their defaults.
	assert.Equal(t, "python3", result.Config.Python.Interpreter)
}

func TestLoadProjectConfigUpwardSearch(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeConfigFile(t, root, ".codesurf.yml", "severity_default: info\n")

	nested := filepath.Join(root, "src", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	opts := isolatedLoadOptions(nested)
	result, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, path, result.Paths.Project)
	assert.Equal(t, "info", result.Config.SeverityDefault)
}

func TestLoadStopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfigFile(t, root, ".codesurf.yml", "severity_default: info\n")

	// The repo below root has its own VCS root; the search must not
	// escape it and pick up root's config.
	repo := filepath.Join(root, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	result, err := configloader.Load(context.Background(), isolatedLoadOptions(repo))
	require.NoError(t, err)

	assert.Empty(t, result.Paths.Project)
	assert.Equal(t, "warning", result.Config.SeverityDefault)
}

func TestLoadExplicitPathWinsOverProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, dir, ".codesurf.yml", "severity_default: info\n")
	explicit := writeConfigFile(t, dir, "custom.yml", "severity_default: error\n")

	opts := isolatedLoadOptions(dir)
	opts.ExplicitPath = explicit

	result, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "error", result.Config.SeverityDefault)
	assert.Equal(t, explicit, result.Paths.Explicit)
	require.Len(t, result.LoadedFrom, 2)
	assert.Equal(t, explicit, result.LoadedFrom[1])
}

func TestLoadEnvOverridesProject(t *testing.T) {
	// Not parallel: mutates process environment.
	t.Setenv("CODESURF_FORMAT", "json")
	t.Setenv("CODESURF_JOBS", "4")
	t.Setenv("CODESURF_PYTHON_INTERPRETER", "python3.12")

	dir := t.TempDir()
	writeConfigFile(t, dir, ".codesurf.yml", "severity_default: error\n")

	opts := isolatedLoadOptions(dir)
	opts.IgnoreEnv = false

	result, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FormatJSON, result.Config.Format)
	assert.Equal(t, 4, result.Config.Jobs)
	assert.Equal(t, "python3.12", result.Config.Python.Interpreter)
	assert.Equal(t, "error", result.Config.SeverityDefault)
}

func TestLoadCLIWinsOverEverything(t *testing.T) {
	// Not parallel: mutates process environment.
	t.Setenv("CODESURF_FORMAT", "json")

	dir := t.TempDir()
	writeConfigFile(t, dir, ".codesurf.yml", "severity_default: error\n")

	opts := isolatedLoadOptions(dir)
	opts.IgnoreEnv = false
	opts.CLIConfig = &config.Config{
		Format:       config.FormatSARIF,
		DisableRules: []string{"async-no-await"},
	}

	result, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FormatSARIF, result.Config.Format)
	assert.Equal(t, []string{"async-no-await"}, result.Config.DisableRules)
	assert.Equal(t, "error", result.Config.SeverityDefault)
}

func TestLoadInvalidConfigRejected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, dir, ".codesurf.yml", "severity_default: catastrophic\n")

	_, err := configloader.Load(context.Background(), isolatedLoadOptions(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "severity_default")
}

func TestLoadUnreadableDiscoveredConfigDegradesToWarning(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, dir, ".codesurf.yml", "rules: [not, a, map\n")

	result, err := configloader.Load(context.Background(), isolatedLoadOptions(dir))
	require.NoError(t, err)

	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "skipping config")
	assert.Equal(t, "warning", result.Config.SeverityDefault)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoadWarnsOnUnknownRule(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, dir, ".codesurf.yml", `
rules:
  no-such-rule:
    enabled: true
`)

	result, err := configloader.Load(context.Background(), isolatedLoadOptions(dir))
	require.NoError(t, err)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "no-such-rule")
}

func TestLoadPerLanguageOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, dir, ".codesurf.yml", `
rules:
  long-function:
    options:
      max_lines: 60
languages:
  typescript:
    long-function:
      options:
        max_lines: 120
`)

	result, err := configloader.Load(context.Background(), isolatedLoadOptions(dir))
	require.NoError(t, err)

	rc, ok := result.Config.RuleFor("typescript", "long-function")
	require.True(t, ok)
	assert.Equal(t, 120, rc.Options["max_lines"])

	rc, ok = result.Config.RuleFor("javascript", "long-function")
	require.True(t, ok)
	assert.Equal(t, 60, rc.Options["max_lines"])
}

func TestWriteConfigRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".codesurf.yml")

	cfg := config.NewConfig()
	cfg.SeverityDefault = "info"
	require.NoError(t, configloader.WriteConfig(cfg, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# codesurf configuration")

	opts := isolatedLoadOptions(dir)
	result, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "info", result.Config.SeverityDefault)
}
