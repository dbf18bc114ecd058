package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/codesurf/internal/cli"
	"github.com/yaklabco/codesurf/pkg/reporter"
	"github.com/yaklabco/codesurf/pkg/runner"
)

// runCommand executes the root command with args and returns captured output.
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "none", Date: "unknown"})

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// setupWorkDir switches into a fresh directory isolated from any real
// user or project configuration.
func setupWorkDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	return dir
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAnalyzeCleanFile(t *testing.T) {
	dir := setupWorkDir(t)
	writeSource(t, dir, "clean.js", "console.log('hello');\n")

	out, _, err := runCommand(t, "analyze", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found")
}

func TestAnalyzeReportsWarnings(t *testing.T) {
	dir := setupWorkDir(t)
	writeSource(t, dir, "app.js", "const unused = 1;\n")

	// Warnings alone do not fail the command.
	out, _, err := runCommand(t, "analyze", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "'unused' is declared but never used")
	assert.Contains(t, out, "(unused-identifier)")
}

func TestAnalyzeStrictFailsOnWarnings(t *testing.T) {
	dir := setupWorkDir(t)
	writeSource(t, dir, "app.js", "const unused = 1;\n")

	_, _, err := runCommand(t, "analyze", "--strict", "--color", "never")
	require.ErrorIs(t, err, cli.ErrIssuesFound)
}

func TestAnalyzeJSONFormat(t *testing.T) {
	dir := setupWorkDir(t)
	writeSource(t, dir, "app.js", "const unused = 1;\n")

	out, _, err := runCommand(t, "analyze", "--format", "json")
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &output))
	assert.Equal(t, 1, output.Summary.TotalIssues)
	require.Len(t, output.Files, 1)
	assert.Equal(t, "javascript", output.Files[0].Language)
}

func TestAnalyzeDisableRule(t *testing.T) {
	dir := setupWorkDir(t)
	writeSource(t, dir, "app.js", "const unused = 1;\n")

	out, _, err := runCommand(t, "analyze",
		"--disable", "unused-identifier", "--color", "never")
	require.NoError(t, err)
	assert.NotContains(t, out, "unused-identifier")
	assert.Contains(t, out, "No issues found")
}

func TestAnalyzeIgnoreGlobs(t *testing.T) {
	dir := setupWorkDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dist"), 0o755))
	writeSource(t, dir, filepath.Join("dist", "bundle.js"), "const unused = 1;\n")

	out, _, err := runCommand(t, "analyze", "--ignore", "dist/**", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "No files to check.")
}

func TestAnalyzeRejectsUnknownFormat(t *testing.T) {
	dir := setupWorkDir(t)
	writeSource(t, dir, "app.js", "console.log(1);\n")

	_, _, err := runCommand(t, "analyze", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format")
}

func TestAnalyzeProjectConfig(t *testing.T) {
	dir := setupWorkDir(t)
	writeSource(t, dir, ".codesurf.yml", `
rules:
  unused-identifier:
    enabled: false
`)
	writeSource(t, dir, "app.js", "const unused = 1;\n")

	out, _, err := runCommand(t, "analyze", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found")
}

func TestInitCommand(t *testing.T) {
	dir := setupWorkDir(t)

	_, _, err := runCommand(t, "init")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, ".codesurf.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "severity_default: warning")

	// A second init without --force must refuse to overwrite.
	_, _, err = runCommand(t, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = runCommand(t, "init", "--force")
	require.NoError(t, err)
}

func TestRulesCommand(t *testing.T) {
	setupWorkDir(t)

	_, _, err := runCommand(t, "rules")
	require.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	_, _, err := runCommand(t, "version")
	require.NoError(t, err)
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(nil, false))

	clean := &runner.Result{Stats: runner.Stats{
		FindingsBySeverity: map[string]int{},
	}}
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(clean, true))

	warned := &runner.Result{Stats: runner.Stats{
		FindingsBySeverity: map[string]int{"warning": 2},
	}}
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(warned, false))
	assert.Equal(t, cli.ExitWarnings, cli.ExitCodeFromResult(warned, true))

	failed := &runner.Result{Stats: runner.Stats{
		FindingsBySeverity: map[string]int{"error": 1, "warning": 2},
	}}
	assert.Equal(t, cli.ExitErrors, cli.ExitCodeFromResult(failed, false))
	assert.Equal(t, cli.ExitErrors, cli.ExitCodeFromResult(failed, true))
}
