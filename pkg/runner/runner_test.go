package runner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/codesurf/pkg/config"
	"github.com/yaklabco/codesurf/pkg/lint"
	"github.com/yaklabco/codesurf/pkg/lint/rules"
	"github.com/yaklabco/codesurf/pkg/runner"
)

func newRunner() *runner.Runner {
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	return runner.New(lint.NewEngine(registry, nil))
}

func TestRunAggregates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "clean.js")
	writeFile(t, dir, "unused.js", "const unusedVar = 1;\n")
	writeFile(t, dir, "idle.js", "async function idle() { return 1; }\nidle();\n")

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Config:     config.NewConfig(),
		Jobs:       2,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stats.FilesDiscovered)
	assert.Equal(t, 3, result.Stats.FilesProcessed)
	assert.Equal(t, 0, result.Stats.FilesErrored)
	assert.Equal(t, 2, result.Stats.FilesWithIssues)
	assert.Equal(t, 2, result.Stats.FindingsTotal)
	assert.Equal(t, 1, result.Stats.FindingsBySeverity["warning"])
	assert.Equal(t, 1, result.Stats.FindingsBySeverity["info"])

	assert.True(t, result.HasIssues())
	assert.False(t, result.HasFailures())
	assert.False(t, result.HasErrors())

	// Outcomes are ordered by path regardless of worker completion order.
	require.Len(t, result.Files, 3)
	assert.Contains(t, result.Files[0].Path, "clean.js")
	assert.Contains(t, result.Files[1].Path, "idle.js")
	assert.Contains(t, result.Files[2].Path, "unused.js")
}

func TestRunEmptyDirectory(t *testing.T) {
	t.Parallel()

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Config:     config.NewConfig(),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Stats.FilesDiscovered)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasIssues())
}

func TestRunEnabledRules(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "both.js", "const unusedVar = 1;\nasync function idle() { return 1; }\nidle();\n")

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir:   dir,
		Config:       config.NewConfig(),
		EnabledRules: []string{"unused-identifier"},
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	report := result.Files[0].Report
	require.NotNil(t, report)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "unused-identifier", report.Results[0].RuleID)
}

func TestRunCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.js", "b.js", "c.js")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().Run(ctx, runner.Options{
		WorkingDir: dir,
		Config:     config.NewConfig(),
	})
	assert.Error(t, err)
}

func TestRunDeterministic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.js", "const u1 = 1;\n")
	writeFile(t, dir, "b.js", "const u2 = 1;\n")
	writeFile(t, dir, "c.js", "const u3 = 1;\n")

	opts := runner.Options{WorkingDir: dir, Config: config.NewConfig(), Jobs: 3}

	first, err := newRunner().Run(context.Background(), opts)
	require.NoError(t, err)
	second, err := newRunner().Run(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, second.Files, len(first.Files))
	for i := range first.Files {
		assert.Equal(t, first.Files[i].Path, second.Files[i].Path)
	}
}
