package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/codesurf/pkg/runner"
)

// writeTree creates the given files (with trivial content) under dir.
func writeTree(t *testing.T, dir string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(dir, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("x();\n"), 0o644))
	}
}

// writeFile creates a single file with the given content under dir.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func relPaths(t *testing.T, dir string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscoverDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir,
		"app.js",
		"src/util.ts",
		"src/View.tsx",
		"tools/run.py",
		"README.md",
		"notes.txt",
	)

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"app.js",
		"src/View.tsx",
		"src/util.ts",
		"tools/run.py",
	}, relPaths(t, dir, files))
}

func TestDiscoverSkipsHidden(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir,
		"app.js",
		".hidden.js",
		".git/hooks/pre-commit.py",
	)

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.js"}, relPaths(t, dir, files))
}

func TestDiscoverExcludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir,
		"app.js",
		"dist/bundle.js",
		"node_modules/dep/index.js",
		"src/deep/nested/mod.ts",
	)

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"dist/**", "**/node_modules"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.js", "src/deep/nested/mod.ts"}, relPaths(t, dir, files))
}

func TestDiscoverIncludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir,
		"src/a.ts",
		"src/b.js",
		"tools/c.ts",
	)

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		IncludeGlobs: []string{"src/**"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.ts", "src/b.js"}, relPaths(t, dir, files))
}

func TestDiscoverExplicitFileAndDedup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "app.js")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"app.js", ".", "app.js"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.js"}, relPaths(t, dir, files))
}

func TestDiscoverMissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"no-such-file.js"},
	})
	assert.Error(t, err)
}

func TestDiscoverCustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.js", "b.ts", "c.py")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".py"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"c.py"}, relPaths(t, dir, files))
}
