package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/codesurf/pkg/langdetect"
)

func TestDetectPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{path: "src/app.js", want: langdetect.LangJavaScript},
		{path: "src/mod.mjs", want: langdetect.LangJavaScript},
		{path: "src/legacy.cjs", want: langdetect.LangJavaScript},
		{path: "src/View.jsx", want: langdetect.LangJSX},
		{path: "src/app.ts", want: langdetect.LangTypeScript},
		{path: "src/mod.mts", want: langdetect.LangTypeScript},
		{path: "src/legacy.cts", want: langdetect.LangTypeScript},
		{path: "src/View.tsx", want: langdetect.LangTSX},
		{path: "tools/run.py", want: langdetect.LangPython},
		{path: "tools/gui.pyw", want: langdetect.LangPython},
		{path: "SRC/APP.JS", want: langdetect.LangJavaScript},
		{path: "README.md", want: langdetect.LangJavaScript},
		{path: "Makefile", want: langdetect.LangJavaScript},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, langdetect.DetectPath(tt.path), tt.path)
	}
}

func TestDetectFileShebang(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		content string
		want    string
	}{
		{
			name:    "python shebang",
			path:    "tools/runner",
			content: "#!/usr/bin/env python3\nprint('hi')\n",
			want:    langdetect.LangPython,
		},
		{
			name:    "node shebang",
			path:    "bin/cli",
			content: "#!/usr/bin/env node\nconsole.log('hi');\n",
			want:    langdetect.LangJavaScript,
		},
		{
			name:    "extension wins over shebang",
			path:    "tools/runner.ts",
			content: "#!/usr/bin/env python3\n",
			want:    langdetect.LangTypeScript,
		},
		{
			name:    "no shebang no extension",
			path:    "LICENSE",
			content: "MIT License\n",
			want:    langdetect.LangJavaScript,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.DetectFile(tt.path, []byte(tt.content)))
		})
	}
}

func TestSupported(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.Supported("a.js"))
	assert.True(t, langdetect.Supported("a.py"))
	assert.False(t, langdetect.Supported("a.go"))
	assert.False(t, langdetect.Supported("no-extension"))

	assert.Len(t, langdetect.SupportedExtensions(), 10)
}

func TestIsPythonAndIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.IsPython(langdetect.LangPython))
	assert.False(t, langdetect.IsPython(langdetect.LangJavaScript))

	for _, lang := range []string{
		langdetect.LangJavaScript, langdetect.LangJSX,
		langdetect.LangTypeScript, langdetect.LangTSX, langdetect.LangPython,
	} {
		assert.True(t, langdetect.IsValid(lang), lang)
	}
	assert.False(t, langdetect.IsValid("ruby"))
	assert.False(t, langdetect.IsValid(""))
}
