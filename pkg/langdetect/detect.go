// Package langdetect identifies the language family of a source file,
// primarily from its file extension, with a content-based fallback for
// extensionless scripts.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language identifiers used throughout the analysis pipeline.
const (
	LangJavaScript = "javascript"
	LangJSX        = "javascriptreact"
	LangTypeScript = "typescript"
	LangTSX        = "typescriptreact"
	LangPython     = "python"
)

// byExtension maps the extensions the engine analyzes natively.
var byExtension = map[string]string{
	".js":  LangJavaScript,
	".mjs": LangJavaScript,
	".cjs": LangJavaScript,
	".jsx": LangJSX,
	".ts":  LangTypeScript,
	".mts": LangTypeScript,
	".cts": LangTypeScript,
	".tsx": LangTSX,
	".py":  LangPython,
	".pyw": LangPython,
}

// DetectPath returns the language identifier for a file path.
// Unknown extensions default to plain JavaScript.
func DetectPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := byExtension[ext]; ok {
		return lang
	}
	return LangJavaScript
}

// DetectFile returns the language identifier for a file, consulting the
// content's shebang line when the extension alone is not conclusive.
func DetectFile(path string, content []byte) string {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := byExtension[ext]; ok {
		return lang
	}

	if ext == "" && len(content) > 0 {
		if lang, safe := enry.GetLanguageByShebang(content); safe {
			switch strings.ToLower(lang) {
			case "python":
				return LangPython
			case "javascript", "node":
				return LangJavaScript
			}
		}
	}

	return LangJavaScript
}

// Supported reports whether the path maps to a language the engine
// analyzes, as opposed to falling back to the plain-JavaScript default.
func Supported(path string) bool {
	_, ok := byExtension[strings.ToLower(filepath.Ext(path))]
	return ok
}

// SupportedExtensions returns the recognized file extensions.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(byExtension))
	for ext := range byExtension {
		exts = append(exts, ext)
	}
	return exts
}

// IsPython reports whether the language identifier is the Python family.
func IsPython(lang string) bool {
	return lang == LangPython
}

// IsValid reports whether lang is one of the recognized identifiers.
func IsValid(lang string) bool {
	switch lang {
	case LangJavaScript, LangJSX, LangTypeScript, LangTSX, LangPython:
		return true
	}
	return false
}
