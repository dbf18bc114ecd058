// Package jsast provides the core syntax tree representation for the
// JavaScript/TypeScript family in codesurf. It defines:
// - FileSnapshot: the complete file representation
// - Token stream: significant tokens with byte offsets
// - AST nodes: structural representation referencing token spans
//
// The parser is tolerant by design: it recovers the constructs the rules
// care about (functions, classes, variable declarations, identifier
// usage, await expressions) and consumes everything else as opaque
// expression content.
package jsast

// FileSnapshot is an immutable view of a source file at a specific time.
// It holds the raw content, line metadata, token stream, and AST root.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Tokens is the significant-token stream (comments included,
	// whitespace excluded).
	Tokens []Token

	// Root is the AST root node (Program).
	Root *Node

	// Variant is the grammar variant the file was parsed with.
	Variant Variant
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewFileSnapshot creates a new FileSnapshot from content.
// It builds the line index but does not tokenize or parse.
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
		Tokens:  nil,
		Root:    nil,
	}
}
