package jsast

// TokenKind classifies a lexical token.
type TokenKind uint8

const (
	// TokEOF marks the end of the token stream.
	TokEOF TokenKind = iota

	// TokIdent is an identifier or contextual keyword (async, get, set, ...).
	TokIdent

	// TokKeyword is a reserved word (function, const, await, ...).
	TokKeyword

	// TokNumber is a numeric literal, including bigint and separators.
	TokNumber

	// TokString is a single- or double-quoted string literal.
	TokString

	// TokTemplate is a whole template literal, interpolations included.
	TokTemplate

	// TokRegex is a regular expression literal.
	TokRegex

	// TokPunct is an operator or punctuation token.
	TokPunct

	// TokComment is a line or block comment.
	TokComment
)

// Token is a single lexical token with its byte span.
type Token struct {
	// Kind identifies the token class.
	Kind TokenKind

	// StartOffset is the byte index where the token begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the token ends (exclusive).
	EndOffset int

	// Text is the token's source text.
	Text string
}

// IsPunct returns true if the token is the given punctuation text.
func (t Token) IsPunct(text string) bool {
	return t.Kind == TokPunct && t.Text == text
}

// IsKeyword returns true if the token is the given reserved word.
func (t Token) IsKeyword(text string) bool {
	return t.Kind == TokKeyword && t.Text == text
}

// IsIdent returns true if the token is an identifier with the given text.
func (t Token) IsIdent(text string) bool {
	return t.Kind == TokIdent && t.Text == text
}

// keywords are the hard reserved words. Contextual keywords (async, get,
// set, of, as, from, type, static, declare, ...) stay TokIdent and are
// recognized by the parser from token text.
var keywords = map[string]bool{
	"var": true, "let": true, "const": true,
	"function": true, "class": true, "extends": true, "super": true,
	"return": true, "if": true, "else": true, "for": true, "while": true,
	"do": true, "switch": true, "case": true, "default": true,
	"break": true, "continue": true, "new": true, "delete": true,
	"typeof": true, "instanceof": true, "in": true, "void": true,
	"this": true, "import": true, "export": true,
	"try": true, "catch": true, "finally": true, "throw": true,
	"await": true, "yield": true,
	"true": true, "false": true, "null": true,
}
