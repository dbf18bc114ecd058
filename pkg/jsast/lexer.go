package jsast

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// ParseError describes a lexical or structural failure. The engine treats
// it as "no tree-based findings for this file" rather than a fatal fault.
type ParseError struct {
	// Path is the file being parsed (may be empty).
	Path string

	// Offset is the byte offset where parsing failed.
	Offset int

	// Msg describes the failure.
	Msg string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Msg)
	}
	return fmt.Sprintf("%s: parse error at offset %d: %s", e.Path, e.Offset, e.Msg)
}

// puncts maps every recognized operator/punctuation token, keyed by
// length for longest-match scanning.
var puncts = [...]map[string]bool{
	4: {">>>=": true},
	3: {"...": true, "===": true, "!==": true, "**=": true, "<<=": true, ">>=": true, "&&=": true, "||=": true, "??=": true, ">>>": true},
	2: {
		"=>": true, "==": true, "!=": true, "<=": true, ">=": true, "&&": true, "||": true,
		"++": true, "--": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
		"&=": true, "|=": true, "^=": true, "<<": true, ">>": true, "**": true, "?.": true, "??": true,
	},
}

// tokenize scans content into the significant-token stream. Whitespace is
// discarded; comments are kept so the parser can filter them explicitly.
func tokenize(path string, content []byte) ([]Token, error) {
	var toks []Token
	i := 0
	n := len(content)

	emit := func(kind TokenKind, start, end int) {
		toks = append(toks, Token{
			Kind:        kind,
			StartOffset: start,
			EndOffset:   end,
			Text:        string(content[start:end]),
		})
	}

	fail := func(offset int, msg string) error {
		return &ParseError{Path: path, Offset: offset, Msg: msg}
	}

	// prevSignificant returns the last non-comment token, used for the
	// regex-vs-division heuristic.
	prevSignificant := func() *Token {
		for j := len(toks) - 1; j >= 0; j-- {
			if toks[j].Kind != TokComment {
				return &toks[j]
			}
		}
		return nil
	}

	for i < n {
		c := content[i]

		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++

		case c == '/':
			switch {
			case i+1 < n && content[i+1] == '/':
				j := i + 2
				for j < n && content[j] != '\n' {
					j++
				}
				emit(TokComment, i, j)
				i = j
			case i+1 < n && content[i+1] == '*':
				j := i + 2
				for j < n-1 && !(content[j] == '*' && content[j+1] == '/') {
					j++
				}
				if j >= n-1 {
					return nil, fail(i, "unterminated block comment")
				}
				emit(TokComment, i, j+2)
				i = j + 2
			case regexAllowed(prevSignificant()):
				if end, ok := scanRegex(content, i); ok {
					emit(TokRegex, i, end)
					i = end
				} else {
					end := scanPunct(content, i)
					emit(TokPunct, i, end)
					i = end
				}
			default:
				end := scanPunct(content, i)
				emit(TokPunct, i, end)
				i = end
			}

		case c == '\'' || c == '"':
			end, ok := scanString(content, i)
			if !ok {
				return nil, fail(i, "unterminated string literal")
			}
			emit(TokString, i, end)
			i = end

		case c == '`':
			end, ok := scanTemplate(content, i)
			if !ok {
				return nil, fail(i, "unterminated template literal")
			}
			emit(TokTemplate, i, end)
			i = end

		case isDigit(c) || (c == '.' && i+1 < n && isDigit(content[i+1])):
			end := scanNumber(content, i)
			emit(TokNumber, i, end)
			i = end

		case c == '#' && i+1 < n && isIdentStart(content, i+1):
			// Private class field name: #name.
			end := scanIdent(content, i+1)
			emit(TokIdent, i, end)
			i = end

		case isIdentStart(content, i):
			end := scanIdent(content, i)
			text := string(content[i:end])
			if keywords[text] {
				emit(TokKeyword, i, end)
			} else {
				emit(TokIdent, i, end)
			}
			i = end

		default:
			end := scanPunct(content, i)
			emit(TokPunct, i, end)
			i = end
		}
	}

	return toks, nil
}

// regexAllowed implements the regex-vs-division heuristic: a slash starts
// a regex when the previous token cannot end an expression.
func regexAllowed(prev *Token) bool {
	if prev == nil {
		return true
	}
	switch prev.Kind {
	case TokPunct:
		switch prev.Text {
		case ")", "]", "}", "++", "--":
			return false
		}
		return true
	case TokKeyword:
		switch prev.Text {
		case "this", "super", "true", "false", "null":
			return false
		}
		return true
	default:
		return false
	}
}

// scanRegex scans a regex literal starting at the slash. Returns the end
// offset and true on success; false means the slash is division.
func scanRegex(content []byte, start int) (int, bool) {
	j := start + 1
	n := len(content)
	inClass := false

	for j < n {
		c := content[j]
		switch {
		case c == '\\':
			j += 2
			continue
		case c == '\n':
			return 0, false
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c == '/':
			// Trailing flags.
			j++
			for j < n && isIdentPart(content[j]) {
				j++
			}
			return j, true
		}
		j++
	}
	return 0, false
}

// scanString scans a quoted string literal. Unescaped newlines terminate
// the scan with failure.
func scanString(content []byte, start int) (int, bool) {
	quote := content[start]
	j := start + 1
	n := len(content)

	for j < n {
		c := content[j]
		switch c {
		case '\\':
			j += 2
			continue
		case '\n':
			return 0, false
		case quote:
			return j + 1, true
		}
		j++
	}
	return 0, false
}

// scanTemplate scans a whole template literal including interpolations.
// Nested templates, strings inside interpolations, and brace nesting are
// handled; the literal is emitted as a single token.
func scanTemplate(content []byte, start int) (int, bool) {
	j := start + 1
	n := len(content)
	braceDepth := 0

	for j < n {
		c := content[j]
		switch {
		case c == '\\':
			j += 2
			continue
		case braceDepth == 0 && c == '`':
			return j + 1, true
		case braceDepth == 0 && c == '$' && j+1 < n && content[j+1] == '{':
			braceDepth = 1
			j += 2
			continue
		case braceDepth > 0 && c == '{':
			braceDepth++
		case braceDepth > 0 && c == '}':
			braceDepth--
		case braceDepth > 0 && (c == '\'' || c == '"'):
			end, ok := scanString(content, j)
			if !ok {
				return 0, false
			}
			j = end
			continue
		case braceDepth > 0 && c == '`':
			end, ok := scanTemplate(content, j)
			if !ok {
				return 0, false
			}
			j = end
			continue
		}
		j++
	}
	return 0, false
}

// scanNumber scans a numeric literal: decimal, hex/binary/octal, floats,
// exponents, numeric separators, and bigint suffix.
func scanNumber(content []byte, start int) int {
	j := start
	n := len(content)

	if content[j] == '0' && j+1 < n && (content[j+1] == 'x' || content[j+1] == 'X' ||
		content[j+1] == 'b' || content[j+1] == 'B' || content[j+1] == 'o' || content[j+1] == 'O') {
		j += 2
		for j < n && (isHexDigit(content[j]) || content[j] == '_') {
			j++
		}
	} else {
		for j < n && (isDigit(content[j]) || content[j] == '_') {
			j++
		}
		if j < n && content[j] == '.' {
			j++
			for j < n && (isDigit(content[j]) || content[j] == '_') {
				j++
			}
		}
		if j < n && (content[j] == 'e' || content[j] == 'E') {
			k := j + 1
			if k < n && (content[k] == '+' || content[k] == '-') {
				k++
			}
			if k < n && isDigit(content[k]) {
				j = k
				for j < n && isDigit(content[j]) {
					j++
				}
			}
		}
	}

	// BigInt suffix.
	if j < n && content[j] == 'n' {
		j++
	}

	return j
}

// scanIdent scans an identifier starting at start.
func scanIdent(content []byte, start int) int {
	j := start
	n := len(content)
	for j < n {
		if isIdentPart(content[j]) {
			j++
			continue
		}
		r, size := utf8.DecodeRune(content[j:])
		if r != utf8.RuneError && unicode.IsLetter(r) {
			j += size
			continue
		}
		break
	}
	return j
}

// scanPunct scans the longest matching punctuation token.
func scanPunct(content []byte, start int) int {
	n := len(content)
	for length := 4; length >= 2; length-- {
		if start+length <= n && puncts[length][string(content[start:start+length])] {
			return start + length
		}
	}
	return start + 1
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(content []byte, i int) bool {
	c := content[i]
	if c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
		return true
	}
	r, _ := utf8.DecodeRune(content[i:])
	return r != utf8.RuneError && unicode.IsLetter(r)
}

func isIdentPart(c byte) bool {
	return c == '_' || c == '$' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
