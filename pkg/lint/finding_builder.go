package lint

import (
	"github.com/yaklabco/codesurf/pkg/config"
	"github.com/yaklabco/codesurf/pkg/jsast"
)

// FindingBuilder helps construct Finding values.
type FindingBuilder struct {
	finding Finding
}

// NewFinding starts building a finding anchored at the given node.
func NewFinding(ruleID string, node *jsast.Node, message string) *FindingBuilder {
	var rng Range
	if node != nil {
		rng = RangeFromSourcePosition(node.SourcePosition())
	}

	return &FindingBuilder{
		finding: Finding{
			ID:      NewFindingID(),
			RuleID:  ruleID,
			Message: message,
			Range:   rng,
		},
	}
}

// NewFindingAt starts building a finding at a specific range.
func NewFindingAt(ruleID string, rng Range, message string) *FindingBuilder {
	return &FindingBuilder{
		finding: Finding{
			ID:      NewFindingID(),
			RuleID:  ruleID,
			Message: message,
			Range:   rng,
		},
	}
}

// NewFindingAtToken starts building a finding spanning a single token.
func NewFindingAtToken(ruleID string, file *jsast.FileSnapshot, tokenIdx int, message string) *FindingBuilder {
	var rng Range
	if file != nil && tokenIdx >= 0 && tokenIdx < len(file.Tokens) {
		tok := file.Tokens[tokenIdx]
		startLine, startCol := file.LineAt(tok.StartOffset)
		endLine, endCol := file.LineAt(tok.EndOffset)
		rng = Range{
			Start: Position{Line: startLine, Column: startCol},
			End:   Position{Line: endLine, Column: endCol},
		}
	}
	return NewFindingAt(ruleID, rng, message)
}

// WithSeverity sets the severity.
func (b *FindingBuilder) WithSeverity(s config.Severity) *FindingBuilder {
	b.finding.Severity = s
	return b
}

// WithCategory sets the category.
func (b *FindingBuilder) WithCategory(c config.Category) *FindingBuilder {
	b.finding.Category = c
	return b
}

// WithSuggestion sets a human-readable remediation hint.
func (b *FindingBuilder) WithSuggestion(s string) *FindingBuilder {
	b.finding.Suggestion = s
	return b
}

// Build returns the constructed Finding.
func (b *FindingBuilder) Build() Finding {
	return b.finding
}
