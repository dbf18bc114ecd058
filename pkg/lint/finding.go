// Package lint provides the rule engine, findings, and registry for codesurf.
package lint

import (
	"time"

	"github.com/google/uuid"

	"github.com/yaklabco/codesurf/pkg/config"
	"github.com/yaklabco/codesurf/pkg/jsast"
)

// Position is a 0-based line/column location in a source file.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Range is a half-open source span: Start is inclusive, End exclusive.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Finding represents a single issue found in a file.
type Finding struct {
	// ID uniquely identifies this finding instance. Two findings with
	// identical content still carry distinct IDs.
	ID string `json:"id"`

	// RuleID is the identifier of the rule that produced this finding.
	RuleID string `json:"ruleId"`

	// Message is the human-readable description of the issue.
	Message string `json:"message"`

	// Severity indicates the importance of the finding.
	Severity config.Severity `json:"severity"`

	// Category classifies the kind of issue.
	Category config.Category `json:"category"`

	// Range is the source span the finding is anchored to.
	Range Range `json:"range"`

	// Suggestion is an optional human-readable remediation hint.
	Suggestion string `json:"suggestion,omitempty"`
}

// NewFindingID returns a fresh unique finding identifier.
func NewFindingID() string {
	return uuid.NewString()
}

// RangeFromSourcePosition converts a node position span into a Range.
func RangeFromSourcePosition(pos jsast.SourcePosition) Range {
	return Range{
		Start: Position{Line: pos.StartLine, Column: pos.StartColumn},
		End:   Position{Line: pos.EndLine, Column: pos.EndColumn},
	}
}

// Report is the full output of analyzing one file.
type Report struct {
	// FilePath is the path of the analyzed file.
	FilePath string `json:"filePath"`

	// Language is the detected (or overridden) language identifier.
	Language string `json:"language"`

	// Results holds the filtered findings in discovery order.
	Results []Finding `json:"results"`

	// GeneratedAt is the time the analysis completed.
	GeneratedAt time.Time `json:"timestamp"`
}

// HasIssues returns true if any findings survived filtering.
func (r *Report) HasIssues() bool {
	return len(r.Results) > 0
}

// CountBySeverity returns the number of findings per severity.
func (r *Report) CountBySeverity() map[config.Severity]int {
	counts := make(map[config.Severity]int)
	for _, f := range r.Results {
		counts[f.Severity]++
	}
	return counts
}
