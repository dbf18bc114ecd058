package rules

import (
	"fmt"

	"github.com/yaklabco/codesurf/pkg/config"
	"github.com/yaklabco/codesurf/pkg/jsast"
	"github.com/yaklabco/codesurf/pkg/lint"
)

// defaultMaxComplexity is the default cyclomatic complexity threshold.
const defaultMaxComplexity = 10

// HighComplexityRule reports functions whose cyclomatic complexity
// exceeds a threshold. Complexity is 1 plus the number of branch points
// (if, for, while, case, catch, short-circuit operators, ternaries) in
// the function's own span; nested functions are measured separately and
// excluded from their parent's count.
type HighComplexityRule struct {
	lint.BaseRule
}

// NewHighComplexityRule creates a new complexity rule.
func NewHighComplexityRule() *HighComplexityRule {
	return &HighComplexityRule{
		BaseRule: lint.NewBaseRule(
			"high-complexity",
			"high-complexity",
			"Functions should not exceed the configured cyclomatic complexity",
			config.CategoryCodeSmell,
			[]string{"functions", "complexity"},
		),
	}
}

// Visit emits a finding for each function exceeding the threshold.
func (r *HighComplexityRule) Visit(ctx *lint.RuleContext, _ lint.State, n *jsast.Node) ([]lint.Finding, error) {
	if n.Kind != jsast.NodeFunction {
		return nil, nil
	}

	maxComplexity := ctx.OptionInt("max", defaultMaxComplexity)

	complexity := functionComplexity(n)
	if complexity <= maxComplexity {
		return nil, nil
	}

	label := functionLabel(n)
	finding := lint.NewFinding(r.ID(), n,
		fmt.Sprintf("Function '%s' has cyclomatic complexity %d (maximum is %d)", label, complexity, maxComplexity)).
		WithSuggestion(fmt.Sprintf("Reduce branching in '%s' by extracting helpers", label)).
		Build()

	return []lint.Finding{finding}, nil
}

// functionComplexity counts branch points in fn's token span, skipping
// spans owned by nested functions.
func functionComplexity(fn *jsast.Node) int {
	if fn.File == nil || fn.FirstToken < 0 {
		return 1
	}

	// Token ranges of nested functions to exclude.
	var nested [][2]int
	for _, child := range jsast.FindByKind(fn, jsast.NodeFunction) {
		if child != fn {
			nested = append(nested, [2]int{child.FirstToken, child.LastToken})
		}
	}

	complexity := 1
	tokens := fn.File.Tokens

	for i := fn.FirstToken; i <= fn.LastToken && i < len(tokens); i++ {
		if insideAny(i, nested) {
			continue
		}

		tok := tokens[i]
		switch tok.Kind {
		case jsast.TokKeyword:
			switch tok.Text {
			case "if", "for", "while", "case", "catch":
				complexity++
			}
		case jsast.TokPunct:
			switch tok.Text {
			case "&&", "||", "??":
				complexity++
			case "?":
				// Ternary; `?.` and `??` tokenize separately.
				complexity++
			}
		}
	}

	return complexity
}

func insideAny(idx int, ranges [][2]int) bool {
	for _, r := range ranges {
		if idx >= r[0] && idx <= r[1] {
			return true
		}
	}
	return false
}
