package rules

import (
	"fmt"

	"github.com/yaklabco/codesurf/pkg/config"
	"github.com/yaklabco/codesurf/pkg/jsast"
	"github.com/yaklabco/codesurf/pkg/lint"
)

// defaultMaxFunctionLines is the default line count threshold.
const defaultMaxFunctionLines = 50

// LongFunctionRule reports functions whose body spans too many lines.
// The check is purely local per function node, so findings are emitted
// inline during the traversal.
type LongFunctionRule struct {
	lint.BaseRule
}

// NewLongFunctionRule creates a new long function rule.
func NewLongFunctionRule() *LongFunctionRule {
	return &LongFunctionRule{
		BaseRule: lint.NewBaseRule(
			"long-function",
			"long-function",
			"Functions should not exceed the configured maximum line count",
			config.CategoryCodeSmell,
			[]string{"functions", "size"},
		),
	}
}

// Visit emits a finding for each function exceeding the threshold.
func (r *LongFunctionRule) Visit(ctx *lint.RuleContext, _ lint.State, n *jsast.Node) ([]lint.Finding, error) {
	if n.Kind != jsast.NodeFunction {
		return nil, nil
	}

	maxLines := ctx.OptionInt("max_lines", defaultMaxFunctionLines)

	pos := n.SourcePosition()
	lines := pos.EndLine - pos.StartLine + 1
	if lines <= maxLines {
		return nil, nil
	}

	label := functionLabel(n)
	finding := lint.NewFinding(r.ID(), n,
		fmt.Sprintf("Function '%s' is %d lines long (maximum is %d)", label, lines, maxLines)).
		WithSuggestion(fmt.Sprintf("Split '%s' into smaller functions", label)).
		Build()

	return []lint.Finding{finding}, nil
}

// functionLabel names a function for messages: the declared name, the
// anonymous marker for unnamed expressions and arrows, or a generic
// marker when nothing is resolvable.
func functionLabel(n *jsast.Node) string {
	if n.Func == nil {
		return "<function>"
	}
	if n.Func.Name != "" {
		return n.Func.Name
	}
	if n.Func.Arrow || !n.Func.Method {
		return "<anonymous>"
	}
	return "<function>"
}
