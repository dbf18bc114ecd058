package rules

import (
	"fmt"

	"github.com/yaklabco/codesurf/pkg/config"
	"github.com/yaklabco/codesurf/pkg/jsast"
	"github.com/yaklabco/codesurf/pkg/lint"
)

// AsyncNoAwaitRule reports async functions that never await.
//
// Each await expression credits its nearest enclosing *async* function:
// the search walks outward past plain nested functions until it reaches
// an async one, so an await inside a sync helper still satisfies the
// async function enclosing it.
type AsyncNoAwaitRule struct {
	lint.BaseRule
}

// NewAsyncNoAwaitRule creates a new async-without-await rule.
func NewAsyncNoAwaitRule() *AsyncNoAwaitRule {
	return &AsyncNoAwaitRule{
		BaseRule: lint.NewBaseRule(
			"async-no-await",
			"async-no-await",
			"Async functions should contain at least one await expression",
			config.CategorySuggestion,
			[]string{"async", "functions"},
		),
	}
}

// DefaultSeverity marks pointless async as informational.
func (r *AsyncNoAwaitRule) DefaultSeverity() config.Severity {
	return config.SeverityInfo
}

// NeedsFinalization is true: a function's awaits may appear anywhere in
// its subtree, so verdicts are only known after the full traversal.
func (r *AsyncNoAwaitRule) NeedsFinalization() bool {
	return true
}

// asyncState tracks the has-awaited flag per async function node.
type asyncState struct {
	// order lists async function nodes in discovery order.
	order []*jsast.Node

	// awaited records which async functions contained an await.
	awaited map[*jsast.Node]bool
}

// Begin creates a fresh accumulator.
func (r *AsyncNoAwaitRule) Begin(_ *lint.RuleContext) lint.State {
	return &asyncState{awaited: make(map[*jsast.Node]bool)}
}

// Visit registers async functions and credits awaits to their owner.
func (r *AsyncNoAwaitRule) Visit(_ *lint.RuleContext, state lint.State, n *jsast.Node) ([]lint.Finding, error) {
	st, ok := state.(*asyncState)
	if !ok {
		return nil, fmt.Errorf("unexpected state type %T", state)
	}

	switch n.Kind {
	case jsast.NodeFunction:
		if n.Func.Async {
			st.order = append(st.order, n)
		}

	case jsast.NodeAwait:
		if owner := nearestAsyncFunction(n); owner != nil {
			st.awaited[owner] = true
		}
	}

	return nil, nil
}

// nearestAsyncFunction walks the parent chain to the closest enclosing
// async function, skipping over non-async functions.
func nearestAsyncFunction(n *jsast.Node) *jsast.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind == jsast.NodeFunction && p.Func.Async {
			return p
		}
	}
	return nil
}

// Finalize emits one finding per async function that never awaited,
// anchored at the function's full range.
func (r *AsyncNoAwaitRule) Finalize(_ *lint.RuleContext, state lint.State) ([]lint.Finding, error) {
	st, ok := state.(*asyncState)
	if !ok {
		return nil, fmt.Errorf("unexpected state type %T", state)
	}

	var findings []lint.Finding
	for _, fn := range st.order {
		if st.awaited[fn] {
			continue
		}
		findings = append(findings, lint.NewFinding(
			r.ID(), fn,
			fmt.Sprintf("Async function '%s' contains no await expression", functionLabel(fn))).
			WithSuggestion("Remove the async modifier, or await the asynchronous work inside").
			Build())
	}
	return findings, nil
}
