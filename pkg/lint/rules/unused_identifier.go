package rules

import (
	"fmt"

	"github.com/yaklabco/codesurf/pkg/config"
	"github.com/yaklabco/codesurf/pkg/jsast"
	"github.com/yaklabco/codesurf/pkg/lint"
)

// UnusedIdentifierRule reports declared names that are never read.
//
// Bindings are tracked per scope (program and function bodies) by
// declaration node, not by name alone, so shadowed names in nested
// scopes are resolved independently. Reads resolve lexically during
// finalization: an identifier counts against the nearest enclosing
// scope that declares its name, regardless of source order, which keeps
// hoisted declarations from being reported.
type UnusedIdentifierRule struct {
	lint.BaseRule
}

// NewUnusedIdentifierRule creates a new unused identifier rule.
func NewUnusedIdentifierRule() *UnusedIdentifierRule {
	return &UnusedIdentifierRule{
		BaseRule: lint.NewBaseRule(
			"unused-identifier",
			"unused-identifier",
			"Declared variables should be read at least once",
			config.CategoryCodeSmell,
			[]string{"variables", "dead-code"},
		),
	}
}

// NeedsFinalization is true: unread bindings are only known after the
// whole tree has been visited.
func (r *UnusedIdentifierRule) NeedsFinalization() bool {
	return true
}

// binding is one declared name within a scope.
type binding struct {
	name string
	node *jsast.Node

	// reportable is false for bindings that only exist to absorb reads
	// (parameters, function and class declaration names).
	reportable bool

	read bool
}

// scopeInfo tracks the bindings and reads of one program or function scope.
type scopeInfo struct {
	node     *jsast.Node
	parent   *scopeInfo
	bindings []*binding
	reads    []string
}

func (s *scopeInfo) declare(name string, node *jsast.Node, reportable bool) {
	s.bindings = append(s.bindings, &binding{
		name:       name,
		node:       node,
		reportable: reportable,
	})
}

// resolve marks the nearest enclosing binding of name as read.
func (s *scopeInfo) resolve(name string) {
	for scope := s; scope != nil; scope = scope.parent {
		for _, b := range scope.bindings {
			if b.name == name {
				b.read = true
				return
			}
		}
	}
}

// declareInParent records a non-reportable binding in the scope's parent,
// falling back to the scope itself at the program level.
func (s *scopeInfo) declareInParent(name string, node *jsast.Node) {
	if s.parent != nil {
		s.parent.declare(name, node, false)
		return
	}
	s.declare(name, node, false)
}

// unusedState is the traversal accumulator.
type unusedState struct {
	scopes map[*jsast.Node]*scopeInfo

	// order preserves scope creation order, which follows pre-order
	// discovery and therefore determines finding order.
	order []*scopeInfo
}

// Begin creates a fresh accumulator.
func (r *UnusedIdentifierRule) Begin(_ *lint.RuleContext) lint.State {
	return &unusedState{scopes: make(map[*jsast.Node]*scopeInfo)}
}

// scopeFor returns the scope owning node, creating ancestor scopes on
// demand. Program and function nodes own scopes; everything else belongs
// to its nearest such ancestor.
func (st *unusedState) scopeFor(n *jsast.Node) *scopeInfo {
	owner := n
	if owner.Kind != jsast.NodeProgram && owner.Kind != jsast.NodeFunction {
		for p := n.Parent; p != nil; p = p.Parent {
			if p.Kind == jsast.NodeProgram || p.Kind == jsast.NodeFunction {
				owner = p
				break
			}
		}
	}

	if scope, ok := st.scopes[owner]; ok {
		return scope
	}

	var parent *scopeInfo
	for p := owner.Parent; p != nil; p = p.Parent {
		if p.Kind == jsast.NodeProgram || p.Kind == jsast.NodeFunction {
			parent = st.scopeFor(p)
			break
		}
	}

	scope := &scopeInfo{node: owner, parent: parent}
	st.scopes[owner] = scope
	st.order = append(st.order, scope)
	return scope
}

// Visit records bindings and reads; resolution and findings are deferred
// to Finalize.
func (r *UnusedIdentifierRule) Visit(_ *lint.RuleContext, state lint.State, n *jsast.Node) ([]lint.Finding, error) {
	st, ok := state.(*unusedState)
	if !ok {
		return nil, fmt.Errorf("unexpected state type %T", state)
	}

	switch n.Kind {
	case jsast.NodeProgram:
		st.scopeFor(n)

	case jsast.NodeFunction:
		// The function name is visible to enclosing code; parameters
		// are visible inside. Neither is reported when unused.
		scope := st.scopeFor(n)
		if n.Func.Name != "" {
			scope.declareInParent(n.Func.Name, n)
		}
		for _, param := range n.Func.Params {
			scope.declare(param, n, false)
		}

	case jsast.NodeClass:
		if n.Class.Name != "" {
			st.scopeFor(n).declare(n.Class.Name, n, false)
		}

	case jsast.NodeDeclarator:
		st.scopeFor(n).declare(n.Decl.Name, n, true)

	case jsast.NodeIdentifier:
		// Left-hand-side-only occurrences are not reads.
		if !n.Ident.Write {
			scope := st.scopeFor(n)
			scope.reads = append(scope.reads, n.Ident.Name)
		}
	}

	return nil, nil
}

// Finalize resolves accumulated reads against the scope chain, then
// emits one finding per reportable binding that was never read, in scope
// discovery order.
func (r *UnusedIdentifierRule) Finalize(_ *lint.RuleContext, state lint.State) ([]lint.Finding, error) {
	st, ok := state.(*unusedState)
	if !ok {
		return nil, fmt.Errorf("unexpected state type %T", state)
	}

	for _, scope := range st.order {
		for _, name := range scope.reads {
			scope.resolve(name)
		}
	}

	var findings []lint.Finding
	for _, scope := range st.order {
		for _, b := range scope.bindings {
			if !b.reportable || b.read {
				continue
			}
			findings = append(findings, lint.NewFindingAtToken(
				r.ID(), b.node.File, b.node.FirstToken,
				fmt.Sprintf("'%s' is declared but never used", b.name)).
				WithSuggestion(fmt.Sprintf("Remove the unused declaration of '%s'", b.name)).
				Build())
		}
	}
	return findings, nil
}
