package lint

import (
	"github.com/yaklabco/codesurf/pkg/config"
	"github.com/yaklabco/codesurf/pkg/jsast"
)

// State is the per-file accumulator a rule threads through traversal.
// Rules that need cross-node aggregation return their own state type from
// Begin and inspect it in Finalize; purely local rules return nil.
type State any

// Rule defines the interface that all tree-based rules must implement.
//
// The engine drives each rule through a single pre-order traversal of the
// parsed tree: Begin creates a fresh accumulator, Visit is called for
// every node (parent before children, siblings in source order), and
// Finalize runs once after the full tree has been visited. Findings
// returned from Visit are emitted in discovery order; findings returned
// from Finalize follow them.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "long-function").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// Category returns the issue category findings from this rule carry.
	Category() config.Category

	// Tags returns categorization tags for this rule.
	Tags() []string

	// NeedsFinalization reports whether the rule accumulates state across
	// the traversal and emits findings in Finalize. Purely local rules
	// return false and emit from Visit.
	NeedsFinalization() bool

	// Begin returns a fresh accumulator for one file analysis.
	Begin(ctx *RuleContext) State

	// Visit is called for each node in pre-order. Rules must:
	//   - Return findings for violations detectable at this node.
	//   - Record cross-node state on the accumulator, not on the rule.
	//   - Return error only for internal failures, not violations.
	Visit(ctx *RuleContext, state State, n *jsast.Node) ([]Finding, error)

	// Finalize inspects the accumulator after the full traversal and
	// returns the remaining findings. Only called when NeedsFinalization
	// is true.
	Finalize(ctx *RuleContext, state State) ([]Finding, error)
}
