package lint

import (
	"github.com/yaklabco/codesurf/pkg/config"
	"github.com/yaklabco/codesurf/pkg/jsast"
)

// BaseRule provides a default implementation of the Rule interface.
// Embed this in rule implementations and override methods as needed.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
type BaseRule struct {
	id       string          // Unique identifier (e.g., "long-function")
	name     string          // Human-readable name
	desc     string          // Detailed description
	category config.Category // Finding category
	tags     []string        // Categorization tags
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, name, desc string, category config.Category, tags []string) BaseRule {
	return BaseRule{
		id:       id,
		name:     name,
		desc:     desc,
		category: category,
		tags:     tags,
	}
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the human-readable name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns a detailed description of what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// DefaultEnabled returns whether the rule is enabled by default.
// Override this method to change the default.
func (r *BaseRule) DefaultEnabled() bool {
	return true
}

// DefaultSeverity returns the default severity for this rule.
// Override this method to change the default.
func (r *BaseRule) DefaultSeverity() config.Severity {
	return config.SeverityWarning
}

// Category returns the issue category for findings from this rule.
func (r *BaseRule) Category() config.Category {
	return r.category
}

// Tags returns categorization tags for this rule.
func (r *BaseRule) Tags() []string {
	return r.tags
}

// NeedsFinalization reports whether the rule emits from Finalize.
// Override in rules that accumulate cross-node state.
func (r *BaseRule) NeedsFinalization() bool {
	return false
}

// Begin returns a fresh accumulator. The default has none.
func (r *BaseRule) Begin(_ *RuleContext) State {
	return nil
}

// Visit must be overridden by concrete rule implementations.
// The default implementation returns no findings.
func (r *BaseRule) Visit(_ *RuleContext, _ State, _ *jsast.Node) ([]Finding, error) {
	return nil, nil
}

// Finalize returns no findings by default.
func (r *BaseRule) Finalize(_ *RuleContext, _ State) ([]Finding, error) {
	return nil, nil
}
