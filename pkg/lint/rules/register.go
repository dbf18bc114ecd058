package rules

import "github.com/yaklabco/codesurf/pkg/lint"

// All returns fresh instances of every built-in rule.
func All() []lint.Rule {
	return []lint.Rule{
		NewUnusedIdentifierRule(),
		NewAsyncNoAwaitRule(),
		NewLongFunctionRule(),
		NewHighComplexityRule(),
	}
}

// RegisterAll registers every built-in rule with the given registry.
func RegisterAll(registry *lint.Registry) {
	for _, rule := range All() {
		registry.Register(rule)
	}
}

//nolint:gochecknoinits // Registration at package load is intentional
func init() {
	RegisterAll(lint.DefaultRegistry)
}
