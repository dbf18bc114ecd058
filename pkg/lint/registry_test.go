package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/codesurf/pkg/config"
	"github.com/yaklabco/codesurf/pkg/lint"
)

type namedRule struct {
	lint.BaseRule
}

func newNamedRule(id, name string) *namedRule {
	return &namedRule{
		BaseRule: lint.NewBaseRule(id, name, "test rule", config.CategoryCodeSmell, nil),
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newNamedRule("my-rule", "My Rule"))

	byID, ok := registry.Get("my-rule")
	require.True(t, ok)
	assert.Equal(t, "my-rule", byID.ID())

	byName, ok := registry.Get("My Rule")
	require.True(t, ok)
	assert.Equal(t, "my-rule", byName.ID())

	_, ok = registry.Get("nope")
	assert.False(t, ok)

	_, ok = registry.GetByID("My Rule")
	assert.False(t, ok, "GetByID must not fall back to name lookup")
}

func TestRegistryReplaceOnDuplicateID(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newNamedRule("dup", "First"))
	registry.Register(newNamedRule("dup", "Second"))

	rule, ok := registry.GetByID("dup")
	require.True(t, ok)
	assert.Equal(t, "Second", rule.Name())
	assert.Len(t, registry.IDs(), 1)
}

func TestRegistryRulesSorted(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newNamedRule("zeta", "Z"))
	registry.Register(newNamedRule("alpha", "A"))
	registry.Register(newNamedRule("mid", "M"))

	var ids []string
	for _, rule := range registry.Rules() {
		ids = append(ids, rule.ID())
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, ids)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, registry.IDs())
}
