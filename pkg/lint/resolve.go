package lint

import "github.com/yaklabco/codesurf/pkg/config"

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for findings from this rule.
	Severity config.Severity

	// Category is the category findings from this rule carry.
	Category config.Category

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules determines which rules to run based on registry and config.
// Returns only enabled rules with their resolved configuration, in rule-ID
// order. An empty cfg.EnableRules allow-list means every registered rule
// runs at its default enablement; a non-empty one intersects with the
// registered set.
func ResolveRules(registry *Registry, language string, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	for _, rule := range registry.Rules() {
		rr := resolveRule(rule, language, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// resolveRule resolves the configuration for a single rule.
func resolveRule(rule Rule, language string, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		Category: rule.Category(),
		Config:   nil,
	}

	if cfg == nil {
		return rr
	}

	// A non-empty allow-list restricts the run to exactly those rules.
	if len(cfg.EnableRules) > 0 {
		rr.Enabled = false
		for _, id := range cfg.EnableRules {
			if id == rule.ID() {
				rr.Enabled = true
				break
			}
		}
	}
	for _, id := range cfg.DisableRules {
		if id == rule.ID() {
			rr.Enabled = false
			break
		}
	}

	// Apply rule-specific config, with per-language overrides winning.
	if ruleCfg, ok := cfg.RuleFor(language, rule.ID()); ok {
		rr.Config = &ruleCfg

		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			sev := config.Severity(*ruleCfg.Severity)
			if sev.IsValid() {
				rr.Severity = sev
			}
		}
	}

	return rr
}

// ResolvedEntry is one rule's entry in a resolved configuration snapshot,
// as consumed by the finding filter.
type ResolvedEntry struct {
	Enabled  bool
	Severity config.Severity
}

// ResolvedSet maps rule IDs to their resolved filter entries.
type ResolvedSet map[string]ResolvedEntry

// ResolveSnapshot materializes filter entries for every registered rule.
func ResolveSnapshot(registry *Registry, language string, cfg *config.Config) ResolvedSet {
	set := make(ResolvedSet, len(registry.IDs()))
	for _, rule := range registry.Rules() {
		rr := resolveRule(rule, language, cfg)
		set[rule.ID()] = ResolvedEntry{Enabled: rr.Enabled, Severity: rr.Severity}
	}
	return set
}

// ResolveExternal adds filter entries for rule IDs reported by an external
// analyzer. Unknown IDs default to enabled with the severity the analyzer
// reported, honoring any explicit per-rule configuration.
func (s ResolvedSet) ResolveExternal(ruleID, language string, reported config.Severity, cfg *config.Config) {
	if _, ok := s[ruleID]; ok {
		return
	}

	entry := ResolvedEntry{Enabled: true, Severity: reported}
	if ruleCfg, ok := cfg.RuleFor(language, ruleID); ok {
		if ruleCfg.Enabled != nil {
			entry.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			sev := config.Severity(*ruleCfg.Severity)
			if sev.IsValid() {
				entry.Severity = sev
			}
		}
	}
	s[ruleID] = entry
}
