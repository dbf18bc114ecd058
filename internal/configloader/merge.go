package configloader

import "github.com/yaklabco/codesurf/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	// Start with a shallow copy of base
	result := *base

	// Scalars: override overwrites base if set (non-zero value)
	if override.SeverityDefault != "" {
		result.SeverityDefault = override.SeverityDefault
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Python analyzer settings: merge individual fields
	if override.Python.Interpreter != "" {
		result.Python.Interpreter = override.Python.Interpreter
	}
	if override.Python.Script != "" {
		result.Python.Script = override.Python.Script
	}
	if override.Python.TimeoutSeconds != 0 {
		result.Python.TimeoutSeconds = override.Python.TimeoutSeconds
	}

	// Maps: deep merge
	result.Rules = mergeRules(base.Rules, override.Rules)
	result.Languages = mergeLanguages(base.Languages, override.Languages)
	result.Visibility = mergeVisibility(base.Visibility, override.Visibility)

	// Slices: override replaces base entirely if non-nil
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.EnableRules != nil {
		result.EnableRules = override.EnableRules
	}
	if override.DisableRules != nil {
		result.DisableRules = override.DisableRules
	}

	return &result
}

// mergeRules performs deep merge of rule configurations.
// Both maps are iterated, with override's values taking precedence.
func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.RuleConfig, len(base)+len(override))
	for key, val := range base {
		result[key] = val
	}
	for key, val := range override {
		if existing, ok := result[key]; ok {
			result[key] = mergeRuleConfig(existing, val)
		} else {
			result[key] = val
		}
	}

	return result
}

// mergeLanguages performs deep merge of per-language rule overrides.
func mergeLanguages(base, override map[string]map[string]config.RuleConfig) map[string]map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]map[string]config.RuleConfig, len(base)+len(override))
	for lang, rules := range base {
		result[lang] = mergeRules(rules, nil)
	}
	for lang, rules := range override {
		result[lang] = mergeRules(result[lang], rules)
	}

	return result
}

// mergeVisibility merges severity visibility maps, override winning per key.
func mergeVisibility(base, override map[string]bool) map[string]bool {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]bool, len(base)+len(override))
	for key, val := range base {
		result[key] = val
	}
	for key, val := range override {
		result[key] = val
	}

	return result
}

// mergeRuleConfig merges individual rule configurations.
// override's values take precedence over base's values.
func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	result := base

	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	if override.Severity != nil {
		result.Severity = override.Severity
	}

	// Options: deep merge
	if override.Options != nil {
		merged := make(map[string]any, len(result.Options)+len(override.Options))
		for key, val := range result.Options {
			merged[key] = val
		}
		for key, val := range override.Options {
			merged[key] = val
		}
		result.Options = merged
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
