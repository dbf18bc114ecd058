package lint

import "github.com/yaklabco/codesurf/pkg/config"

// Filter applies the resolved configuration to a finding sequence.
//
// A finding is dropped when its rule has no entry in the resolved set,
// when that entry is disabled, or when its severity is hidden by the
// global visibility toggles. The input is never mutated; the returned
// slice preserves relative order, and applying the filter twice yields
// the same result as applying it once.
func Filter(findings []Finding, set ResolvedSet, cfg *config.Config) []Finding {
	// Non-nil even when empty so reports always serialize findings as a
	// JSON array.
	if len(findings) == 0 {
		return []Finding{}
	}

	out := make([]Finding, 0, len(findings))
	for _, f := range findings {
		entry, ok := set[f.RuleID]
		if !ok || !entry.Enabled {
			continue
		}
		if cfg != nil && !cfg.SeverityVisible(f.Severity) {
			continue
		}
		out = append(out, f)
	}
	return out
}
