// Package rules provides the built-in analysis rules for codesurf.
//
// # Rule Domains
//
//   - unused-identifier: declared variables that are never read
//   - async-no-await: async functions containing no await expression
//   - long-function: functions exceeding a line-count threshold
//   - high-complexity: functions exceeding a cyclomatic complexity threshold
//
// Rules that aggregate state across the tree (unused-identifier,
// async-no-await) declare NeedsFinalization and emit from Finalize;
// purely local rules (long-function, high-complexity) emit from Visit.
package rules
