package config

// DefaultTemplate is the starter configuration written by `codesurf init`.
const DefaultTemplate = `# codesurf configuration
# See: https://github.com/yaklabco/codesurf

# Default severity for rules that don't specify one: error, warning, or info
severity_default: warning

# Severity visibility toggles, independent of per-rule enablement.
# visibility:
#   info: false

# File patterns to skip during discovery (glob patterns)
# ignore:
#   - "node_modules/**"
#   - "dist/**"

# External Python analyzer
python:
  interpreter: python3
  # script: tools/ast_parser.py
  timeout_seconds: 30

# Rule-specific configuration
# rules:
#   long-function:
#     enabled: true
#     severity: warning
#     options:
#       max_lines: 50
#   high-complexity:
#     options:
#       max: 10

# Per-language overrides (win over the rules map above)
# languages:
#   typescript:
#     unused-identifier:
#       enabled: false
`
