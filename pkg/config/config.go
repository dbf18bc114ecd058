// Package config defines core configuration types for codesurf.
// These types are pure data structures with no dependency on how
// configuration is discovered or stored.
package config

// Severity represents the severity level of a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid returns true if the severity is a known value.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// Category classifies what kind of problem a finding describes.
type Category string

const (
	CategoryPotentialIssue Category = "potential-issue"
	CategoryCodeSmell      Category = "code-smell"
	CategorySuggestion     Category = "suggestion"
)

// IsValid returns true if the category is a known value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryPotentialIssue, CategoryCodeSmell, CategorySuggestion:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled"`
	Severity *string        `yaml:"severity"`
	Options  map[string]any `yaml:"options"`
}

// PythonConfig controls the out-of-process Python analyzer.
type PythonConfig struct {
	// Interpreter is the Python executable to invoke.
	Interpreter string `yaml:"interpreter"`

	// Script is the path to the analyzer script.
	Script string `yaml:"script"`

	// TimeoutSeconds bounds a single analyzer invocation.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// OutputFormat specifies the output format for findings.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatSARIF OutputFormat = "sarif"
)

// DefaultPythonTimeoutSeconds bounds the external analyzer call when the
// configuration does not specify one.
const DefaultPythonTimeoutSeconds = 30

// Config is the root configuration structure for codesurf.
type Config struct {
	// SeverityDefault is the severity for rules that don't specify one.
	SeverityDefault string `yaml:"severity_default"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules"`

	// Languages contains per-language rule overrides, keyed by language
	// then rule ID. Entries here win over the top-level Rules map.
	Languages map[string]map[string]RuleConfig `yaml:"languages"`

	// Visibility toggles whole severity levels on or off, independent of
	// per-rule enablement. A nil map means every severity is visible.
	Visibility map[string]bool `yaml:"visibility"`

	// Python configures the external Python analyzer.
	Python PythonConfig `yaml:"python"`

	// Ignore contains glob patterns for files to skip during discovery.
	Ignore []string `yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `yaml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		SeverityDefault: string(SeverityWarning),
		Rules:           make(map[string]RuleConfig),
		Python: PythonConfig{
			Interpreter:    "python3",
			TimeoutSeconds: DefaultPythonTimeoutSeconds,
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// RuleFor returns the effective RuleConfig for a rule in a language.
// Language-specific entries take precedence over global entries.
func (c *Config) RuleFor(language, ruleID string) (RuleConfig, bool) {
	if c == nil {
		return RuleConfig{}, false
	}
	if perLang, ok := c.Languages[language]; ok {
		if rc, ok := perLang[ruleID]; ok {
			return rc, true
		}
	}
	rc, ok := c.Rules[ruleID]
	return rc, ok
}

// SeverityVisible reports whether findings of the given severity should
// be shown. Severities absent from the map default to visible.
func (c *Config) SeverityVisible(s Severity) bool {
	if c == nil || c.Visibility == nil {
		return true
	}
	visible, ok := c.Visibility[string(s)]
	if !ok {
		return true
	}
	return visible
}
