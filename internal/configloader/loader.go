// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, and validation.
package configloader

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/codesurf/pkg/config"
	"github.com/yaklabco/codesurf/pkg/lint"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (CODESURF_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.codesurf.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/codesurf/config.yaml)
//  6. System config (/etc/codesurf/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{
		Paths: &ConfigPaths{},
	}

	// Resolve working directory
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	// Start with defaults
	cfg := config.NewConfig()

	// Discover config paths
	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	result.Paths = paths

	if opts.ExplicitPath != "" {
		result.Paths.Explicit = opts.ExplicitPath
	}

	// Load and merge in order (lowest to highest precedence)

	// Discovered config files degrade to warnings on failure: a broken
	// system or user config must not block analysis. Only the explicit
	// --config path is a hard error.

	// 1. System config
	if !opts.IgnoreSystemConfig && paths.System != "" {
		cfg = mergeDiscovered(cfg, paths.System, result)
	}

	// 2. User config
	if !opts.IgnoreUserConfig && paths.User != "" {
		cfg = mergeDiscovered(cfg, paths.User, result)
	}

	// 3. Project config
	if !opts.IgnoreProjectConfig && paths.Project != "" {
		cfg = mergeDiscovered(cfg, paths.Project, result)
	}

	// 4. Explicit config (--config flag)
	if opts.ExplicitPath != "" {
		explicitCfg, err := loadConfigFile(opts.ExplicitPath)
		if err != nil {
			return nil, fmt.Errorf("load explicit config: %w", err)
		}
		cfg = merge(cfg, explicitCfg)
		result.LoadedFrom = append(result.LoadedFrom, opts.ExplicitPath)
	}

	// 5. Environment variables
	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	// 6. CLI config (highest precedence)
	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	// Normalize rule keys to canonical IDs so that configs may use either
	// a rule's ID or its human-readable name.
	normalizeRuleKeys(cfg, lint.DefaultRegistry, result)

	// Validate final configuration
	validation := Validate(cfg)
	if !validation.Valid() {
		// Return first error
		return nil, &validation.Errors[0]
	}

	// Add validation warnings to result
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// mergeDiscovered merges a discovered config file into cfg, downgrading
// load failures to warnings.
func mergeDiscovered(cfg *config.Config, path string, result *LoadResult) *config.Config {
	loaded, err := loadConfigFile(path)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("skipping config %s: %v", path, err))
		return cfg
	}
	result.LoadedFrom = append(result.LoadedFrom, path)
	return merge(cfg, loaded)
}

// loadConfigFile loads a configuration from a YAML file.
// Unlike config.FromYAML, no defaults are applied here: a file that is
// silent on a field must not override lower-precedence sources.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg := &config.Config{}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return cfg, nil
}

// IsInteractive returns true if stdin is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// WriteConfig writes a configuration to a YAML file with a header comment.
func WriteConfig(cfg *config.Config, path string) error {
	content, err := cfg.ToYAML()
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	header := `# codesurf configuration
# See: https://github.com/yaklabco/codesurf

`
	fullContent := header + string(content)

	if err := os.WriteFile(path, []byte(fullContent), configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// normalizeRuleKeys converts rule names to canonical IDs in the config.
// This allows configs to key rules by human-readable names.
// If a rule is specified by both ID and name, warns and uses the last value encountered.
func normalizeRuleKeys(cfg *config.Config, registry *lint.Registry, result *LoadResult) {
	cfg.Rules = normalizeRuleMap("rules", cfg.Rules, registry, result)
	for language, rules := range cfg.Languages {
		cfg.Languages[language] = normalizeRuleMap("languages."+language, rules, registry, result)
	}
}

func normalizeRuleMap(
	fieldPrefix string,
	rules map[string]config.RuleConfig,
	registry *lint.Registry,
	result *LoadResult,
) map[string]config.RuleConfig {
	if len(rules) == 0 {
		return rules
	}

	normalized := make(map[string]config.RuleConfig, len(rules))

	// Track which canonical IDs we've seen to detect duplicates
	seenIDs := make(map[string]string) // canonical ID -> original key

	for key, ruleCfg := range rules {
		rule, found := registry.Get(key)
		if !found {
			// Unknown rule - keep it as-is, validation will warn about it later
			normalized[key] = ruleCfg
			continue
		}
		canonicalID := rule.ID()

		if originalKey, exists := seenIDs[canonicalID]; exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate configuration in %s: %q and %q both refer to %s; using last value",
					fieldPrefix, originalKey, key, canonicalID))
		}

		seenIDs[canonicalID] = key
		normalized[canonicalID] = ruleCfg
	}

	return normalized
}
