// Package cli provides the Cobra command structure for codesurf.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/codesurf/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root codesurf command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "codesurf",
		Short: "A fast static analyzer for JavaScript, TypeScript, and Python",
		Long: `codesurf is a fast, rule-based static analyzer written in Go.

It parses JavaScript and TypeScript in-process with a tolerant syntax tree,
delegates Python files to an external analyzer, and reports normalized
findings as text, JSON, or SARIF. Rules can be enabled, disabled, and tuned
per language through a layered YAML configuration.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
