package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/codesurf/internal/configloader"
	"github.com/yaklabco/codesurf/internal/logging"
	"github.com/yaklabco/codesurf/pkg/config"
	"github.com/yaklabco/codesurf/pkg/lint"
	_ "github.com/yaklabco/codesurf/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/codesurf/pkg/python"
	"github.com/yaklabco/codesurf/pkg/reporter"
	"github.com/yaklabco/codesurf/pkg/runner"
)

// ErrIssuesFound is returned when the analysis reports issues.
var ErrIssuesFound = errors.New("issues found")

type analyzeFlags struct {
	format            string
	language          string
	ignore            []string
	enable            []string
	disable           []string
	jobs              int
	pythonAnalyzer    string
	pythonInterpreter string
	strict            bool
	compact           bool
	noSummary         bool
}

func newAnalyzeCommand() *cobra.Command {
	flags := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "analyze [paths...]",
		Short: "Analyze source files for issues",
		Long:  analyzeLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, flags)
		},
	}

	addAnalyzeFlags(cmd, flags)

	return cmd
}

const analyzeLongDescription = `Analyze JavaScript, TypeScript, and Python files for issues.

By default, analyzes all supported files in the current directory and
subdirectories. Specify paths to analyze specific files or directories.
Python files require an external analyzer script; without one they are
reported as analysis failures.

Examples:
  codesurf analyze                         # Analyze current directory
  codesurf analyze src/                    # Analyze src directory
  codesurf analyze app.ts                  # Analyze a single file
  codesurf analyze --format json           # Output as JSON for CI
  codesurf analyze --disable async-no-await
  codesurf analyze --python-analyzer tools/ast_parser.py
  codesurf analyze --strict                # Treat warnings as errors`

func runAnalyze(cmd *cobra.Command, args []string, flags *analyzeFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	// Map flags to a CLI-level config; only explicitly provided values
	// should override lower-precedence sources.
	cliCfg := &config.Config{
		Format:       config.OutputFormat(flags.format),
		Jobs:         flags.jobs,
		Ignore:       flags.ignore,
		EnableRules:  flags.enable,
		DisableRules: flags.disable,
	}
	if flags.pythonAnalyzer != "" {
		cliCfg.Python.Script = flags.pythonAnalyzer
	}
	if flags.pythonInterpreter != "" {
		cliCfg.Python.Interpreter = flags.pythonInterpreter
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		logging.FieldFormat, finalCfg.Format,
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldInterpreter, finalCfg.Python.Interpreter,
		logging.FieldScript, finalCfg.Python.Script,
	)

	// Create the engine with the external Python analyzer.
	analyzer := python.NewScriptAnalyzer(finalCfg.Python)
	engine := lint.NewEngine(lint.DefaultRegistry, analyzer)

	analysisRunner := runner.New(engine)

	runOpts := runner.Options{
		Paths:            args,
		WorkingDir:       workDir,
		ExcludeGlobs:     finalCfg.Ignore,
		Jobs:             finalCfg.Jobs,
		LanguageOverride: flags.language,
		Config:           finalCfg,
	}

	logger.Debug("starting analysis run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := analysisRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("analysis run failed"), err)
	}

	// Get color mode from persistent flag.
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowSummary: !flags.noSummary,
		GroupByFile: true,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	exitCode := ExitCodeFromResult(result, flags.strict)
	if exitCode != ExitSuccess {
		return ErrIssuesFound
	}

	return nil
}

func addAnalyzeFlags(cmd *cobra.Command, flags *analyzeFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, sarif")
	cmd.Flags().StringVar(&flags.language, "language", "",
		"treat all files as this language, bypassing detection")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil,
		"rule IDs to enable (acts as an allow-list)")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs to disable")
	cmd.Flags().StringVar(&flags.pythonAnalyzer, "python-analyzer", "",
		"path to the external Python analyzer script")
	cmd.Flags().StringVar(&flags.pythonInterpreter, "python-interpreter", "",
		"Python interpreter used to run the analyzer script")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "hide the summary line")
}
