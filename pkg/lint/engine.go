package lint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/codesurf/pkg/config"
	"github.com/yaklabco/codesurf/pkg/jsast"
	"github.com/yaklabco/codesurf/pkg/langdetect"
	"github.com/yaklabco/codesurf/pkg/python"
)

// externalColumnSpan is the sentinel end column for findings from the
// external analyzer path, which reports lines but not columns.
const externalColumnSpan = 100

// SyntheticRuleID identifies the synthetic finding emitted when the
// external analyzer fails.
const SyntheticRuleID = "python-analyzer"

// Engine coordinates language detection, parsing, and rule execution.
type Engine struct {
	// Registry holds all available tree-based rules.
	Registry *Registry

	// Python analyzes Python sources out of process. May be nil, in
	// which case Python files produce a synthetic failure finding.
	Python python.Analyzer

	// Logger receives non-fatal diagnostics (rule failures, parse
	// errors). Defaults to the package-level logger when nil.
	Logger *log.Logger
}

// NewEngine creates an Engine with the given registry and analyzer.
func NewEngine(registry *Registry, analyzer python.Analyzer) *Engine {
	return &Engine{
		Registry: registry,
		Python:   analyzer,
	}
}

func (e *Engine) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.Default()
}

// AnalyzeFile analyzes a single file, detecting its language from the
// path and content.
func (e *Engine) AnalyzeFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*Report, error) {
	return e.AnalyzeFileAs(ctx, path, content, langdetect.DetectFile(path, content), cfg)
}

// Options carries caller-supplied per-run overrides.
type Options struct {
	// EnabledRules restricts the run to the named rules. Empty means
	// every registered rule at its configured enablement.
	EnabledRules []string

	// LanguageOverride forces the language instead of detecting it.
	LanguageOverride string
}

// AnalyzeFileWithOptions analyzes a single file with per-run overrides.
func (e *Engine) AnalyzeFileWithOptions(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	opts Options,
) (*Report, error) {
	if len(opts.EnabledRules) > 0 {
		if clone := cfg.Clone(); clone != nil {
			cfg = clone
		} else {
			cfg = config.NewConfig()
		}
		cfg.EnableRules = opts.EnabledRules
	}

	language := opts.LanguageOverride
	if language == "" {
		language = langdetect.DetectFile(path, content)
	}
	return e.AnalyzeFileAs(ctx, path, content, language, cfg)
}

// AnalyzeFileAs analyzes a single file as the given language. An invalid
// language identifier falls back to detection.
func (e *Engine) AnalyzeFileAs(
	ctx context.Context,
	path string,
	content []byte,
	language string,
	cfg *config.Config,
) (*Report, error) {
	if !langdetect.IsValid(language) {
		language = langdetect.DetectFile(path, content)
	}

	if langdetect.IsPython(language) {
		return e.analyzePython(ctx, path, language, cfg)
	}
	return e.analyzeTree(ctx, path, content, language, cfg)
}

// analyzeTree runs the in-process parse-and-rules path.
func (e *Engine) analyzeTree(
	ctx context.Context,
	path string,
	content []byte,
	language string,
	cfg *config.Config,
) (*Report, error) {
	report := &Report{FilePath: path, Language: language}
	set := ResolveSnapshot(e.Registry, language, cfg)

	snapshot, err := jsast.Parse(path, content, variantFor(language))
	if err != nil {
		var parseErr *jsast.ParseError
		if !errors.As(err, &parseErr) {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		// Tree-based rules have nothing to work with; the report is
		// still well-formed.
		e.logger().Warn("parse failed, skipping tree rules",
			"file", path, "error", parseErr.Msg, "offset", parseErr.Offset)
		report.Results = []Finding{}
		report.GeneratedAt = time.Now()
		return report, nil
	}

	var all []Finding
	for _, rr := range ResolveRules(e.Registry, language, cfg) {
		select {
		case <-ctx.Done():
			return report, fmt.Errorf("analysis cancelled: %w", ctx.Err())
		default:
		}

		ruleCtx := NewRuleContext(ctx, snapshot, language, cfg, rr.Config)
		ruleCtx.Registry = e.Registry

		findings, err := e.runRule(ruleCtx, rr)
		if err != nil {
			// A misbehaving rule must not abort the run.
			e.logger().Error("rule failed", "rule", rr.Rule.ID(), "file", path, "error", err)
			continue
		}

		for i := range findings {
			findings[i].Severity = rr.Severity
			if findings[i].Category == "" {
				findings[i].Category = rr.Category
			}
		}
		all = append(all, findings...)
	}

	report.Results = Filter(all, set, cfg)
	report.GeneratedAt = time.Now()
	return report, nil
}

// runRule drives one rule through the traversal and finalization phases,
// converting panics into errors.
func (e *Engine) runRule(ruleCtx *RuleContext, rr ResolvedRule) (findings []Finding, err error) {
	defer func() {
		if r := recover(); r != nil {
			findings = nil
			err = fmt.Errorf("rule panicked: %v", r)
		}
	}()

	state := rr.Rule.Begin(ruleCtx)

	walkErr := jsast.Walk(ruleCtx.Root, func(n *jsast.Node) error {
		visitFindings, visitErr := rr.Rule.Visit(ruleCtx, state, n)
		findings = append(findings, visitFindings...)
		return visitErr
	})
	if walkErr != nil {
		return nil, walkErr
	}

	if rr.Rule.NeedsFinalization() {
		finalFindings, finalErr := rr.Rule.Finalize(ruleCtx, state)
		if finalErr != nil {
			return nil, finalErr
		}
		findings = append(findings, finalFindings...)
	}

	return findings, nil
}

// analyzePython runs the out-of-process path and normalizes the digest.
func (e *Engine) analyzePython(
	ctx context.Context,
	path string,
	language string,
	cfg *config.Config,
) (*Report, error) {
	report := &Report{FilePath: path, Language: language}
	set := ResolveSnapshot(e.Registry, language, cfg)

	digest, err := e.runAnalyzer(ctx, path)
	if err != nil || !digest.Success {
		var msg string
		if err != nil {
			msg = err.Error()
		} else {
			msg = digest.FailureMessage()
		}
		e.logger().Warn("python analysis failed", "file", path, "error", msg)

		set.ResolveExternal(SyntheticRuleID, language, config.SeverityError, cfg)
		synthetic := NewFindingAt(SyntheticRuleID, Range{}, msg).
			WithSeverity(config.SeverityError).
			WithCategory(config.CategoryPotentialIssue).
			Build()
		report.Results = Filter([]Finding{synthetic}, set, cfg)
		report.GeneratedAt = time.Now()
		return report, nil
	}

	fallback := config.SeverityWarning
	if cfg != nil {
		if sev := config.Severity(cfg.SeverityDefault); sev.IsValid() {
			fallback = sev
		}
	}

	findings := make([]Finding, 0, len(digest.Issues))
	for _, issue := range digest.Issues {
		severity := severityFromExternal(issue.Severity, fallback)
		set.ResolveExternal(issue.Rule, language, severity, cfg)

		// The analyzer reports 1-based lines and no columns; span the
		// full line up to a fixed wide sentinel.
		line := issue.Line - 1
		if line < 0 {
			line = 0
		}
		rng := Range{
			Start: Position{Line: line, Column: 0},
			End:   Position{Line: line, Column: externalColumnSpan},
		}

		findings = append(findings, NewFindingAt(issue.Rule, rng, issue.Message).
			WithSeverity(severity).
			WithCategory(categoryFromExternal(issue.Type)).
			Build())
	}

	report.Results = Filter(findings, set, cfg)
	report.GeneratedAt = time.Now()
	return report, nil
}

func (e *Engine) runAnalyzer(ctx context.Context, path string) (*python.Digest, error) {
	if e.Python == nil {
		return nil, python.ErrAnalyzerUnavailable
	}
	return e.Python.Analyze(ctx, path)
}

func severityFromExternal(s string, fallback config.Severity) config.Severity {
	sev := config.Severity(s)
	if sev.IsValid() {
		return sev
	}
	return fallback
}

// externalCategories maps the analyzer's underscore type values to
// their Category equivalents.
var externalCategories = map[string]config.Category{
	"potential_issue": config.CategoryPotentialIssue,
	"code_smell":      config.CategoryCodeSmell,
	"suggestion":      config.CategorySuggestion,
}

func categoryFromExternal(t string) config.Category {
	if cat, ok := externalCategories[t]; ok {
		return cat
	}
	cat := config.Category(t)
	if cat.IsValid() {
		return cat
	}
	return config.CategoryPotentialIssue
}

func variantFor(language string) jsast.Variant {
	switch language {
	case langdetect.LangTypeScript:
		return jsast.VariantTS
	case langdetect.LangTSX:
		return jsast.VariantTSX
	case langdetect.LangJSX:
		return jsast.VariantJSX
	default:
		return jsast.VariantJS
	}
}
