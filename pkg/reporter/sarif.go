package reporter

import (
	"context"
	"fmt"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/yaklabco/codesurf/pkg/config"
	"github.com/yaklabco/codesurf/pkg/runner"
)

const toolName = "codesurf"
const toolURI = "https://github.com/yaklabco/codesurf"

// SARIFReporter formats results as SARIF 2.1.0.
type SARIFReporter struct {
	opts Options
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{opts: opts}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return 0, fmt.Errorf("create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	count := r.addResults(run, result)
	report.AddRun(run)

	if r.opts.Compact {
		err = report.Write(r.opts.Writer)
	} else {
		err = report.PrettyWrite(r.opts.Writer)
	}
	if err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return count, nil
}

func (r *SARIFReporter) addResults(run *sarif.Run, result *runner.Result) int {
	if result == nil {
		return 0
	}

	var count int
	rulesSeen := make(map[string]bool)

	for _, file := range result.Files {
		if file.Report == nil {
			continue
		}
		path := r.opts.displayPath(file.Path)

		for i := range file.Report.Results {
			f := &file.Report.Results[i]
			level := severityToSARIFLevel(f.Severity)

			if !rulesSeen[f.RuleID] {
				run.AddRule(f.RuleID).
					WithDescription(f.Message).
					WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: level})
				rulesSeen[f.RuleID] = true
			}

			// Findings carry 0-based positions; SARIF regions are 1-based.
			region := sarif.NewRegion().
				WithStartLine(f.Range.Start.Line + 1).
				WithStartColumn(f.Range.Start.Column + 1).
				WithEndLine(f.Range.End.Line + 1).
				WithEndColumn(f.Range.End.Column + 1)

			location := sarif.NewLocation().WithPhysicalLocation(
				sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewArtifactLocation().WithUri(path)).
					WithRegion(region),
			)

			run.AddResult(sarif.NewRuleResult(f.RuleID).
				WithMessage(sarif.NewTextMessage(f.Message)).
				WithLevel(level).
				WithLocations([]*sarif.Location{location}))
			count++
		}
	}

	return count
}

// severityToSARIFLevel converts a finding severity to a SARIF level.
func severityToSARIFLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityWarning:
		return "warning"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
