package runner

import "github.com/yaklabco/codesurf/pkg/lint"

// FileOutcome pairs one file's analysis report with any processing error.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Report contains the analysis report for this file.
	// May be nil if the file encountered an error during processing.
	Report *lint.Report

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully analyzed.
	FilesProcessed int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one finding.
	FilesWithIssues int

	// FindingsTotal is the total number of findings across all files.
	FindingsTotal int

	// FindingsBySeverity maps severity levels to counts.
	FindingsBySeverity map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any findings with error severity occurred.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FindingsBySeverity["error"] > 0
}

// HasIssues reports whether any findings were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.FindingsTotal > 0
}

// HasErrors reports whether any file failed to process.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		FindingsBySeverity: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Report == nil {
		return
	}

	r.Stats.FilesProcessed++

	count := len(outcome.Report.Results)
	r.Stats.FindingsTotal += count
	if count > 0 {
		r.Stats.FilesWithIssues++
	}

	for _, f := range outcome.Report.Results {
		severity := string(f.Severity)
		if severity == "" {
			severity = "warning"
		}
		r.Stats.FindingsBySeverity[severity]++
	}
}
