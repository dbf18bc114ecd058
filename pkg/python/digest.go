// Package python delegates analysis of Python sources to an external
// structural analyzer and normalizes its output.
//
// The core engine depends only on the Analyzer interface, never on the
// process-invocation mechanism, so tests can substitute canned digests.
package python

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedDigest indicates the analyzer produced output that could
// not be decoded as a digest.
var ErrMalformedDigest = errors.New("malformed analyzer digest")

// Issue is one pre-normalized issue reported by the external analyzer.
type Issue struct {
	// Type is the issue category as reported by the analyzer
	// (e.g., "code-smell", "potential-issue", "suggestion").
	Type string `json:"type"`

	// Severity is the reported severity ("error", "warning", "info").
	Severity string `json:"severity"`

	// Message is the human-readable description.
	Message string `json:"message"`

	// Line is the 1-based line number of the issue.
	Line int `json:"line"`

	// Rule is the analyzer-side rule identifier.
	Rule string `json:"rule"`
}

// Digest is the full output of one external analyzer run.
type Digest struct {
	// Success is false when the analyzer itself failed.
	Success bool `json:"success"`

	// Issues holds the reported issues, in analyzer order.
	Issues []Issue `json:"issues"`

	// Error carries the failure kind on unsuccessful runs.
	Error string `json:"error,omitempty"`

	// Message carries failure detail on unsuccessful runs.
	Message string `json:"message,omitempty"`
}

// DecodeDigest parses raw analyzer output into a Digest.
func DecodeDigest(raw []byte) (*Digest, error) {
	var digest Digest
	if err := json.Unmarshal(raw, &digest); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDigest, err)
	}
	return &digest, nil
}

// FailureMessage returns the human-readable failure description for an
// unsuccessful digest.
func (d *Digest) FailureMessage() string {
	switch {
	case d.Message != "" && d.Error != "":
		return d.Error + ": " + d.Message
	case d.Message != "":
		return d.Message
	case d.Error != "":
		return d.Error
	default:
		return "analyzer reported failure without detail"
	}
}
