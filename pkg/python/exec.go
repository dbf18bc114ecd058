package python

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/yaklabco/codesurf/pkg/config"
)

// ErrAnalyzerUnavailable indicates the external analyzer could not be run.
var ErrAnalyzerUnavailable = errors.New("python analyzer unavailable")

// ScriptAnalyzer runs an analyzer script in an external Python
// interpreter and decodes the digest it prints to stdout.
type ScriptAnalyzer struct {
	// Interpreter is the Python executable (e.g., "python3").
	Interpreter string

	// Script is the path to the analyzer script.
	Script string

	// Timeout bounds a single analyzer invocation.
	Timeout time.Duration
}

// NewScriptAnalyzer builds a ScriptAnalyzer from configuration,
// applying defaults for missing values.
func NewScriptAnalyzer(cfg config.PythonConfig) *ScriptAnalyzer {
	interpreter := cfg.Interpreter
	if interpreter == "" {
		interpreter = "python3"
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = config.DefaultPythonTimeoutSeconds * time.Second
	}
	return &ScriptAnalyzer{
		Interpreter: interpreter,
		Script:      cfg.Script,
		Timeout:     timeout,
	}
}

// Analyze invokes the analyzer script on path and decodes its digest.
func (a *ScriptAnalyzer) Analyze(ctx context.Context, path string) (*Digest, error) {
	if a.Script == "" {
		return nil, fmt.Errorf("%w: no analyzer script configured", ErrAnalyzerUnavailable)
	}

	runCtx := ctx
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, a.Interpreter, a.Script, path)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// The analyzer may still have printed a failure digest before
		// exiting non-zero; prefer that over a bare exec error.
		if digest, decodeErr := DecodeDigest(stdout.Bytes()); decodeErr == nil && !digest.Success {
			return digest, nil
		}
		if runCtx.Err() != nil {
			return nil, fmt.Errorf("%w: timed out after %s", ErrAnalyzerUnavailable, a.Timeout)
		}
		detail := stderr.String()
		if detail == "" {
			detail = err.Error()
		}
		return nil, fmt.Errorf("%w: %s", ErrAnalyzerUnavailable, detail)
	}

	return DecodeDigest(stdout.Bytes())
}
