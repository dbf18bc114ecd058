package python_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/codesurf/pkg/python"
)

func TestDecodeDigestSuccess(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"success": true,
		"issues": [
			{"type": "code-smell", "severity": "warning", "message": "function too long", "line": 12, "rule": "py-long-function"},
			{"type": "potential-issue", "severity": "error", "message": "bare except", "line": 40, "rule": "py-bare-except"}
		]
	}`)

	digest, err := python.DecodeDigest(raw)
	require.NoError(t, err)

	assert.True(t, digest.Success)
	require.Len(t, digest.Issues, 2)
	assert.Equal(t, "py-long-function", digest.Issues[0].Rule)
	assert.Equal(t, 12, digest.Issues[0].Line)
	assert.Equal(t, "error", digest.Issues[1].Severity)
}

func TestDecodeDigestFailure(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"success": false, "error": "syntax_error", "message": "invalid syntax at line 3"}`)

	digest, err := python.DecodeDigest(raw)
	require.NoError(t, err)

	assert.False(t, digest.Success)
	assert.Empty(t, digest.Issues)
	assert.Equal(t, "syntax_error: invalid syntax at line 3", digest.FailureMessage())
}

func TestDecodeDigestMalformed(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "not json", `{"success": "maybe"}`} {
		_, err := python.DecodeDigest([]byte(raw))
		assert.ErrorIs(t, err, python.ErrMalformedDigest, "input: %q", raw)
	}
}

func TestFailureMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		digest python.Digest
		want   string
	}{
		{
			name:   "error and message",
			digest: python.Digest{Error: "timeout", Message: "exceeded 30s"},
			want:   "timeout: exceeded 30s",
		},
		{
			name:   "message only",
			digest: python.Digest{Message: "something broke"},
			want:   "something broke",
		},
		{
			name:   "error only",
			digest: python.Digest{Error: "crash"},
			want:   "crash",
		},
		{
			name:   "empty",
			digest: python.Digest{},
			want:   "analyzer reported failure without detail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.digest.FailureMessage())
		})
	}
}
