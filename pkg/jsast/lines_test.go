package jsast_test

import (
	"testing"

	"github.com/yaklabco/codesurf/pkg/jsast"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected []jsast.LineInfo
	}{
		{
			name:     "empty content",
			content:  "",
			expected: []jsast.LineInfo{},
		},
		{
			name:    "single line no newline",
			content: "hello",
			expected: []jsast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 5},
			},
		},
		{
			name:    "single line with LF",
			content: "hello\n",
			expected: []jsast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 6},
				{StartOffset: 6, NewlineStart: 6, EndOffset: 6},
			},
		},
		{
			name:    "single line with CRLF",
			content: "hello\r\n",
			expected: []jsast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 7},
				{StartOffset: 7, NewlineStart: 7, EndOffset: 7},
			},
		},
		{
			name:    "multiple lines LF",
			content: "line1\nline2\nline3",
			expected: []jsast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 6},
				{StartOffset: 6, NewlineStart: 11, EndOffset: 12},
				{StartOffset: 12, NewlineStart: 17, EndOffset: 17},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lines := jsast.BuildLines([]byte(tt.content))

			if len(lines) != len(tt.expected) {
				t.Fatalf("expected %d lines, got %d", len(tt.expected), len(lines))
			}

			for i, expected := range tt.expected {
				if lines[i] != expected {
					t.Errorf("line %d: expected %+v, got %+v", i, expected, lines[i])
				}
			}
		})
	}
}

func TestLineAt(t *testing.T) {
	t.Parallel()

	snap := jsast.NewFileSnapshot("test.js", []byte("abc\ndef\nghi"))

	tests := []struct {
		name     string
		offset   int
		wantLine int
		wantCol  int
	}{
		{name: "start of file", offset: 0, wantLine: 0, wantCol: 0},
		{name: "middle of first line", offset: 1, wantLine: 0, wantCol: 1},
		{name: "newline belongs to first line", offset: 3, wantLine: 0, wantCol: 3},
		{name: "start of second line", offset: 4, wantLine: 1, wantCol: 0},
		{name: "start of third line", offset: 8, wantLine: 2, wantCol: 0},
		{name: "last byte", offset: 10, wantLine: 2, wantCol: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			line, col := snap.LineAt(tt.offset)
			if line != tt.wantLine || col != tt.wantCol {
				t.Errorf("LineAt(%d) = (%d, %d), want (%d, %d)",
					tt.offset, line, col, tt.wantLine, tt.wantCol)
			}
		})
	}
}

func TestOffsetRoundTrip(t *testing.T) {
	t.Parallel()

	snap := jsast.NewFileSnapshot("test.js", []byte("abc\ndef\n"))

	for offset := 0; offset < len(snap.Content); offset++ {
		line, col := snap.LineAt(offset)
		back, ok := snap.Offset(line, col)
		if !ok {
			t.Fatalf("Offset(%d, %d) reported out of range", line, col)
		}
		if back != offset {
			t.Errorf("round trip of offset %d gave %d", offset, back)
		}
	}
}

func TestLineContent(t *testing.T) {
	t.Parallel()

	snap := jsast.NewFileSnapshot("test.js", []byte("first\r\nsecond\nthird"))

	if got := string(snap.LineContent(0)); got != "first" {
		t.Errorf("line 0: got %q", got)
	}
	if got := string(snap.LineContent(1)); got != "second" {
		t.Errorf("line 1: got %q", got)
	}
	if got := string(snap.LineContent(2)); got != "third" {
		t.Errorf("line 2: got %q", got)
	}
	if snap.LineContent(3) != nil {
		t.Error("out of range line should return nil")
	}
	if snap.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", snap.LineCount())
	}
}
