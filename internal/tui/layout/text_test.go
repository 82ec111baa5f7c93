package layout

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no ANSI", "hello", "hello"},
		{"bold", "\x1b[1mhello\x1b[0m", "hello"},
		{"color", "\x1b[31mred\x1b[0m", "red"},
		{"mixed", "normal \x1b[1;4mbold underline\x1b[0m normal", "normal bold underline normal"},
		{"empty", "", ""},
		{"only ANSI", "\x1b[1m\x1b[0m", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripANSI(tt.input)
			if got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVisibleLength(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain text", "hello", 5},
		{"with ANSI bold", "\x1b[1mhello\x1b[0m", 5},
		{"wide runes", "こんにちは", 10},
		{"mixed ANSI and wide runes", "\x1b[1mこんにちは\x1b[0m", 10},
		{"accented", "café", 4},
		{"empty", "", 0},
		{"only ANSI", "\x1b[1m\x1b[0m", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleLength(tt.input)
			if got != tt.want {
				t.Errorf("VisibleLength(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name      string
		text      string
		maxWidth  int
		want      string
		truncated bool
	}{
		{"no truncation needed", "hello", 10, "hello", false},
		{"exact length", "hello", 5, "hello", false},
		{"needs truncation", "hello world", 8, "hello...", true},
		{"very short max", "hello", 3, "...", true},
		{"max is 2", "hello", 2, "..", true},
		{"max is 1", "hello", 1, ".", true},
		{"max is 0", "hello", 0, "", true},
		{"empty string", "", 10, "", false},
		{"wide text", "こんにちは", 7, "こん...", true},        // 2+2+3 = 7
		{"wide rune does not split", "こんにちは", 6, "こ...", true}, // second rune would need 7
		{"wide rune too big", "こんにちは", 4, "...", true},
		{"wide no truncation", "こんにちは", 10, "こんにちは", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateText(tt.text, tt.maxWidth, cfg)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncateText(%q, %d) = (%q, %v), want (%q, %v)",
					tt.text, tt.maxWidth, got, truncated, tt.want, tt.truncated)
			}
		})
	}
}

func TestTruncatePathFromLeft(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name      string
		path      string
		maxWidth  int
		want      string
		truncated bool
	}{
		{"fits", "/tmp", 10, "/tmp", false},
		{"cuts at separator", "/home/me/projects/bmdir", 12, ".../bmdir", true},
		{"no separator in tail", "/a/verylongname", 8, "...gname", true},
		{"max is 2", "/home/me", 2, "..", true},
		{"max is 0", "/home/me", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncatePathFromLeft(tt.path, tt.maxWidth, cfg)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncatePathFromLeft(%q, %d) = (%q, %v), want (%q, %v)",
					tt.path, tt.maxWidth, got, truncated, tt.want, tt.truncated)
			}
			assert.Assert(t, VisibleLength(got) <= max(tt.maxWidth, 0))
		})
	}
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, PadRight("ab", 4), "ab  ")
	assert.Equal(t, PadRight("こ", 3), "こ ")
	assert.Equal(t, PadRight("abcdef", 3), "abcdef")
	assert.Equal(t, PadRight("", 0), "")
	assert.Equal(t, PadRight("\x1b[1mab\x1b[0m", 4), "\x1b[1mab\x1b[0m  ")
}

func TestClipLines(t *testing.T) {
	cfg := DefaultConfig().Text

	assert.DeepEqual(t, ClipLines("a\nb\nc", 10, 2, cfg), []string{"a", "b"})
	assert.DeepEqual(t, ClipLines("hello world\nok", 8, 5, cfg), []string{"hello...", "ok"})
	assert.Assert(t, ClipLines("", 5, 5, cfg) == nil)
	assert.Assert(t, ClipLines("x", 5, 0, cfg) == nil)
}
