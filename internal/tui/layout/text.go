package layout

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// VisibleLength returns the number of terminal cells a string occupies,
// excluding ANSI codes. Wide runes count as two cells.
func VisibleLength(s string) int {
	return runewidth.StringWidth(StripANSI(s))
}

// TruncateText truncates text to maxWidth cells with ellipsis.
// Handles edge cases where text is shorter than maxWidth or maxWidth is very small.
// Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	if runewidth.StringWidth(text) <= maxWidth {
		return text, false
	}

	ellipsisWidth := runewidth.StringWidth(cfg.Ellipsis)

	// Need space for ellipsis
	if maxWidth <= ellipsisWidth {
		// Not enough room for any text + ellipsis, just return truncated ellipsis
		return takeLeft(cfg.Ellipsis, maxWidth), true
	}

	return takeLeft(text, maxWidth-ellipsisWidth) + cfg.Ellipsis, true
}

// TruncatePathFromLeft truncates a path to maxWidth cells, keeping its end.
// Example: TruncatePathFromLeft("/home/me/projects/bmdir", 12, cfg) -> ".../bmdir"
// Returns the truncated text and whether truncation occurred.
func TruncatePathFromLeft(path string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	if runewidth.StringWidth(path) <= maxWidth {
		return path, false
	}

	ellipsisWidth := runewidth.StringWidth(cfg.Ellipsis)
	if maxWidth <= ellipsisWidth {
		return takeLeft(cfg.Ellipsis, maxWidth), true
	}

	tail := takeRight(path, maxWidth-ellipsisWidth)

	// Prefer cutting at a separator so the tail starts with a whole element
	if i := strings.IndexByte(tail, '/'); i > 0 {
		tail = tail[i:]
	}

	return cfg.Ellipsis + tail, true
}

// PadRight pads text with spaces to exactly width visible cells. ANSI codes
// take no space. Longer text is returned unchanged.
func PadRight(text string, width int) string {
	gap := width - VisibleLength(text)
	if gap <= 0 {
		return text
	}
	return text + strings.Repeat(" ", gap)
}

// ClipLines splits text into lines and fits it into a width by height box.
// Lines beyond height are dropped and long lines are truncated with ellipsis.
func ClipLines(text string, width, height int, cfg TextConfig) []string {
	if height <= 0 || text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		out[i], _ = TruncateText(line, width, cfg)
	}
	return out
}

// takeLeft returns the longest prefix of s that fits in width cells.
func takeLeft(s string, width int) string {
	used := 0
	for i, r := range s {
		w := runewidth.RuneWidth(r)
		if used+w > width {
			return s[:i]
		}
		used += w
	}
	return s
}

// takeRight returns the longest suffix of s that fits in width cells.
func takeRight(s string, width int) string {
	runes := []rune(s)
	used := 0
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > width {
			break
		}
		used += w
		start--
	}
	return string(runes[start:])
}
