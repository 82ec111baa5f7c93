package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/nikbrunner/bmdir/internal/picker"
)

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "select")
}

// hintFor builds a hint from a binding's help text.
func hintFor(b key.Binding) Hint {
	h := b.Help()
	return Hint{Key: h.Key, Desc: h.Desc}
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "j/k:move Enter:select q:quit"
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, arrows)
	Action []Hint // Action hints (Enter, y)
	System []Hint // System hints (/, Esc, q)
}

// All returns all hints flattened in display order: Nav + Action + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.state.Mode() {
	case picker.ModeNavigate:
		return a.getNavigateModeHints()
	case picker.ModeFilter:
		return a.getFilterModeHints()
	default:
		return HintSet{}
	}
}

// getNavigateModeHints returns hints for ModeNavigate.
func (a App) getNavigateModeHints() HintSet {
	keys := a.state.Keys()
	return HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
		},
		Action: []Hint{
			hintFor(keys.Select),
			hintFor(keys.Yank),
		},
		System: []Hint{
			hintFor(keys.Search),
			hintFor(keys.Quit),
		},
	}
}

// getFilterModeHints returns hints for ModeFilter.
func (a App) getFilterModeHints() HintSet {
	keys := a.state.Keys()
	return HintSet{
		Nav: []Hint{
			{Key: "type", Desc: "filter"},
			{Key: "↑/↓", Desc: "move"},
		},
		Action: []Hint{
			hintFor(keys.Select),
		},
		System: []Hint{
			hintFor(keys.Navigate),
			hintFor(keys.Cancel),
		},
	}
}
