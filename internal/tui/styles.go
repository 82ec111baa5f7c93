package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Pane         lipgloss.Style
	PaneActive   lipgloss.Style
	Title        lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	Preview      lipgloss.Style
	Unavailable  lipgloss.Style // Placeholder shown when a preview fails
	Empty        lipgloss.Style
	Prompt       lipgloss.Style // Search bar prompt "->"
	Query        lipgloss.Style
	ModeTag      lipgloss.Style // Mode indicator after the query
	Count        lipgloss.Style // "3/12" match counter
	Help         lipgloss.Style
	HintKey      lipgloss.Style // Key portion of hints (e.g., "Enter", "j/k")
	HintDesc     lipgloss.Style // Description portion of hints (e.g., "select", "move")

	MessageInfo    lipgloss.Style
	MessageSuccess lipgloss.Style
	MessageError   lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	// Industrial color palette
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}  // inactive borders
	warning := lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}
	success := lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}
	failure := lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		PaneActive: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Item: lipgloss.NewStyle().
			Foreground(primary),

		ItemSelected: lipgloss.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		Preview: lipgloss.NewStyle().
			Foreground(primary),

		Unavailable: lipgloss.NewStyle().
			Foreground(warning),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		Prompt: lipgloss.NewStyle().
			Foreground(accent),

		Query: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),

		ModeTag: lipgloss.NewStyle().
			Foreground(subtle),

		Count: lipgloss.NewStyle().
			Foreground(subtle),

		Help: lipgloss.NewStyle().
			Foreground(subtle),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		MessageInfo:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		MessageSuccess: lipgloss.NewStyle().Foreground(success).Bold(true),
		MessageError:   lipgloss.NewStyle().Foreground(failure).Bold(true),
	}
}
