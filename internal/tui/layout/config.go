package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Pane PaneConfig
	Text TextConfig
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + search bar (1) + pane borders (2) + help bar (2) = 6
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// WidthOffset is subtracted from the terminal width before splitting.
	// Accounts for app padding and the borders of both panes.
	WidthOffset int

	// ListWidthPercent is the share of the width given to the bookmark list.
	ListWidthPercent int

	// MinListWidth is the minimum width of the bookmark list pane.
	MinListWidth int

	// MinPreviewWidth is the minimum width of the preview pane.
	MinPreviewWidth int

	// ContentPadding is subtracted from pane width for item rendering.
	// Accounts for pane padding on each side.
	ContentPadding int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction:  6, // app padding (1) + search bar (1) + pane borders (2) + help bar (2)
			MinHeight:        3,
			WidthOffset:      8,
			ListWidthPercent: 40,
			MinListWidth:     20,
			MinPreviewWidth:  20,
			ContentPadding:   2,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
