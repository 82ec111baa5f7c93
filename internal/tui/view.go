package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/bmdir/internal/picker"
	"github.com/nikbrunner/bmdir/internal/preview"
	"github.com/nikbrunner/bmdir/internal/tui/layout"
)

// View implements tea.Model.
// It only reads the cached state; previews are loaded by picker.State.
func (a App) View() string {
	// Leave nothing behind once the picker has finished
	if a.state.Done() {
		return ""
	}

	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)
	split := layout.CalculateSplit(a.width, a.layoutConfig.Pane)

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.renderListPane(split.ListWidth, paneHeight),
		a.renderPreviewPane(split.PreviewWidth, paneHeight),
	)

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, a.renderSearchBar(), columns, a.renderHelpBar()),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderSearchBar renders the query line: "-> query▏  FILTER  2/5".
func (a App) renderSearchBar() string {
	var b strings.Builder

	b.WriteString(a.styles.Prompt.Render("->") + " ")
	b.WriteString(a.styles.Query.Render(a.state.Query()))
	if a.state.Mode() == picker.ModeFilter {
		b.WriteString("▏")
	}

	b.WriteString("  " + a.styles.ModeTag.Render(a.state.Mode().String()))

	count := fmt.Sprintf("%d/%d", len(a.state.Visible()), a.state.List().Len())
	b.WriteString("  " + a.styles.Count.Render(count))

	return b.String()
}

// renderListPane renders the bookmark list with the selection highlighted.
func (a App) renderListPane(width, height int) string {
	var content strings.Builder

	visibleHeight := layout.CalculateVisibleHeight(height, 0)
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	items := a.Items()
	if len(items) == 0 {
		content.WriteString(a.styles.Empty.Render("(no matches)"))
	} else {
		cursor := a.state.Index()

		// Calculate viewport offset to keep cursor visible
		offset := layout.CalculateViewportOffset(cursor, len(items), visibleHeight)

		for i, item := range items {
			// Skip items before viewport
			if i < offset {
				continue
			}
			// Stop after viewport is filled
			if i >= offset+visibleHeight {
				break
			}
			content.WriteString(a.renderItem(item, i == cursor, itemWidth) + "\n")
		}
	}

	return a.styles.PaneActive.
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

// renderItem renders one bookmark row. Long paths keep their last elements.
func (a App) renderItem(item Item, isCursor bool, maxWidth int) string {
	line, _ := layout.TruncatePathFromLeft(item.Path, maxWidth, a.layoutConfig.Text)

	if isCursor {
		// Pad to fill width for highlight
		return a.styles.ItemSelected.Render(layout.PadRight(line, maxWidth))
	}
	return a.styles.Item.Render(line)
}

// renderPreviewPane renders the cached preview of the selected bookmark.
func (a App) renderPreviewPane(width, height int) string {
	var content strings.Builder

	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	path, ok := a.state.Current()
	if !ok {
		content.WriteString(a.styles.Empty.Render("(nothing selected)"))
		return a.styles.Pane.
			Width(width).
			Height(height).
			Render(content.String())
	}

	// Header: path + blank line
	title, _ := layout.TruncatePathFromLeft(path, itemWidth, a.layoutConfig.Text)
	content.WriteString(a.styles.Title.Render(title) + "\n\n")
	visibleHeight := layout.CalculateVisibleHeight(height, 2)

	pv := a.state.Preview()
	switch {
	case !pv.OK():
		content.WriteString(a.styles.Unavailable.Render(preview.UnavailableText))
	case pv.Text == "":
		content.WriteString(a.styles.Empty.Render("(empty)"))
	default:
		lines := layout.ClipLines(pv.Text, itemWidth, visibleHeight, a.layoutConfig.Text)
		for _, line := range lines {
			content.WriteString(a.styles.Preview.Render(line) + "\n")
		}
	}

	return a.styles.Pane.
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

// renderHelpBar renders the status message line and the contextual hints.
func (a App) renderHelpBar() string {
	var lines []string

	// Line 1: Empty spacer OR message (message replaces the gap)
	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	// Line 2: keyboard hints for the current mode
	lines = append(lines, a.styles.Help.Render(a.renderHints(a.getContextualHints())))

	return strings.Join(lines, "\n")
}

// renderMessageLine renders the status message with an icon for its type.
func (a App) renderMessageLine() string {
	switch a.messageType {
	case MessageError:
		return a.styles.MessageError.Render("✗ " + a.messageText)
	case MessageSuccess:
		return a.styles.MessageSuccess.Render("✓ " + a.messageText)
	default:
		return a.styles.MessageInfo.Render(a.messageText)
	}
}
