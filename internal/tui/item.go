package tui

// Item is one row of the bookmark list pane.
type Item struct {
	Index int    // position in the bookmark list
	Path  string // bookmarked path
}

// Items returns the bookmarks matching the current query, in list order.
func (a App) Items() []Item {
	list := a.state.List()
	visible := a.state.Visible()

	items := make([]Item, 0, len(visible))
	for _, i := range visible {
		path, ok := list.At(i)
		if !ok {
			continue
		}
		items = append(items, Item{Index: i, Path: path})
	}
	return items
}
