package model

import "errors"

// ErrNoBookmarks is returned when an empty bookmark list is used where at
// least one bookmark is required.
var ErrNoBookmarks = errors.New("no bookmarks")

// BookmarkList is an ordered, immutable list of bookmarked paths.
type BookmarkList struct {
	paths []string
}

// NewBookmarkList creates a BookmarkList from paths, dropping empty entries.
// Order is preserved and duplicates are kept.
func NewBookmarkList(paths []string) *BookmarkList {
	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		kept = append(kept, p)
	}
	return &BookmarkList{paths: kept}
}

// Len returns the number of bookmarks. A nil list is empty.
func (l *BookmarkList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.paths)
}

// IsEmpty returns true if the list holds no bookmarks.
func (l *BookmarkList) IsEmpty() bool {
	return l.Len() == 0
}

// At returns the bookmark at index i, or false if i is out of range.
func (l *BookmarkList) At(i int) (string, bool) {
	if i < 0 || i >= l.Len() {
		return "", false
	}
	return l.paths[i], true
}

// Paths returns a copy of all bookmarks in order.
func (l *BookmarkList) Paths() []string {
	out := make([]string, l.Len())
	if l != nil {
		copy(out, l.paths)
	}
	return out
}

// Append returns a new list with path added at the end.
func (l *BookmarkList) Append(path string) *BookmarkList {
	return NewBookmarkList(append(l.Paths(), path))
}

// Contains returns true if path is bookmarked.
func (l *BookmarkList) Contains(path string) bool {
	for i := 0; i < l.Len(); i++ {
		if l.paths[i] == path {
			return true
		}
	}
	return false
}

// Without returns a new list with every occurrence of the given paths removed.
func (l *BookmarkList) Without(paths ...string) *BookmarkList {
	drop := make(map[string]bool, len(paths))
	for _, p := range paths {
		drop[p] = true
	}

	kept := make([]string, 0, l.Len())
	for _, p := range l.Paths() {
		if !drop[p] {
			kept = append(kept, p)
		}
	}
	return NewBookmarkList(kept)
}
