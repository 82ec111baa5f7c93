package search

import (
	"sort"
	"strings"

	"github.com/nikbrunner/bmdir/internal/model"
	"github.com/sahilm/fuzzy"
)

// Mode selects how a query is matched against bookmark paths.
type Mode int

const (
	// Substring keeps paths containing the query, ignoring case.
	Substring Mode = iota
	// Fuzzy keeps paths containing the query's characters in order.
	Fuzzy
)

// ParseMode maps a config value to a Mode. Unknown values fall back to Substring.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "fuzzy") {
		return Fuzzy
	}
	return Substring
}

// String returns the config name of the mode.
func (m Mode) String() string {
	if m == Fuzzy {
		return "fuzzy"
	}
	return "substring"
}

// bookmarkPaths implements fuzzy.Source for a bookmark list.
type bookmarkPaths struct {
	list *model.BookmarkList
}

func (bp bookmarkPaths) String(i int) string {
	p, _ := bp.list.At(i)
	return p
}

func (bp bookmarkPaths) Len() int {
	return bp.list.Len()
}

// Filter returns the indices of bookmarks matching query, in list order.
// An empty query matches every bookmark. Matches are never reordered by score.
func Filter(list *model.BookmarkList, query string, mode Mode) []int {
	n := list.Len()
	if query == "" {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all
	}

	if mode == Fuzzy {
		matches := fuzzy.FindFrom(query, bookmarkPaths{list: list})
		indices := make([]int, len(matches))
		for i, m := range matches {
			indices[i] = m.Index
		}
		sort.Ints(indices)
		return indices
	}

	needle := strings.ToLower(query)
	indices := []int{}
	for i := 0; i < n; i++ {
		p, _ := list.At(i)
		if strings.Contains(strings.ToLower(p), needle) {
			indices = append(indices, i)
		}
	}
	return indices
}
