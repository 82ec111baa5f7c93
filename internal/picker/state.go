// Package picker holds the selection state machine behind the bookmark picker.
//
// State is mutated only through Apply, one key at a time, so it can be driven
// from tests without a terminal.
package picker

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/nikbrunner/bmdir/internal/model"
	"github.com/nikbrunner/bmdir/internal/preview"
	"github.com/nikbrunner/bmdir/internal/search"
)

// ErrNoBookmarks is returned by New for an empty bookmark list.
var ErrNoBookmarks = model.ErrNoBookmarks

// Mode is the current input mode.
type Mode int

const (
	// ModeFilter sends typed characters to the search query.
	ModeFilter Mode = iota
	// ModeNavigate binds letters to movement and quitting.
	ModeNavigate
)

func (m Mode) String() string {
	if m == ModeNavigate {
		return "NAVIGATE"
	}
	return "FILTER"
}

// Effect tells the caller what to do after a transition.
type Effect int

const (
	EffectNone   Effect = iota
	EffectSelect        // loop ends, Result holds the chosen path
	EffectCancel        // loop ends with no selection
	EffectYank          // copy the current path
)

// Previewer produces the preview for a bookmarked path.
type Previewer interface {
	Preview(path string) preview.Result
}

// Options configures a new State.
type Options struct {
	Keys      *KeyMap // optional, uses default if nil
	Previewer Previewer
	Match     search.Mode
}

// State is the picker's selection state.
type State struct {
	list      *model.BookmarkList
	keys      KeyMap
	previewer Previewer
	match     search.Mode

	mode    Mode
	query   string
	visible []int // indices into list matching query
	index   int   // position in visible

	preview      preview.Result
	previewIndex int // list index the preview belongs to, -1 = none

	done     bool
	selected string
	chosen   bool
}

// New creates a State in filter mode with the first bookmark selected and
// its preview loaded. It returns ErrNoBookmarks for an empty list.
func New(list *model.BookmarkList, opts Options) (*State, error) {
	if list.IsEmpty() {
		return nil, ErrNoBookmarks
	}

	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}

	s := &State{
		list:         list,
		keys:         keys,
		previewer:    opts.Previewer,
		match:        opts.Match,
		mode:         ModeFilter,
		previewIndex: -1,
	}
	s.visible = search.Filter(list, "", s.match)
	s.refreshPreview()
	return s, nil
}

// Apply runs one transition for k and reports what the caller should do.
// Release events and keys arriving after the picker finished are ignored.
func (s *State) Apply(k Key) Effect {
	if k.Kind == KeyRelease || s.done {
		return EffectNone
	}

	if key.Matches(k, s.keys.Cancel) {
		s.finish("", false)
		return EffectCancel
	}

	if s.mode == ModeNavigate {
		return s.applyNavigate(k)
	}
	return s.applyFilter(k)
}

func (s *State) applyNavigate(k Key) Effect {
	switch {
	case key.Matches(k, s.keys.Quit):
		s.finish("", false)
		return EffectCancel

	case key.Matches(k, s.keys.Up):
		s.move(-1)

	case key.Matches(k, s.keys.Down):
		s.move(1)

	case key.Matches(k, s.keys.Select):
		return s.selectCurrent()

	case key.Matches(k, s.keys.Search):
		s.mode = ModeFilter

	case key.Matches(k, s.keys.Yank):
		if _, ok := s.Current(); ok {
			return EffectYank
		}
	}
	return EffectNone
}

func (s *State) applyFilter(k Key) Effect {
	// Typed text always goes to the query, even if it spells a binding name
	if text := printable(k.Text); text != "" {
		s.query += text
		s.refilter()
		return EffectNone
	}

	switch {
	case key.Matches(k, s.keys.Navigate):
		s.mode = ModeNavigate

	case key.Matches(k, s.keys.Select):
		return s.selectCurrent()

	case key.Matches(k, s.keys.FilterUp):
		s.move(-1)

	case key.Matches(k, s.keys.FilterDown):
		s.move(1)

	case key.Matches(k, s.keys.Erase):
		if s.query != "" {
			runes := []rune(s.query)
			s.query = string(runes[:len(runes)-1])
			s.refilter()
		}
	}
	return EffectNone
}

// move shifts the selection by delta, wrapping around the visible matches.
func (s *State) move(delta int) {
	n := len(s.visible)
	if n == 0 {
		return
	}
	s.index = wrap(s.index+delta, n)
	s.refreshPreview()
}

// wrap returns i modulo n, always in [0, n).
func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// refilter recomputes the visible matches for the current query. The
// selection stays on the same bookmark if it still matches, otherwise it
// moves to the first match.
func (s *State) refilter() {
	prev := s.currentListIndex()
	s.visible = search.Filter(s.list, s.query, s.match)
	s.index = 0
	for pos, li := range s.visible {
		if li == prev {
			s.index = pos
			break
		}
	}
	s.refreshPreview()
}

// refreshPreview loads the preview if the selected bookmark changed.
func (s *State) refreshPreview() {
	li := s.currentListIndex()
	if li == s.previewIndex {
		return
	}
	s.previewIndex = li
	if li < 0 {
		s.preview = preview.Result{}
		return
	}

	path, _ := s.list.At(li)
	if s.previewer == nil {
		s.preview = preview.Result{Path: path}
		return
	}
	s.preview = s.previewer.Preview(path)
}

func (s *State) selectCurrent() Effect {
	path, ok := s.Current()
	if !ok {
		return EffectNone
	}
	s.finish(path, true)
	return EffectSelect
}

func (s *State) finish(path string, chosen bool) {
	s.done = true
	s.selected = path
	s.chosen = chosen
}

func (s *State) currentListIndex() int {
	if s.index < 0 || s.index >= len(s.visible) {
		return -1
	}
	return s.visible[s.index]
}

// printable strips control characters from typed text.
func printable(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, text)
}

// Mode returns the current input mode.
func (s *State) Mode() Mode {
	return s.mode
}

// Query returns the accumulated search text.
func (s *State) Query() string {
	return s.query
}

// Index returns the selected position within the visible matches.
func (s *State) Index() int {
	return s.index
}

// Visible returns the list indices of the bookmarks matching the query.
func (s *State) Visible() []int {
	out := make([]int, len(s.visible))
	copy(out, s.visible)
	return out
}

// List returns the full bookmark list.
func (s *State) List() *model.BookmarkList {
	return s.list
}

// Current returns the selected bookmark, or false if nothing matches the query.
func (s *State) Current() (string, bool) {
	return s.list.At(s.currentListIndex())
}

// Preview returns the cached preview for the selected bookmark.
func (s *State) Preview() preview.Result {
	return s.preview
}

// Keys returns the active key bindings.
func (s *State) Keys() KeyMap {
	return s.keys
}

// Done returns true once a terminating key was applied.
func (s *State) Done() bool {
	return s.done
}

// Result returns the chosen path, or false if the picker was cancelled or is
// still running.
func (s *State) Result() (string, bool) {
	if !s.done || !s.chosen {
		return "", false
	}
	return s.selected, true
}
