package picker

import "github.com/charmbracelet/bubbles/key"

// KeyKind tells key presses from key releases.
type KeyKind int

const (
	KeyPress KeyKind = iota
	KeyRelease
)

// Key is one discrete keyboard event.
type Key struct {
	// Code is the logical key name: "up", "enter", "esc", "backspace",
	// "ctrl+c", or the typed text for character keys.
	Code string
	// Text is the printable text the key produces, empty for control keys.
	Text string
	Kind KeyKind
}

// String implements fmt.Stringer so key.Matches can compare against bindings.
func (k Key) String() string {
	return k.Code
}

// Press returns a press event for a named control key.
func Press(code string) Key {
	return Key{Code: code}
}

// Type returns a press event for typed text.
func Type(text string) Key {
	return Key{Code: text, Text: text}
}

// KeyMap defines the picker's key bindings.
type KeyMap struct {
	// Navigate mode
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
	Search key.Binding
	Yank   key.Binding

	// Filter mode
	FilterUp   key.Binding
	FilterDown key.Binding
	Navigate   key.Binding
	Erase      key.Binding

	// Any mode
	Cancel key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "right", "k"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "left", "j"),
			key.WithHelp("j/↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/", "i"),
			key.WithHelp("/", "search"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy path"),
		),
		FilterUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		FilterDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Navigate: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "navigate"),
		),
		Erase: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "erase"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "cancel"),
		),
	}
}
