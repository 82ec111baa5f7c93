package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/bmdir/internal/picker"
)

// translateKey converts a bubbletea key message into a picker key.
// The code is the bubbletea key name ("up", "enter", "ctrl+c", or the typed
// runes), so picker bindings match the same names bubbles/key uses.
// Only plain rune input and space carry text; alt-modified runes do not.
func translateKey(msg tea.KeyMsg) picker.Key {
	k := picker.Key{Code: msg.String(), Kind: picker.KeyPress}

	switch msg.Type {
	case tea.KeyRunes:
		if !msg.Alt {
			k.Text = string(msg.Runes)
			k.Code = string(msg.Runes)
		}
	case tea.KeySpace:
		if !msg.Alt {
			k.Text = " "
		}
	}

	return k
}
