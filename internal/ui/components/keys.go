package components

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// Bindings shared by the list and grid widgets.
var (
	keyUp     = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"))
	keyDown   = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"))
	keyLeft   = key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left"))
	keyRight  = key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right"))
	keyPrev   = key.NewBinding(key.WithKeys("left", "h", "shift+tab"))
	keyNext   = key.NewBinding(key.WithKeys("right", "l", "tab"))
	keySelect = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select"))
)

// pressed returns msg as a key press.
func pressed(msg tea.Msg) (tea.KeyPressMsg, bool) {
	k, ok := msg.(tea.KeyPressMsg)
	return k, ok
}

// digit returns the zero-based index for keys 1-9.
func digit(k tea.KeyPressMsg) (int, bool) {
	s := k.String()
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '1'), true
}
