package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaz/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. It only tracks the cursor and
// the revealed outcome; deciding correctness is up to the caller.
type MultiChoice struct {
	Options  []string
	Selected int

	revealed bool
	chosen   int
	correct  int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{
		Options: options,
		chosen:  -1,
		correct: -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update moves the cursor. It reports the index of an option the user
// committed to with enter or a digit key, or -1.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, int) {
	if m.revealed {
		return m, -1
	}

	k, ok := pressed(msg)
	if !ok {
		return m, -1
	}

	switch {
	case key.Matches(k, keyUp):
		m.Selected = max(m.Selected-1, 0)
	case key.Matches(k, keyDown):
		m.Selected = min(m.Selected+1, max(len(m.Options)-1, 0))
	case key.Matches(k, keySelect):
		if len(m.Options) > 0 {
			return m, m.Selected
		}
	default:
		if i, ok := digit(k); ok && i < len(m.Options) {
			m.Selected = i
			return m, i
		}
	}

	return m, -1
}

// Reveal freezes the selector and marks the chosen and correct options.
func (m *MultiChoice) Reveal(chosen, correct int) {
	m.revealed = true
	m.chosen = chosen
	m.correct = correct
}

// Revealed reports whether the outcome is shown.
func (m MultiChoice) Revealed() bool {
	return m.revealed
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.revealed {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case m.revealed && i == m.correct:
			style = theme.Correct
			line += "  ✓"
		case m.revealed && i == m.chosen:
			style = theme.Incorrect
			line += "  ✗"
		case m.revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}
