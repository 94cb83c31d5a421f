package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaz/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Hint is drawn dim after the label.
type MenuItem struct {
	Label    string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list. Enter or a digit 1-9 runs an item's Action;
// the cursor skips disabled items.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu puts the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	m.Selected = max(m.step(-1, 1), 0)
	return m
}

// step returns the next enabled index after from in direction dir, or -1.
func (m Menu) step(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	k, ok := pressed(msg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(k, keyUp):
		if i := m.step(m.Selected, -1); i >= 0 {
			m.Selected = i
		}
	case key.Matches(k, keyDown):
		if i := m.step(m.Selected, 1); i >= 0 {
			m.Selected = i
		}
	case key.Matches(k, keySelect):
		return m, m.run(m.Selected)
	default:
		if i, ok := digit(k); ok && i < len(m.Items) && !m.Items[i].Disabled {
			m.Selected = i
			return m, m.run(i)
		}
	}
	return m, nil
}

func (m Menu) run(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	if it := m.Items[i]; it.Action != nil && !it.Disabled {
		return it.Action()
	}
	return nil
}

func (m Menu) View() string {
	normal := lipgloss.NewStyle().Foreground(theme.Text)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	for i, it := range m.Items {
		line := normal.Render("    " + it.Label)
		switch {
		case it.Disabled:
			line = dim.Render("    " + it.Label)
		case i == m.Selected:
			line = theme.Selected.Render("  ▸ " + it.Label)
		}
		b.WriteString(line)
		if it.Hint != "" {
			b.WriteString("  " + theme.Hint.Render(it.Hint))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
