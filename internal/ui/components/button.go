package components

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaz/internal/ui/theme"
)

// Button runs OnPress on enter while Active.
type Button struct {
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{Label: label, Active: active, OnPress: onPress}
}

func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	k, ok := pressed(msg)
	if !ok || !b.Active || b.OnPress == nil || !key.Matches(k, keySelect) {
		return b, nil
	}
	return b, b.OnPress()
}

func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}

// ButtonRow lays buttons out side by side with exactly one focused.
// Left, right and tab move the focus, wrapping at either end.
type ButtonRow struct {
	Buttons []Button
	Focus   int
}

// NewButtonRow focuses the first button.
func NewButtonRow(buttons ...Button) ButtonRow {
	r := ButtonRow{Buttons: buttons}
	r.focus(0)
	return r
}

func (r *ButtonRow) focus(i int) {
	n := len(r.Buttons)
	if n == 0 {
		return
	}
	r.Focus = ((i % n) + n) % n
	for j := range r.Buttons {
		r.Buttons[j].Active = j == r.Focus
	}
}

func (r ButtonRow) Update(msg tea.Msg) (ButtonRow, tea.Cmd) {
	k, ok := pressed(msg)
	if !ok || len(r.Buttons) == 0 {
		return r, nil
	}
	switch {
	case key.Matches(k, keyPrev):
		r.focus(r.Focus - 1)
	case key.Matches(k, keyNext):
		r.focus(r.Focus + 1)
	default:
		var cmd tea.Cmd
		r.Buttons[r.Focus], cmd = r.Buttons[r.Focus].Update(msg)
		return r, cmd
	}
	return r, nil
}

func (r ButtonRow) View() string {
	views := make([]string, len(r.Buttons))
	for i, b := range r.Buttons {
		views[i] = b.View()
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, joinWith("   ", views)...)
}

func joinWith(sep string, parts []string) []string {
	if len(parts) < 2 {
		return parts
	}
	out := make([]string, 0, 2*len(parts)-1)
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return out
}
