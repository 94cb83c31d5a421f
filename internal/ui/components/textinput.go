package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaz/internal/ui/theme"
)

// TextInput is a focused single-line input for typed answers. Once
// Submit is called it ignores input and shows a ✓ or ✗ after the text.
type TextInput struct {
	Model textinput.Model

	// Accept filters typed and pasted runes. Nil accepts everything.
	Accept func(rune) bool

	result *bool
}

// NewTextInput returns a focused input holding at most limit runes. With
// romaji set only ASCII letters, apostrophes and hyphens can be typed.
func NewTextInput(placeholder string, romaji bool, limit int) TextInput {
	m := textinput.New()
	m.Placeholder = placeholder
	m.CharLimit = max(limit, 0)
	m.Focus()

	t := TextInput{Model: m}
	if romaji {
		t.Accept = isRomaji
	}
	return t
}

func isRomaji(r rune) bool {
	return r == '\'' || r == '-' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.result != nil {
		return t, nil
	}
	if t.Accept != nil {
		switch m := msg.(type) {
		case tea.KeyPressMsg:
			if r := []rune(m.Text); len(r) == 1 && !t.Accept(r[0]) {
				return t, nil
			}
		case tea.PasteMsg:
			m.Content = strings.Map(func(r rune) rune {
				if t.Accept(r) {
					return r
				}
				return -1
			}, m.Content)
			msg = m
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	v := t.Model.View()
	switch {
	case t.result == nil:
		return v
	case *t.result:
		return v + " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	default:
		return v + " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
}

// Value is the input with surrounding spaces trimmed.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// Submit freezes the input and records whether the answer was right.
func (t *TextInput) Submit(correct bool) {
	t.result = &correct
}

// Submitted reports whether Submit was called.
func (t TextInput) Submitted() bool {
	return t.result != nil
}
