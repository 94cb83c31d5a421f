// Package about shows what Kanaz is and how to drive it.
package about

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaz/internal/router"
	"github.com/abhisek/kanaz/internal/screen"
	"github.com/abhisek/kanaz/internal/ui/components"
	"github.com/abhisek/kanaz/internal/ui/layout"
	"github.com/abhisek/kanaz/internal/ui/theme"
)

var keys = [][2]string{
	{"1-4", "answer a question"},
	{"Tab", "type the reading instead of choosing"},
	{"p", "play the pronunciation"},
	{"m", "memory hint on a kana card"},
	{"t", "switch between light and dark"},
	{"Esc", "go back"},
}

// AboutScreen is a static information page.
type AboutScreen struct {
	version string
}

var _ screen.Screen = (*AboutScreen)(nil)

// New creates an AboutScreen showing version.
func New(version string) *AboutScreen {
	return &AboutScreen{version: version}
}

func (a *AboutScreen) Init() tea.Cmd { return nil }

func (a *AboutScreen) Title() string { return "About" }

func (a *AboutScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (a *AboutScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "q":
			return a, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return a, nil
}

func (a *AboutScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(components.ArcadeTitle("KANAZ "+a.version, cw))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(cw).Render(
		"Kanaz teaches the two Japanese syllabaries, hiragana and katakana. " +
			"Browse the charts, listen to each kana, then test yourself with " +
			"ten-question quizzes. Every finished quiz is kept so you can see " +
			"which kana still trip you up."))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Width(6)
	for _, k := range keys {
		b.WriteString(keyStyle.Render(k[0]) + theme.Body.Render(k[1]) + "\n")
	}

	return components.Panel(b.String(), width, height)
}
