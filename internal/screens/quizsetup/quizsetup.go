// Package quizsetup lets the learner pick a quiz category and direction.
package quizsetup

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/kanaz/internal/kana"
	"github.com/abhisek/kanaz/internal/quiz"
	"github.com/abhisek/kanaz/internal/router"
	"github.com/abhisek/kanaz/internal/screen"
	"github.com/abhisek/kanaz/internal/screens"
	"github.com/abhisek/kanaz/internal/screens/session"
	"github.com/abhisek/kanaz/internal/store"
	"github.com/abhisek/kanaz/internal/ui/components"
	"github.com/abhisek/kanaz/internal/ui/layout"
	"github.com/abhisek/kanaz/internal/ui/theme"
)

var directions = []quiz.Direction{
	quiz.DirectionGlyphToReading,
	quiz.DirectionReadingToGlyph,
	quiz.DirectionMixed,
}

// DirectionLabel is the display name of a direction.
func DirectionLabel(d quiz.Direction) string {
	switch d {
	case quiz.DirectionReadingToGlyph:
		return "Reading → Kana"
	case quiz.DirectionMixed:
		return "Mixed"
	}
	return "Kana → Reading"
}

// SetupScreen picks the category and direction of the next quiz.
type SetupScreen struct {
	env       *screens.Env
	menu      components.Menu
	direction quiz.Direction
	errMsg    string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a SetupScreen.
func New(env *screens.Env) *SetupScreen {
	s := &SetupScreen{env: env, direction: env.Direction}

	items := make([]components.MenuItem, 0, len(kana.AllCategories))
	for _, id := range kana.AllCategories {
		n := len(env.Catalog.Entries(id))
		items = append(items, components.MenuItem{
			Label:    id.Label(),
			Hint:     fmt.Sprintf("%d entries", n),
			Disabled: n == 0,
			Action:   func() tea.Cmd { return s.start(id) },
		})
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *SetupScreen) start(id kana.CategoryID) tea.Cmd {
	sess, err := s.env.Engine.StartSessionWith(id, s.direction)
	if err != nil {
		s.env.Log().Error("start quiz", zap.String("category", string(id)), zap.Error(err))
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""
	next := session.New(s.env, sess)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *SetupScreen) Init() tea.Cmd { return nil }

func (s *SetupScreen) Title() string { return "New Quiz" }

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Category"},
		{Key: "←→", Description: "Direction"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

// Direction returns the selected direction.
func (s *SetupScreen) Direction() quiz.Direction {
	return s.direction
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "left", "h":
			s.cycleDirection(-1)
			return s, nil
		case "right", "l", "d":
			s.cycleDirection(1)
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SetupScreen) cycleDirection(step int) {
	idx := 0
	for i, d := range directions {
		if d == s.direction {
			idx = i
		}
	}
	idx = (idx + step + len(directions)) % len(directions)
	s.direction = directions[idx]
	s.env.Direction = s.direction
	s.env.SetPreference(store.PrefDirection, s.direction.String())
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(components.ArcadeTitle("CHOOSE A QUIZ", cw))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())
	b.WriteString("\n")

	dir := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).
		Render("◂ " + DirectionLabel(s.direction) + " ▸")
	b.WriteString(theme.Hint.Render("Direction  ") + dir)

	if s.errMsg != "" {
		b.WriteString("\n\n" + theme.Incorrect.Render(s.errMsg))
	}

	return components.Panel(b.String(), width, height)
}
