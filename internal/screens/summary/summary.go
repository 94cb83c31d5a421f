// Package summary shows the result of a finished quiz.
package summary

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/kanaz/internal/quiz"
	"github.com/abhisek/kanaz/internal/router"
	"github.com/abhisek/kanaz/internal/screen"
	"github.com/abhisek/kanaz/internal/screens"
	"github.com/abhisek/kanaz/internal/ui/components"
	"github.com/abhisek/kanaz/internal/ui/layout"
	"github.com/abhisek/kanaz/internal/ui/theme"
)

// RestartFunc builds the screen that runs a restarted quiz.
type RestartFunc func(*quiz.Session) screen.Screen

// maxMissed caps the missed kana listed on the summary.
const maxMissed = 8

// SummaryScreen displays the result of a quiz.
type SummaryScreen struct {
	env     *screens.Env
	session *quiz.Session
	result  quiz.Result
	restart RestartFunc
	buttons components.ButtonRow
	saveErr error
	errMsg  string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for a finished session. restart may be nil,
// in which case the quiz cannot be retaken from here.
func New(env *screens.Env, s *quiz.Session, restart RestartFunc) *SummaryScreen {
	sc := &SummaryScreen{env: env, session: s, restart: restart}
	res, err := s.Result()
	if err != nil {
		env.Log().Error("quiz result", zap.String("session_id", s.ID()), zap.Error(err))
	}
	sc.result = res

	buttons := []components.Button{}
	if restart != nil {
		buttons = append(buttons, components.NewButton("Try again", true, sc.doRestart))
	}
	buttons = append(buttons, components.NewButton("Home", restart == nil, goHome))
	sc.buttons = components.NewButtonRow(buttons...)
	return sc
}

// Result returns the result being shown.
func (s *SummaryScreen) Result() quiz.Result {
	return s.result
}

func goHome() tea.Cmd {
	return func() tea.Msg { return router.PopToRootMsg{} }
}

func (s *SummaryScreen) doRestart() tea.Cmd {
	if s.restart == nil {
		return nil
	}
	next, err := s.env.Engine.Restart(s.session, s.session.Category())
	if err != nil {
		s.env.Log().Error("restart quiz", zap.Error(err))
		s.errMsg = err.Error()
		return nil
	}
	sc := s.restart(next)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: sc} }
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "←→", Description: "Choose"}}
	if s.restart != nil {
		hints = append(hints, layout.KeyHint{Key: "r", Description: "Try again"})
	}
	return append(hints,
		layout.KeyHint{Key: "h", Description: "Home"},
		layout.KeyHint{Key: "Enter", Description: "Select"},
	)
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screens.QuizSavedMsg:
		if msg.SessionID == s.session.ID() {
			s.saveErr = msg.Err
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return s, s.doRestart()
		case "h", "esc":
			return s, goHome()
		}
	}

	var cmd tea.Cmd
	s.buttons, cmd = s.buttons.Update(msg)
	return s, cmd
}

func tierColor(t quiz.Tier) color.Color {
	switch t {
	case quiz.TierMastery:
		return theme.ArcadeYellow
	case quiz.TierProficient:
		return theme.Success
	case quiz.TierDeveloping:
		return theme.ArcadeCyan
	default:
		return theme.Error
	}
}

func formatDuration(d time.Duration) string {
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// missed returns the distinct kana answered wrongly, in quiz order.
func missed(answers []quiz.Answer) []quiz.Question {
	seen := make(map[string]bool)
	var out []quiz.Question
	for _, a := range answers {
		if a.Correct || seen[a.Question.Glyph] {
			continue
		}
		seen[a.Question.Glyph] = true
		out = append(out, a.Question)
	}
	return out
}

func (s *SummaryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	center := func(st lipgloss.Style) lipgloss.Style { return st.Width(cw).Align(lipgloss.Center) }

	var b strings.Builder
	b.WriteString(components.ArcadeTitle("QUIZ COMPLETE", cw))
	b.WriteString("\n\n")

	if s.result.Total == 0 {
		b.WriteString(center(theme.Body).Render("There was nothing to ask in " + s.session.Category().Label() + "."))
		b.WriteString("\n")
		for _, w := range s.session.Warnings() {
			b.WriteString(center(theme.Hint).Render(w.String()))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(s.renderScore(cw))
	}

	if s.saveErr != nil {
		b.WriteString("\n")
		b.WriteString(center(theme.Incorrect).Render("Could not save this result: " + s.saveErr.Error()))
	}
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(center(theme.Incorrect).Render(s.errMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Center, s.buttons.View()))

	return components.Panel(b.String(), width, height)
}

func (s *SummaryScreen) renderScore(cw int) string {
	center := func(st lipgloss.Style) lipgloss.Style { return st.Width(cw).Align(lipgloss.Center) }
	res := s.result

	var b strings.Builder
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true)).
		Render(fmt.Sprintf("%d / %d", res.Score, res.Total)))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(tierColor(res.Tier)).Bold(true)).
		Render(fmt.Sprintf("%d%%", res.Percentage)))
	b.WriteString("\n\n")
	b.WriteString(center(theme.Body).Render(res.Tier.Message()))
	b.WriteString("\n")
	b.WriteString(center(theme.Hint).Render(fmt.Sprintf("%s · %s · %s",
		s.session.Category().Label(), s.session.Direction(), formatDuration(s.session.Elapsed()))))
	b.WriteString("\n")

	miss := missed(s.session.Answers())
	if len(miss) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(center(theme.Hint).Render("Review these"))
	b.WriteString("\n")
	var cells []string
	for i, q := range miss {
		if i == maxMissed {
			cells = append(cells, theme.Hint.Render(fmt.Sprintf("+%d", len(miss)-maxMissed)))
			break
		}
		cells = append(cells, theme.Incorrect.Render(q.Glyph)+" "+theme.Hint.Render(q.CorrectReading))
	}
	b.WriteString(center(lipgloss.NewStyle()).Render(strings.Join(cells, "   ")))
	b.WriteString("\n")
	return b.String()
}
