// Package session is the screen that runs one quiz: it asks each
// question, shows feedback, and hands the finished session to the
// summary screen.
package session

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/kanaz/internal/quiz"
	"github.com/abhisek/kanaz/internal/router"
	"github.com/abhisek/kanaz/internal/screen"
	"github.com/abhisek/kanaz/internal/screens"
	"github.com/abhisek/kanaz/internal/screens/summary"
	"github.com/abhisek/kanaz/internal/ui/components"
	"github.com/abhisek/kanaz/internal/ui/layout"
)

// feedbackDelay is how long feedback stays up before moving on by itself.
const feedbackDelay = 2500 * time.Millisecond

// SessionScreen implements screen.Screen for a running quiz.
type SessionScreen struct {
	env     *screens.Env
	session *quiz.Session

	choice components.MultiChoice
	input  components.TextInput
	typing bool

	feedback           *quiz.Feedback
	showingQuitConfirm bool
	autoAdvance        bool
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.BackHandler = (*SessionScreen)(nil)
var _ screen.Disposer = (*SessionScreen)(nil)

// New creates a SessionScreen for a freshly started session.
func New(env *screens.Env, s *quiz.Session) *SessionScreen {
	sc := &SessionScreen{
		env:         env,
		session:     s,
		autoAdvance: true,
	}
	sc.resetQuestion()
	return sc
}

// Session returns the quiz being run.
func (s *SessionScreen) Session() *quiz.Session {
	return s.session
}

func (s *SessionScreen) Init() tea.Cmd {
	if s.session.Phase() == quiz.PhaseFinished {
		return s.finish()
	}
	return nil
}

func (s *SessionScreen) Title() string {
	return s.session.Category().Label() + " Quiz"
}

func (s *SessionScreen) HandlesBack() bool {
	return s.session.Phase() != quiz.PhaseFinished
}

// Dispose releases the pronunciation player when the quiz is left.
func (s *SessionScreen) Dispose() tea.Cmd {
	return s.env.ReleaseCmd()
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.feedback != nil {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
			{Key: "p", Description: "Play"},
		}
	}
	if s.typing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Tab", Description: "Choices"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	hints := []layout.KeyHint{{Key: "1-4", Description: "Answer"}}
	if s.canPlay() {
		hints = append(hints, layout.KeyHint{Key: "p", Description: "Play"})
	}
	if s.canType() {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Type"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case feedbackTimeoutMsg:
		if s.feedback != nil && msg.index == s.session.Index() {
			return s.advance()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.typing && s.feedback == nil {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			s.env.Log().Info("quiz abandoned",
				zap.String("session_id", s.session.ID()),
				zap.Int("answered", len(s.session.Answers())))
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	if s.feedback != nil {
		if key == "p" {
			return s, s.playCurrent()
		}
		return s.advance()
	}

	switch key {
	case "esc":
		s.showingQuitConfirm = true
		return s, nil
	case "tab":
		if s.canType() {
			s.typing = !s.typing
			if s.typing {
				return s, s.input.Init()
			}
		}
		return s, nil
	}

	if s.typing {
		if key == "enter" {
			if s.input.Value() == "" {
				return s, nil
			}
			return s.submit(s.input.Value())
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	if key == "p" {
		if s.canPlay() {
			return s, s.playCurrent()
		}
		return s, nil
	}

	var chosen int
	s.choice, chosen = s.choice.Update(msg)
	if chosen >= 0 {
		return s.submit(s.choice.Options[chosen])
	}
	return s, nil
}

// canType reports whether the current question can be answered by
// typing: only when the options are romaji readings.
func (s *SessionScreen) canType() bool {
	q, ok := s.session.Current()
	return ok && q.Direction == quiz.DirectionGlyphToReading
}

// canPlay reports whether the reading may be heard before answering. When
// the options are readings, hearing it would give the answer away.
func (s *SessionScreen) canPlay() bool {
	q, ok := s.session.Current()
	return ok && q.Direction == quiz.DirectionReadingToGlyph
}

func (s *SessionScreen) submit(answer string) (screen.Screen, tea.Cmd) {
	q, ok := s.session.Current()
	if !ok {
		return s, nil
	}
	fb, err := s.session.SubmitAnswer(answer)
	if err != nil {
		s.env.Log().Warn("submit answer", zap.Error(err))
		return s, nil
	}
	s.feedback = &fb

	opts := q.Options()
	correctIdx, chosenIdx := -1, -1
	for i, o := range opts {
		if o == fb.CorrectOption {
			correctIdx = i
		}
		if o == answer {
			chosenIdx = i
		}
	}
	s.choice.Reveal(chosenIdx, correctIdx)
	if s.typing {
		s.input.Submit(fb.IsCorrect)
	}

	cmds := []tea.Cmd{s.playCurrent()}
	if s.autoAdvance && fb.IsCorrect {
		idx := s.session.Index()
		cmds = append(cmds, tea.Tick(feedbackDelay, func(time.Time) tea.Msg {
			return feedbackTimeoutMsg{index: idx}
		}))
	}
	return s, tea.Batch(cmds...)
}

func (s *SessionScreen) advance() (screen.Screen, tea.Cmd) {
	phase, err := s.session.Advance()
	if err != nil {
		s.env.Log().Warn("advance quiz", zap.Error(err))
		return s, nil
	}
	s.feedback = nil
	if phase == quiz.PhaseFinished {
		return s, s.finish()
	}
	s.resetQuestion()
	if s.typing {
		return s, s.input.Init()
	}
	return s, nil
}

// finish saves the session and swaps this screen for the summary.
func (s *SessionScreen) finish() tea.Cmd {
	env := s.env
	next := summary.New(env, s.session, func(restarted *quiz.Session) screen.Screen {
		return New(env, restarted)
	})
	return tea.Batch(
		s.env.SaveQuizCmd(s.session),
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
	)
}

func (s *SessionScreen) resetQuestion() {
	q, ok := s.session.Current()
	if !ok {
		return
	}
	s.choice = components.NewMultiChoice(q.Options())
	s.input = components.NewTextInput("type the reading…", true, 8)
	if !s.canType() {
		s.typing = false
	}
}

func (s *SessionScreen) playCurrent() tea.Cmd {
	q, ok := s.session.Current()
	if !ok {
		return nil
	}
	return s.env.PlayCmd(q.CorrectReading)
}
