package summary

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kanaz/internal/kana"
	"github.com/abhisek/kanaz/internal/quiz"
	"github.com/abhisek/kanaz/internal/router"
	"github.com/abhisek/kanaz/internal/screen"
	"github.com/abhisek/kanaz/internal/screens"
)

type restartedScreen struct {
	screen.Screen
	session *quiz.Session
}

func testEnv() *screens.Env {
	cat := kana.Default()
	return &screens.Env{
		Catalog: cat,
		Engine: quiz.NewEngine(cat,
			quiz.WithRand(rand.New(rand.NewPCG(7, 8))),
			quiz.WithQuestionCount(4),
			quiz.WithDirection(quiz.DirectionReadingToGlyph),
		),
	}
}

// finishedSession answers the first question wrongly and the rest
// correctly.
func finishedSession(t *testing.T, env *screens.Env) *quiz.Session {
	t.Helper()
	s, err := env.Engine.StartSession(kana.Katakana)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	for i := 0; s.Phase() != quiz.PhaseFinished; i++ {
		q, _ := s.Current()
		answer := q.Answer()
		if i == 0 {
			for _, o := range q.Options() {
				if o != answer {
					answer = o
					break
				}
			}
		}
		if _, err := s.SubmitAnswer(answer); err != nil {
			t.Fatalf("submit: %v", err)
		}
		if _, err := s.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	return s
}

func restartInto(s *quiz.Session) screen.Screen {
	return restartedScreen{session: s}
}

func TestSummaryShowsResult(t *testing.T) {
	env := testEnv()
	sess := finishedSession(t, env)
	s := New(env, sess, restartInto)

	res := s.Result()
	if res.Score != 3 || res.Total != 4 || res.Percentage != 75 {
		t.Fatalf("unexpected result %+v", res)
	}

	view := s.View(80, 40)
	for _, want := range []string{"3 / 4", "75%", res.Tier.Message(), "Review these"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	first := sess.Answers()[0].Question
	if !strings.Contains(view, first.Glyph) {
		t.Errorf("missed kana %s not listed", first.Glyph)
	}
}

func TestSummaryHome(t *testing.T) {
	env := testEnv()
	s := New(env, finishedSession(t, env), restartInto)

	for _, msg := range []tea.Msg{
		tea.KeyPressMsg{Code: 'h', Text: "h"},
		tea.KeyPressMsg{Code: tea.KeyEscape},
	} {
		_, cmd := s.Update(msg)
		if cmd == nil {
			t.Fatal("expected a command")
		}
		if _, ok := cmd().(router.PopToRootMsg); !ok {
			t.Fatal("expected PopToRootMsg")
		}
	}
}

func TestSummaryRestartKeepsCategoryAndDirection(t *testing.T) {
	env := testEnv()
	prev := finishedSession(t, env)
	s := New(env, prev, restartInto)

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a command on r")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	next := msg.Screen.(restartedScreen).session
	if next.ID() == prev.ID() {
		t.Fatal("restart must start a new session")
	}
	if next.Category() != kana.Katakana || next.Direction() != quiz.DirectionReadingToGlyph {
		t.Fatalf("restart changed the quiz: %s %s", next.Category(), next.Direction())
	}
	if next.Phase() != quiz.PhaseAwaitingAnswer || next.Score() != 0 {
		t.Fatal("restarted session must be fresh")
	}
}

func TestSummaryEnterPressesFocusedButton(t *testing.T) {
	env := testEnv()
	s := New(env, finishedSession(t, env), restartInto)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatal("try again is focused first")
	}
}

func TestSummaryWithoutRestart(t *testing.T) {
	env := testEnv()
	s := New(env, finishedSession(t, env), nil)

	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"}); cmd != nil {
		t.Fatal("r should do nothing without a restart func")
	}
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("home should be focused")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Fatal("expected PopToRootMsg")
	}
}

func TestSummarySaveError(t *testing.T) {
	env := testEnv()
	sess := finishedSession(t, env)
	s := New(env, sess, restartInto)

	s.Update(screens.QuizSavedMsg{SessionID: "other", Err: errors.New("ignored")})
	if strings.Contains(s.View(80, 40), "Could not save") {
		t.Fatal("errors for other sessions must be ignored")
	}

	s.Update(screens.QuizSavedMsg{SessionID: sess.ID(), Err: errors.New("disk full")})
	if !strings.Contains(s.View(80, 40), "disk full") {
		t.Fatal("expected save error in view")
	}
}

func TestSummaryEmptyQuiz(t *testing.T) {
	cat := kana.NewCatalog()
	env := &screens.Env{Catalog: cat, Engine: quiz.NewEngine(cat)}
	sess, err := env.Engine.StartSession(kana.Vocabulary)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	view := New(env, sess, restartInto).View(80, 40)
	if !strings.Contains(view, "nothing to ask") {
		t.Fatal("expected empty quiz message")
	}
}
