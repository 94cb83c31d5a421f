package session

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kanaz/internal/kana"
	"github.com/abhisek/kanaz/internal/quiz"
	"github.com/abhisek/kanaz/internal/router"
	"github.com/abhisek/kanaz/internal/screens"
	"github.com/abhisek/kanaz/internal/store"
)

type recordingPlayer struct {
	mu       sync.Mutex
	played   []string
	released int
}

func (p *recordingPlayer) Play(_ context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.played = append(p.played, key)
	return nil
}

func (p *recordingPlayer) Release(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released++
	return nil
}

type memQuizRepo struct {
	store.QuizRepo
	saved []store.SessionRecord
}

func (m *memQuizRepo) SaveSession(_ context.Context, rec store.SessionRecord) error {
	m.saved = append(m.saved, rec)
	return nil
}

func newEnv(count int) (*screens.Env, *recordingPlayer, *memQuizRepo) {
	player := &recordingPlayer{}
	repo := &memQuizRepo{}
	cat := kana.Default()
	return &screens.Env{
		Catalog: cat,
		Engine: quiz.NewEngine(cat,
			quiz.WithRand(rand.New(rand.NewPCG(1, 2))),
			quiz.WithQuestionCount(count),
		),
		Player: player,
		Quiz:   repo,
	}, player, repo
}

func startScreen(t *testing.T, env *screens.Env, dir quiz.Direction) *SessionScreen {
	t.Helper()
	s, err := env.Engine.StartSessionWith(kana.Hiragana, dir)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	sc := New(env, s)
	sc.autoAdvance = false
	return sc
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// drain runs cmd and every command batched inside it, returning the
// messages produced.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func correctIndex(t *testing.T, s *SessionScreen) int {
	t.Helper()
	q, ok := s.session.Current()
	if !ok {
		t.Fatal("no current question")
	}
	for i, o := range q.Options() {
		if o == q.Answer() {
			return i
		}
	}
	t.Fatal("answer not among options")
	return -1
}

func TestDigitSubmitsAnswer(t *testing.T) {
	env, player, _ := newEnv(3)
	s := startScreen(t, env, quiz.DirectionGlyphToReading)
	q, _ := s.session.Current()

	idx := correctIndex(t, s)
	_, cmd := s.Update(key(rune('1' + idx)))

	if s.session.Phase() != quiz.PhaseShowingFeedback {
		t.Fatalf("expected feedback phase, got %s", s.session.Phase())
	}
	if s.feedback == nil || !s.feedback.IsCorrect {
		t.Fatal("expected correct feedback")
	}
	drain(cmd)
	if len(player.played) != 1 || player.played[0] != q.CorrectReading {
		t.Fatalf("expected %q to be played, got %v", q.CorrectReading, player.played)
	}
	if !strings.Contains(s.View(80, 40), "Correct!") {
		t.Fatal("expected feedback view")
	}
}

func TestWrongAnswerShowsReading(t *testing.T) {
	env, _, _ := newEnv(3)
	s := startScreen(t, env, quiz.DirectionGlyphToReading)
	q, _ := s.session.Current()

	wrong := (correctIndex(t, s) + 1) % len(q.Options())
	s.Update(key(rune('1' + wrong)))

	if s.feedback == nil || s.feedback.IsCorrect {
		t.Fatal("expected incorrect feedback")
	}
	view := s.View(80, 40)
	if !strings.Contains(view, "Not quite") || !strings.Contains(view, q.CorrectReading) {
		t.Fatalf("expected correction in view:\n%s", view)
	}
	if s.session.Score() != 0 {
		t.Fatalf("expected score 0, got %d", s.session.Score())
	}
}

func TestAnyKeyAdvances(t *testing.T) {
	env, _, _ := newEnv(3)
	s := startScreen(t, env, quiz.DirectionGlyphToReading)

	s.Update(key(rune('1' + correctIndex(t, s))))
	s.Update(key('x'))

	if s.session.Phase() != quiz.PhaseAwaitingAnswer || s.session.Index() != 1 {
		t.Fatalf("expected second question, got phase %s index %d", s.session.Phase(), s.session.Index())
	}
	if s.feedback != nil || s.choice.Revealed() {
		t.Fatal("expected fresh question state")
	}
}

func TestStaleTimeoutIgnored(t *testing.T) {
	env, _, _ := newEnv(3)
	s := startScreen(t, env, quiz.DirectionGlyphToReading)

	s.Update(key(rune('1' + correctIndex(t, s))))
	s.Update(key(' '))
	s.Update(feedbackTimeoutMsg{index: 0})

	if s.session.Index() != 1 || s.session.Phase() != quiz.PhaseAwaitingAnswer {
		t.Fatal("stale timeout must not advance")
	}
}

func TestFinishSavesAndShowsSummary(t *testing.T) {
	env, _, repo := newEnv(2)
	s := startScreen(t, env, quiz.DirectionGlyphToReading)

	var cmd tea.Cmd
	for range 2 {
		s.Update(key(rune('1' + correctIndex(t, s))))
		_, cmd = s.Update(key(' '))
	}

	if s.session.Phase() != quiz.PhaseFinished {
		t.Fatalf("expected finished, got %s", s.session.Phase())
	}

	var replaced, saved bool
	for _, msg := range drain(cmd) {
		switch msg := msg.(type) {
		case router.ReplaceScreenMsg:
			replaced = msg.Screen != nil
		case screens.QuizSavedMsg:
			saved = msg.Err == nil && msg.SessionID == s.session.ID()
		}
	}
	if !replaced || !saved {
		t.Fatalf("expected replace and save, got replaced=%v saved=%v", replaced, saved)
	}
	if len(repo.saved) != 1 || repo.saved[0].Score != 2 {
		t.Fatalf("expected one saved session with score 2, got %+v", repo.saved)
	}
}

func TestTypedAnswer(t *testing.T) {
	env, _, _ := newEnv(3)
	s := startScreen(t, env, quiz.DirectionGlyphToReading)
	q, _ := s.session.Current()

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if !s.typing {
		t.Fatal("tab should switch to typing")
	}
	for _, r := range strings.ToUpper(q.CorrectReading) {
		s.Update(key(r))
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if s.feedback == nil || !s.feedback.IsCorrect {
		t.Fatalf("typed %q should be accepted", strings.ToUpper(q.CorrectReading))
	}
}

func TestNoTypingForKanaOptions(t *testing.T) {
	env, _, _ := newEnv(3)
	s := startScreen(t, env, quiz.DirectionReadingToGlyph)

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.typing {
		t.Fatal("typing is only offered when options are readings")
	}
}

func TestPlayBeforeAnswerOnlyForReadingPrompts(t *testing.T) {
	env, player, _ := newEnv(3)
	s := startScreen(t, env, quiz.DirectionGlyphToReading)

	_, cmd := s.Update(key('p'))
	drain(cmd)
	if len(player.played) != 0 {
		t.Fatalf("expected no audio before answering a glyph prompt, got %v", player.played)
	}
	for _, h := range s.KeyHints() {
		if h.Key == "p" {
			t.Fatal("expected no Play hint before answering a glyph prompt")
		}
	}
	if s.session.Phase() != quiz.PhaseAwaitingAnswer {
		t.Fatalf("expected p not to answer, got phase %s", s.session.Phase())
	}

	s = startScreen(t, env, quiz.DirectionReadingToGlyph)
	q, _ := s.session.Current()
	_, cmd = s.Update(key('p'))
	drain(cmd)
	if len(player.played) != 1 || player.played[0] != q.CorrectReading {
		t.Fatalf("expected %q to be played for a reading prompt, got %v", q.CorrectReading, player.played)
	}
}

func TestQuitConfirm(t *testing.T) {
	env, _, _ := newEnv(3)
	s := startScreen(t, env, quiz.DirectionGlyphToReading)

	if !s.HandlesBack() {
		t.Fatal("running quiz should handle esc itself")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !s.showingQuitConfirm {
		t.Fatal("esc should ask for confirmation")
	}
	s.Update(key('n'))
	if s.showingQuitConfirm {
		t.Fatal("n should dismiss the confirmation")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	_, cmd := s.Update(key('y'))
	msgs := drain(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected a pop, got %v", msgs)
	}
	if _, ok := msgs[0].(router.PopScreenMsg); !ok {
		t.Fatalf("expected PopScreenMsg, got %T", msgs[0])
	}
}

func TestDisposeReleasesAudio(t *testing.T) {
	env, player, _ := newEnv(3)
	s := startScreen(t, env, quiz.DirectionGlyphToReading)

	drain(s.Dispose())
	if player.released != 1 {
		t.Fatalf("expected one release, got %d", player.released)
	}
}

func TestEmptyCategoryFinishesOnInit(t *testing.T) {
	cat := kana.NewCatalog()
	env := &screens.Env{Catalog: cat, Engine: quiz.NewEngine(cat)}
	sess, err := env.Engine.StartSession(kana.Hiragana)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	s := New(env, sess)

	var replaced bool
	for _, msg := range drain(s.Init()) {
		if _, ok := msg.(router.ReplaceScreenMsg); ok {
			replaced = true
		}
	}
	if !replaced {
		t.Fatal("empty quiz should go straight to the summary")
	}
}
