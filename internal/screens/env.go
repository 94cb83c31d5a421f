// Package screens holds what every Kanaz screen shares. The screens
// themselves live in the sub-packages.
package screens

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/kanaz/internal/audio"
	"github.com/abhisek/kanaz/internal/kana"
	"github.com/abhisek/kanaz/internal/mnemonic"
	"github.com/abhisek/kanaz/internal/quiz"
	"github.com/abhisek/kanaz/internal/store"
)

// StoreTimeout bounds every store call made from the UI.
const StoreTimeout = 5 * time.Second

// Env carries the services screens depend on. Any field except Catalog
// and Engine may be nil; screens degrade instead of failing.
type Env struct {
	Catalog   *kana.Catalog
	Engine    *quiz.Engine
	Player    audio.Player
	Quiz      store.QuizRepo
	Prefs     store.PreferenceRepo
	Mnemonics *mnemonic.Service
	Logger    *zap.Logger

	// Direction is the question direction preselected on the quiz setup.
	Direction quiz.Direction
	Version   string

	// LatestVersion is set once a newer release has been found.
	LatestVersion string
}

// Log returns the logger, never nil.
func (e *Env) Log() *zap.Logger {
	if e == nil || e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Audio returns the player, never nil.
func (e *Env) Audio() audio.Player {
	if e == nil || e.Player == nil {
		return audio.Nop{}
	}
	return e.Player
}

// MnemonicsAvailable reports whether hints can be shown at all.
func (e *Env) MnemonicsAvailable() bool {
	return e != nil && e.Mnemonics != nil
}

// SetPreference stores a preference, logging failures.
func (e *Env) SetPreference(key, value string) {
	if e == nil || e.Prefs == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), StoreTimeout)
	defer cancel()
	if err := e.Prefs.SetPreference(ctx, key, value); err != nil {
		e.Log().Warn("save preference", zap.String("key", key), zap.Error(err))
	}
}

// PlayCmd plays the pronunciation for key off the UI loop. Playback
// errors never surface in the UI.
func (e *Env) PlayCmd(key string) tea.Cmd {
	player := e.Audio()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = player.Play(ctx, key)
		return nil
	}
}

// ReleaseCmd releases any loaded sound.
func (e *Env) ReleaseCmd() tea.Cmd {
	player := e.Audio()
	return func() tea.Msg {
		_ = player.Release(context.Background())
		return nil
	}
}

// QuizSavedMsg reports that a finished quiz was written to the store.
type QuizSavedMsg struct {
	SessionID string
	Err       error
}

// SaveQuizCmd persists a finished session off the UI loop.
func (e *Env) SaveQuizCmd(s *quiz.Session) tea.Cmd {
	repo := e.Quiz
	logger := e.Log()
	return func() tea.Msg {
		if repo == nil {
			return QuizSavedMsg{SessionID: s.ID()}
		}
		ctx, cancel := context.WithTimeout(context.Background(), StoreTimeout)
		defer cancel()
		err := quiz.Save(ctx, repo, s)
		if err != nil {
			logger.Error("save quiz session", zap.String("session_id", s.ID()), zap.Error(err))
		}
		return QuizSavedMsg{SessionID: s.ID(), Err: err}
	}
}
