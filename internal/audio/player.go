// Package audio plays kana pronunciations. A Player holds at most one
// sound at a time: every Play releases the previous sound first.
package audio

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ErrNoAudio is returned when no audio file can be found or synthesized
// for a key.
var ErrNoAudio = errors.New("no audio available")

// Player plays pronunciation audio by reading key.
type Player interface {
	// Play starts the sound for key, releasing any sound already loaded.
	// It returns once playback has started, not when it has finished.
	Play(ctx context.Context, key string) error

	// Release stops and frees the loaded sound. It is safe to call when
	// nothing is loaded.
	Release(ctx context.Context) error
}

// Nop is a Player that does nothing. Used when audio is disabled.
type Nop struct{}

func (Nop) Play(context.Context, string) error {
	return nil
}

func (Nop) Release(context.Context) error {
	return nil
}

// safePlayer logs and swallows playback errors so they never reach
// quiz state.
type safePlayer struct {
	p      Player
	logger *zap.Logger
}

// Safe wraps p so that Play and Release never return errors. Failures are
// logged at warn level.
func Safe(p Player, logger *zap.Logger) Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &safePlayer{p: p, logger: logger}
}

func (s *safePlayer) Play(ctx context.Context, key string) error {
	if err := s.p.Play(ctx, key); err != nil {
		s.logger.Warn("audio playback failed", zap.String("key", key), zap.Error(err))
	}
	return nil
}

func (s *safePlayer) Release(ctx context.Context) error {
	if err := s.p.Release(ctx); err != nil {
		s.logger.Warn("audio release failed", zap.Error(err))
	}
	return nil
}
