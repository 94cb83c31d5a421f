package audio

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Synthesizer turns text into MP3 audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

// Source resolves pronunciation keys to files. It checks, in order:
//  1. <AssetsDir>/<key>.mp3 (bundled or user-recorded audio)
//  2. the synthesis cache in CacheDir
//  3. the Synthesizer, caching what it returns
//  4. Placeholder
type Source struct {
	AssetsDir   string
	CacheDir    string
	Placeholder string
	Language    string
	Synth       Synthesizer

	// TextFor maps a key to the text to synthesize. Keys are readings,
	// and synthesizing the kana gives a native pronunciation.
	TextFor func(key string) string

	Logger *zap.Logger

	mu sync.Mutex
}

// Resolve returns a playable file for key.
func (s *Source) Resolve(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrNoAudio
	}

	if s.AssetsDir != "" {
		p := filepath.Join(s.AssetsDir, key+".mp3")
		if fileExists(p) {
			return p, nil
		}
	}

	if p, err := s.synthesized(ctx, key); err == nil {
		return p, nil
	} else if !errors.Is(err, ErrNoAudio) {
		s.logger().Warn("speech synthesis failed", zap.String("key", key), zap.Error(err))
	}

	if s.Placeholder != "" && fileExists(s.Placeholder) {
		return s.Placeholder, nil
	}
	return "", ErrNoAudio
}

func (s *Source) synthesized(ctx context.Context, key string) (string, error) {
	if s.CacheDir == "" {
		return "", ErrNoAudio
	}

	text := key
	if s.TextFor != nil {
		text = s.TextFor(key)
	}
	cachePath := filepath.Join(s.CacheDir, cacheKey(text, s.Language)+".mp3")
	if fileExists(cachePath) {
		return cachePath, nil
	}
	if s.Synth == nil {
		return "", ErrNoAudio
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if fileExists(cachePath) {
		return cachePath, nil
	}

	data, err := s.Synth.Synthesize(ctx, text, s.Language)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.CacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(cachePath, data, 0o644); err != nil {
		return "", fmt.Errorf("write cache: %w", err)
	}
	return cachePath, nil
}

func (s *Source) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func cacheKey(text, lang string) string {
	h := sha256.Sum256([]byte(lang + ":" + text))
	return hex.EncodeToString(h[:16])
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
