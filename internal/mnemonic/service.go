// Package mnemonic writes and caches memory hints for individual kana.
package mnemonic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/kanaz/internal/kana"
	"github.com/abhisek/kanaz/internal/llm"
	"github.com/abhisek/kanaz/internal/store"
)

// ErrUnavailable is returned when no provider is configured and nothing is cached.
var ErrUnavailable = errors.New("mnemonic generation unavailable: no LLM provider configured")

// Mnemonic is a memory hint for one glyph.
type Mnemonic struct {
	Glyph  string
	Hint   string
	Story  string
	Model  string
	Cached bool
}

// Config tunes generation requests.
type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultConfig returns the generation settings used by the app.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   400,
		Temperature: 0.7,
		Timeout:     20 * time.Second,
	}
}

// ExampleSource supplies example words for a glyph.
type ExampleSource interface {
	Examples(glyph string) []kana.Example
}

// Service generates mnemonics on demand and caches them by glyph.
// Both provider and repo may be nil.
type Service struct {
	provider llm.Provider
	repo     store.MnemonicRepo
	examples ExampleSource
	cfg      Config
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a mnemonic service.
func NewService(provider llm.Provider, repo store.MnemonicRepo, examples ExampleSource, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		provider: provider,
		repo:     repo,
		examples: examples,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Available reports whether uncached glyphs can be generated.
func (s *Service) Available() bool {
	return s.provider != nil
}

// Get returns the mnemonic for e, generating and caching it on a miss.
func (s *Service) Get(ctx context.Context, e kana.Entry) (*Mnemonic, error) {
	if m, err := s.cached(ctx, e.Glyph); err != nil {
		s.logger.Warn("read cached mnemonic", zap.String("glyph", e.Glyph), zap.Error(err))
	} else if m != nil {
		return m, nil
	}

	return s.Regenerate(ctx, e)
}

// Regenerate asks the provider for a fresh mnemonic and replaces the cached one.
func (s *Service) Regenerate(ctx context.Context, e kana.Entry) (*Mnemonic, error) {
	if s.provider == nil {
		return nil, ErrUnavailable
	}

	m, err := s.generate(ctx, e)
	if err != nil {
		return nil, err
	}

	if s.repo != nil {
		rec := store.MnemonicRecord{
			Glyph:     m.Glyph,
			Hint:      m.Hint,
			Story:     m.Story,
			Model:     m.Model,
			CreatedAt: s.now().UTC(),
		}
		if err := s.repo.SaveMnemonic(ctx, rec); err != nil {
			s.logger.Warn("cache mnemonic", zap.String("glyph", e.Glyph), zap.Error(err))
		}
	}

	return m, nil
}

func (s *Service) cached(ctx context.Context, glyph string) (*Mnemonic, error) {
	if s.repo == nil {
		return nil, nil
	}
	rec, err := s.repo.GetMnemonic(ctx, glyph)
	if err != nil || rec == nil {
		return nil, err
	}
	return &Mnemonic{
		Glyph:  rec.Glyph,
		Hint:   rec.Hint,
		Story:  rec.Story,
		Model:  rec.Model,
		Cached: true,
	}, nil
}

type mnemonicOutput struct {
	Hint  string `json:"hint"`
	Story string `json:"story"`
}

func (s *Service) generate(ctx context.Context, e kana.Entry) (*Mnemonic, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeMnemonic)
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	var examples []kana.Example
	if s.examples != nil {
		examples = s.examples.Examples(e.Glyph)
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(e, examples)},
		},
		Schema:      Schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("mnemonic generation: %w", err)
	}

	out, err := llm.Decode[mnemonicOutput](resp)
	if err != nil {
		return nil, fmt.Errorf("parse mnemonic response: %w", err)
	}

	model := resp.Model
	if model == "" {
		model = s.provider.ModelID()
	}

	return &Mnemonic{
		Glyph: e.Glyph,
		Hint:  out.Hint,
		Story: out.Story,
		Model: model,
	}, nil
}
