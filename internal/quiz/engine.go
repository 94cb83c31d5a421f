// Package quiz builds and runs multiple-choice kana quizzes: it draws a
// question set from a catalog category, synthesizes distractor options,
// tracks a session through answer and feedback, and scores the result.
package quiz

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/kanaz/internal/kana"
)

// DefaultQuestionCount is the number of questions drawn per session.
const DefaultQuestionCount = 10

// EntrySource supplies the source list for a category.
type EntrySource interface {
	Entries(id kana.CategoryID) []kana.Entry
}

// Engine creates quiz sessions. It is safe to share between goroutines;
// the sessions it returns are not.
type Engine struct {
	source    EntrySource
	count     int
	direction Direction
	logger    *zap.Logger
	now       func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for sampling and shuffling.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithQuestionCount sets how many questions a session draws.
func WithQuestionCount(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.count = n
		}
	}
}

// WithDirection sets the question direction for new sessions.
func WithDirection(d Direction) Option {
	return func(e *Engine) { e.direction = d }
}

// WithLogger sets the logger used for catalog warnings.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine returns an engine drawing from source.
func NewEngine(source EntrySource, opts ...Option) *Engine {
	e := &Engine{
		source:    source,
		count:     DefaultQuestionCount,
		direction: DirectionGlyphToReading,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return e
}

// StartSession draws a fresh question set for category. A category with
// too few entries still yields a session, with fewer options per question
// (or no questions at all) and a CatalogWarning.
func (e *Engine) StartSession(category kana.CategoryID) (*Session, error) {
	return e.StartSessionWith(category, e.direction)
}

// StartSessionWith is StartSession with an explicit question direction.
func (e *Engine) StartSessionWith(category kana.CategoryID, dir Direction) (*Session, error) {
	if !slices.Contains(kana.AllCategories, category) {
		return nil, fmt.Errorf("unknown category %q", category)
	}

	source := e.source.Entries(category)

	e.mu.Lock()
	drawn := slices.Clone(source)
	shuffle(e.rng, drawn)
	drawn = drawn[:min(e.count, len(drawn))]

	questions := make([]Question, 0, len(drawn))
	for _, entry := range drawn {
		q, err := e.buildQuestion(entry, source, dir)
		if err != nil {
			e.mu.Unlock()
			return nil, fmt.Errorf("building question for %s: %w", entry.Glyph, err)
		}
		questions = append(questions, q)
	}
	e.mu.Unlock()

	var warnings []CatalogWarning
	if distinct := distinctReadings(source); distinct < OptionCount {
		w := CatalogWarning{
			Category:         category,
			Entries:          len(source),
			DistinctReadings: distinct,
		}
		warnings = append(warnings, w)
		e.logger.Warn("catalog too small for full quiz options",
			zap.String("category", string(category)),
			zap.Int("entries", w.Entries),
			zap.Int("distinct_readings", w.DistinctReadings),
		)
	}

	s := newSession(uuid.New().String(), category, dir, questions, warnings, e.now)
	e.logger.Debug("quiz session started",
		zap.String("session_id", s.ID()),
		zap.String("category", string(category)),
		zap.Int("questions", len(questions)),
	)
	return s, nil
}

// Restart discards prev and starts a new session. An empty category
// reuses prev's category. The direction of prev is kept.
func (e *Engine) Restart(prev *Session, category kana.CategoryID) (*Session, error) {
	dir := e.direction
	if prev != nil {
		dir = prev.Direction()
	}
	if category == "" {
		if prev == nil {
			return nil, fmt.Errorf("restart needs a category or a previous session")
		}
		category = prev.Category()
	}
	return e.StartSessionWith(category, dir)
}

// buildQuestion synthesizes options for entry. Distractors come from the
// whole source list, never from entries sharing the answer's reading, and
// at most one distractor is taken per reading. Callers hold e.mu.
func (e *Engine) buildQuestion(entry kana.Entry, source []kana.Entry, dir Direction) (Question, error) {
	if dir == DirectionMixed {
		dir = Direction(e.rng.IntN(2))
	}

	pool := slices.Clone(source)
	shuffle(e.rng, pool)

	seen := map[string]bool{entry.Reading: true}
	options := make([]string, 0, OptionCount)
	for _, c := range pool {
		if len(options) == OptionCount-1 {
			break
		}
		if seen[c.Reading] {
			continue
		}
		seen[c.Reading] = true
		options = append(options, optionValue(c, dir))
	}
	options = append(options, optionValue(entry, dir))
	shuffle(e.rng, options)

	return NewQuestion(entry, dir, options)
}

func optionValue(e kana.Entry, dir Direction) string {
	if dir == DirectionReadingToGlyph {
		return e.Glyph
	}
	return e.Reading
}

// shuffle permutes s uniformly in place (Fisher-Yates).
func shuffle[T any](r *rand.Rand, s []T) {
	r.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

func distinctReadings(entries []kana.Entry) int {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		seen[e.Reading] = struct{}{}
	}
	return len(seen)
}
