package store

import (
	"context"
	"time"
)

// QueryOpts configures history queries with filtering and pagination.
type QueryOpts struct {
	Limit    int       // max results (0 = unlimited)
	Category string    // only this quiz category ("" = all)
	From     time.Time // finished_at >= From
}

// SessionRecord is a finished quiz session.
type SessionRecord struct {
	Sequence   int64
	SessionID  string
	Category   string
	Direction  string
	Score      int
	Total      int
	Percentage int
	Tier       string
	Duration   time.Duration
	StartedAt  time.Time
	FinishedAt time.Time
	Answers    []AnswerRecord
}

// AnswerRecord is one answer within a session.
type AnswerRecord struct {
	Glyph      string
	Reading    string
	Kind       string
	Selected   string
	Correct    bool
	AnsweredAt time.Time
}

// CategoryStat aggregates sessions for one category.
type CategoryStat struct {
	Category       string
	Sessions       int
	BestPercentage int
	Correct        int
	Answered       int
}

// Accuracy is the share of correct answers, 0 when nothing was answered.
func (c CategoryStat) Accuracy() float64 {
	if c.Answered == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Answered)
}

// KanaStat aggregates answers for one glyph.
type KanaStat struct {
	Glyph    string
	Reading  string
	Attempts int
	Correct  int
}

// Accuracy is the share of correct answers for the glyph.
func (k KanaStat) Accuracy() float64 {
	if k.Attempts == 0 {
		return 0
	}
	return float64(k.Correct) / float64(k.Attempts)
}

// QuizRepo persists finished quiz sessions and answers.
type QuizRepo interface {
	// SaveSession stores a session and its answers atomically.
	SaveSession(ctx context.Context, rec SessionRecord) error

	// RecentSessions returns sessions newest first, without answers.
	RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionRecord, error)

	// SessionAnswers returns the answers of one session in order.
	SessionAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error)

	// CategoryStats aggregates sessions per category.
	CategoryStats(ctx context.Context) ([]CategoryStat, error)

	// WeakestKana returns up to limit glyphs with the lowest accuracy.
	WeakestKana(ctx context.Context, limit int) ([]KanaStat, error)

	// Reset deletes all sessions and answers.
	Reset(ctx context.Context) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	CostUSD      float64
	Success      bool
	ErrorMessage string
}

// EventRepo provides append access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// LLMRequestRecord is a stored LLM request event.
type LLMRequestRecord struct {
	ID           int
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	CostUSD      float64
	Success      bool
	ErrorMessage string
	CreatedAt    time.Time
}

// LLMUsageStat aggregates LLM requests for one model.
type LLMUsageStat struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	CostUSD      float64
	AvgLatencyMs int64
}

// EventLog reads back recorded LLM requests.
type EventLog interface {
	// RecentLLMRequests returns requests newest first.
	RecentLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error)

	// LLMUsageByModel aggregates token use and cost per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsageStat, error)
}

// PreferenceRepo stores small user preferences such as the UI theme.
type PreferenceRepo interface {
	// GetPreference returns the value for key and whether it was set.
	GetPreference(ctx context.Context, key string) (string, bool, error)

	// SetPreference stores value under key, replacing any previous value.
	SetPreference(ctx context.Context, key, value string) error
}

// MnemonicRecord is a cached memory hint for a glyph.
type MnemonicRecord struct {
	Glyph     string
	Hint      string
	Story     string
	Model     string
	CreatedAt time.Time
}

// MnemonicRepo caches generated mnemonics.
type MnemonicRepo interface {
	// GetMnemonic returns the cached mnemonic for glyph, or nil.
	GetMnemonic(ctx context.Context, glyph string) (*MnemonicRecord, error)

	// SaveMnemonic stores or replaces the mnemonic for rec.Glyph.
	SaveMnemonic(ctx context.Context, rec MnemonicRecord) error
}
