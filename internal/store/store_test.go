package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	assert.NotNil(t, s.DB())
	assert.Equal(t, "sqlite3", s.Dialect())
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestReopenKeepsSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.db")
	ctx := context.Background()

	s, err := Open(ctx, path)
	require.NoError(t, err)
	first, err := s.seq.Next(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	second, err := s.seq.Next(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)
}

func TestSequenceReservesBlocks(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a, err := s.seq.NextN(ctx, 5)
	require.NoError(t, err)
	b, err := s.seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, a+5, b)
}

func sampleSession(id, category string, score int, start time.Time) SessionRecord {
	answers := []AnswerRecord{
		{Glyph: "あ", Reading: "a", Kind: "plain", Selected: "a", Correct: true, AnsweredAt: start.Add(time.Second)},
		{Glyph: "ぬ", Reading: "nu", Kind: "plain", Selected: "me", Correct: false, AnsweredAt: start.Add(2 * time.Second)},
	}
	return SessionRecord{
		SessionID:  id,
		Category:   category,
		Direction:  "glyph",
		Score:      score,
		Total:      2,
		Percentage: score * 50,
		Tier:       "developing",
		Duration:   3 * time.Second,
		StartedAt:  start,
		FinishedAt: start.Add(3 * time.Second),
		Answers:    answers,
	}
}

func TestSaveAndListSessions(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuizRepo()
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SaveSession(ctx, sampleSession("s1", "hiragana", 1, start)))
	require.NoError(t, repo.SaveSession(ctx, sampleSession("s2", "katakana", 2, start.Add(time.Hour))))

	all, err := repo.RecentSessions(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "s2", all[0].SessionID, "newest first")
	assert.Equal(t, 3*time.Second, all[0].Duration)
	assert.True(t, all[1].StartedAt.Equal(start))
	assert.Empty(t, all[0].Answers)

	hira, err := repo.RecentSessions(ctx, QueryOpts{Category: "hiragana"})
	require.NoError(t, err)
	require.Len(t, hira, 1)
	assert.Equal(t, "s1", hira[0].SessionID)

	limited, err := repo.RecentSessions(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	answers, err := repo.SessionAnswers(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, "あ", answers[0].Glyph)
	assert.True(t, answers[0].Correct)
	assert.False(t, answers[1].Correct)
}

func TestSaveSessionDuplicateIDFails(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuizRepo()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.SaveSession(ctx, sampleSession("dup", "hiragana", 1, now)))
	assert.Error(t, repo.SaveSession(ctx, sampleSession("dup", "hiragana", 1, now)))

	answers, err := repo.SessionAnswers(ctx, "dup")
	require.NoError(t, err)
	assert.Len(t, answers, 2, "failed save must not leave answers behind")
}

func TestCategoryStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuizRepo()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.SaveSession(ctx, sampleSession("a", "hiragana", 1, now)))
	require.NoError(t, repo.SaveSession(ctx, sampleSession("b", "hiragana", 2, now)))
	require.NoError(t, repo.SaveSession(ctx, sampleSession("c", "voiced", 0, now)))

	stats, err := repo.CategoryStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, CategoryStat{Category: "hiragana", Sessions: 2, BestPercentage: 100, Correct: 3, Answered: 4}, stats[0])
	assert.InDelta(t, 0.75, stats[0].Accuracy(), 1e-9)
	assert.Equal(t, "voiced", stats[1].Category)
}

func TestWeakestKana(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuizRepo()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.SaveSession(ctx, sampleSession("a", "hiragana", 1, now)))
	require.NoError(t, repo.SaveSession(ctx, sampleSession("b", "hiragana", 1, now)))

	weak, err := repo.WeakestKana(ctx, 1)
	require.NoError(t, err)
	require.Len(t, weak, 1)
	assert.Equal(t, KanaStat{Glyph: "ぬ", Reading: "nu", Attempts: 2, Correct: 0}, weak[0])
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuizRepo()
	ctx := context.Background()

	require.NoError(t, repo.SaveSession(ctx, sampleSession("a", "hiragana", 1, time.Now())))
	require.NoError(t, repo.Reset(ctx))

	all, err := repo.RecentSessions(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, all)
	weak, err := repo.WeakestKana(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, weak)
}

func TestPreferences(t *testing.T) {
	s := openTestStore(t)
	repo := s.PreferenceRepo()
	ctx := context.Background()

	_, ok, err := repo.GetPreference(ctx, PrefTheme)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.SetPreference(ctx, PrefTheme, "dark"))
	require.NoError(t, repo.SetPreference(ctx, PrefTheme, "light"))

	v, ok, err := repo.GetPreference(ctx, PrefTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)
}

func TestMnemonics(t *testing.T) {
	s := openTestStore(t)
	repo := s.MnemonicRepo()
	ctx := context.Background()

	m, err := repo.GetMnemonic(ctx, "あ")
	require.NoError(t, err)
	assert.Nil(t, m)

	rec := MnemonicRecord{Glyph: "あ", Hint: "an apple", Story: "A for apple.", Model: "mock", CreatedAt: time.Now()}
	require.NoError(t, repo.SaveMnemonic(ctx, rec))
	rec.Hint = "antenna"
	require.NoError(t, repo.SaveMnemonic(ctx, rec))

	m, err = repo.GetMnemonic(ctx, "あ")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "antenna", m.Hint)
}

func TestAppendLLMRequest(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "mnemonic", Success: true, LatencyMs: 12,
	})
	require.NoError(t, err)

	var n int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM llm_requests").Scan(&n))
	assert.Equal(t, 1, n)
}

func TestEventLog(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "mnemonic", InputTokens: 100, OutputTokens: 40, LatencyMs: 300, CostUSD: 0.25, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "mnemonic", InputTokens: 50, OutputTokens: 10, LatencyMs: 100, CostUSD: 0.5, Success: false, ErrorMessage: "timeout"},
		{Provider: "anthropic", Model: "claude-haiku", Purpose: "mnemonic", InputTokens: 10, OutputTokens: 5, LatencyMs: 80, Success: true},
	}
	for _, e := range events {
		require.NoError(t, s.EventRepo().AppendLLMRequest(ctx, e))
	}

	recent, err := s.EventLog().RecentLLMRequests(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "claude-haiku", recent[0].Model)
	assert.Equal(t, "timeout", recent[1].ErrorMessage)
	assert.False(t, recent[1].Success)

	usage, err := s.EventLog().LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Equal(t, "claude-haiku", usage[0].Model)
	gpt := usage[1]
	assert.Equal(t, 2, gpt.Calls)
	assert.Equal(t, 150, gpt.InputTokens)
	assert.Equal(t, 50, gpt.OutputTokens)
	assert.InDelta(t, 0.75, gpt.CostUSD, 1e-9)
	assert.Equal(t, int64(200), gpt.AvgLatencyMs)
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("KANAZ_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "kanaz", "kanaz.db"), p)
	assert.DirExists(t, filepath.Join(dir, "kanaz"))

	t.Setenv("KANAZ_DB", "postgres://localhost/kanaz")
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/kanaz", p)
}
