package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/kanaz/internal/store"
)

func TestPrintStats(t *testing.T) {
	cats := []store.CategoryStat{
		{Category: "hiragana", Sessions: 3, BestPercentage: 90, Correct: 24, Answered: 30},
		{Category: "old-category", Sessions: 1, BestPercentage: 10, Correct: 1, Answered: 10},
	}
	weak := []store.KanaStat{{Glyph: "ぬ", Reading: "nu", Attempts: 4, Correct: 1}}
	sessions := []store.SessionRecord{{
		Category: "hiragana", Score: 9, Total: 10, Percentage: 90, Tier: "mastery",
		Duration: 75 * time.Second, FinishedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}}

	var buf bytes.Buffer
	printStats(&buf, cats, weak, sessions)
	out := buf.String()

	assert.Contains(t, out, "Hiragana")
	assert.Contains(t, out, "old-category")
	assert.Contains(t, out, "80%")
	assert.Contains(t, out, "ぬ")
	assert.Contains(t, out, "Recent quizzes")
	assert.Contains(t, out, "1:15")
}

func TestPrintStatsSkipsEmptySections(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, []store.CategoryStat{{Category: "katakana", Sessions: 1}}, nil, nil)

	assert.NotContains(t, buf.String(), "Needs practice")
	assert.NotContains(t, buf.String(), "Recent quizzes")
}
