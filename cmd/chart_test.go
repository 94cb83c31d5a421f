package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kanaz/internal/kana"
)

func TestChartLine(t *testing.T) {
	rows := kana.Default().Chart(kana.ChartHiragana)
	require.NotEmpty(t, rows)

	first := chartLine(rows[0])
	assert.True(t, strings.Contains(first, "あ い う え お"), first)
}

func TestChartTableHasEveryGlyph(t *testing.T) {
	rows := kana.Default().Chart(kana.ChartKatakana)
	out := chartTable(rows).Render()
	for _, r := range rows {
		for _, e := range r.Cells {
			if e.Glyph != "" {
				assert.Contains(t, out, e.Glyph)
			}
		}
	}
}
