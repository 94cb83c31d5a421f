package kana

import (
	"strings"

	"github.com/samber/lo"
)

// ChartKind selects one of the reference charts.
type ChartKind int

const (
	ChartHiragana ChartKind = iota
	ChartKatakana
	ChartVoiced
	ChartContracted
)

// AllCharts lists the charts in menu order.
var AllCharts = []ChartKind{ChartHiragana, ChartKatakana, ChartVoiced, ChartContracted}

// String returns the chart's display name.
func (k ChartKind) String() string {
	switch k {
	case ChartHiragana:
		return "Hiragana"
	case ChartKatakana:
		return "Katakana"
	case ChartVoiced:
		return "Dakuten & Handakuten"
	case ChartContracted:
		return "Yoon"
	}
	return "Unknown"
}

// ParseChartKind maps a command-line name to a chart.
func ParseChartKind(s string) (ChartKind, bool) {
	switch strings.ToLower(s) {
	case "hiragana":
		return ChartHiragana, true
	case "katakana":
		return ChartKatakana, true
	case "voiced", "dakuten":
		return ChartVoiced, true
	case "contracted", "yoon":
		return ChartContracted, true
	}
	return 0, false
}

// ChartRow is one labelled row of a chart. A cell with an empty Glyph is
// a gap (e.g. the missing yi and ye in the や row).
type ChartRow struct {
	Label string
	Cells []Entry
}

// Chart lays out a chart. Plain kana rows have five vowel-aligned cells;
// voiced rows have five cells; contracted rows have three.
func (c *Catalog) Chart(kind ChartKind) []ChartRow {
	switch kind {
	case ChartHiragana:
		return plainRows(byScript(c.plain, ScriptHiragana))
	case ChartKatakana:
		return plainRows(byScript(c.plain, ScriptKatakana))
	case ChartVoiced:
		return voicedRows(c.voiced)
	case ChartContracted:
		return groupedRows(c.contracted, func(e Entry) string { return e.Group })
	}
	return nil
}

func plainRows(entries []Entry) []ChartRow {
	var rows []ChartRow
	for _, e := range entries {
		if len(rows) == 0 || rows[len(rows)-1].Label != e.Row {
			rows = append(rows, ChartRow{Label: e.Row, Cells: make([]Entry, 5)})
		}
		rows[len(rows)-1].Cells[vowelIndex(e.Reading)] = e
	}
	return rows
}

func groupedRows(entries []Entry, key func(Entry) string) []ChartRow {
	var rows []ChartRow
	for _, e := range entries {
		k := key(e)
		if len(rows) == 0 || rows[len(rows)-1].Label != k {
			rows = append(rows, ChartRow{Label: k})
		}
		rows[len(rows)-1].Cells = append(rows[len(rows)-1].Cells, e)
	}
	return rows
}

// vowelIndex places a reading in the a/i/u/e/o column. The syllabic n
// has no vowel and sits in the first column.
func vowelIndex(reading string) int {
	if reading == "" {
		return 0
	}
	idx := strings.IndexByte("aiueo", reading[len(reading)-1])
	return max(idx, 0)
}

// voicedRows splits each script's voiced kana into rows of five, labelled
// by the row's first kana.
func voicedRows(entries []Entry) []ChartRow {
	var rows []ChartRow
	for _, s := range []Script{ScriptHiragana, ScriptKatakana} {
		for _, chunk := range lo.Chunk(byScript(entries, s), 5) {
			rows = append(rows, ChartRow{Label: chunk[0].Glyph + "行", Cells: chunk})
		}
	}
	return rows
}
