package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaz/internal/kana"
	"github.com/abhisek/kanaz/internal/ui/theme"
)

const gridCellWidth = 8

// KanaGrid renders a kana chart and moves a cursor over its filled cells.
type KanaGrid struct {
	Rows []kana.ChartRow
	Row  int
	Col  int
}

// NewKanaGrid places the cursor on the first filled cell.
func NewKanaGrid(rows []kana.ChartRow) KanaGrid {
	g := KanaGrid{Rows: rows}
	for r, row := range rows {
		for c, e := range row.Cells {
			if e.Glyph != "" {
				g.Row, g.Col = r, c
				return g
			}
		}
	}
	return g
}

// Current returns the entry under the cursor.
func (g KanaGrid) Current() (kana.Entry, bool) {
	if g.Row < 0 || g.Row >= len(g.Rows) {
		return kana.Entry{}, false
	}
	cells := g.Rows[g.Row].Cells
	if g.Col < 0 || g.Col >= len(cells) || cells[g.Col].Glyph == "" {
		return kana.Entry{}, false
	}
	return cells[g.Col], true
}

// Update moves the cursor with the arrow keys or hjkl, skipping gaps.
func (g KanaGrid) Update(msg tea.Msg) KanaGrid {
	k, ok := pressed(msg)
	if !ok {
		return g
	}
	switch {
	case key.Matches(k, keyLeft):
		g.moveCol(-1)
	case key.Matches(k, keyRight):
		g.moveCol(1)
	case key.Matches(k, keyUp):
		g.moveRow(-1)
	case key.Matches(k, keyDown):
		g.moveRow(1)
	}
	return g
}

func (g *KanaGrid) moveCol(step int) {
	for c := g.Col + step; c >= 0 && c < len(g.Rows[g.Row].Cells); c += step {
		if g.filled(g.Row, c) {
			g.Col = c
			return
		}
	}
}

func (g *KanaGrid) moveRow(step int) {
	for r := g.Row + step; r >= 0 && r < len(g.Rows); r += step {
		if c, ok := g.nearest(r, g.Col); ok {
			g.Row, g.Col = r, c
			return
		}
	}
}

// nearest finds the filled cell in row r closest to column col.
func (g KanaGrid) nearest(r, col int) (int, bool) {
	n := len(g.Rows[r].Cells)
	for d := 0; d < n; d++ {
		if c := col - d; c >= 0 && c < n && g.filled(r, c) {
			return c, true
		}
		if c := col + d; c < n && g.filled(r, c) {
			return c, true
		}
	}
	return 0, false
}

func (g KanaGrid) filled(r, c int) bool {
	cells := g.Rows[r].Cells
	return c >= 0 && c < len(cells) && cells[c].Glyph != ""
}

// View renders the grid. Each cell shows the glyph over its reading.
func (g KanaGrid) View() string {
	label := lipgloss.NewStyle().Width(6).Foreground(theme.TextDim)
	cell := lipgloss.NewStyle().Width(gridCellWidth).Align(lipgloss.Center)

	lines := make([]string, 0, len(g.Rows))
	for r, row := range g.Rows {
		cells := []string{label.Render(row.Label)}
		for c, e := range row.Cells {
			content := " \n "
			if e.Glyph != "" {
				content = e.Glyph + "\n" + e.Reading
			}
			style := cell.Foreground(theme.Text)
			if r == g.Row && c == g.Col {
				style = cell.Foreground(theme.BgDark).Background(theme.ArcadeYellow).Bold(true)
			}
			cells = append(cells, style.Render(content))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(lines, "\n")
}
