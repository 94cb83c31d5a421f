package chart

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaz/internal/kana"
	"github.com/abhisek/kanaz/internal/router"
	"github.com/abhisek/kanaz/internal/screen"
	"github.com/abhisek/kanaz/internal/screens"
	"github.com/abhisek/kanaz/internal/ui/components"
	"github.com/abhisek/kanaz/internal/ui/layout"
	"github.com/abhisek/kanaz/internal/ui/theme"
)

// GridScreen shows one chart as a grid the learner can move over.
type GridScreen struct {
	env  *screens.Env
	kind kana.ChartKind
	grid components.KanaGrid
}

var _ screen.Screen = (*GridScreen)(nil)
var _ screen.KeyHintProvider = (*GridScreen)(nil)
var _ screen.Disposer = (*GridScreen)(nil)

// NewGrid creates the grid screen for a chart.
func NewGrid(env *screens.Env, kind kana.ChartKind) *GridScreen {
	return &GridScreen{
		env:  env,
		kind: kind,
		grid: components.NewKanaGrid(env.Catalog.Chart(kind)),
	}
}

// Current returns the kana under the cursor.
func (g *GridScreen) Current() (kana.Entry, bool) {
	return g.grid.Current()
}

func (g *GridScreen) Init() tea.Cmd { return nil }

func (g *GridScreen) Title() string { return g.kind.String() }

func (g *GridScreen) Dispose() tea.Cmd {
	return g.env.ReleaseCmd()
}

func (g *GridScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←↑↓→", Description: "Move"},
		{Key: "p", Description: "Play"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

func (g *GridScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "p", "space":
			if e, ok := g.grid.Current(); ok {
				return g, g.env.PlayCmd(e.AudioKey())
			}
			return g, nil
		case "enter":
			e, ok := g.grid.Current()
			if !ok {
				return g, nil
			}
			next := NewDetail(g.env, chartEntries(g.grid.Rows), e.Glyph)
			return g, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}
	g.grid = g.grid.Update(msg)
	return g, nil
}

// chartEntries flattens a chart into its filled cells, row by row.
func chartEntries(rows []kana.ChartRow) []kana.Entry {
	var out []kana.Entry
	for _, r := range rows {
		for _, e := range r.Cells {
			if e.Glyph != "" {
				out = append(out, e)
			}
		}
	}
	return out
}

func (g *GridScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(components.ArcadeTitle(strings.ToUpper(g.kind.String()), cw))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Center, g.grid.View()))

	if e, ok := g.grid.Current(); ok {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Foreground(theme.ArcadeCyan).
			Render(e.Glyph + "  " + e.Reading))
	}

	return components.Panel(b.String(), width, height)
}
