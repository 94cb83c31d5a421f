// Package chart holds the kana reference screens: the chart picker, the
// chart grid and the per-kana detail view.
package chart

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kanaz/internal/kana"
	"github.com/abhisek/kanaz/internal/router"
	"github.com/abhisek/kanaz/internal/screen"
	"github.com/abhisek/kanaz/internal/screens"
	"github.com/abhisek/kanaz/internal/ui/components"
	"github.com/abhisek/kanaz/internal/ui/layout"
)

// PickerScreen lists the available charts.
type PickerScreen struct {
	env  *screens.Env
	menu components.Menu
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// NewPicker creates the chart picker.
func NewPicker(env *screens.Env) *PickerScreen {
	p := &PickerScreen{env: env}

	items := make([]components.MenuItem, 0, len(kana.AllCharts))
	for _, kind := range kana.AllCharts {
		n := countFilled(env.Catalog.Chart(kind))
		items = append(items, components.MenuItem{
			Label:    kind.String(),
			Hint:     fmt.Sprintf("%d kana", n),
			Disabled: n == 0,
			Action: func() tea.Cmd {
				next := NewGrid(env, kind)
				return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			},
		})
	}
	p.menu = components.NewMenu(items)
	return p
}

func countFilled(rows []kana.ChartRow) int {
	n := 0
	for _, r := range rows {
		for _, e := range r.Cells {
			if e.Glyph != "" {
				n++
			}
		}
	}
	return n
}

func (p *PickerScreen) Init() tea.Cmd { return nil }

func (p *PickerScreen) Title() string { return "Kana Charts" }

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p *PickerScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(components.ArcadeTitle("KANA CHARTS", cw))
	b.WriteString("\n\n")
	b.WriteString(p.menu.View())

	return components.Panel(b.String(), width, height)
}
