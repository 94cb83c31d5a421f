package chart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/kanaz/internal/kana"
	"github.com/abhisek/kanaz/internal/mnemonic"
	"github.com/abhisek/kanaz/internal/screen"
	"github.com/abhisek/kanaz/internal/screens"
	"github.com/abhisek/kanaz/internal/ui/components"
	"github.com/abhisek/kanaz/internal/ui/layout"
	"github.com/abhisek/kanaz/internal/ui/theme"
)

const mnemonicTimeout = 30 * time.Second

// mnemonicMsg carries a mnemonic fetched in the background.
type mnemonicMsg struct {
	glyph    string
	mnemonic *mnemonic.Mnemonic
	err      error
}

// DetailScreen shows one kana with its examples and memory hint. Left and
// right step through the chart it was opened from.
type DetailScreen struct {
	env     *screens.Env
	entries []kana.Entry
	idx     int

	mnemonics map[string]*mnemonic.Mnemonic
	loading   string
	errMsg    string
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)

// NewDetail opens the detail view on glyph. entries are the neighbors
// reachable with left and right.
func NewDetail(env *screens.Env, entries []kana.Entry, glyph string) *DetailScreen {
	d := &DetailScreen{
		env:       env,
		entries:   entries,
		mnemonics: make(map[string]*mnemonic.Mnemonic),
	}
	for i, e := range entries {
		if e.Glyph == glyph {
			d.idx = i
			break
		}
	}
	return d
}

// Entry returns the kana being shown.
func (d *DetailScreen) Entry() kana.Entry {
	if len(d.entries) == 0 {
		return kana.Entry{}
	}
	return d.entries[d.idx]
}

func (d *DetailScreen) Init() tea.Cmd {
	return d.env.PlayCmd(d.Entry().AudioKey())
}

func (d *DetailScreen) Title() string { return d.Entry().Glyph }

func (d *DetailScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "←→", Description: "Prev/Next"},
		{Key: "p", Description: "Play"},
	}
	if d.env.MnemonicsAvailable() {
		hints = append(hints,
			layout.KeyHint{Key: "m", Description: "Hint"},
			layout.KeyHint{Key: "r", Description: "New hint"},
		)
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (d *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case mnemonicMsg:
		if d.loading == msg.glyph {
			d.loading = ""
		}
		if msg.err != nil {
			if msg.glyph == d.Entry().Glyph {
				d.errMsg = mnemonicError(msg.err)
			}
			return d, nil
		}
		d.mnemonics[msg.glyph] = msg.mnemonic
		return d, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			return d, d.step(-1)
		case "right", "l":
			return d, d.step(1)
		case "p", "space":
			return d, d.env.PlayCmd(d.Entry().AudioKey())
		case "m":
			if _, ok := d.mnemonics[d.Entry().Glyph]; ok {
				return d, nil
			}
			return d, d.fetch(false)
		case "r":
			return d, d.fetch(true)
		}
	}
	return d, nil
}

func (d *DetailScreen) step(delta int) tea.Cmd {
	next := d.idx + delta
	if next < 0 || next >= len(d.entries) {
		return nil
	}
	d.idx = next
	d.errMsg = ""
	return d.env.PlayCmd(d.Entry().AudioKey())
}

func (d *DetailScreen) fetch(regenerate bool) tea.Cmd {
	if !d.env.MnemonicsAvailable() || d.loading != "" {
		return nil
	}
	entry := d.Entry()
	svc := d.env.Mnemonics
	logger := d.env.Log()
	d.loading = entry.Glyph
	d.errMsg = ""

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mnemonicTimeout)
		defer cancel()

		var m *mnemonic.Mnemonic
		var err error
		if regenerate {
			m, err = svc.Regenerate(ctx, entry)
		} else {
			m, err = svc.Get(ctx, entry)
		}
		if err != nil && !errors.Is(err, mnemonic.ErrUnavailable) {
			logger.Warn("fetch mnemonic", zap.String("glyph", entry.Glyph), zap.Error(err))
		}
		return mnemonicMsg{glyph: entry.Glyph, mnemonic: m, err: err}
	}
}

func mnemonicError(err error) string {
	if errors.Is(err, mnemonic.ErrUnavailable) {
		return "Hints need an LLM provider. Set KANAZ_ANTHROPIC_API_KEY or another provider key to enable them."
	}
	return "Could not get a hint right now."
}

func describe(e kana.Entry) string {
	switch e.Category {
	case kana.CategoryVoiced:
		if e.Base != "" {
			return fmt.Sprintf("%s with %s", e.Base, e.Mark)
		}
	case kana.CategoryContracted:
		if e.Group != "" {
			return e.Group + " group"
		}
	case kana.CategoryPlain:
		if e.Row != "" {
			return fmt.Sprintf("%s row", e.Row)
		}
	}
	return ""
}

func (d *DetailScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	center := func(st lipgloss.Style) lipgloss.Style { return st.Width(cw).Align(lipgloss.Center) }
	e := d.Entry()

	var b strings.Builder
	b.WriteString(center(theme.Hint).Render(fmt.Sprintf("%d / %d", d.idx+1, len(d.entries))))
	b.WriteString("\n\n")
	b.WriteString(center(theme.Glyph).Render(e.Glyph))
	b.WriteString("\n")
	b.WriteString(center(theme.Title).Render(e.Reading))
	b.WriteString("\n")

	meta := string(e.Script)
	if extra := describe(e); extra != "" {
		meta += " · " + extra
	}
	b.WriteString(center(theme.Hint).Render(meta))
	b.WriteString("\n\n")

	if examples := d.env.Catalog.Examples(e.Glyph); len(examples) > 0 {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)).Render("Examples"))
		b.WriteString("\n")
		for _, ex := range examples {
			line := fmt.Sprintf("%s  %s  %s", ex.Word, theme.Hint.Render(ex.Reading), ex.Gloss)
			b.WriteString(center(theme.Body).Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(d.renderMnemonic(cw))
	return components.Panel(b.String(), width, height)
}

func (d *DetailScreen) renderMnemonic(cw int) string {
	center := func(st lipgloss.Style) lipgloss.Style { return st.Width(cw).Align(lipgloss.Center) }
	glyph := d.Entry().Glyph

	switch {
	case d.loading == glyph:
		return center(theme.Hint).Render("Thinking of a hint...")
	case d.errMsg != "":
		return center(theme.Incorrect).Render(d.errMsg)
	}

	m, ok := d.mnemonics[glyph]
	if !ok {
		if d.env.MnemonicsAvailable() {
			return center(theme.Hint).Render("Press m for a memory hint")
		}
		return ""
	}

	var b strings.Builder
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)).Render(m.Hint))
	b.WriteString("\n")
	if m.Story != "" {
		b.WriteString(center(theme.Body).Render(m.Story))
		b.WriteString("\n")
	}
	source := m.Model
	if m.Cached {
		source += " (saved)"
	}
	b.WriteString(center(theme.Hint).Render(source))
	return b.String()
}
