package chart

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kanaz/internal/kana"
	"github.com/abhisek/kanaz/internal/llm"
	"github.com/abhisek/kanaz/internal/mnemonic"
	"github.com/abhisek/kanaz/internal/router"
	"github.com/abhisek/kanaz/internal/screens"
)

type recordingPlayer struct {
	mu       sync.Mutex
	played   []string
	released int
}

func (p *recordingPlayer) Play(_ context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.played = append(p.played, key)
	return nil
}

func (p *recordingPlayer) Release(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released++
	return nil
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testEnv(svc *mnemonic.Service) (*screens.Env, *recordingPlayer) {
	p := &recordingPlayer{}
	return &screens.Env{Catalog: kana.Default(), Player: p, Mnemonics: svc}, p
}

func TestPickerOpensGrid(t *testing.T) {
	env, _ := testEnv(nil)
	p := NewPicker(env)

	if len(p.menu.Items) != len(kana.AllCharts) {
		t.Fatalf("expected %d charts, got %d", len(kana.AllCharts), len(p.menu.Items))
	}
	if !strings.Contains(p.View(80, 30), "Katakana") {
		t.Fatal("expected katakana in picker")
	}

	_, cmd := p.Update(key('2'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	grid, ok := msg.Screen.(*GridScreen)
	if !ok || grid.kind != kana.ChartKatakana {
		t.Fatalf("expected katakana grid, got %#v", msg.Screen)
	}
}

func TestGridPlayAndOpenDetail(t *testing.T) {
	env, player := testEnv(nil)
	g := NewGrid(env, kana.ChartHiragana)

	e, ok := g.Current()
	if !ok || e.Glyph != "あ" {
		t.Fatalf("expected cursor on あ, got %q", e.Glyph)
	}

	g.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	_, cmd := g.Update(key('p'))
	cmd()
	if len(player.played) != 1 || player.played[0] != "i" {
		t.Fatalf("expected i to play, got %v", player.played)
	}

	_, cmd = g.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	d := msg.Screen.(*DetailScreen)
	if d.Entry().Glyph != "い" {
		t.Fatalf("expected detail for い, got %q", d.Entry().Glyph)
	}

	g.Dispose()()
	if player.released != 1 {
		t.Fatal("leaving the grid should release audio")
	}
}

func TestDetailNavigation(t *testing.T) {
	env, _ := testEnv(nil)
	entries := chartEntries(env.Catalog.Chart(kana.ChartHiragana))
	d := NewDetail(env, entries, "あ")

	d.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if d.Entry().Glyph != "あ" {
		t.Fatal("left on the first kana should stay")
	}
	d.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	d.Update(key('l'))
	if d.Entry().Glyph != "う" {
		t.Fatalf("expected う, got %q", d.Entry().Glyph)
	}

	view := d.View(80, 40)
	if !strings.Contains(view, "u") || !strings.Contains(view, "hiragana") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestDetailShowsExamples(t *testing.T) {
	env, _ := testEnv(nil)
	d := NewDetail(env, chartEntries(env.Catalog.Chart(kana.ChartHiragana)), "あ")

	ex := env.Catalog.Examples("あ")
	if len(ex) == 0 {
		t.Skip("no examples for あ")
	}
	if !strings.Contains(d.View(80, 40), ex[0].Gloss) {
		t.Fatal("expected example gloss in view")
	}
}

func TestDetailMnemonic(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"hint":"an apple with a stem","story":"A for apple."}`),
	})
	svc := mnemonic.NewService(mock, nil, nil, mnemonic.DefaultConfig(), nil)
	env, _ := testEnv(svc)
	d := NewDetail(env, chartEntries(env.Catalog.Chart(kana.ChartHiragana)), "あ")

	_, cmd := d.Update(key('m'))
	if cmd == nil {
		t.Fatal("expected fetch command")
	}
	if !strings.Contains(d.View(80, 40), "Thinking") {
		t.Fatal("expected loading state")
	}

	d.Update(cmd())
	if !strings.Contains(d.View(80, 40), "an apple with a stem") {
		t.Fatal("expected hint in view")
	}

	if _, cmd := d.Update(key('m')); cmd != nil {
		t.Fatal("a shown hint should not be fetched again")
	}
}

func TestDetailMnemonicUnavailable(t *testing.T) {
	svc := mnemonic.NewService(nil, nil, nil, mnemonic.DefaultConfig(), nil)
	env, _ := testEnv(svc)
	d := NewDetail(env, chartEntries(env.Catalog.Chart(kana.ChartHiragana)), "か")

	_, cmd := d.Update(key('m'))
	d.Update(cmd())
	if !strings.Contains(d.View(80, 40), "KANAZ_ANTHROPIC_API_KEY") {
		t.Fatal("expected setup hint")
	}
}
