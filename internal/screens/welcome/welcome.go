// Package welcome is the splash shown on start: a torii gate fills with
// the vowel row, then the banner appears. Any key moves on to home.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaz/internal/router"
	"github.com/abhisek/kanaz/internal/screen"
	"github.com/abhisek/kanaz/internal/ui/theme"
)

const frameInterval = 80 * time.Millisecond

// Frame milestones. Counting stops at lastFrame; the petals keep moving.
const (
	vowelsFrame   = 6
	framesPerKana = 2
	bannerFrame   = vowelsFrame + framesPerKana*5 + 2
	lastFrame     = bannerFrame + 40
)

var vowels = []string{"あ", "い", "う", "え", "お"}

var gate = []string{
	"╺━━━━━━━━━━━━━━━━━━━━━╸",
	"  ┏━━━━━━━━━━━━━━━━━┓  ",
	"━━┻━━━━━━━━━━━━━━━━━┻━━",
	"   ┃               ┃   ",
	"   ┃               ┃   ",
	"  ━┻━             ━┻━  ",
}

var petals = [2]string{"✿", "❀"}

type frameMsg struct{}

// WelcomeScreen is the animated splash.
type WelcomeScreen struct {
	next func() screen.Screen

	frame int // capped at lastFrame
	beat  int // every tick, for the petals
	done  bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New returns a splash that replaces itself with next() on a key press.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		if w.done {
			return w, nil
		}
		w.frame = min(w.frame+1, lastFrame)
		w.beat++
		return w, nextFrame()
	case tea.KeyPressMsg:
		return w, w.leave()
	}
	return w, nil
}

func (w *WelcomeScreen) leave() tea.Cmd {
	if w.done {
		return nil
	}
	w.done = true
	home := w.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: home} }
}

// shownVowels is how many of the vowel row have dropped into the gate.
func (w *WelcomeScreen) shownVowels() int {
	if w.frame < vowelsFrame {
		return 0
	}
	return min((w.frame-vowelsFrame)/framesPerKana+1, len(vowels))
}

func (w *WelcomeScreen) View(width, height int) string {
	lines := append([]string(nil), gate...)
	if n := w.shownVowels(); n > 0 {
		row := strings.Join(vowels[:n], " ")
		lines[3] = "   ┃" + lipgloss.PlaceHorizontal(15, lipgloss.Center, row) + "┃   "
	}

	body := lipgloss.NewStyle().Foreground(theme.Primary).Render(strings.Join(lines, "\n"))
	if w.frame >= vowelsFrame {
		body = w.withPetals(body)
	}

	parts := []string{body}
	if w.frame >= bannerFrame {
		parts = append(parts,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Learn hiragana and katakana, one kana at a time"),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, parts...))
}

// withPetals flanks the gate pillars with alternating blossoms.
func (w *WelcomeScreen) withPetals(gate string) string {
	p := petals[w.beat%2]
	pink := lipgloss.NewStyle().Foreground(theme.Accent).Render(p)
	teal := lipgloss.NewStyle().Foreground(theme.Secondary).Render(p)

	lines := strings.Split(gate, "\n")
	lines[1] = pink + " " + lines[1] + " " + teal
	lines[4] = teal + " " + lines[4] + " " + pink
	for _, i := range []int{0, 2, 3, 5} {
		lines[i] = "  " + lines[i] + "  "
	}
	return strings.Join(lines, "\n")
}
