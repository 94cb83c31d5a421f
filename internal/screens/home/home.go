package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/kanaz/internal/quiz"
	"github.com/abhisek/kanaz/internal/router"
	"github.com/abhisek/kanaz/internal/screen"
	"github.com/abhisek/kanaz/internal/screens"
	"github.com/abhisek/kanaz/internal/screens/about"
	"github.com/abhisek/kanaz/internal/screens/chart"
	"github.com/abhisek/kanaz/internal/screens/history"
	"github.com/abhisek/kanaz/internal/screens/quizsetup"
	"github.com/abhisek/kanaz/internal/store"
	"github.com/abhisek/kanaz/internal/ui/components"
	"github.com/abhisek/kanaz/internal/ui/layout"
	"github.com/abhisek/kanaz/internal/ui/theme"
)

// stats is the dashboard summary shown under the title.
type stats struct {
	sessions int
	best     int
	accuracy float64
	lastTier quiz.Tier
}

type statsLoadedMsg struct {
	stats stats
	err   error
}

const themeItem = 3

// HomeScreen is the main menu.
type HomeScreen struct {
	env    *screens.Env
	menu   components.Menu
	stats  stats
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env *screens.Env) *HomeScreen {
	h := &HomeScreen{env: env}

	push := func(factory func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := factory()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "START QUIZ", Action: push(func() screen.Screen { return quizsetup.New(env) })},
		{Label: "KANA CHARTS", Action: push(func() screen.Screen { return chart.NewPicker(env) })},
		{Label: "HISTORY", Action: push(func() screen.Screen { return history.New(env) })},
		{Label: "THEME", Action: func() tea.Cmd {
			h.toggleTheme()
			return nil
		}},
		{Label: "ABOUT", Action: push(func() screen.Screen { return about.New(env.Version) })},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume reloads the stats after a quiz or a history reset.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.env.Quiz
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), screens.StoreTimeout)
		defer cancel()
		st, err := collectStats(ctx, repo)
		return statsLoadedMsg{stats: st, err: err}
	}
}

func collectStats(ctx context.Context, repo store.QuizRepo) (stats, error) {
	cats, err := repo.CategoryStats(ctx)
	if err != nil {
		return stats{}, fmt.Errorf("load category stats: %w", err)
	}
	var st stats
	var correct, answered int
	for _, c := range cats {
		st.sessions += c.Sessions
		st.best = max(st.best, c.BestPercentage)
		correct += c.Correct
		answered += c.Answered
	}
	if answered > 0 {
		st.accuracy = float64(correct) / float64(answered)
	}

	recent, err := repo.RecentSessions(ctx, store.QueryOpts{Limit: 1})
	if err != nil {
		return stats{}, fmt.Errorf("load last session: %w", err)
	}
	if len(recent) > 0 {
		st.lastTier = quiz.Tier(recent[0].Tier)
	}
	return st, nil
}

func (h *HomeScreen) toggleTheme() {
	name := theme.Toggle()
	h.env.SetPreference(store.PrefTheme, string(name))
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.err != nil {
			h.env.Log().Warn("home stats", zap.Error(msg.err))
			h.errMsg = "Could not load your history"
			return h, nil
		}
		h.errMsg = ""
		h.stats = msg.stats
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "t":
			h.toggleTheme()
			return h, nil
		case "q":
			return h, tea.Quit
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) labels() []string {
	labels := make([]string, len(h.menu.Items))
	for i, item := range h.menu.Items {
		labels[i] = item.Label
	}
	labels[themeItem] = "THEME: " + strings.ToUpper(string(theme.Current()))
	return labels
}

func (h *HomeScreen) mascot() MascotVariant {
	switch h.stats.lastTier {
	case quiz.TierMastery:
		return MascotCelebrating
	case quiz.TierNeedsPractice:
		return MascotAlert
	}
	return MascotIdle
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer to
	// estimate the terminal height.
	termHeight := height + 8
	compact := termHeight < 36 || width < 100
	tiny := termHeight < 30

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot(), cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))

	if tiny {
		sections = append(sections, renderArcadeMenuCompact(h.labels(), h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.labels(), h.menu.Selected, cw))
	}

	if h.errMsg != "" {
		sections = append(sections, renderNote(h.errMsg, cw, theme.Error))
	}
	if v := h.env.LatestVersion; v != "" {
		sections = append(sections, renderNote(fmt.Sprintf("New version %s available (kanaz update)", v), cw, theme.TextDim))
	}

	sep := "\n\n"
	if tiny {
		sep = "\n"
	}
	return components.CabinetFrame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "t", Description: "Theme"},
		{Key: "q", Description: "Quit"},
	}
}
