// Package app wires the screens into the root Bubble Tea program.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/kanaz/internal/router"
	"github.com/abhisek/kanaz/internal/screen"
	"github.com/abhisek/kanaz/internal/screens"
	"github.com/abhisek/kanaz/internal/screens/home"
	"github.com/abhisek/kanaz/internal/screens/welcome"
	"github.com/abhisek/kanaz/internal/selfupdate"
	"github.com/abhisek/kanaz/internal/ui/layout"
)

const updateCheckTimeout = 5 * time.Second

// Options tunes the program.
type Options struct {
	// SkipWelcome opens straight on the home screen.
	SkipWelcome bool

	// Checker looks for a newer release in the background. Nil disables it.
	Checker *selfupdate.Checker
}

type headerStatsMsg struct {
	stats layout.HeaderStats
	err   error
}

type updateFoundMsg struct {
	version string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env     *screens.Env
	checker *selfupdate.Checker
	router  *router.Router
	stats   layout.HeaderStats
	width   int
	height  int
}

// newAppModel creates a new AppModel starting at the welcome screen.
func newAppModel(env *screens.Env, opts Options) AppModel {
	homeFactory := func() screen.Screen { return home.New(env) }

	var initial screen.Screen
	if opts.SkipWelcome {
		initial = homeFactory()
	} else {
		initial = welcome.New(homeFactory)
	}
	return AppModel{
		env:     env,
		checker: opts.Checker,
		router:  router.New(initial),
		stats:   layout.HeaderStats{Best: -1},
	}
}

func (m AppModel) Init() tea.Cmd {
	var active tea.Cmd
	if s := m.router.Active(); s != nil {
		active = s.Init()
	}
	return tea.Batch(active, m.loadStats(), m.checkUpdate())
}

func (m AppModel) loadStats() tea.Cmd {
	repo := m.env.Quiz
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), screens.StoreTimeout)
		defer cancel()
		cats, err := repo.CategoryStats(ctx)
		if err != nil {
			return headerStatsMsg{err: err}
		}
		st := layout.HeaderStats{Best: -1}
		for _, c := range cats {
			st.Sessions += c.Sessions
			st.Best = max(st.Best, c.BestPercentage)
		}
		return headerStatsMsg{stats: st}
	}
}

func (m AppModel) checkUpdate() tea.Cmd {
	if m.checker == nil || m.env.Version == "" {
		return nil
	}
	checker := m.checker
	version := m.env.Version
	logger := m.env.Log()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), updateCheckTimeout)
		defer cancel()
		res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil {
			logger.Debug("update check failed", zap.Error(err))
			return nil
		}
		if !res.UpdateAvailable {
			return nil
		}
		return updateFoundMsg{version: res.LatestVersion}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case headerStatsMsg:
		if msg.err != nil {
			m.env.Log().Warn("load header stats", zap.Error(msg.err))
			return m, nil
		}
		m.stats = msg.stats
		return m, nil

	case updateFoundMsg:
		m.env.LatestVersion = msg.version
		return m, nil

	case screens.QuizSavedMsg:
		// The summary screen also wants to know about save failures.
		return m, tea.Batch(m.loadStats(), m.router.Update(msg))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok && bh.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.stats, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the program and blocks until it exits. Cancelling ctx
// closes it cleanly.
func Run(ctx context.Context, env *screens.Env, opts Options) error {
	p := tea.NewProgram(newAppModel(env, opts), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
