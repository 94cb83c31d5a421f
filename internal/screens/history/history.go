// Package history lists past quizzes and the kana missed most often.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"go.uber.org/zap"

	"github.com/abhisek/kanaz/internal/kana"
	"github.com/abhisek/kanaz/internal/quiz"
	"github.com/abhisek/kanaz/internal/screen"
	"github.com/abhisek/kanaz/internal/screens"
	"github.com/abhisek/kanaz/internal/store"
	"github.com/abhisek/kanaz/internal/ui/components"
	"github.com/abhisek/kanaz/internal/ui/layout"
	"github.com/abhisek/kanaz/internal/ui/theme"
)

const (
	sessionLimit = 50
	weakestLimit = 5
	visibleRows  = 10
)

type historyLoadedMsg struct {
	Sessions []store.SessionRecord
	Weakest  []store.KanaStat
	Err      error
}

type answersLoadedMsg struct {
	SessionID string
	Answers   []store.AnswerRecord
	Err       error
}

// HistoryScreen displays past quizzes. Enter expands one to show its
// answers.
type HistoryScreen struct {
	env      *screens.Env
	sessions []store.SessionRecord
	weakest  []store.KanaStat
	answers  map[string][]store.AnswerRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(env *screens.Env) *HistoryScreen {
	return &HistoryScreen{
		env:      env,
		answers:  make(map[string][]store.AnswerRecord),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.env.Quiz
	if repo == nil {
		s.loaded = true
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), screens.StoreTimeout)
		defer cancel()

		sessions, err := repo.RecentSessions(ctx, store.QueryOpts{Limit: sessionLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		weakest, err := repo.WeakestKana(ctx, weakestLimit)
		if err != nil {
			return historyLoadedMsg{Sessions: sessions}
		}
		return historyLoadedMsg{Sessions: sessions, Weakest: weakest}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Answers"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.env.Log().Warn("load history", zap.Error(msg.Err))
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.weakest = msg.Weakest
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.Err != nil {
			s.env.Log().Warn("load session answers", zap.String("session_id", msg.SessionID), zap.Error(msg.Err))
			return s, nil
		}
		s.answers[msg.SessionID] = msg.Answers
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if len(s.sessions) == 0 {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			if s.expanded[s.selected] {
				return s, s.loadAnswers(s.sessions[s.selected].SessionID)
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) loadAnswers(id string) tea.Cmd {
	if _, ok := s.answers[id]; ok || s.env.Quiz == nil {
		return nil
	}
	repo := s.env.Quiz
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), screens.StoreTimeout)
		defer cancel()
		answers, err := repo.SessionAnswers(ctx, id)
		return answersLoadedMsg{SessionID: id, Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	center := func(st lipgloss.Style) lipgloss.Style { return st.Width(cw).Align(lipgloss.Center) }

	var b strings.Builder
	b.WriteString(components.ArcadeTitle("HISTORY", cw))
	b.WriteString("\n\n")

	switch {
	case s.errMsg != "":
		b.WriteString(center(theme.Incorrect).Render("Error: " + s.errMsg))
	case !s.loaded:
		b.WriteString(center(theme.Hint).Render("Loading history..."))
	case len(s.sessions) == 0:
		b.WriteString(center(theme.Hint.Italic(true)).Render("No quizzes yet. Start practicing!"))
	default:
		b.WriteString(s.renderSessions(cw))
		if len(s.weakest) > 0 {
			b.WriteString("\n")
			b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)).Render("Needs practice"))
			b.WriteString("\n")
			b.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Center, WeakestTable(s.weakest).Render()))
		}
	}

	return components.Panel(b.String(), width, height)
}

func (s *HistoryScreen) renderSessions(cw int) string {
	start := 0
	if s.selected >= visibleRows {
		start = s.selected - visibleRows + 1
	}
	end := min(start+visibleRows, len(s.sessions))

	var b strings.Builder
	for i := start; i < end; i++ {
		rec := s.sessions[i]
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString(style.Render(prefix + SessionLine(rec)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderAnswers(rec.SessionID))
		}
	}
	if len(s.sessions) > end {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  … %d more", len(s.sessions)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *HistoryScreen) renderAnswers(id string) string {
	answers, ok := s.answers[id]
	if !ok {
		return theme.Hint.Render("    loading answers...") + "\n"
	}
	var cells []string
	for _, a := range answers {
		mark := theme.Correct.Render("✓")
		if !a.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		cells = append(cells, fmt.Sprintf("%s %s %s", mark, a.Glyph, theme.Hint.Render(a.Reading)))
	}
	return lipgloss.NewStyle().PaddingLeft(4).Render(strings.Join(cells, "  ")) + "\n"
}

// SessionLine is the one-line description of a recorded quiz.
func SessionLine(rec store.SessionRecord) string {
	category := rec.Category
	if id, err := kana.ParseCategoryID(rec.Category); err == nil {
		category = id.Label()
	}
	secs := int(rec.Duration.Seconds())
	return fmt.Sprintf("%s  %-20s %2d/%-2d %3d%%  %d:%02d  %s",
		rec.FinishedAt.Local().Format("Jan 02 15:04"),
		category,
		rec.Score, rec.Total, rec.Percentage,
		secs/60, secs%60,
		quiz.Tier(rec.Tier).Message())
}

// WeakestTable renders per-kana accuracy as a table.
func WeakestTable(stats []store.KanaStat) *table.Table {
	rows := make([][]string, 0, len(stats))
	for _, st := range stats {
		rows = append(rows, []string{
			st.Glyph,
			st.Reading,
			fmt.Sprintf("%d/%d", st.Correct, st.Attempts),
			fmt.Sprintf("%.0f%%", st.Accuracy()*100),
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("Kana", "Reading", "Correct", "Accuracy").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			st := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return st.Foreground(theme.Secondary).Bold(true)
			}
			return st.Foreground(theme.Text)
		})
}
