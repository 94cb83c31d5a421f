package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaz/internal/quiz"
	"github.com/abhisek/kanaz/internal/ui/components"
	"github.com/abhisek/kanaz/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch {
	case s.showingQuitConfirm:
		body = renderQuitConfirm(cw)
	case s.session.Phase() == quiz.PhaseFinished:
		body = centered(cw, theme.Hint).Render("\n\n  Tallying your score...")
	case s.feedback != nil:
		body = s.renderFeedback(cw)
	default:
		body = s.renderQuestionView(cw)
	}

	return components.Panel(body, width, height)
}

func centered(width int, base lipgloss.Style) lipgloss.Style {
	return base.Width(width).Align(lipgloss.Center)
}

// renderInfoLine shows the category on the left and the running score on
// the right.
func (s *SessionScreen) renderInfoLine(width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(s.session.Category().Label())

	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d", lipgloss.NewStyle().Foreground(theme.Success).Render("✓"), s.session.Score()))

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right); pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

// renderQuestionView renders the active question.
func (s *SessionScreen) renderQuestionView(width int) string {
	q, ok := s.session.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(components.QuizProgress{Step: s.session.Index() + 1, Total: s.session.Total(), Width: width}.View())
	b.WriteString("\n\n")

	for _, w := range s.session.Warnings() {
		b.WriteString(centered(width, theme.Hint).Render("⚠ " + w.String()))
		b.WriteString("\n")
	}

	b.WriteString(centered(width, theme.Hint).Render(questionLead(q)))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Glyph).Render(q.Prompt()))
	b.WriteString("\n")
	if q.Gloss != "" {
		b.WriteString(centered(width, theme.Hint).Render("(" + q.Gloss + ")"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if s.typing {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "Reading: "+s.input.View()))
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.Hint).Render("Type the romaji and press Enter"))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
		b.WriteString(centered(width, theme.Hint).Render("Select (1-4) or use arrows + Enter"))
	}
	return b.String()
}

func questionLead(q quiz.Question) string {
	switch {
	case q.Direction == quiz.DirectionReadingToGlyph:
		return "Which kana reads"
	case q.Kind == quiz.KindVocabulary:
		return "How is this word read?"
	}
	return "How is this kana read?"
}

// renderFeedback renders the outcome of the last answer.
func (s *SessionScreen) renderFeedback(width int) string {
	q, _ := s.session.Current()
	fb := s.feedback

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n\n")

	if fb.IsCorrect {
		b.WriteString(centered(width, theme.Correct).Render("Correct!"))
	} else {
		b.WriteString(centered(width, theme.Incorrect).Render("Not quite"))
	}
	b.WriteString("\n\n")

	b.WriteString(centered(width, theme.Glyph).Render(q.Glyph))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Title).Render(fb.CorrectReading))
	b.WriteString("\n")
	if q.Gloss != "" {
		b.WriteString(centered(width, theme.Body).Render(q.Gloss))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if s.typing {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
	}
	b.WriteString("\n")

	b.WriteString(centered(width, theme.Hint).Render("Press any key to continue..."))
	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true)).Render("Leave this quiz?"))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Hint).Render("Unfinished quizzes are not saved."))
	b.WriteString("\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Error)).Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Primary)).Render("[N] No, keep going"))
	return b.String()
}
