package components

import (
	"fmt"

	"charm.land/bubbles/v2/progress"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaz/internal/ui/theme"
)

// QuizProgress is the "question n of total" bar above each question.
type QuizProgress struct {
	Step, Total int
	Width       int
}

// Percent is the share of questions reached, 0 for an empty quiz.
func (p QuizProgress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Step) / float64(p.Total)
}

// View renders "n/total" followed by a bar filling the rest of the width.
func (p QuizProgress) View() string {
	label := lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf("%d/%d", p.Step, p.Total)) + "  "
	bar := progress.New(
		progress.WithWidth(max(p.Width-lipgloss.Width(label), 4)),
		progress.WithoutPercentage(),
		progress.WithColors(theme.Secondary, theme.ArcadeCyan),
	)
	bar.EmptyColor = theme.Border
	return label + bar.ViewAs(p.Percent())
}
