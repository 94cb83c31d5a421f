// Package layout draws the frame around every screen: a header bar with
// the app name and quiz totals, the screen body, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaz/internal/ui/theme"
)

// Smallest terminal the frame is drawn in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// HeaderStats is the summary shown on the right of the header.
type HeaderStats struct {
	Sessions int // finished quizzes
	Best     int // best percentage, -1 when nothing was played
}

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg))
}

// RenderHeader draws the app name on the left, title centered and stats
// on the right.
func RenderHeader(title string, stats HeaderStats, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("かな Kanaz")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := headerStats(stats)

	inner := max(width-theme.Header.GetHorizontalFrameSize(), 0)
	side := max((inner-lipgloss.Width(center))/2, 0)

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.PlaceHorizontal(side, lipgloss.Left, brand),
		center,
		lipgloss.PlaceHorizontal(max(inner-side-lipgloss.Width(center), 0), lipgloss.Right, right),
	)
	return theme.Header.Width(width).Render(row)
}

func headerStats(s HeaderStats) string {
	accent := lipgloss.NewStyle().Foreground(theme.Accent)
	best := "–"
	if s.Best >= 0 {
		best = fmt.Sprintf("%d%%", s.Best)
	}
	return accent.Render(fmt.Sprintf("◆ %d quizzes", s.Sessions)) + "   " + accent.Render("★ best "+best)
}

// RenderFooter draws the key hints in one row.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	for i, h := range hints {
		if i > 0 {
			b.WriteString("   ")
		}
		b.WriteString(key.Render(h.Key) + " " + desc.Render(h.Description))
	}
	return theme.Footer.Width(width).Render(b.String())
}

// RenderFrame stacks header, content and footer, sizing the content to
// whatever height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(body).MaxHeight(body).Render(content),
		footer,
	)
}
