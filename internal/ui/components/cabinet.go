package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaz/internal/ui/theme"
)

// Cabinet content never grows past maxContentWidth or shrinks below
// minContentWidth. The frame takes 2 columns of border and 4 of padding.
const (
	maxContentWidth = 60
	minContentWidth = 20
	cabinetChrome   = 6
)

// ContentWidth is the width every card and title inside a cabinet of the
// given outer width is drawn at, so that stacked boxes line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-cabinetChrome, minContentWidth), maxContentWidth)
}

// CabinetFrame centers content inside a double border filling width x height.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Panel is the usual screen body: content in a card inside the cabinet.
func Panel(content string, width, height int) string {
	return CabinetFrame(ArcadeCard(content, ContentWidth(width)), width, height)
}

// ArcadeCard draws content in a rounded card cw columns wide.
func ArcadeCard(content string, cw int) string {
	return theme.Card.Width(cw - 2).Align(lipgloss.Center).Render(content)
}

// ArcadeButton draws a bordered button; the selected one is filled.
func ArcadeButton(label string, selected bool, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if !selected {
		return style.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
	}
	return style.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.ArcadeYellow).
		BorderForeground(theme.ArcadeYellow).
		Render("▸ " + label)
}

// ArcadeTitle is a centered section heading.
func ArcadeTitle(title string, cw int) string {
	return theme.Subtitle.Width(cw).Render(title)
}
