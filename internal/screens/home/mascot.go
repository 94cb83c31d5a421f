package home

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanaz/internal/ui/theme"
)

// MascotVariant is the daruma's mood, picked from the last quiz tier.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // no quiz yet, or an ordinary one
	MascotCelebrating                      // last quiz reached mastery
	MascotAlert                            // last quiz needs practice
)

type mascotArt struct {
	lines []string
	color func() color.Color
}

var mascots = map[MascotVariant]mascotArt{
	MascotIdle: {
		lines: []string{
			" ╭────╮ ",
			"╭┤●  ●├╮",
			"│╰─ω──╯│",
			"│ かな │",
			"╰──────╯",
		},
		color: func() color.Color { return theme.Primary },
	},
	MascotCelebrating: {
		lines: []string{
			"✦╭────╮✦",
			"╭┤^  ^├╮",
			"│╰─▽──╯│",
			"│ 合格 │",
			"╰──────╯",
		},
		color: func() color.Color { return theme.ArcadeYellow },
	},
	MascotAlert: {
		lines: []string{
			" ╭────╮ !",
			"╭┤●  ●├╮ ",
			"│╰─~──╯│ ",
			"│ 頑張 │ ",
			"╰──────╯ ",
		},
		color: func() color.Color { return theme.Accent },
	},
}

// RenderMascot draws the daruma for v. Unknown variants draw the idle one.
func RenderMascot(v MascotVariant) string {
	art, ok := mascots[v]
	if !ok {
		art = mascots[MascotIdle]
	}
	return lipgloss.NewStyle().
		Foreground(art.color()).
		Render(lipgloss.JoinVertical(lipgloss.Center, art.lines...))
}
