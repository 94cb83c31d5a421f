// Package theme holds the colors and styles shared by every screen. The
// palette can be switched between dark and light at runtime; Apply
// rebuilds every style from the new colors.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Name identifies a palette.
type Name string

const (
	Dark  Name = "dark"
	Light Name = "light"
)

// Palette is a full set of colors.
type Palette struct {
	Primary      color.Color
	Secondary    color.Color
	Accent       color.Color
	Success      color.Color
	Error        color.Color
	Text         color.Color
	TextDim      color.Color
	BgDark       color.Color
	BgCard       color.Color
	Border       color.Color
	ArcadeYellow color.Color
	ArcadeCyan   color.Color
}

var palettes = map[Name]Palette{
	Dark: {
		Primary:      lipgloss.Color("#E11D48"), // Torii Red
		Secondary:    lipgloss.Color("#14B8A6"), // Teal
		Accent:       lipgloss.Color("#F97316"), // Orange
		Success:      lipgloss.Color("#22C55E"), // Green
		Error:        lipgloss.Color("#F43F5E"), // Rose
		Text:         lipgloss.Color("#F8FAFC"), // White
		TextDim:      lipgloss.Color("#94A3B8"), // Slate
		BgDark:       lipgloss.Color("#0F172A"), // Deep Navy
		BgCard:       lipgloss.Color("#1E293B"), // Dark Slate
		Border:       lipgloss.Color("#334155"), // Slate
		ArcadeYellow: lipgloss.Color("#FACC15"),
		ArcadeCyan:   lipgloss.Color("#22D3EE"),
	},
	Light: {
		Primary:      lipgloss.Color("#BE123C"),
		Secondary:    lipgloss.Color("#0F766E"),
		Accent:       lipgloss.Color("#C2410C"),
		Success:      lipgloss.Color("#15803D"),
		Error:        lipgloss.Color("#BE123C"),
		Text:         lipgloss.Color("#0F172A"),
		TextDim:      lipgloss.Color("#475569"),
		BgDark:       lipgloss.Color("#F8FAFC"),
		BgCard:       lipgloss.Color("#E2E8F0"),
		Border:       lipgloss.Color("#CBD5E1"),
		ArcadeYellow: lipgloss.Color("#CA8A04"),
		ArcadeCyan:   lipgloss.Color("#0E7490"),
	},
}

// Color palette, set by Apply.
var (
	Primary      color.Color
	Secondary    color.Color
	Accent       color.Color
	Success      color.Color
	Error        color.Color
	Text         color.Color
	TextDim      color.Color
	BgDark       color.Color
	BgCard       color.Color
	Border       color.Color
	ArcadeYellow color.Color
	ArcadeCyan   color.Color
)

// Typography
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
	Glyph    lipgloss.Style
)

// Layout
var (
	Header lipgloss.Style
	Footer lipgloss.Style
	Card   lipgloss.Style
)

// States
var (
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
)

// Components
var (
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
)

var current Name

func init() {
	Apply(Dark)
}

// Parse maps "dark" or "light" to a palette name. Anything else is dark.
func Parse(s string) Name {
	if Name(s) == Light {
		return Light
	}
	return Dark
}

// Current returns the active palette name.
func Current() Name {
	return current
}

// Toggle switches between dark and light and returns the new name.
func Toggle() Name {
	if current == Dark {
		Apply(Light)
	} else {
		Apply(Dark)
	}
	return current
}

// Apply switches to the named palette. Unknown names select dark.
func Apply(name Name) {
	p, ok := palettes[name]
	if !ok {
		name, p = Dark, palettes[Dark]
	}
	current = name

	Primary, Secondary, Accent = p.Primary, p.Secondary, p.Accent
	Success, Error = p.Success, p.Error
	Text, TextDim = p.Text, p.TextDim
	BgDark, BgCard, Border = p.BgDark, p.BgCard, p.Border
	ArcadeYellow, ArcadeCyan = p.ArcadeYellow, p.ArcadeCyan

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ArcadeCyan).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Glyph = lipgloss.NewStyle().
		Bold(true).
		Foreground(ArcadeYellow)

	Header = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	Footer = Header

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	ButtonActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(BgDark).
		Bold(true).
		Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
}
