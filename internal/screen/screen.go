// Package screen defines what the router needs from a screen, plus the
// optional hooks it checks for.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kanaz/internal/ui/layout"
)

// Screen is one page of the app. View draws only the body; the frame
// draws header and footer around it.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string

	// Title is shown in the header. Empty hides it.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Disposer is called when the screen leaves the stack, to stop audio or
// timers it started.
type Disposer interface {
	Dispose() tea.Cmd
}

// Resumer is called when the screen is on top again after a pop, to
// reload data the screen above may have changed.
type Resumer interface {
	Resume() tea.Cmd
}

// BackHandler screens get Esc themselves while HandlesBack is true, for
// example to confirm leaving a quiz.
type BackHandler interface {
	HandlesBack() bool
}
