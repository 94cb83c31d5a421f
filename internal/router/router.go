// Package router keeps the stack of screens behind the app frame and
// applies the navigation messages screens send.
package router

import (
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kanaz/internal/screen"
)

// Navigation messages. Screens return them from commands; the app model
// passes them to Update.
type (
	// PushScreenMsg opens Screen above the current one.
	PushScreenMsg struct{ Screen screen.Screen }

	// PopScreenMsg closes the current screen.
	PopScreenMsg struct{}

	// ReplaceScreenMsg swaps the current screen for Screen.
	ReplaceScreenMsg struct{ Screen screen.Screen }

	// PopToRootMsg closes everything above the bottom screen.
	PopToRootMsg struct{}
)

// Router is a screen stack. The bottom screen is never popped.
type Router struct {
	stack []screen.Screen
}

// New returns a router showing root.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push opens s and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen unless it is the root.
func (r *Router) Pop() tea.Cmd {
	return r.truncate(len(r.stack) - 1)
}

// PopToRoot closes every screen above the root.
func (r *Router) PopToRoot() tea.Cmd {
	return r.truncate(1)
}

// Replace disposes the top screen and puts s in its place.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	n := len(r.stack)
	if n == 0 {
		return r.Push(s)
	}
	old := r.stack[n-1]
	r.stack[n-1] = s
	return tea.Batch(dispose(old), s.Init())
}

// truncate keeps the bottom n screens, disposing the rest from the top
// down, then resumes the screen left on top.
func (r *Router) truncate(n int) tea.Cmd {
	if n < 1 || n >= len(r.stack) {
		return nil
	}
	var cmds []tea.Cmd
	for _, s := range slices.Backward(r.stack[n:]) {
		cmds = append(cmds, dispose(s))
	}
	clear(r.stack[n:])
	r.stack = r.stack[:n]
	return tea.Batch(append(cmds, resume(r.Active()))...)
}

// Active is the top screen, nil only for an empty router.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth is the number of open screens.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and hands anything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopToRootMsg:
		return r.PopToRoot()
	}

	top := r.Active()
	if top == nil {
		return nil
	}
	next, cmd := top.Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

// View draws the active screen into width x height.
func (r *Router) View(width, height int) string {
	if top := r.Active(); top != nil {
		return top.View(width, height)
	}
	return ""
}

func dispose(s screen.Screen) tea.Cmd {
	if d, ok := s.(screen.Disposer); ok {
		return d.Dispose()
	}
	return nil
}

func resume(s screen.Screen) tea.Cmd {
	if rs, ok := s.(screen.Resumer); ok {
		return rs.Resume()
	}
	return nil
}
