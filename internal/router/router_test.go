package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kanaz/internal/screen"
)

// fakeScreen records lifecycle calls in a shared log.
type fakeScreen struct {
	name string
	log  *[]string
}

func (f *fakeScreen) Init() tea.Cmd {
	*f.log = append(*f.log, "init "+f.name)
	return nil
}
func (f *fakeScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return f, nil }
func (f *fakeScreen) View(int, int) string                    { return f.name }
func (f *fakeScreen) Title() string                           { return f.name }
func (f *fakeScreen) Resume() tea.Cmd {
	*f.log = append(*f.log, "resume "+f.name)
	return nil
}
func (f *fakeScreen) Dispose() tea.Cmd {
	*f.log = append(*f.log, "dispose "+f.name)
	return nil
}

// stack builds a router holding the named screens, bottom first, and
// clears the log.
func stack(t *testing.T, names ...string) (*Router, *[]string) {
	t.Helper()
	require.NotEmpty(t, names)
	var log []string
	r := New(&fakeScreen{name: names[0], log: &log})
	for _, n := range names[1:] {
		r.Push(&fakeScreen{name: n, log: &log})
	}
	log = log[:0]
	return r, &log
}

func screenNames(r *Router) []string {
	names := make([]string, 0, r.Depth())
	for _, s := range r.stack {
		names = append(names, s.Title())
	}
	return names
}

func TestNavigationMessages(t *testing.T) {
	tests := []struct {
		name    string
		initial []string
		msg     func(log *[]string) tea.Msg
		want    []string
		calls   []string
	}{
		{
			name:    "push",
			initial: []string{"home"},
			msg:     func(l *[]string) tea.Msg { return PushScreenMsg{Screen: &fakeScreen{name: "quiz", log: l}} },
			want:    []string{"home", "quiz"},
			calls:   []string{"init quiz"},
		},
		{
			name:    "pop",
			initial: []string{"home", "setup"},
			msg:     func(*[]string) tea.Msg { return PopScreenMsg{} },
			want:    []string{"home"},
			calls:   []string{"dispose setup", "resume home"},
		},
		{
			name:    "pop keeps root",
			initial: []string{"home"},
			msg:     func(*[]string) tea.Msg { return PopScreenMsg{} },
			want:    []string{"home"},
		},
		{
			name:    "replace",
			initial: []string{"home", "quiz"},
			msg:     func(l *[]string) tea.Msg { return ReplaceScreenMsg{Screen: &fakeScreen{name: "summary", log: l}} },
			want:    []string{"home", "summary"},
			calls:   []string{"dispose quiz", "init summary"},
		},
		{
			name:    "replace root",
			initial: []string{"welcome"},
			msg:     func(l *[]string) tea.Msg { return ReplaceScreenMsg{Screen: &fakeScreen{name: "home", log: l}} },
			want:    []string{"home"},
			calls:   []string{"dispose welcome", "init home"},
		},
		{
			name:    "pop to root",
			initial: []string{"home", "setup", "quiz", "summary"},
			msg:     func(*[]string) tea.Msg { return PopToRootMsg{} },
			want:    []string{"home"},
			calls:   []string{"dispose summary", "dispose quiz", "dispose setup", "resume home"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, log := stack(t, tt.initial...)
			r.Update(tt.msg(log))

			assert.Equal(t, tt.want, screenNames(r))
			assert.Equal(t, tt.calls, nilIfEmpty(*log))
		})
	}
}

func TestPopResumesOnlyTheRevealedScreen(t *testing.T) {
	r, log := stack(t, "home", "charts", "grid")

	r.Pop()
	r.Pop()
	assert.Equal(t, []string{"dispose grid", "resume charts", "dispose charts", "resume home"}, *log)
}

func TestViewAndTitleFollowTop(t *testing.T) {
	r, _ := stack(t, "home", "history")
	assert.Equal(t, "history", r.View(80, 24))
	assert.Equal(t, 2, r.Depth())

	r.Pop()
	assert.Equal(t, "home", r.Active().Title())
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
