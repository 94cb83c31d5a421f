package layout

import (
	"strings"
	"testing"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{80, 23, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeaderShowsStats(t *testing.T) {
	out := RenderHeader("Quiz", HeaderStats{Sessions: 3, Best: 90}, 100)
	for _, want := range []string{"Kanaz", "Quiz", "3 quizzes", "best 90%"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHeaderWithoutHistory(t *testing.T) {
	out := RenderHeader("Home", HeaderStats{Best: -1}, 100)
	if strings.Contains(out, "%") {
		t.Errorf("expected no percentage before any quiz, got:\n%s", out)
	}
}

func TestRenderFooterListsHints(t *testing.T) {
	out := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}, {Key: "p", Description: "Play"}}, 80)
	if !strings.Contains(out, "Esc") || !strings.Contains(out, "Play") {
		t.Errorf("footer missing hints:\n%s", out)
	}
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("Quiz", HeaderStats{Best: -1}, 90)
	footer := RenderFooter([]KeyHint{{Key: "q", Description: "Quit"}}, 90)

	out := RenderFrame(header, "か", footer, 90, 30)
	if got := strings.Count(out, "\n") + 1; got != 30 {
		t.Errorf("frame is %d lines, want 30", got)
	}
	if !strings.Contains(out, "か") {
		t.Errorf("frame lost its content:\n%s", out)
	}
}

func TestRenderMinSizeMessage(t *testing.T) {
	out := RenderMinSizeMessage(60, 20)
	if !strings.Contains(out, "80 x 24") || !strings.Contains(out, "60 x 20") {
		t.Errorf("unexpected message:\n%s", out)
	}
}
