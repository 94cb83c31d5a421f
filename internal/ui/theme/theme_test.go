package theme

import "testing"

func TestToggle(t *testing.T) {
	Apply(Dark)
	t.Cleanup(func() { Apply(Dark) })

	darkText := Text
	if got := Toggle(); got != Light {
		t.Fatalf("Toggle() = %q, want %q", got, Light)
	}
	if Text == darkText {
		t.Error("expected text color to change with the palette")
	}
	if got := Toggle(); got != Dark {
		t.Fatalf("Toggle() = %q, want %q", got, Dark)
	}
	if Text != darkText {
		t.Error("expected dark text color to be restored")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Name
	}{
		{"light", Light},
		{"dark", Dark},
		{"", Dark},
		{"solarized", Dark},
	}
	for _, tt := range tests {
		if got := Parse(tt.in); got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyUnknownFallsBackToDark(t *testing.T) {
	t.Cleanup(func() { Apply(Dark) })
	Apply(Name("neon"))
	if Current() != Dark {
		t.Errorf("Current() = %q, want %q", Current(), Dark)
	}
}
