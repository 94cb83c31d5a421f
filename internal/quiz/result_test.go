package quiz

import "testing"

func TestTierFor(t *testing.T) {
	tests := []struct {
		pct  int
		want Tier
	}{
		{100, TierMastery},
		{90, TierMastery},
		{89, TierProficient},
		{70, TierProficient},
		{69, TierDeveloping},
		{50, TierDeveloping},
		{49, TierNeedsPractice},
		{0, TierNeedsPractice},
	}
	for _, tt := range tests {
		if got := TierFor(tt.pct); got != tt.want {
			t.Errorf("TierFor(%d) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestNewResultRounds(t *testing.T) {
	tests := []struct {
		score, total int
		wantPct      int
	}{
		{2, 3, 67},
		{1, 3, 33},
		{1, 8, 13},
		{0, 0, 0},
		{10, 10, 100},
	}
	for _, tt := range tests {
		got := newResult(tt.score, tt.total)
		if got.Percentage != tt.wantPct {
			t.Errorf("newResult(%d, %d).Percentage = %d, want %d", tt.score, tt.total, got.Percentage, tt.wantPct)
		}
	}
}

func TestTierMessages(t *testing.T) {
	for _, tier := range []Tier{TierMastery, TierProficient, TierDeveloping, TierNeedsPractice} {
		if tier.Message() == "" {
			t.Errorf("%s has no message", tier)
		}
	}
}
