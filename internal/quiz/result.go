package quiz

import "math"

// Tier classifies a finished attempt by its percentage.
type Tier string

const (
	TierMastery       Tier = "mastery"
	TierProficient    Tier = "proficient"
	TierDeveloping    Tier = "developing"
	TierNeedsPractice Tier = "needs-practice"
)

// TierFor maps a percentage to its tier.
func TierFor(percentage int) Tier {
	switch {
	case percentage >= 90:
		return TierMastery
	case percentage >= 70:
		return TierProficient
	case percentage >= 50:
		return TierDeveloping
	default:
		return TierNeedsPractice
	}
}

// Message is the encouragement shown on the result screen.
func (t Tier) Message() string {
	switch t {
	case TierMastery:
		return "Excellent! Perfect recall."
	case TierProficient:
		return "Great work!"
	case TierDeveloping:
		return "Good effort, keep going."
	default:
		return "Keep practicing!"
	}
}

// Result summarizes a finished session.
type Result struct {
	Score      int
	Total      int
	Percentage int
	Tier       Tier
}

func newResult(score, total int) Result {
	if total == 0 {
		return Result{Tier: TierNeedsPractice}
	}
	pct := int(math.Round(100 * float64(score) / float64(total)))
	return Result{
		Score:      score,
		Total:      total,
		Percentage: pct,
		Tier:       TierFor(pct),
	}
}
