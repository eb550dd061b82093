package study

import (
	"fmt"
	"math"
)

// Tier is the qualitative feedback bucket derived from final accuracy.
type Tier string

const (
	TierMastered    Tier = "mastered"
	TierGood        Tier = "good"
	TierNeedsReview Tier = "needs_review"
)

// Accuracy returns the rounded percentage of correct answers, or 0 when
// nothing has been answered yet.
func Accuracy(correct, answered int) int {
	if answered <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(answered) * 100))
}

// TierFor maps a final accuracy percentage to a feedback tier. Boundaries
// are inclusive of the upper tier: 90 is mastered, 70 is good.
func TierFor(accuracy int) Tier {
	switch {
	case accuracy >= 90:
		return TierMastered
	case accuracy >= 70:
		return TierGood
	default:
		return TierNeedsReview
	}
}

// FormatElapsed renders an elapsed second count as MM:SS.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
