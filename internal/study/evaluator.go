package study

import "strings"

// Evaluate compares a free-text answer against the stored correct answer.
// Both sides are trimmed of leading/trailing whitespace and lowercased,
// then compared for exact equality. No partial credit, no normalization
// of interior whitespace, no locale-aware folding.
func Evaluate(answer, correct string) bool {
	return strings.ToLower(strings.TrimSpace(answer)) == strings.ToLower(strings.TrimSpace(correct))
}
