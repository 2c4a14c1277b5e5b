package match

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// DefaultThreshold is the minimum similarity ratio for a guess to count as
// correct. Chosen leniently so typos and minor phrasing differences still
// accept.
const DefaultThreshold = 0.8

// normalize case-folds and trims a string before comparison
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Matches reports whether input is close enough to candidate. An exact match
// after normalization always accepts; otherwise the strings accept when
// 1 - distance/maxLen meets the threshold, where distance is the
// single-character edit distance.
func Matches(input, candidate string, threshold float64) bool {
	a := normalize(input)
	b := normalize(candidate)

	if a == b {
		return true
	}

	distance := levenshtein.ComputeDistance(a, b)

	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return true
	}

	return 1-float64(distance)/float64(maxLen) >= threshold
}

// MatchesAny reports whether input matches at least one candidate
func MatchesAny(input string, candidates []string, threshold float64) bool {
	for _, candidate := range candidates {
		if Matches(input, candidate, threshold) {
			return true
		}
	}
	return false
}
