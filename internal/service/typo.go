package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TypoDetector recognises wrong typed answers that are close to an accepted
// one. It never changes correctness; it only lets the learner know the
// mistake was a spelling slip.
type TypoDetector struct {
	threshold float64 // similarity threshold (0.0 - 1.0)
}

// NewTypoDetector creates a new TypoDetector.
func NewTypoDetector() *TypoDetector {
	return &TypoDetector{
		threshold: 0.8,
	}
}

// NearMiss reports whether answer differs from one of accepted only by case,
// accents, spacing or a small edit.
func (d *TypoDetector) NearMiss(answer string, accepted []string) bool {
	user := normalize(answer)
	if user == "" {
		return false
	}

	for _, a := range accepted {
		correct := normalize(a)
		if user == correct || d.similarity(user, correct) >= d.threshold {
			return true
		}
	}
	return false
}

// normalize folds case, strips diacritics and collapses whitespace.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}

	return strings.Join(strings.Fields(s), " ")
}

// similarity calculates the similarity between two strings using Levenshtein distance.
func (d *TypoDetector) similarity(s1, s2 string) float64 {
	distance := levenshteinDistance(s1, s2)
	maxLen := max(len([]rune(s1)), len([]rune(s2)))

	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(distance)/float64(maxLen)
}

// levenshteinDistance calculates the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)

	// Two rows instead of the full matrix.
	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i

		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}

			curr[j] = min(
				curr[j-1]+1,    // insertion
				prev[j]+1,      // deletion
				prev[j-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(r2)]
}
