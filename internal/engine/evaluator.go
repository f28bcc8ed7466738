package engine

import (
	"slices"
	"strings"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
)

// IsCorrect decides whether c answers ex correctly.
// Malformed exercises and candidates of the wrong kind are never correct.
func IsCorrect(ex entities.Exercise, c Candidate) bool {
	if c == nil || ex.Validate() != nil {
		return false
	}

	switch b := ex.Body.(type) {
	case *entities.Choice:
		t, ok := c.(Text)
		return ok && slices.Contains(b.Accepted, string(t))

	case *entities.ImageSelect:
		t, ok := c.(Text)
		return ok && string(t) == b.Answer

	case *entities.Reorder:
		t, ok := c.(Text)
		return ok && normalizeSpaces(string(t)) == normalizeSpaces(b.Answer)

	case *entities.Match:
		p, ok := c.(Pairs)
		return ok && samePairSet(p, b.Answer)

	default:
		return false
	}
}

// PairCorrect reports whether a single committed pair belongs to the correct
// answer of a match exercise.
func PairCorrect(ex entities.Exercise, p entities.Pair) bool {
	m, ok := ex.Body.(*entities.Match)
	if !ok {
		return false
	}
	return slices.Contains(m.Answer, p)
}

func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func samePairSet(got, want []entities.Pair) bool {
	g := pairSet(got)
	w := pairSet(want)
	if len(g) != len(w) {
		return false
	}
	for p := range w {
		if _, ok := g[p]; !ok {
			return false
		}
	}
	return true
}

func pairSet(pairs []entities.Pair) map[entities.Pair]struct{} {
	set := make(map[entities.Pair]struct{}, len(pairs))
	for _, p := range pairs {
		set[p] = struct{}{}
	}
	return set
}
