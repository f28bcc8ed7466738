package engine

import (
	"fmt"
	"slices"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
)

// PairFeedback is a committed pair with its live correctness.
type PairFeedback struct {
	Pair    entities.Pair
	Correct bool
}

// MatchState turns two-sided taps into committed pairs.
//
// Committed pairs form a partial injective mapping from left items to right
// items. A pair cannot be uncommitted.
type MatchState struct {
	ex      entities.Exercise
	lefts   []string
	rights  []string // display order, fixed at construction
	byLeft  map[string]string
	byRight map[string]string
	pairs   []PairFeedback // commit order

	selLeft  string
	selRight string
	hasLeft  bool
	hasRight bool
	locked   bool
}

// NewMatch builds the interaction state for a match exercise. When shuffle is
// not nil it is applied once to the right column; the order never changes
// afterwards.
func NewMatch(ex entities.Exercise, shuffle func([]string)) (*MatchState, error) {
	body, ok := ex.Body.(*entities.Match)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a match exercise", entities.ErrMalformedExercise, ex.ID)
	}

	rights := body.Rights()
	if shuffle != nil {
		shuffle(rights)
	}

	return &MatchState{
		ex:      ex,
		lefts:   body.Lefts(),
		rights:  rights,
		byLeft:  make(map[string]string, len(body.Options)),
		byRight: make(map[string]string, len(body.Options)),
	}, nil
}

// TapLeft handles a tap on a left item. It returns the committed pair when
// the tap completes one.
func (m *MatchState) TapLeft(item string) (*PairFeedback, error) {
	if m.locked || !slices.Contains(m.lefts, item) {
		return nil, ErrInvalidTransition
	}
	if _, paired := m.byLeft[item]; paired {
		return nil, ErrInvalidTransition
	}

	if m.hasRight {
		return m.commit(item, m.selRight), nil
	}

	if m.hasLeft && m.selLeft == item {
		m.selLeft, m.hasLeft = "", false
		return nil, nil
	}
	m.selLeft, m.hasLeft = item, true
	return nil, nil
}

// TapRight handles a tap on a right item, symmetric to TapLeft.
func (m *MatchState) TapRight(item string) (*PairFeedback, error) {
	if m.locked || !slices.Contains(m.rights, item) {
		return nil, ErrInvalidTransition
	}
	if _, paired := m.byRight[item]; paired {
		return nil, ErrInvalidTransition
	}

	if m.hasLeft {
		return m.commit(m.selLeft, item), nil
	}

	if m.hasRight && m.selRight == item {
		m.selRight, m.hasRight = "", false
		return nil, nil
	}
	m.selRight, m.hasRight = item, true
	return nil, nil
}

// TapLeftAt taps the left item at display index i.
func (m *MatchState) TapLeftAt(i int) (*PairFeedback, error) {
	if i < 0 || i >= len(m.lefts) {
		return nil, ErrInvalidTransition
	}
	return m.TapLeft(m.lefts[i])
}

// TapRightAt taps the right item at display index i.
func (m *MatchState) TapRightAt(i int) (*PairFeedback, error) {
	if i < 0 || i >= len(m.rights) {
		return nil, ErrInvalidTransition
	}
	return m.TapRight(m.rights[i])
}

func (m *MatchState) commit(left, right string) *PairFeedback {
	p := entities.Pair{Left: left, Right: right}
	fb := PairFeedback{Pair: p, Correct: PairCorrect(m.ex, p)}

	m.byLeft[left] = right
	m.byRight[right] = left
	m.pairs = append(m.pairs, fb)

	m.selLeft, m.hasLeft = "", false
	m.selRight, m.hasRight = "", false
	return &fb
}

// Candidate returns the committed pairs.
func (m *MatchState) Candidate() Pairs {
	out := make(Pairs, len(m.pairs))
	for i, fb := range m.pairs {
		out[i] = fb.Pair
	}
	return out
}

// Complete reports whether every left item is paired.
func (m *MatchState) Complete() bool {
	return len(m.pairs) == len(m.lefts)
}

// Lock freezes the state once the answer has been submitted.
func (m *MatchState) Lock() { m.locked = true }

func (m *MatchState) Locked() bool          { return m.locked }
func (m *MatchState) Lefts() []string       { return slices.Clone(m.lefts) }
func (m *MatchState) Rights() []string      { return slices.Clone(m.rights) }
func (m *MatchState) Pairs() []PairFeedback { return slices.Clone(m.pairs) }

// SelectedLeft returns the pending left selection, if any.
func (m *MatchState) SelectedLeft() (string, bool) { return m.selLeft, m.hasLeft }

// SelectedRight returns the pending right selection, if any.
func (m *MatchState) SelectedRight() (string, bool) { return m.selRight, m.hasRight }

// PairedWith returns the right item committed to left.
func (m *MatchState) PairedWith(left string) (string, bool) {
	r, ok := m.byLeft[left]
	return r, ok
}

// RightUsed reports whether right already belongs to a committed pair.
func (m *MatchState) RightUsed(right string) bool {
	_, ok := m.byRight[right]
	return ok
}
