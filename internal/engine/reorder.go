package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
)

// Slot is one position of the reorder answer line.
type Slot struct {
	Token  string
	Filled bool
}

// ReorderState assembles a reorder candidate from tapped tokens.
//
// The placed tokens plus the available tokens always make up the exercise's
// original token multiset.
type ReorderState struct {
	available []string
	slots     []Slot
	locked    bool
}

// NewReorder builds the interaction state for a reorder exercise.
func NewReorder(ex entities.Exercise) (*ReorderState, error) {
	r := &ReorderState{}
	if err := r.Reset(ex); err != nil {
		return nil, err
	}
	return r, nil
}

// Reset reinitialises the state for ex: every token available, every slot empty.
func (r *ReorderState) Reset(ex entities.Exercise) error {
	body, ok := ex.Body.(*entities.Reorder)
	if !ok {
		return fmt.Errorf("%w: %s is not a reorder exercise", entities.ErrMalformedExercise, ex.ID)
	}

	r.available = slices.Clone(body.Tokens)
	r.slots = make([]Slot, len(body.Words()))
	r.locked = false
	return nil
}

// PickToken places one instance of token into the first empty slot and
// returns that slot's index.
func (r *ReorderState) PickToken(token string) (int, error) {
	i := slices.Index(r.available, token)
	if i < 0 {
		return -1, ErrInvalidTransition
	}
	return r.PickAt(i)
}

// PickAt places the available token at index i into the first empty slot.
func (r *ReorderState) PickAt(i int) (int, error) {
	if r.locked || i < 0 || i >= len(r.available) {
		return -1, ErrInvalidTransition
	}

	slot := slices.IndexFunc(r.slots, func(s Slot) bool { return !s.Filled })
	if slot < 0 {
		return -1, ErrInvalidTransition
	}

	r.slots[slot] = Slot{Token: r.available[i], Filled: true}
	r.available = slices.Delete(r.available, i, i+1)
	return slot, nil
}

// ClearSlot empties a filled slot and returns its token to the end of the
// available tokens.
func (r *ReorderState) ClearSlot(i int) error {
	if r.locked || i < 0 || i >= len(r.slots) || !r.slots[i].Filled {
		return ErrInvalidTransition
	}

	r.available = append(r.available, r.slots[i].Token)
	r.slots[i] = Slot{}
	return nil
}

// Candidate joins the placed tokens with single spaces; empty slots
// contribute nothing.
func (r *ReorderState) Candidate() Text {
	words := make([]string, 0, len(r.slots))
	for _, s := range r.slots {
		if s.Filled {
			words = append(words, s.Token)
		}
	}
	return Text(strings.Join(words, " "))
}

// Lock freezes the state once the answer has been submitted.
func (r *ReorderState) Lock() { r.locked = true }

func (r *ReorderState) Locked() bool        { return r.locked }
func (r *ReorderState) Available() []string { return slices.Clone(r.available) }
func (r *ReorderState) Slots() []Slot       { return slices.Clone(r.slots) }

// Full reports whether every slot holds a token.
func (r *ReorderState) Full() bool {
	return !slices.ContainsFunc(r.slots, func(s Slot) bool { return !s.Filled })
}
