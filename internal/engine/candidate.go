// Package engine implements the exercise session engine: answer evaluation,
// the lesson session state machine and the per-format interaction reducers.
//
// Nothing in this package performs I/O or blocks. A Session and its reducers
// are owned by exactly one caller and are not safe for concurrent use.
package engine

import (
	"errors"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
)

// ErrInvalidTransition is returned when an operation is invoked out of turn.
// The state is left untouched; callers are free to ignore it.
var ErrInvalidTransition = errors.New("invalid transition")

// Candidate is a user-assembled answer: Text or Pairs.
type Candidate interface {
	candidate()
}

// Text is a single-string candidate. It is used by choice, listening,
// fill-in-blank and image_select exercises, and by reorder exercises as the
// space-joined placed tokens.
type Text string

func (Text) candidate() {}

// Pairs is the set of committed pairs of a match exercise.
type Pairs []entities.Pair

func (Pairs) candidate() {}
