package engine

import (
	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
)

// Play binds a Session to the interaction reducer of its current exercise.
// Reducer changes are forwarded to the session as the pending answer, and the
// reducer is rebuilt whenever the session advances.
type Play struct {
	session *Session
	shuffle func([]string)

	reorder *ReorderState // set for reorder exercises
	match   *MatchState   // set for match exercises
}

// NewPlay starts a session over lesson. shuffle, when not nil, is applied once
// to the right column of every match exercise.
func NewPlay(lesson entities.Lesson, shuffle func([]string), opts ...Option) *Play {
	p := &Play{
		session: NewSession(lesson, opts...),
		shuffle: shuffle,
	}
	p.resetReducers()
	return p
}

func (p *Play) Session() *Session      { return p.session }
func (p *Play) Reorder() *ReorderState { return p.reorder }
func (p *Play) Match() *MatchState     { return p.match }

// Choose selects a text answer: an option of a choice exercise or the value
// of an image option.
func (p *Play) Choose(answer string) error {
	if p.reorder != nil || p.match != nil {
		return ErrInvalidTransition
	}
	return p.session.SelectAnswer(Text(answer))
}

// PickAt moves the available reorder token at index i into the answer line.
func (p *Play) PickAt(i int) error {
	if p.reorder == nil || p.session.IsSubmitted() {
		return ErrInvalidTransition
	}
	if _, err := p.reorder.PickAt(i); err != nil {
		return err
	}
	return p.session.SelectAnswer(p.reorder.Candidate())
}

// ClearSlot returns the token in reorder slot i to the available tokens.
func (p *Play) ClearSlot(i int) error {
	if p.reorder == nil || p.session.IsSubmitted() {
		return ErrInvalidTransition
	}
	if err := p.reorder.ClearSlot(i); err != nil {
		return err
	}
	return p.session.SelectAnswer(p.reorder.Candidate())
}

// TapLeftAt taps the left match item at index i.
func (p *Play) TapLeftAt(i int) (*PairFeedback, error) {
	if p.match == nil || p.session.IsSubmitted() {
		return nil, ErrInvalidTransition
	}
	return p.afterTap(p.match.TapLeftAt(i))
}

// TapRightAt taps the right match item at display index i.
func (p *Play) TapRightAt(i int) (*PairFeedback, error) {
	if p.match == nil || p.session.IsSubmitted() {
		return nil, ErrInvalidTransition
	}
	return p.afterTap(p.match.TapRightAt(i))
}

func (p *Play) afterTap(fb *PairFeedback, err error) (*PairFeedback, error) {
	if err != nil || fb == nil {
		return fb, err
	}
	return fb, p.session.SelectAnswer(p.match.Candidate())
}

// Submit evaluates the pending answer and freezes the reducer.
func (p *Play) Submit() (Feedback, error) {
	fb, err := p.session.Submit()
	if err != nil {
		return fb, err
	}
	if p.reorder != nil {
		p.reorder.Lock()
	}
	if p.match != nil {
		p.match.Lock()
	}
	return fb, nil
}

// Skip submits an empty answer for the current exercise. It is how a learner
// gives up on an exercise, including one whose payload was malformed.
func (p *Play) Skip() (Feedback, error) {
	if err := p.session.SelectAnswer(Text("")); err != nil {
		return Feedback{}, err
	}
	return p.Submit()
}

// Advance moves to the next exercise and rebuilds the reducer for it.
func (p *Play) Advance() error {
	if err := p.session.Advance(); err != nil {
		return err
	}
	p.resetReducers()
	return nil
}

func (p *Play) resetReducers() {
	p.reorder, p.match = nil, nil

	ex, ok := p.session.Current()
	if !ok {
		return
	}

	// Malformed bodies leave the reducer unset; the exercise is then judged
	// incorrect on submission.
	switch ex.Body.(type) {
	case *entities.Reorder:
		p.reorder, _ = NewReorder(ex)
	case *entities.Match:
		p.match, _ = NewMatch(ex, p.shuffle)
	}
}
