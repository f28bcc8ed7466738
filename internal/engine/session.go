package engine

import (
	"math"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
)

const (
	// DefaultMaxLives is the number of lives a session starts with.
	DefaultMaxLives = 5

	// ExpectedThreshold is the share of correct answers that counts toward
	// daily streak progress.
	ExpectedThreshold = 0.7
)

// State is the lifecycle state of a session.
type State int

const (
	StateInProgress State = iota
	StateFailed           // lives ran out before the last exercise
	StateCompleted        // every exercise was attempted
)

func (s State) String() string {
	switch s {
	case StateInProgress:
		return "in_progress"
	case StateFailed:
		return "failed"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Feedback is the result of submitting an answer.
type Feedback struct {
	Correct       bool
	LivesLeft     int
	CorrectAnswer string // display text of the correct answer
	Finished      bool   // no exercise follows: lives ran out or this was the last one
}

// Option configures a Session.
type Option func(*Session)

// WithMaxLives overrides the number of lives. Non-positive values are ignored.
func WithMaxLives(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxLives = n
		}
	}
}

// Session sequences through a lesson's exercises, tracking lives and score.
// The lesson is borrowed and must not be modified while the session is live.
type Session struct {
	lesson    entities.Lesson
	maxLives  int
	index     int
	lives     int
	correct   int
	pending   Candidate
	submitted bool
}

// NewSession starts a session at the first exercise with full lives.
func NewSession(lesson entities.Lesson, opts ...Option) *Session {
	s := &Session{
		lesson:   lesson,
		maxLives: DefaultMaxLives,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lives = s.maxLives
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	switch {
	case s.index >= len(s.lesson.Exercises):
		return StateCompleted
	case s.lives == 0:
		return StateFailed
	default:
		return StateInProgress
	}
}

func (s *Session) Lesson() entities.Lesson { return s.lesson }
func (s *Session) Index() int              { return s.index }
func (s *Session) Total() int              { return len(s.lesson.Exercises) }
func (s *Session) Lives() int              { return s.lives }
func (s *Session) MaxLives() int           { return s.maxLives }
func (s *Session) CorrectCount() int       { return s.correct }
func (s *Session) Pending() Candidate      { return s.pending }
func (s *Session) IsSubmitted() bool       { return s.submitted }

// Current returns the exercise under the cursor, or false once the cursor
// has run past the last exercise.
func (s *Session) Current() (entities.Exercise, bool) {
	if s.index >= len(s.lesson.Exercises) {
		return entities.Exercise{}, false
	}
	return s.lesson.Exercises[s.index], true
}

// SelectAnswer records c as the pending answer for the current exercise.
func (s *Session) SelectAnswer(c Candidate) error {
	if c == nil || s.submitted || s.State() != StateInProgress {
		return ErrInvalidTransition
	}
	s.pending = c
	return nil
}

// Submit evaluates the pending answer. It is the only place where lives and
// the correct count change, and it refuses to run twice for one exercise.
func (s *Session) Submit() (Feedback, error) {
	if s.pending == nil || s.submitted || s.State() != StateInProgress {
		return Feedback{}, ErrInvalidTransition
	}

	ex := s.lesson.Exercises[s.index]
	correct := IsCorrect(ex, s.pending)

	s.submitted = true
	if correct {
		s.correct++
	} else {
		s.lives = max(0, s.lives-1)
	}

	return Feedback{
		Correct:       correct,
		LivesLeft:     s.lives,
		CorrectAnswer: ex.CorrectText(),
		Finished:      s.State() != StateInProgress || s.index == len(s.lesson.Exercises)-1,
	}, nil
}

// Advance moves to the next exercise after a submission.
func (s *Session) Advance() error {
	if !s.submitted || s.State() != StateInProgress {
		return ErrInvalidTransition
	}
	s.index++
	s.pending = nil
	s.submitted = false
	return nil
}

// Summary returns the terminal summary. It reports false while the session
// is still in progress.
func (s *Session) Summary() (entities.Summary, bool) {
	state := s.State()
	if state == StateInProgress {
		return entities.Summary{}, false
	}

	total := len(s.lesson.Exercises)
	sum := entities.Summary{
		Outcome:   entities.OutcomeCompleted,
		Correct:   s.correct,
		Total:     total,
		LivesLeft: s.lives,
	}
	if state == StateFailed {
		sum.Outcome = entities.OutcomeFailed
	}

	if total == 0 {
		return sum, true
	}

	ratio := float64(s.correct) / float64(total)
	sum.ScorePercent = roundHalfUp(ratio * 100)
	sum.XPEarned = roundHalfUp(ratio * float64(s.lesson.XPReward))
	sum.IsPerfect = s.correct == total
	sum.MetExpectedThreshold = ratio >= ExpectedThreshold

	return sum, true
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
