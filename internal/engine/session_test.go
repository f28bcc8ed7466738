package engine

import (
	"errors"
	"testing"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
)

func answer(t *testing.T, s *Session, c Candidate) Feedback {
	t.Helper()
	if err := s.SelectAnswer(c); err != nil {
		t.Fatalf("SelectAnswer() error = %v", err)
	}
	fb, err := s.Submit()
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	return fb
}

func TestNewSession(t *testing.T) {
	s := NewSession(lessonOf(3, 10))

	if s.State() != StateInProgress {
		t.Errorf("State() = %v; want %v", s.State(), StateInProgress)
	}
	if s.Lives() != DefaultMaxLives {
		t.Errorf("Lives() = %d; want %d", s.Lives(), DefaultMaxLives)
	}
	if s.Index() != 0 || s.CorrectCount() != 0 || s.IsSubmitted() || s.Pending() != nil {
		t.Error("new session is not at its initial state")
	}
	if _, ok := s.Summary(); ok {
		t.Error("Summary() available for an in-progress session")
	}
}

func TestWithMaxLives(t *testing.T) {
	if got := NewSession(lessonOf(1, 0), WithMaxLives(3)).Lives(); got != 3 {
		t.Errorf("Lives() = %d; want 3", got)
	}
	if got := NewSession(lessonOf(1, 0), WithMaxLives(0)).Lives(); got != DefaultMaxLives {
		t.Errorf("Lives() = %d; want %d", got, DefaultMaxLives)
	}
}

func TestSession_IncorrectAnswerCostsALife(t *testing.T) {
	lesson := entities.Lesson{
		ID:       "l",
		XPReward: 10,
		Exercises: []entities.Exercise{
			choiceExercise("ex-1", "Hello", "Hello", "Goodbye", "Thanks"),
		},
	}
	s := NewSession(lesson)

	fb := answer(t, s, Text("Goodbye"))

	if fb.Correct {
		t.Error("Feedback.Correct = true; want false")
	}
	if s.Lives() != DefaultMaxLives-1 {
		t.Errorf("Lives() = %d; want %d", s.Lives(), DefaultMaxLives-1)
	}
	if s.CorrectCount() != 0 {
		t.Errorf("CorrectCount() = %d; want 0", s.CorrectCount())
	}
	if fb.CorrectAnswer != "Hello" {
		t.Errorf("Feedback.CorrectAnswer = %q; want %q", fb.CorrectAnswer, "Hello")
	}
}

func TestSession_FullRunCompletes(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		correct   int
		xp        int
		wantScore int
		wantXP    int
		perfect   bool
		threshold bool
	}{
		{"all correct", 4, 4, 20, 100, 20, true, true},
		{"two of three", 3, 2, 10, 67, 7, false, false},
		{"seven of ten", 10, 7, 20, 70, 14, false, true},
		{"one of eight", 8, 1, 10, 13, 1, false, false},
		{"half rounds up", 8, 4, 5, 50, 3, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(lessonOf(tt.n, tt.xp), WithMaxLives(tt.n+1))

			for i := 0; i < tt.n; i++ {
				c := Text("no")
				if i < tt.correct {
					c = "yes"
				}
				answer(t, s, c)
				if err := s.Advance(); err != nil {
					t.Fatalf("Advance() error = %v", err)
				}
			}

			if s.State() != StateCompleted {
				t.Fatalf("State() = %v; want %v", s.State(), StateCompleted)
			}

			sum, ok := s.Summary()
			if !ok {
				t.Fatal("Summary() not available")
			}
			if sum.Outcome != entities.OutcomeCompleted {
				t.Errorf("Outcome = %q; want %q", sum.Outcome, entities.OutcomeCompleted)
			}
			if sum.ScorePercent != tt.wantScore {
				t.Errorf("ScorePercent = %d; want %d", sum.ScorePercent, tt.wantScore)
			}
			if sum.XPEarned != tt.wantXP {
				t.Errorf("XPEarned = %d; want %d", sum.XPEarned, tt.wantXP)
			}
			if sum.IsPerfect != tt.perfect {
				t.Errorf("IsPerfect = %v; want %v", sum.IsPerfect, tt.perfect)
			}
			if sum.MetExpectedThreshold != tt.threshold {
				t.Errorf("MetExpectedThreshold = %v; want %v", sum.MetExpectedThreshold, tt.threshold)
			}
			if sum.Correct != tt.correct || sum.Total != tt.n {
				t.Errorf("Correct/Total = %d/%d; want %d/%d", sum.Correct, sum.Total, tt.correct, tt.n)
			}
		})
	}
}

func TestSession_LosingLastLifeFails(t *testing.T) {
	s := NewSession(lessonOf(10, 50))

	for i := 0; i < 5; i++ {
		fb := answer(t, s, Text("no"))
		if i < 4 {
			if fb.Finished {
				t.Fatalf("exercise %d: Feedback.Finished = true", i+1)
			}
			if err := s.Advance(); err != nil {
				t.Fatalf("Advance() error = %v", err)
			}
			continue
		}
		if !fb.Finished {
			t.Error("Feedback.Finished = false after losing the last life")
		}
	}

	if s.Lives() != 0 {
		t.Errorf("Lives() = %d; want 0", s.Lives())
	}
	if s.State() != StateFailed {
		t.Fatalf("State() = %v; want %v", s.State(), StateFailed)
	}
	if s.Index() != 4 {
		t.Errorf("Index() = %d; want 4", s.Index())
	}

	if err := s.Advance(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Advance() after failure error = %v; want ErrInvalidTransition", err)
	}
	if err := s.SelectAnswer(Text("yes")); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("SelectAnswer() after failure error = %v; want ErrInvalidTransition", err)
	}

	sum, ok := s.Summary()
	if !ok {
		t.Fatal("Summary() not available after failure")
	}
	if sum.Outcome != entities.OutcomeFailed {
		t.Errorf("Outcome = %q; want %q", sum.Outcome, entities.OutcomeFailed)
	}
	if sum.ScorePercent != 0 || sum.XPEarned != 0 || sum.IsPerfect || sum.MetExpectedThreshold {
		t.Errorf("Summary = %+v; want zero score", sum)
	}
}

func TestSession_FailedSummaryUsesLessonTotal(t *testing.T) {
	s := NewSession(lessonOf(4, 40), WithMaxLives(1))

	answer(t, s, Text("yes"))
	if err := s.Advance(); err != nil {
		t.Fatal(err)
	}
	answer(t, s, Text("no"))

	sum, ok := s.Summary()
	if !ok {
		t.Fatal("Summary() not available")
	}
	if sum.ScorePercent != 25 || sum.XPEarned != 10 {
		t.Errorf("ScorePercent/XPEarned = %d/%d; want 25/10", sum.ScorePercent, sum.XPEarned)
	}
}

func TestSession_DoubleSubmitIsNoop(t *testing.T) {
	s := NewSession(lessonOf(2, 10))

	answer(t, s, Text("yes"))
	if _, err := s.Submit(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("second Submit() error = %v; want ErrInvalidTransition", err)
	}
	if s.CorrectCount() != 1 {
		t.Errorf("CorrectCount() = %d; want 1", s.CorrectCount())
	}

	if err := s.Advance(); err != nil {
		t.Fatal(err)
	}

	answer(t, s, Text("no"))
	if _, err := s.Submit(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("second Submit() error = %v; want ErrInvalidTransition", err)
	}
	if s.Lives() != DefaultMaxLives-1 {
		t.Errorf("Lives() = %d; want %d", s.Lives(), DefaultMaxLives-1)
	}
}

func TestSession_OutOfTurnCalls(t *testing.T) {
	s := NewSession(lessonOf(2, 10))

	if _, err := s.Submit(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Submit() without answer error = %v; want ErrInvalidTransition", err)
	}
	if err := s.Advance(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Advance() before Submit() error = %v; want ErrInvalidTransition", err)
	}
	if err := s.SelectAnswer(nil); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("SelectAnswer(nil) error = %v; want ErrInvalidTransition", err)
	}

	answer(t, s, Text("no"))
	if err := s.SelectAnswer(Text("yes")); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("SelectAnswer() after Submit() error = %v; want ErrInvalidTransition", err)
	}
	if got := s.Pending(); got != Text("no") {
		t.Errorf("Pending() = %v; want %q", got, "no")
	}

	if s.Index() != 0 || s.Lives() != DefaultMaxLives-1 {
		t.Error("out-of-turn calls changed the session")
	}
}

func TestSession_AdvanceResetsPending(t *testing.T) {
	s := NewSession(lessonOf(2, 10))
	answer(t, s, Text("yes"))

	if err := s.Advance(); err != nil {
		t.Fatal(err)
	}
	if s.Pending() != nil || s.IsSubmitted() {
		t.Error("Advance() did not reset pending answer and submission")
	}
	if s.Index() != 1 {
		t.Errorf("Index() = %d; want 1", s.Index())
	}
}

func TestSession_ZeroExercises(t *testing.T) {
	s := NewSession(entities.Lesson{ID: "empty", XPReward: 10})

	if s.State() != StateCompleted {
		t.Fatalf("State() = %v; want %v", s.State(), StateCompleted)
	}
	if _, ok := s.Current(); ok {
		t.Error("Current() reported an exercise for an empty lesson")
	}

	sum, ok := s.Summary()
	if !ok {
		t.Fatal("Summary() not available")
	}
	if sum.ScorePercent != 0 || sum.XPEarned != 0 {
		t.Errorf("ScorePercent/XPEarned = %d/%d; want 0/0", sum.ScorePercent, sum.XPEarned)
	}
	if sum.IsPerfect || sum.MetExpectedThreshold {
		t.Error("empty lesson must not count as perfect or toward the streak")
	}
	if _, err := s.Submit(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Submit() error = %v; want ErrInvalidTransition", err)
	}
}

func TestSession_MalformedExerciseCostsALife(t *testing.T) {
	lesson := entities.Lesson{
		ID: "l",
		Exercises: []entities.Exercise{
			{ID: "broken", Format: entities.FormatMatch},
		},
	}
	s := NewSession(lesson)

	fb := answer(t, s, Text("anything"))
	if fb.Correct {
		t.Error("malformed exercise judged correct")
	}
	if s.Lives() != DefaultMaxLives-1 {
		t.Errorf("Lives() = %d; want %d", s.Lives(), DefaultMaxLives-1)
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{66.666, 67},
		{12.5, 13},
		{100, 100},
	}
	for _, tt := range tests {
		if got := roundHalfUp(tt.in); got != tt.want {
			t.Errorf("roundHalfUp(%v) = %d; want %d", tt.in, got, tt.want)
		}
	}
}
