package entities

// Outcome is how a lesson session ended.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed" // every exercise was attempted
	OutcomeFailed    Outcome = "failed"    // lives ran out
)

// Summary is emitted when a session reaches a terminal state.
type Summary struct {
	Outcome              Outcome
	Correct              int
	Total                int
	LivesLeft            int
	ScorePercent         int
	XPEarned             int
	IsPerfect            bool
	MetExpectedThreshold bool // counts toward daily streak progress
}
