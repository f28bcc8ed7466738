package entities

import "time"

// UserProgress stores the accumulated learning progress of a user.
type UserProgress struct {
	UserID           int64
	TotalXP          int
	LessonsCompleted int
	PerfectLessons   int

	// Daily streak fields.
	CurrentStreak  int
	LongestStreak  int
	LastStreakDate *time.Time // UTC day of the last streak-qualifying lesson

	UpdatedAt time.Time
}

// NewUserProgress creates an empty progress record for a user.
func NewUserProgress(userID int64) *UserProgress {
	return &UserProgress{UserID: userID}
}

// ApplyAttempt folds a finished session into the progress.
//
//  1. XP is always added, failed sessions included.
//  2. Completed sessions count as completed lessons; perfect ones are counted too.
//  3. Only a summary that met the expected threshold advances the daily streak:
//     the same UTC day keeps it, the next day extends it, a gap restarts it at 1.
func (p *UserProgress) ApplyAttempt(s Summary, now time.Time) {
	p.TotalXP += s.XPEarned

	if s.Outcome == OutcomeCompleted {
		p.LessonsCompleted++
		if s.IsPerfect {
			p.PerfectLessons++
		}
	}

	if s.MetExpectedThreshold {
		today := utcDay(now)

		switch {
		case p.LastStreakDate != nil && utcDay(*p.LastStreakDate).Equal(today):
			// Already counted today.
		case p.LastStreakDate != nil && utcDay(*p.LastStreakDate).Equal(today.AddDate(0, 0, -1)):
			p.CurrentStreak++
		default:
			p.CurrentStreak = 1
		}

		p.LastStreakDate = &today
		p.LongestStreak = max(p.LongestStreak, p.CurrentStreak)
	}

	p.UpdatedAt = now
}

// ActiveStreak returns the streak as seen at now: a streak whose last
// qualifying day is before yesterday has lapsed.
func (p *UserProgress) ActiveStreak(now time.Time) int {
	if p.LastStreakDate == nil {
		return 0
	}
	yesterday := utcDay(now).AddDate(0, 0, -1)
	if utcDay(*p.LastStreakDate).Before(yesterday) {
		return 0
	}
	return p.CurrentStreak
}

// StreakAtRisk reports whether the streak is alive but not yet extended today.
func (p *UserProgress) StreakAtRisk(now time.Time) bool {
	if p.LastStreakDate == nil || p.CurrentStreak == 0 {
		return false
	}
	return utcDay(*p.LastStreakDate).Equal(utcDay(now).AddDate(0, 0, -1))
}

func utcDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
