package entities

// ReminderTarget is a user whose streak should be nudged.
type ReminderTarget struct {
	UserID        int64
	ChatID        int64
	CurrentStreak int
}
