package entities

import "time"

// Default settings values.
const (
	DefaultReminderHour = 18 // UTC
)

// UserSettings stores user-specific preferences for lessons and reminders.
type UserSettings struct {
	UserID           int64
	RemindersEnabled bool // streak-at-risk reminders
	ReminderHour     int  // hour of day, UTC, when reminders are sent
	ShuffleMatch     bool // shuffle the right column of match exercises once per exercise
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewUserSettings creates a new UserSettings instance with default values.
func NewUserSettings(userID int64) *UserSettings {
	now := time.Now()
	return &UserSettings{
		UserID:           userID,
		RemindersEnabled: true,
		ReminderHour:     DefaultReminderHour,
		ShuffleMatch:     true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// ValidReminderHour reports whether h is an hour of day.
func ValidReminderHour(h int) bool {
	return h >= 0 && h <= 23
}
