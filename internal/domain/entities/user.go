package entities

import "time"

// User represents bot user.
type User struct {
	ID          int64 // Telegram user ID
	ChatID      int64
	DisplayName string
	IsActive    bool
	CreatedAt   time.Time
}

func NewUser(id, chatID int64, displayName string) *User {
	return &User{
		ID:          id,
		ChatID:      chatID,
		DisplayName: displayName,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
}
