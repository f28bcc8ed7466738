package storage

import (
	"sync"
	"time"
)

// ReminderMessage is the last streak reminder sent to a user.
type ReminderMessage struct {
	ChatID    int64
	MessageID int
	SentAt    time.Time
}

// ReminderStorage remembers sent reminders so a user is nudged at most once
// per UTC day, even when the schedule fires more often.
type ReminderStorage struct {
	mu       sync.RWMutex
	messages map[int64]ReminderMessage
}

func NewReminderStorage() *ReminderStorage {
	return &ReminderStorage{
		messages: make(map[int64]ReminderMessage),
	}
}

func (s *ReminderStorage) Store(userID, chatID int64, messageID int, sentAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[userID] = ReminderMessage{
		ChatID:    chatID,
		MessageID: messageID,
		SentAt:    sentAt,
	}
}

func (s *ReminderStorage) Get(userID int64) (ReminderMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, ok := s.messages[userID]
	return msg, ok
}

// SentOn reports whether a reminder went to the user on the UTC day of t.
func (s *ReminderStorage) SentOn(userID int64, t time.Time) bool {
	msg, ok := s.Get(userID)
	if !ok {
		return false
	}
	y1, m1, d1 := msg.SentAt.UTC().Date()
	y2, m2, d2 := t.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (s *ReminderStorage) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.messages, userID)
}
