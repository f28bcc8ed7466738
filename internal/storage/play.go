package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/lingvo-bot/internal/engine"
)

// ActivePlay is a lesson a user is currently playing.
type ActivePlay struct {
	Play        *engine.Play
	LessonID    string
	LessonTitle string
	StartedAt   time.Time
}

// PlayStorage provides in-memory storage for active lesson plays by user ID.
// A user has at most one active play; storing a new one replaces the old.
type PlayStorage struct {
	mu    sync.RWMutex
	plays map[int64]*ActivePlay
}

// NewPlayStorage creates a new PlayStorage.
func NewPlayStorage() *PlayStorage {
	return &PlayStorage{
		plays: make(map[int64]*ActivePlay),
	}
}

// Store saves the active play of a user.
func (s *PlayStorage) Store(userID int64, play *ActivePlay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plays[userID] = play
}

// Get retrieves the active play of a user.
func (s *PlayStorage) Get(userID int64) (*ActivePlay, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.plays[userID]
	return p, ok
}

// Has reports whether the user has an active play.
func (s *PlayStorage) Has(userID int64) bool {
	_, ok := s.Get(userID)
	return ok
}

// Delete removes the active play of a user.
func (s *PlayStorage) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.plays, userID)
}

// Len returns the number of active plays.
func (s *PlayStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.plays)
}
