package entities

import (
	"time"

	"github.com/google/uuid"
)

// LessonAttempt is the stored record of one finished lesson session.
type LessonAttempt struct {
	ID         uuid.UUID
	UserID     int64
	LessonID   string
	Summary    Summary
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewLessonAttempt creates an attempt record for a finished session.
func NewLessonAttempt(userID int64, lessonID string, summary Summary, startedAt, finishedAt time.Time) *LessonAttempt {
	return &LessonAttempt{
		ID:         uuid.New(),
		UserID:     userID,
		LessonID:   lessonID,
		Summary:    summary,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	}
}
