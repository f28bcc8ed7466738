// Package entities contains domain entities used across the application.
package entities

import "errors"

// ErrLessonNotFound is returned by lesson sources for unknown lesson ids.
var ErrLessonNotFound = errors.New("lesson not found")

// Lesson is an ordered sequence of exercises plus an XP reward.
type Lesson struct {
	ID        string
	Title     string
	TopicID   string
	XPReward  int
	Exercises []Exercise
}

// LessonHeader is the listing view of a lesson, without exercises.
type LessonHeader struct {
	ID       string
	Title    string
	TopicID  string
	XPReward int
}

// Header returns the listing view of the lesson.
func (l Lesson) Header() LessonHeader {
	return LessonHeader{
		ID:       l.ID,
		Title:    l.Title,
		TopicID:  l.TopicID,
		XPReward: l.XPReward,
	}
}
