package service

import (
	"context"
	"time"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/infra/postgres"
	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

// LessonSource provides lessons and accepts results. It is served by the
// remote lesson API or by the local catalog.
type LessonSource interface {
	ListLessons(ctx context.Context, topicID string) ([]entities.LessonHeader, error)
	GetLesson(ctx context.Context, lessonID string) (entities.Lesson, error)
	SubmitResults(ctx context.Context, attempt *entities.LessonAttempt) error
}

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
	GetByID(ctx context.Context, userID int64) (*entities.User, error)
	Deactivate(ctx context.Context, userID int64) error
}

type SettingsRepository interface {
	Create(ctx context.Context, s *entities.UserSettings) error
	GetByUserID(ctx context.Context, userID int64) (*entities.UserSettings, error)
	UpdateRemindersEnabled(ctx context.Context, userID int64, enabled bool) error
	UpdateReminderHour(ctx context.Context, userID int64, hour int) error
	UpdateShuffleMatch(ctx context.Context, userID int64, shuffle bool) error
}

type ProgressRepository interface {
	Get(ctx context.Context, userID int64) (*entities.UserProgress, error)
}

type AttemptRepository interface {
	ListRecent(ctx context.Context, userID int64, limit int) ([]*entities.LessonAttempt, error)
	WeeklyLeaderboard(ctx context.Context, since time.Time, limit int) ([]entities.LeaderboardEntry, error)
}

// ReminderRepository finds reminder recipients.
type ReminderRepository interface {
	StreakAtRisk(ctx context.Context, today time.Time, hour int) ([]entities.ReminderTarget, error)
}

// ReminderNotifier sends reminder notifications to users and returns the
// sent message ID.
type ReminderNotifier interface {
	SendStreakReminder(chatID int64, streak int) (int, error)
}

// AttemptRecorder stores a finished attempt and folds it into the user's
// progress atomically.
type AttemptRecorder interface {
	Record(ctx context.Context, attempt *entities.LessonAttempt, now time.Time) (*entities.UserProgress, error)
}

type PlayStorage interface {
	Store(userID int64, play *storage.ActivePlay)
	Get(userID int64) (*storage.ActivePlay, bool)
	Has(userID int64) bool
	Delete(userID int64)
}

type ReminderStorage interface {
	Store(userID, chatID int64, messageID int, sentAt time.Time)
	SentOn(userID int64, t time.Time) bool
	Delete(userID int64)
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx postgres.DBTX) error) error
}
