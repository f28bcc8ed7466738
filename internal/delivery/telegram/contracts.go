package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/service"
)

// BotAPI is the part of the Telegram client the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	SendMediaGroup(config tgbotapi.MediaGroupConfig) ([]tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64, displayName string) error
}

type LessonService interface {
	ListLessons(ctx context.Context, topicID string) ([]entities.LessonHeader, error)
	StartLesson(ctx context.Context, userID int64, lessonID string) (*service.Step, error)
	Current(userID int64) (*service.Step, error)
	Quit(userID int64) error
	Choose(userID int64, idx, opt int) (*service.Step, error)
	AnswerText(ctx context.Context, userID int64, text string) (*service.Step, error)
	Pick(userID int64, idx, i int) (*service.Step, error)
	Clear(userID int64, idx, slot int) (*service.Step, error)
	TapLeft(userID int64, idx, i int) (*service.Step, error)
	TapRight(userID int64, idx, i int) (*service.Step, error)
	Check(ctx context.Context, userID int64, idx int) (*service.Step, error)
	Skip(ctx context.Context, userID int64, idx int) (*service.Step, error)
	Next(userID int64, idx int) (*service.Step, error)
}

type ProgressService interface {
	GetProgressSummary(ctx context.Context, userID int64) (*service.ProgressSummary, error)
	WeeklyLeaderboard(ctx context.Context, limit int) ([]entities.LeaderboardEntry, error)
}

type SettingsService interface {
	GetOrCreate(ctx context.Context, userID int64) (*entities.UserSettings, error)
	ToggleReminders(ctx context.Context, userID int64) (bool, error)
	ToggleShuffleMatch(ctx context.Context, userID int64) (bool, error)
	SetReminderHour(ctx context.Context, userID int64, hour int) error
}

type ResetService interface {
	ResetUser(ctx context.Context, userID int64) error
}
