package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// RenderLessons renders the lesson list of a topic with start buttons.
func (h *Handler) RenderLessons(ctx context.Context, topicID string) (string, tgbotapi.InlineKeyboardMarkup, error) {
	headers, err := h.lessonService.ListLessons(ctx, topicID)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}

	if len(headers) == 0 {
		return md(msgNoLessons), emptyKeyboard(), nil
	}

	return formatLessonList(headers, topicID), buildLessonsKeyboard(headers), nil
}

// RenderProgress renders progress message with keyboard.
func (h *Handler) RenderProgress(ctx context.Context, userID int64) (string, tgbotapi.InlineKeyboardMarkup, error) {
	summary, err := h.progressService.GetProgressSummary(ctx, userID)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}

	return formatProgress(summary), buildProgressKeyboard(), nil
}

// RenderLeaderboard renders the weekly leaderboard with keyboard.
func (h *Handler) RenderLeaderboard(ctx context.Context) (string, tgbotapi.InlineKeyboardMarkup, error) {
	entries, err := h.progressService.WeeklyLeaderboard(ctx, leaderboardSize)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}

	return formatLeaderboard(entries), buildLeaderboardKeyboard(), nil
}

// RenderSettings renders settings message with keyboard.
func (h *Handler) RenderSettings(ctx context.Context, userID int64) (string, tgbotapi.InlineKeyboardMarkup, error) {
	settings, err := h.settingsService.GetOrCreate(ctx, userID)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}

	return formatSettings(settings), buildSettingsKeyboard(settings), nil
}
