package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	var toast string
	defer func() { h.answerCallback(cb.ID, toast) }()

	// Callbacks from inline mode carry no message to edit.
	if cb.Message == nil {
		return
	}

	userID := cb.From.ID
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID
	data := decodeCallback(cb.Data)

	var fn HandlerFunc
	switch data.Action {
	case actionExercise:
		fn = h.exerciseCallback(userID, msgID, data, &toast)
	case actionLesson:
		fn = h.lessonCallback(userID, msgID, data)
	case actionLessons:
		fn = h.lessonsCallback(msgID)
	case actionProgress:
		fn = h.progressCallback(userID, msgID)
	case actionLeaderboard:
		fn = h.leaderboardCallback(msgID)
	case actionSettings:
		fn = h.settingsCallback(userID, msgID, data)
	case actionReset:
		fn = h.resetCallback(userID, msgID, data)
	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
		return
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}
