package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/engine"
	"github.com/aliskhannn/lingvo-bot/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, entities.ErrLessonNotFound):
			h.sendError(chatID, msgLessonNotFound)
		case errors.Is(err, service.ErrNoActivePlay):
			h.sendError(chatID, msgNoActiveLesson)
		case isOutOfTurn(err):
			h.logger.Debug("out of turn action ignored",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		default:
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
		}
		return nil
	}
}

// isOutOfTurn reports whether err comes from a tap on an outdated keyboard.
func isOutOfTurn(err error) bool {
	return errors.Is(err, engine.ErrInvalidTransition) || errors.Is(err, service.ErrStaleExercise)
}
