package telegram

import (
	"context"

	"go.uber.org/zap"
)

func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newMessage(chatID, msgWelcome())
		msg.ReplyMarkup = buildSummaryKeyboard()
		return h.send(msg)
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newMessage(chatID, msgHelp()))
	}
}

// handleLessons lists the lessons of a topic, or all lessons.
func (h *Handler) handleLessons(topicID string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		text, kb, err := h.RenderLessons(ctx, topicID)
		if err != nil {
			h.logger.Error("failed to render lessons",
				zap.String("topic_id", topicID),
				zap.Error(err),
			)
			return h.send(newPlainMessage(chatID, msgLessonsUnavailable))
		}
		return h.reply(chatID, 0, text, kb)
	}
}

// handleLesson starts the lesson given as the command argument.
func (h *Handler) handleLesson(userID int64, lessonID string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if lessonID == "" {
			return h.send(newPlainMessage(chatID, msgUseLesson))
		}
		return h.startLesson(ctx, chatID, userID, lessonID)
	}
}

// handleStop abandons the active lesson.
func (h *Handler) handleStop(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.lessonService.Quit(userID); err != nil {
			return err
		}
		return h.send(newPlainMessage(chatID, msgLessonStopped))
	}
}

// handleReset asks for confirmation before deleting progress.
func (h *Handler) handleReset() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newPlainMessage(chatID, msgResetConfirm)
		msg.ReplyMarkup = buildResetKeyboard()
		return h.send(msg)
	}
}

// resetCallback handles the reset confirmation buttons.
func (h *Handler) resetCallback(userID int64, msgID int, data callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		switch data.param(0) {
		case resetConfirm:
			if err := h.resetService.ResetUser(ctx, userID); err != nil {
				h.logger.Error("failed to reset user",
					zap.Int64("user_id", userID),
					zap.Error(err),
				)
				return h.reply(chatID, msgID, md(msgResetUnavailable), emptyKeyboard())
			}
			h.logger.Info("user progress reset", zap.Int64("user_id", userID))
			return h.reply(chatID, msgID, md(msgResetDone), buildSummaryKeyboard())

		case resetCancel:
			return h.reply(chatID, msgID, md(msgResetCancelled), emptyKeyboard())
		}
		return nil
	}
}

// lessonsCallback shows the lesson list in place of the tapped message.
func (h *Handler) lessonsCallback(msgID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		text, kb, err := h.RenderLessons(ctx, "")
		if err != nil {
			h.logger.Error("failed to render lessons", zap.Error(err))
			return h.send(newPlainMessage(chatID, msgLessonsUnavailable))
		}
		return h.reply(chatID, msgID, text, kb)
	}
}
