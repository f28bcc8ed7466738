package telegram

import (
	"context"

	"go.uber.org/zap"
)

const leaderboardSize = 10

// handleProgress displays user progress.
func (h *Handler) handleProgress(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.logger.Debug("rendering progress", zap.Int64("user_id", userID))

		text, kb, err := h.RenderProgress(ctx, userID)
		if err != nil {
			h.logger.Error("failed to render progress",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			return h.send(newPlainMessage(chatID, msgProgressUnavailable))
		}
		return h.reply(chatID, 0, text, kb)
	}
}

// handleLeaderboard displays the weekly XP leaderboard.
func (h *Handler) handleLeaderboard() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		text, kb, err := h.RenderLeaderboard(ctx)
		if err != nil {
			h.logger.Error("failed to render leaderboard", zap.Error(err))
			return h.send(newPlainMessage(chatID, msgLeaderboardUnavailable))
		}
		return h.reply(chatID, 0, text, kb)
	}
}

// progressCallback refreshes the progress screen.
func (h *Handler) progressCallback(userID int64, msgID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		text, kb, err := h.RenderProgress(ctx, userID)
		if err != nil {
			h.logger.Error("failed to render progress",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			return h.send(newPlainMessage(chatID, msgProgressUnavailable))
		}
		return h.reply(chatID, msgID, text, kb)
	}
}

// leaderboardCallback refreshes the leaderboard screen.
func (h *Handler) leaderboardCallback(msgID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		text, kb, err := h.RenderLeaderboard(ctx)
		if err != nil {
			h.logger.Error("failed to render leaderboard", zap.Error(err))
			return h.send(newPlainMessage(chatID, msgLeaderboardUnavailable))
		}
		return h.reply(chatID, msgID, text, kb)
	}
}
