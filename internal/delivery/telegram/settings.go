package telegram

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/aliskhannn/lingvo-bot/internal/service"
)

// handleSettings displays user settings.
func (h *Handler) handleSettings(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.logger.Debug("rendering settings", zap.Int64("user_id", userID))

		text, kb, err := h.RenderSettings(ctx, userID)
		if err != nil {
			h.logger.Error("failed to render settings",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			return h.send(newPlainMessage(chatID, msgSettingsUnavailable))
		}
		return h.reply(chatID, 0, text, kb)
	}
}

// settingsCallback handles the settings screen buttons.
func (h *Handler) settingsCallback(userID int64, msgID int, data callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		switch data.param(0) {
		case settingsMenu:
		case settingsReminders:
			enabled, err := h.settingsService.ToggleReminders(ctx, userID)
			if err != nil {
				return err
			}
			h.logger.Info("reminders toggled",
				zap.Int64("user_id", userID),
				zap.Bool("enabled", enabled),
			)
		case settingsShuffle:
			if _, err := h.settingsService.ToggleShuffleMatch(ctx, userID); err != nil {
				return err
			}
		case settingsHour:
			if len(data.Params) < 2 {
				return h.reply(chatID, msgID, md("⏰ Выберите час напоминания (UTC):"), buildReminderHourKeyboard())
			}
			hour, err := strconv.Atoi(data.param(1))
			if err != nil {
				return nil
			}
			if err := h.settingsService.SetReminderHour(ctx, userID, hour); err != nil {
				if errors.Is(err, service.ErrInvalidReminderHour) {
					return nil
				}
				return err
			}
		default:
			return nil
		}

		text, kb, err := h.RenderSettings(ctx, userID)
		if err != nil {
			return err
		}
		return h.reply(chatID, msgID, text, kb)
	}
}
