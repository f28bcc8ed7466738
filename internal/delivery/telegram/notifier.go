package telegram

import (
	"errors"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/lingvo-bot/internal/service"
)

// SendStreakReminder nudges a user whose streak is about to lapse and returns
// the sent message ID.
func (h *Handler) SendStreakReminder(chatID int64, streak int) (int, error) {
	msg := newMessage(chatID, formatStreakReminder(streak))
	msg.ReplyMarkup = buildReminderKeyboard()

	sent, err := h.bot.Send(msg)
	if err != nil {
		var apiErr *tgbotapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusForbidden {
			return 0, service.ErrBotBlocked
		}
		return 0, fmt.Errorf("send streak reminder: %w", err)
	}

	return sent.MessageID, nil
}
