package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// reply sends text with a keyboard as a new message, or edits the message
// msgID when it is not zero.
func (h *Handler) reply(chatID int64, msgID int, text string, kb tgbotapi.InlineKeyboardMarkup) error {
	if msgID == 0 {
		msg := newMessage(chatID, text)
		msg.ReplyMarkup = kb
		return h.send(msg)
	}

	edit := newEdit(chatID, msgID, text)
	edit.ReplyMarkup = &kb
	return h.send(edit)
}

// clearKeyboard removes the inline keyboard of a bot message.
func (h *Handler) clearKeyboard(chatID int64, msgID int) {
	markup := tgbotapi.NewEditMessageReplyMarkup(chatID, msgID, emptyKeyboard())
	if _, err := h.bot.Request(markup); err != nil {
		h.logger.Debug("failed to clear keyboard",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", msgID),
			zap.Error(err),
		)
	}
}

func emptyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
}
