package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot             BotAPI
	logger          *zap.Logger
	userService     UserService
	lessonService   LessonService
	progressService ProgressService
	settingsService SettingsService
	resetService    ResetService
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	userService UserService,
	lessonService LessonService,
	progressService ProgressService,
	settingsService SettingsService,
	resetService ResetService,
) *Handler {
	return &Handler{
		bot:             bot,
		logger:          logger,
		userService:     userService,
		lessonService:   lessonService,
		progressService: progressService,
		settingsService: settingsService,
		resetService:    resetService,
	}
}

// Run processes updates one at a time until ctx is cancelled. Lesson plays
// are only ever touched from this loop.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	from := update.Message.From
	chatID := update.Message.Chat.ID

	if err := h.userService.EnsureUser(ctx, from.ID, chatID, displayName(from)); err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
	}

	if update.Message.IsCommand() {
		args := strings.TrimSpace(update.Message.CommandArguments())

		switch update.Message.Command() {
		case "start":
			_ = h.withErrorHandling(h.handleStart())(ctx, chatID)
		case "help":
			_ = h.withErrorHandling(h.handleHelp())(ctx, chatID)
		case "lessons":
			_ = h.withErrorHandling(h.handleLessons(args))(ctx, chatID)
		case "lesson":
			_ = h.withErrorHandling(h.handleLesson(from.ID, args))(ctx, chatID)
		case "stop":
			_ = h.withErrorHandling(h.handleStop(from.ID))(ctx, chatID)
		case "progress":
			_ = h.withErrorHandling(h.handleProgress(from.ID))(ctx, chatID)
		case "leaderboard":
			_ = h.withErrorHandling(h.handleLeaderboard())(ctx, chatID)
		case "settings":
			_ = h.withErrorHandling(h.handleSettings(from.ID))(ctx, chatID)
		case "reset":
			_ = h.withErrorHandling(h.handleReset())(ctx, chatID)
		default:
			_ = h.send(newMessage(chatID, msgUnknownCommand()))
		}

		return
	}

	_ = h.withErrorHandling(h.handleTextAnswer(from.ID, update.Message.Text))(ctx, chatID)
}

func (h *Handler) sendError(chatID int64, err string) {
	msg := newPlainMessage(chatID, err)
	_ = h.send(msg)
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// answerCallback removes the user's "clock", optionally with a toast.
func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}

func displayName(u *tgbotapi.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.UserName
	}
	return name
}
