package telegram

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/service"
	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

// maxMediaGroup is the largest album Telegram accepts.
const maxMediaGroup = 10

// startLesson starts a lesson and sends its first exercise.
func (h *Handler) startLesson(ctx context.Context, chatID, userID int64, lessonID string) error {
	step, err := h.lessonService.StartLesson(ctx, userID, lessonID)
	if err != nil {
		return err
	}

	if step.Result != nil {
		return h.reply(chatID, 0, formatSummary(step.Result), buildSummaryKeyboard())
	}
	return h.sendExercise(chatID, step.Play)
}

// sendExercise sends the media of the current exercise followed by its screen.
func (h *Handler) sendExercise(chatID int64, ap *storage.ActivePlay) error {
	ex, ok := ap.Play.Session().Current()
	if !ok {
		return nil
	}

	h.sendExerciseMedia(chatID, ex)
	return h.reply(chatID, 0, formatExercise(ap), buildExerciseKeyboard(ap))
}

// sendExerciseMedia sends the audio of listening exercises and the images of
// image_select exercises. Failures are logged; the exercise stays answerable.
func (h *Handler) sendExerciseMedia(chatID int64, ex entities.Exercise) {
	switch ex.Format {
	case entities.FormatListening:
		if ex.AudioURL == "" {
			return
		}
		audio := tgbotapi.NewAudio(chatID, tgbotapi.FileURL(ex.AudioURL))
		_ = h.send(audio)

	case entities.FormatImageSelect:
		body, ok := ex.Body.(*entities.ImageSelect)
		if !ok {
			return
		}
		h.sendImages(chatID, body.Options)
	}
}

// sendImages sends image options captioned with their button numbers.
func (h *Handler) sendImages(chatID int64, options []entities.ImageOption) {
	for start := 0; start < len(options); start += maxMediaGroup {
		chunk := options[start:min(start+maxMediaGroup, len(options))]

		if len(chunk) == 1 {
			photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(chunk[0].Image))
			photo.Caption = strconv.Itoa(start + 1)
			_ = h.send(photo)
			continue
		}

		files := make([]interface{}, len(chunk))
		for i, opt := range chunk {
			photo := tgbotapi.NewInputMediaPhoto(tgbotapi.FileURL(opt.Image))
			photo.Caption = strconv.Itoa(start + i + 1)
			files[i] = photo
		}

		if _, err := h.bot.SendMediaGroup(tgbotapi.NewMediaGroup(chatID, files)); err != nil {
			h.logger.Error("failed to send exercise images",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}
	}
}

// renderStep renders the screen for the state a lesson operation left.
func renderStep(step *service.Step) (string, tgbotapi.InlineKeyboardMarkup) {
	switch {
	case step.Result != nil:
		text := formatSummary(step.Result)
		if step.Feedback != nil {
			text = formatFeedback(*step.Feedback, step.NearMiss) + "\n\n" + text
		}
		return text, buildSummaryKeyboard()

	case step.Feedback != nil:
		text := formatExercise(step.Play) + "\n\n" + formatFeedback(*step.Feedback, step.NearMiss)
		return text, buildFeedbackKeyboard(step.Play.Play.Session().Index())

	default:
		return formatExercise(step.Play), buildExerciseKeyboard(step.Play)
	}
}

// showStep renders step into the message msgID, or into a new message when
// msgID is zero.
func (h *Handler) showStep(chatID int64, msgID int, step *service.Step) error {
	text, kb := renderStep(step)
	return h.reply(chatID, msgID, text, kb)
}

// exerciseCallback handles taps on an exercise keyboard. toast receives a
// short notice for the callback answer.
func (h *Handler) exerciseCallback(userID int64, msgID int, data callbackData, toast *string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sub := data.param(0)
		idx, ok := data.intParam(1)
		if !ok {
			h.logger.Debug("invalid exercise callback", zap.String("data", data.Raw))
			return nil
		}
		arg, hasArg := data.intParam(2)

		var (
			step *service.Step
			err  error
		)

		switch sub {
		case exChoose, exPick, exClear, exLeft, exRight:
			if !hasArg {
				h.logger.Debug("exercise callback without argument", zap.String("data", data.Raw))
				return nil
			}
			step, err = h.tap(userID, sub, idx, arg)
		case exCheck:
			step, err = h.lessonService.Check(ctx, userID, idx)
		case exSkip:
			step, err = h.lessonService.Skip(ctx, userID, idx)
		case exNext:
			step, err = h.lessonService.Next(userID, idx)
			if err == nil {
				h.clearKeyboard(chatID, msgID)
				return h.sendExercise(chatID, step.Play)
			}
		default:
			h.logger.Debug("unknown exercise callback", zap.String("data", data.Raw))
			return nil
		}

		if err != nil {
			if isOutOfTurn(err) {
				*toast = msgActionUnavailable
			}
			return err
		}

		if step.Pair != nil {
			*toast = mark(step.Pair.Correct)
		}
		return h.showStep(chatID, msgID, step)
	}
}

func (h *Handler) tap(userID int64, sub string, idx, arg int) (*service.Step, error) {
	switch sub {
	case exChoose:
		return h.lessonService.Choose(userID, idx, arg)
	case exPick:
		return h.lessonService.Pick(userID, idx, arg)
	case exClear:
		return h.lessonService.Clear(userID, idx, arg)
	case exLeft:
		return h.lessonService.TapLeft(userID, idx, arg)
	default:
		return h.lessonService.TapRight(userID, idx, arg)
	}
}

// lessonCallback handles lesson start and quit buttons.
func (h *Handler) lessonCallback(userID int64, msgID int, data callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		switch data.param(0) {
		case lessonStart:
			lessonID := strings.Join(data.Params[1:], ":")
			if lessonID == "" {
				return nil
			}
			h.clearKeyboard(chatID, msgID)
			return h.startLesson(ctx, chatID, userID, lessonID)

		case lessonQuit:
			if err := h.lessonService.Quit(userID); err != nil {
				return err
			}
			return h.reply(chatID, msgID, md(msgLessonStopped), buildSummaryKeyboard())
		}
		return nil
	}
}

// handleTextAnswer treats a plain text message as the typed answer to the
// current exercise.
func (h *Handler) handleTextAnswer(userID int64, text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if _, err := h.lessonService.Current(userID); err != nil {
			return h.send(newMessage(chatID, msgHelp()))
		}

		step, err := h.lessonService.AnswerText(ctx, userID, strings.TrimSpace(text))
		if err != nil {
			if isOutOfTurn(err) {
				return h.send(newPlainMessage(chatID, msgTextNotExpected))
			}
			return err
		}

		return h.showStep(chatID, 0, step)
	}
}
