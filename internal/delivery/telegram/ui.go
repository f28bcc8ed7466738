package telegram

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/engine"
	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

const (
	tokensPerRow = 3
	imagesPerRow = 4
)

// buildLessonsKeyboard builds one start button per lesson.
func buildLessonsKeyboard(headers []entities.LessonHeader) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(headers))
	for _, l := range headers {
		data, ok := buildLessonStartCallback(l.ID)
		if !ok {
			// Still reachable with /lesson <id>.
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ "+l.Title, data),
		))
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// buildExerciseKeyboard builds the answer keyboard of the current exercise.
func buildExerciseKeyboard(ap *storage.ActivePlay) tgbotapi.InlineKeyboardMarkup {
	s := ap.Play.Session()
	idx := s.Index()

	ex, ok := s.Current()
	if !ok {
		return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	canCheck := false

	if ex.Validate() == nil {
		switch b := ex.Body.(type) {
		case *entities.Choice:
			selected, _ := s.Pending().(engine.Text)
			for i, opt := range b.Options {
				label := opt
				if s.Pending() != nil && string(selected) == opt {
					label = "🔘 " + opt
				}
				rows = append(rows, tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData(label, buildExerciseCallback(exChoose, idx, i)),
				))
			}
			canCheck = len(b.Options) > 0 && s.Pending() != nil

		case *entities.ImageSelect:
			selected, _ := s.Pending().(engine.Text)
			var row []tgbotapi.InlineKeyboardButton
			for i, opt := range b.Options {
				label := "🖼 " + strconv.Itoa(i+1)
				if s.Pending() != nil && string(selected) == opt.Value {
					label = "🔘 " + strconv.Itoa(i+1)
				}
				row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildExerciseCallback(exChoose, idx, i)))
				if len(row) == imagesPerRow {
					rows = append(rows, row)
					row = nil
				}
			}
			if len(row) > 0 {
				rows = append(rows, row)
			}
			canCheck = s.Pending() != nil

		case *entities.Reorder:
			if r := ap.Play.Reorder(); r != nil {
				rows = append(rows, reorderRows(r, idx)...)
				canCheck = r.Full()
			}

		case *entities.Match:
			if m := ap.Play.Match(); m != nil {
				rows = append(rows, matchRows(m, idx)...)
				canCheck = m.Complete()
			}
		}
	}

	var actions []tgbotapi.InlineKeyboardButton
	if canCheck {
		actions = append(actions, tgbotapi.NewInlineKeyboardButtonData("✔️ Проверить", buildExerciseCallback(exCheck, idx)))
	}
	actions = append(actions, tgbotapi.NewInlineKeyboardButtonData("⏭ Пропустить", buildExerciseCallback(exSkip, idx)))
	rows = append(rows, actions)

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⏹ Выйти из урока", buildLessonQuitCallback()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// reorderRows builds a row of placed tokens, which return on tap, followed by
// rows of available tokens.
func reorderRows(r *engine.ReorderState, idx int) [][]tgbotapi.InlineKeyboardButton {
	var rows [][]tgbotapi.InlineKeyboardButton

	var placed []tgbotapi.InlineKeyboardButton
	for i, slot := range r.Slots() {
		if !slot.Filled {
			continue
		}
		placed = append(placed, tgbotapi.NewInlineKeyboardButtonData("↩️ "+slot.Token, buildExerciseCallback(exClear, idx, i)))
	}
	if len(placed) > 0 {
		rows = append(rows, placed)
	}

	var row []tgbotapi.InlineKeyboardButton
	for i, token := range r.Available() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(token, buildExerciseCallback(exPick, idx, i)))
		if len(row) == tokensPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return rows
}

// matchRows builds one row per item pair: the left column and the right
// column in display order.
func matchRows(m *engine.MatchState, idx int) [][]tgbotapi.InlineKeyboardButton {
	lefts, rights := m.Lefts(), m.Rights()
	selLeft, hasLeft := m.SelectedLeft()
	selRight, hasRight := m.SelectedRight()

	pairCorrect := make(map[string]bool, len(lefts))
	for _, p := range m.Pairs() {
		pairCorrect[p.Pair.Left] = p.Correct
		pairCorrect[p.Pair.Right] = p.Correct
	}

	label := func(item string, selected bool, used bool) string {
		switch {
		case used:
			return mark(pairCorrect[item]) + " " + item
		case selected:
			return "👉 " + item
		default:
			return item
		}
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(lefts))
	for i := range lefts {
		_, leftUsed := m.PairedWith(lefts[i])
		row := tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				label(lefts[i], hasLeft && selLeft == lefts[i], leftUsed),
				buildExerciseCallback(exLeft, idx, i),
			),
		)
		if i < len(rights) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(
				label(rights[i], hasRight && selRight == rights[i], m.RightUsed(rights[i])),
				buildExerciseCallback(exRight, idx, i),
			))
		}
		rows = append(rows, row)
	}

	return rows
}

// buildFeedbackKeyboard builds the keyboard shown after an answer was checked.
func buildFeedbackKeyboard(idx int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Дальше ▶️", buildExerciseCallback(exNext, idx)),
		),
	)
}

// buildSummaryKeyboard builds keyboard for the lesson results screen.
func buildSummaryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 Уроки", buildLessonsCallback()),
			tgbotapi.NewInlineKeyboardButtonData("📊 Мой прогресс", buildProgressCallback()),
		),
	)
}

// buildProgressKeyboard builds keyboard for progress screen.
func buildProgressKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Обновить", buildProgressCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 Уроки", buildLessonsCallback()),
			tgbotapi.NewInlineKeyboardButtonData("🏆 Рейтинг", buildLeaderboardCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Настройки", buildSettingsCallback(settingsMenu)),
		),
	)
}

func buildLeaderboardKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Обновить", buildLeaderboardCallback()),
			tgbotapi.NewInlineKeyboardButtonData("📊 Мой прогресс", buildProgressCallback()),
		),
	)
}

// buildSettingsKeyboard builds main settings keyboard.
func buildSettingsKeyboard(s *entities.UserSettings) tgbotapi.InlineKeyboardMarkup {
	reminders := "🔔 Включить напоминания"
	if s.RemindersEnabled {
		reminders = "🔕 Отключить напоминания"
	}

	shuffle := "🔀 Перемешивать пары"
	if s.ShuffleMatch {
		shuffle = "➡️ Не перемешивать пары"
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(reminders, buildSettingsCallback(settingsReminders)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏰ Время напоминания", buildSettingsCallback(settingsHour)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(shuffle, buildSettingsCallback(settingsShuffle)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Мой прогресс", buildProgressCallback()),
		),
	)
}

// buildReminderHourKeyboard builds keyboard for the reminder hour setting.
func buildReminderHourKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for start := 0; start < 24; start += 6 {
		row := make([]tgbotapi.InlineKeyboardButton, 0, 6)
		for h := start; h < start+6; h++ {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%02d", h),
				buildSettingsCallback(settingsHour, strconv.Itoa(h)),
			))
		}
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("« Назад к настройкам", buildSettingsCallback(settingsMenu)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func buildResetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Да, сбросить", buildResetConfirmCallback()),
			tgbotapi.NewInlineKeyboardButtonData("Отмена", buildResetCancelCallback()),
		),
	)
}

// buildReminderKeyboard builds keyboard for the streak reminder.
func buildReminderKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 Выбрать урок", buildLessonsCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔕 Отключить напоминания", buildSettingsCallback(settingsReminders)),
		),
	)
}
