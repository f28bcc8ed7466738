// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/engine"
	"github.com/aliskhannn/lingvo-bot/internal/service"
	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

// Error messages.
const (
	msgLessonNotFound         = "Урок не найден. Список уроков: /lessons"
	msgNoActiveLesson         = "Сейчас нет активного урока. Выберите урок: /lessons"
	msgUseLesson              = "Используйте: /lesson <id>. Список уроков: /lessons"
	msgLessonsUnavailable     = "Не удалось получить список уроков. Попробуйте позже."
	msgNoLessons              = "Уроков пока нет."
	msgProgressUnavailable    = "Не удалось получить прогресс. Попробуйте позже."
	msgSettingsUnavailable    = "Не удалось получить настройки. Попробуйте позже."
	msgLeaderboardUnavailable = "Не удалось получить рейтинг. Попробуйте позже."
	msgResetUnavailable       = "Не удалось сбросить прогресс. Попробуйте позже."
	msgTextNotExpected        = "Сейчас ответ выбирается кнопками под заданием."
	msgActionUnavailable      = "Это действие сейчас недоступно"
	msgInternalError          = "Что‑то пошло не так. Попробуйте позже."
)

// Informational messages.
const (
	msgLessonStopped  = "Урок прерван. Результат не сохранён."
	msgResetConfirm   = "Удалить весь прогресс, серию и историю уроков? Это действие нельзя отменить."
	msgResetDone      = "Прогресс сброшен."
	msgResetCancelled = "Сброс отменён."
	msgMalformed      = "⚠️ Это задание не удалось загрузить. Пропустите его, чтобы продолжить."
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	return msg
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// msgWelcome builds welcome message safely for MarkdownV2.
func msgWelcome() string {
	var sb strings.Builder

	sb.WriteString(bold("Привет! 👋"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Здесь можно учить язык короткими уроками: выбор ответа, пропуски, " +
		"аудирование, картинки, порядок слов и пары."))
	sb.WriteString("\n\n")
	sb.WriteString(md("В каждом уроке есть жизни ❤️: ошибка стоит одну жизнь. " +
		"Уроки с результатом от 70% продлевают ежедневную серию 🔥."))
	sb.WriteString("\n\n")
	sb.WriteString(md("Чтобы начать, выберите урок: /lessons"))

	return sb.String()
}

func msgHelp() string {
	lines := []string{
		"/lessons — список уроков (можно указать тему: /lessons food)",
		"/lesson <id> — начать урок",
		"/stop — прервать текущий урок",
		"/progress — опыт и серия",
		"/leaderboard — рейтинг недели",
		"/settings — напоминания и перемешивание пар",
		"/reset — сбросить прогресс",
	}

	return bold("Команды") + "\n\n" + md(strings.Join(lines, "\n")) + "\n\n" +
		md("Ответы на задания с пропуском можно просто написать сообщением.")
}

func msgUnknownCommand() string {
	return md("Неизвестная команда.") + "\n\n" + msgHelp()
}

// formatLessonList formats lesson headers for the lessons screen.
func formatLessonList(headers []entities.LessonHeader, topicID string) string {
	var sb strings.Builder

	title := "📚 Уроки"
	if topicID != "" {
		title += ": " + topicID
	}
	sb.WriteString(bold(title))
	sb.WriteString("\n")

	for _, l := range headers {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("• %s (+%d XP) — /lesson %s", l.Title, l.XPReward, l.ID)))
	}

	return sb.String()
}

// formatLives renders remaining lives as hearts.
func formatLives(lives, maxLives int) string {
	return strings.Repeat("❤️", lives) + strings.Repeat("🤍", max(0, maxLives-lives))
}

// formatExercise formats the screen of the current exercise of a play.
func formatExercise(ap *storage.ActivePlay) string {
	s := ap.Play.Session()
	ex, ok := s.Current()
	if !ok {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(bold(ap.LessonTitle))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Задание %d из %d  %s", s.Index()+1, s.Total(), formatLives(s.Lives(), s.MaxLives()))))
	sb.WriteString("\n\n")

	if ex.Question != "" {
		sb.WriteString(bold(ex.Question))
		sb.WriteString("\n\n")
	}

	if ex.Validate() != nil {
		sb.WriteString(md(msgMalformed))
		return sb.String()
	}

	if ex.Format == entities.FormatListening {
		sb.WriteString(md("🎧 Прослушайте аудио выше."))
		sb.WriteString("\n")
	}

	switch b := ex.Body.(type) {
	case *entities.Choice:
		if len(b.Options) == 0 {
			sb.WriteString(md("✍️ Напишите ответ сообщением."))
		} else {
			sb.WriteString(md("Выберите вариант ответа."))
		}
	case *entities.ImageSelect:
		sb.WriteString(md("Выберите номер подходящей картинки."))
	case *entities.Reorder:
		if r := ap.Play.Reorder(); r != nil {
			sb.WriteString(md("Соберите фразу:"))
			sb.WriteString("\n")
			sb.WriteString(bold(formatSlots(r.Slots())))
		}
	case *entities.Match:
		sb.WriteString(md("Соедините пары: сначала слева, затем справа."))
		if m := ap.Play.Match(); m != nil {
			for _, p := range m.Pairs() {
				sb.WriteString("\n")
				sb.WriteString(md(fmt.Sprintf("%s %s = %s", mark(p.Correct), p.Pair.Left, p.Pair.Right)))
			}
		}
	}

	if t, ok := s.Pending().(engine.Text); ok && ex.Format != entities.FormatReorder && !s.IsSubmitted() {
		sb.WriteString("\n\n")
		sb.WriteString(md("Ваш ответ: "))
		sb.WriteString(bold(string(t)))
	}

	return sb.String()
}

// formatSlots renders the reorder answer line, with blanks for empty slots.
func formatSlots(slots []engine.Slot) string {
	words := make([]string, len(slots))
	for i, s := range slots {
		if s.Filled {
			words[i] = s.Token
		} else {
			words[i] = "___"
		}
	}
	return strings.Join(words, " ")
}

func mark(correct bool) string {
	if correct {
		return "✅"
	}
	return "❌"
}

// formatFeedback formats feedback for a submitted answer (MarkdownV2 safe).
func formatFeedback(fb engine.Feedback, nearMiss bool) string {
	if fb.Correct {
		return md("✅ Правильно!")
	}

	text := md("❌ Неправильно")
	if nearMiss {
		text += "\n" + md("Почти! Проверьте написание.")
	}
	if fb.CorrectAnswer != "" {
		text += "\n\n" + md("Правильный ответ: ") + bold(fb.CorrectAnswer)
	}
	return text
}

// formatSummary formats the result of a finished lesson (MarkdownV2 safe).
func formatSummary(res *service.Result) string {
	sum := res.Summary

	emoji, message := "📚", "Повторите урок, чтобы закрепить материал."
	switch {
	case sum.Outcome == entities.OutcomeFailed:
		emoji, message = "💔", "Жизни закончились. Попробуйте ещё раз!"
	case sum.IsPerfect:
		emoji, message = "🌟", "Идеально, без единой ошибки!"
	case sum.MetExpectedThreshold:
		emoji, message = "👍", "Хороший результат!"
	}

	var sb strings.Builder
	sb.WriteString(md(emoji + " "))
	sb.WriteString(bold(res.LessonTitle))
	sb.WriteString("\n\n")
	sb.WriteString(md("Результат: "))
	sb.WriteString(bold(fmt.Sprintf("%d/%d (%d%%)", sum.Correct, sum.Total, sum.ScorePercent)))
	sb.WriteString("\n")
	sb.WriteString(md(buildProgressBar(sum.Correct, sum.Total, 10)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("⭐ Опыт: +%d XP", sum.XPEarned)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("❤️ Осталось жизней: %d", sum.LivesLeft)))

	if p := res.Progress; p != nil && sum.MetExpectedThreshold {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("🔥 Серия: %d дн.", p.CurrentStreak)))
	}

	sb.WriteString("\n\n")
	sb.WriteString(md(message))

	return sb.String()
}

// formatProgress formats the progress screen.
func formatProgress(sum *service.ProgressSummary) string {
	p := sum.Progress

	var sb strings.Builder
	sb.WriteString(bold("📊 Ваш прогресс"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("⭐ Всего опыта: %d XP", p.TotalXP)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("✅ Пройдено уроков: %d", p.LessonsCompleted)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🌟 Без ошибок: %d", p.PerfectLessons)))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("🔥 Серия: %d дн. (рекорд: %d)", sum.ActiveStreak, p.LongestStreak)))

	if sum.StreakAtRisk {
		sb.WriteString("\n")
		sb.WriteString(md("⚠️ Пройдите урок сегодня, чтобы не потерять серию!"))
	}

	if len(sum.Recent) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(bold("Последние уроки"))
		for _, a := range sum.Recent {
			sb.WriteString("\n")
			sb.WriteString(md(fmt.Sprintf("%s %s: %d%%, +%d XP (%s)",
				outcomeMark(a.Summary),
				a.LessonID,
				a.Summary.ScorePercent,
				a.Summary.XPEarned,
				a.FinishedAt.UTC().Format(time.DateOnly),
			)))
		}
	}

	return sb.String()
}

func outcomeMark(s entities.Summary) string {
	switch {
	case s.Outcome == entities.OutcomeFailed:
		return "💔"
	case s.IsPerfect:
		return "🌟"
	default:
		return "✅"
	}
}

// formatLeaderboard formats the weekly leaderboard.
func formatLeaderboard(entries []entities.LeaderboardEntry) string {
	var sb strings.Builder
	sb.WriteString(bold("🏆 Рейтинг недели"))
	sb.WriteString("\n")

	if len(entries) == 0 {
		sb.WriteString("\n")
		sb.WriteString(md("На этой неделе ещё никто не набрал опыт. Будьте первым!"))
		return sb.String()
	}

	for _, e := range entries {
		name := e.DisplayName
		if name == "" {
			name = "Без имени"
		}
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("%s %s — %d XP", rankMark(e.Rank), name, e.WeeklyXP)))
	}

	return sb.String()
}

func rankMark(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d.", rank)
	}
}

// formatSettings formats the settings screen.
func formatSettings(s *entities.UserSettings) string {
	return fmt.Sprintf(
		"%s\n\n%s\n%s\n%s\n",
		bold("⚙️ Настройки"),
		md(fmt.Sprintf("🔔 Напоминания о серии: %s", formatBool(s.RemindersEnabled))),
		md(fmt.Sprintf("⏰ Время напоминания: %02d:00 UTC", s.ReminderHour)),
		md(fmt.Sprintf("🔀 Перемешивать пары: %s", formatBool(s.ShuffleMatch))),
	)
}

// formatStreakReminder builds the streak-at-risk notification.
func formatStreakReminder(streak int) string {
	return fmt.Sprintf(
		"%s\n\n%s",
		bold(fmt.Sprintf("🔥 Ваша серия: %d дн.", streak)),
		md("Сегодня вы ещё не занимались. Пройдите короткий урок, чтобы не потерять серию!"),
	)
}

func formatBool(b bool) string {
	if b {
		return "Включено ✅"
	}
	return "Выключено ❌"
}

// buildProgressBar creates an ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return "[" + strings.Repeat("░", length) + "]"
	}

	filled := int(float64(current) / float64(total) * float64(length))
	if filled > length {
		filled = length
	}

	empty := length - filled
	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s]", bar)
}
