package telegram

import (
	"context"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/service"
	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

type fakeBot struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	groups   []tgbotapi.MediaGroupConfig
	sendErr  error
	nextID   int
	updates  chan tgbotapi.Update
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.sent = append(b.sent, c)
	if b.sendErr != nil {
		return tgbotapi.Message{}, b.sendErr
	}
	b.nextID++
	return tgbotapi.Message{MessageID: b.nextID}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) SendMediaGroup(cfg tgbotapi.MediaGroupConfig) ([]tgbotapi.Message, error) {
	b.groups = append(b.groups, cfg)
	return nil, nil
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

// last returns the text and inline keyboard of the last sent message or edit.
func (b *fakeBot) last(t *testing.T) (string, tgbotapi.InlineKeyboardMarkup) {
	t.Helper()

	if len(b.sent) == 0 {
		t.Fatal("nothing was sent")
	}

	switch c := b.sent[len(b.sent)-1].(type) {
	case tgbotapi.MessageConfig:
		kb, _ := c.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
		return c.Text, kb
	case tgbotapi.EditMessageTextConfig:
		var kb tgbotapi.InlineKeyboardMarkup
		if c.ReplyMarkup != nil {
			kb = *c.ReplyMarkup
		}
		return c.Text, kb
	default:
		t.Fatalf("last sent is %T; want message or edit", c)
		return "", tgbotapi.InlineKeyboardMarkup{}
	}
}

// lastToast returns the text of the last callback answer.
func (b *fakeBot) lastToast(t *testing.T) string {
	t.Helper()

	for i := len(b.requests) - 1; i >= 0; i-- {
		if cb, ok := b.requests[i].(tgbotapi.CallbackConfig); ok {
			return cb.Text
		}
	}
	t.Fatal("no callback answered")
	return ""
}

func hasButton(kb tgbotapi.InlineKeyboardMarkup, data string) bool {
	for _, row := range kb.InlineKeyboard {
		for _, b := range row {
			if b.CallbackData != nil && *b.CallbackData == data {
				return true
			}
		}
	}
	return false
}

type fakeLessonSource struct {
	lessons map[string]entities.Lesson
}

func (f *fakeLessonSource) ListLessons(_ context.Context, _ string) ([]entities.LessonHeader, error) {
	out := make([]entities.LessonHeader, 0, len(f.lessons))
	for _, l := range f.lessons {
		out = append(out, l.Header())
	}
	return out, nil
}

func (f *fakeLessonSource) GetLesson(_ context.Context, id string) (entities.Lesson, error) {
	l, ok := f.lessons[id]
	if !ok {
		return entities.Lesson{}, entities.ErrLessonNotFound
	}
	return l, nil
}

func (f *fakeLessonSource) SubmitResults(context.Context, *entities.LessonAttempt) error {
	return nil
}

type fakeRecorder struct {
	attempts int
}

func (f *fakeRecorder) Record(_ context.Context, a *entities.LessonAttempt, now time.Time) (*entities.UserProgress, error) {
	f.attempts++
	p := entities.NewUserProgress(a.UserID)
	p.ApplyAttempt(a.Summary, now)
	return p, nil
}

type fakeSettingsService struct {
	settings *entities.UserSettings
}

func (f *fakeSettingsService) GetOrCreate(_ context.Context, userID int64) (*entities.UserSettings, error) {
	if f.settings == nil {
		f.settings = entities.NewUserSettings(userID)
	}
	return f.settings, nil
}

func (f *fakeSettingsService) ToggleReminders(ctx context.Context, userID int64) (bool, error) {
	s, _ := f.GetOrCreate(ctx, userID)
	s.RemindersEnabled = !s.RemindersEnabled
	return s.RemindersEnabled, nil
}

func (f *fakeSettingsService) ToggleShuffleMatch(ctx context.Context, userID int64) (bool, error) {
	s, _ := f.GetOrCreate(ctx, userID)
	s.ShuffleMatch = !s.ShuffleMatch
	return s.ShuffleMatch, nil
}

func (f *fakeSettingsService) SetReminderHour(ctx context.Context, userID int64, hour int) error {
	if !entities.ValidReminderHour(hour) {
		return service.ErrInvalidReminderHour
	}
	s, _ := f.GetOrCreate(ctx, userID)
	s.ReminderHour = hour
	return nil
}

type fakeUserService struct {
	names map[int64]string
}

func (f *fakeUserService) EnsureUser(_ context.Context, userID, _ int64, displayName string) error {
	if f.names == nil {
		f.names = make(map[int64]string)
	}
	f.names[userID] = displayName
	return nil
}

type fakeProgressService struct {
	summary *service.ProgressSummary
	entries []entities.LeaderboardEntry
}

func (f *fakeProgressService) GetProgressSummary(_ context.Context, userID int64) (*service.ProgressSummary, error) {
	if f.summary == nil {
		return &service.ProgressSummary{Progress: entities.NewUserProgress(userID)}, nil
	}
	return f.summary, nil
}

func (f *fakeProgressService) WeeklyLeaderboard(_ context.Context, limit int) ([]entities.LeaderboardEntry, error) {
	return f.entries[:min(limit, len(f.entries))], nil
}

type fakeResetService struct {
	reset []int64
}

func (f *fakeResetService) ResetUser(_ context.Context, userID int64) error {
	f.reset = append(f.reset, userID)
	return nil
}

type fixture struct {
	h        *Handler
	bot      *fakeBot
	users    *fakeUserService
	settings *fakeSettingsService
	progress *fakeProgressService
	resets   *fakeResetService
	recorder *fakeRecorder
	plays    *storage.PlayStorage
}

func newFixture(lessons ...entities.Lesson) *fixture {
	source := &fakeLessonSource{lessons: make(map[string]entities.Lesson)}
	for _, l := range lessons {
		source.lessons[l.ID] = l
	}

	f := &fixture{
		bot:      &fakeBot{},
		users:    &fakeUserService{},
		settings: &fakeSettingsService{},
		progress: &fakeProgressService{},
		resets:   &fakeResetService{},
		recorder: &fakeRecorder{},
		plays:    storage.NewPlayStorage(),
	}

	lessonService := service.NewLessonService(source, f.plays, f.settings, f.recorder, zap.NewNop(), 3)
	f.h = NewHandler(f.bot, zap.NewNop(), f.users, lessonService, f.progress, f.settings, f.resets)
	return f
}

const (
	testUserID = int64(7)
	testChatID = int64(100)
	testMsgID  = 42
)

func commandUpdate(text string) tgbotapi.Update {
	cmdLen := len(text)
	for i, r := range text {
		if r == ' ' {
			cmdLen = i
			break
		}
	}

	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: testChatID},
		From:     &tgbotapi.User{ID: testUserID, FirstName: "Ana", LastName: "Lopez"},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}},
	}}
}

func textUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: testChatID},
		From: &tgbotapi.User{ID: testUserID, UserName: "ana"},
	}}
}

func callbackUpdate(data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: testUserID},
		Message: &tgbotapi.Message{MessageID: testMsgID, Chat: &tgbotapi.Chat{ID: testChatID}},
		Data:    data,
	}}
}
