package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/infra/postgres/repository"
)

type fakeLessons struct {
	lessons   map[string]entities.Lesson
	submitted []*entities.LessonAttempt
	submitErr error
}

func (f *fakeLessons) ListLessons(_ context.Context, topicID string) ([]entities.LessonHeader, error) {
	var out []entities.LessonHeader
	for _, l := range f.lessons {
		if topicID == "" || l.TopicID == topicID {
			out = append(out, l.Header())
		}
	}
	return out, nil
}

func (f *fakeLessons) GetLesson(_ context.Context, id string) (entities.Lesson, error) {
	l, ok := f.lessons[id]
	if !ok {
		return entities.Lesson{}, entities.ErrLessonNotFound
	}
	return l, nil
}

func (f *fakeLessons) SubmitResults(_ context.Context, a *entities.LessonAttempt) error {
	f.submitted = append(f.submitted, a)
	return f.submitErr
}

type fakeSettings struct {
	settings *entities.UserSettings
	err      error
}

func (f *fakeSettings) GetOrCreate(_ context.Context, userID int64) (*entities.UserSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.settings == nil {
		return entities.NewUserSettings(userID), nil
	}
	return f.settings, nil
}

type fakeRecorder struct {
	attempts []*entities.LessonAttempt
	progress map[int64]*entities.UserProgress
	err      error
}

func (f *fakeRecorder) Record(_ context.Context, a *entities.LessonAttempt, now time.Time) (*entities.UserProgress, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.attempts = append(f.attempts, a)
	if f.progress == nil {
		f.progress = make(map[int64]*entities.UserProgress)
	}
	p, ok := f.progress[a.UserID]
	if !ok {
		p = entities.NewUserProgress(a.UserID)
		f.progress[a.UserID] = p
	}
	p.ApplyAttempt(a.Summary, now)
	return p, nil
}

type fakeSettingsRepo struct {
	mu       sync.Mutex
	settings map[int64]*entities.UserSettings
	creates  int
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: make(map[int64]*entities.UserSettings)}
}

func (f *fakeSettingsRepo) Create(_ context.Context, s *entities.UserSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if _, ok := f.settings[s.UserID]; !ok {
		cp := *s
		f.settings[s.UserID] = &cp
	}
	return nil
}

func (f *fakeSettingsRepo) GetByUserID(_ context.Context, userID int64) (*entities.UserSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.settings[userID]
	if !ok {
		return nil, repository.ErrSettingsNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSettingsRepo) update(userID int64, fn func(*entities.UserSettings)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.settings[userID]
	if !ok {
		return repository.ErrSettingsNotFound
	}
	fn(s)
	return nil
}

func (f *fakeSettingsRepo) UpdateRemindersEnabled(_ context.Context, userID int64, enabled bool) error {
	return f.update(userID, func(s *entities.UserSettings) { s.RemindersEnabled = enabled })
}

func (f *fakeSettingsRepo) UpdateReminderHour(_ context.Context, userID int64, hour int) error {
	return f.update(userID, func(s *entities.UserSettings) { s.ReminderHour = hour })
}

func (f *fakeSettingsRepo) UpdateShuffleMatch(_ context.Context, userID int64, shuffle bool) error {
	return f.update(userID, func(s *entities.UserSettings) { s.ShuffleMatch = shuffle })
}

type fakeUserRepo struct {
	mu          sync.Mutex
	users       map[int64]*entities.User
	deactivated []int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entities.User)}
}

func (f *fakeUserRepo) Save(_ context.Context, u *entities.User) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, exists := f.users[u.ID]
	f.users[u.ID] = u
	return !exists, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, userID int64) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Deactivate(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deactivated = append(f.deactivated, userID)
	if u, ok := f.users[userID]; ok {
		u.IsActive = false
	}
	return nil
}

type fakeProgressRepo struct {
	progress *entities.UserProgress
}

func (f *fakeProgressRepo) Get(_ context.Context, _ int64) (*entities.UserProgress, error) {
	if f.progress == nil {
		return nil, repository.ErrProgressNotFound
	}
	return f.progress, nil
}

type fakeAttemptRepo struct {
	recent      []*entities.LessonAttempt
	leaderboard []entities.LeaderboardEntry
	since       time.Time
}

func (f *fakeAttemptRepo) ListRecent(_ context.Context, _ int64, limit int) ([]*entities.LessonAttempt, error) {
	return f.recent[:min(limit, len(f.recent))], nil
}

func (f *fakeAttemptRepo) WeeklyLeaderboard(_ context.Context, since time.Time, limit int) ([]entities.LeaderboardEntry, error) {
	f.since = since
	return f.leaderboard[:min(limit, len(f.leaderboard))], nil
}

type fakeReminderRepo struct {
	targets []entities.ReminderTarget
	hour    int
}

func (f *fakeReminderRepo) StreakAtRisk(_ context.Context, _ time.Time, hour int) ([]entities.ReminderTarget, error) {
	f.hour = hour
	return f.targets, nil
}

type fakeNotifier struct {
	mu      sync.Mutex
	sent    map[int64]int // chat id -> streak
	blocked map[int64]bool
}

func (f *fakeNotifier) SendStreakReminder(chatID int64, streak int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.blocked[chatID] {
		return 0, ErrBotBlocked
	}
	if f.sent == nil {
		f.sent = make(map[int64]int)
	}
	f.sent[chatID] = streak
	return len(f.sent), nil
}

var errBoom = errors.New("boom")
