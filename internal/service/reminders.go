package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ErrBotBlocked is returned by a notifier when the user blocked the bot.
var ErrBotBlocked = errors.New("bot was blocked by the user")

// UserDeactivator marks users inactive.
type UserDeactivator interface {
	Deactivate(ctx context.Context, userID int64) error
}

// ReminderService nudges users whose daily streak is about to lapse.
type ReminderService struct {
	reminderRepo ReminderRepository
	plays        PlayStorage
	sent         ReminderStorage
	users        UserDeactivator
	notifier     ReminderNotifier
	schedule     string
	logger       *zap.Logger
	now          func() time.Time
}

// NewReminderService creates a new reminder service. schedule is a cron spec
// evaluated in UTC.
func NewReminderService(
	reminderRepo ReminderRepository,
	plays PlayStorage,
	sent ReminderStorage,
	users UserDeactivator,
	schedule string,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		reminderRepo: reminderRepo,
		plays:        plays,
		sent:         sent,
		users:        users,
		schedule:     schedule,
		logger:       logger,
		now:          time.Now,
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *ReminderService) SetNotifier(notifier ReminderNotifier) {
	s.notifier = notifier
}

// Start runs the reminder schedule until ctx is cancelled.
func (s *ReminderService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, func() {
		sent, err := s.SendStreakReminders(ctx)
		if err != nil {
			s.logger.Error("failed to send streak reminders", zap.Error(err))
			return
		}
		s.logger.Info("streak reminders processed", zap.Int("sent", sent))
	})
	if err != nil {
		return fmt.Errorf("add cron job %q: %w", s.schedule, err)
	}

	c.Start()
	s.logger.Info("reminder service started", zap.String("schedule", s.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("reminder service stopped")
	return nil
}

// SendStreakReminders notifies every user whose reminder hour is the current
// UTC hour and whose streak has not been extended today. Users in the middle
// of a lesson and users already reminded today are skipped.
func (s *ReminderService) SendStreakReminders(ctx context.Context) (int, error) {
	if s.notifier == nil {
		return 0, errors.New("notifier not initialized")
	}

	now := s.now().UTC()
	targets, err := s.reminderRepo.StreakAtRisk(ctx, now, now.Hour())
	if err != nil {
		return 0, fmt.Errorf("get reminder targets: %w", err)
	}

	const maxConcurrent = 10
	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup
	var mu sync.Mutex
	sent := 0

	for _, t := range targets {
		if s.plays.Has(t.UserID) || s.sent.SentOn(t.UserID, now) {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}

		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			msgID, err := s.notifier.SendStreakReminder(t.ChatID, t.CurrentStreak)
			if err != nil {
				s.handleSendError(ctx, t.UserID, err)
				return
			}

			s.sent.Store(t.UserID, t.ChatID, msgID, now)

			mu.Lock()
			sent++
			mu.Unlock()
		}()
	}

	wg.Wait()
	return sent, nil
}

func (s *ReminderService) handleSendError(ctx context.Context, userID int64, err error) {
	if !errors.Is(err, ErrBotBlocked) {
		s.logger.Error("failed to send streak reminder",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("user blocked the bot, deactivating", zap.Int64("user_id", userID))
	if err := s.users.Deactivate(ctx, userID); err != nil {
		s.logger.Error("failed to deactivate user",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}
