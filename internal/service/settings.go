package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/infra/postgres/repository"
)

var ErrInvalidReminderHour = errors.New("invalid reminder hour")

type SettingsService struct {
	repository SettingsRepository
}

func NewSettingsService(repository SettingsRepository) *SettingsService {
	return &SettingsService{repository: repository}
}

func (s *SettingsService) GetOrCreate(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	settings, err := s.repository.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			if err := s.repository.Create(ctx, entities.NewUserSettings(userID)); err != nil {
				return nil, err
			}
			return s.repository.GetByUserID(ctx, userID)
		}
		return nil, err
	}

	return settings, nil
}

// ToggleReminders flips streak reminders and returns the new value.
func (s *SettingsService) ToggleReminders(ctx context.Context, userID int64) (bool, error) {
	settings, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return false, err
	}

	enabled := !settings.RemindersEnabled
	if err := s.repository.UpdateRemindersEnabled(ctx, userID, enabled); err != nil {
		return false, err
	}
	return enabled, nil
}

// ToggleShuffleMatch flips match column shuffling and returns the new value.
func (s *SettingsService) ToggleShuffleMatch(ctx context.Context, userID int64) (bool, error) {
	settings, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return false, err
	}

	shuffle := !settings.ShuffleMatch
	if err := s.repository.UpdateShuffleMatch(ctx, userID, shuffle); err != nil {
		return false, err
	}
	return shuffle, nil
}

// SetReminderHour sets the UTC hour streak reminders are sent at.
func (s *SettingsService) SetReminderHour(ctx context.Context, userID int64, hour int) error {
	if !entities.ValidReminderHour(hour) {
		return fmt.Errorf("%w: %d", ErrInvalidReminderHour, hour)
	}
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return err
	}
	return s.repository.UpdateReminderHour(ctx, userID, hour)
}
