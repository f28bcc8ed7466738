package service

import (
	"context"
	"fmt"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
)

type UserService struct {
	repository UserRepository
	settings   SettingsRepository
}

func NewUserService(repository UserRepository, settings SettingsRepository) *UserService {
	return &UserService{repository: repository, settings: settings}
}

// EnsureUser stores the user and, on first contact, default settings.
// It also reactivates users who had blocked the bot before.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64, displayName string) error {
	user := entities.NewUser(userID, chatID, displayName)

	created, err := s.repository.Save(ctx, user)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	if err := s.settings.Create(ctx, entities.NewUserSettings(userID)); err != nil {
		return fmt.Errorf("create default settings: %w", err)
	}
	return nil
}

// Deactivate stops reminders and leaderboard listing for a user who blocked the bot.
func (s *UserService) Deactivate(ctx context.Context, userID int64) error {
	return s.repository.Deactivate(ctx, userID)
}
