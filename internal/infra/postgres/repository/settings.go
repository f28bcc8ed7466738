package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/infra/postgres"
)

var ErrSettingsNotFound = errors.New("settings not found")

// SettingsRepository provides access to user settings data in the database.
type SettingsRepository struct {
	db postgres.DBTX
}

// NewSettingsRepository creates a new SettingsRepository with the provided database pool.
func NewSettingsRepository(db postgres.DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Create stores settings for a user unless they already exist.
func (r *SettingsRepository) Create(ctx context.Context, s *entities.UserSettings) error {
	query := `
		INSERT INTO user_settings (
			user_id, reminders_enabled, reminder_hour, shuffle_match, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		s.UserID, s.RemindersEnabled, s.ReminderHour, s.ShuffleMatch, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create settings: %w", err)
	}

	return nil
}

// GetByUserID retrieves settings for a user.
func (r *SettingsRepository) GetByUserID(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	query := `
		SELECT user_id, reminders_enabled, reminder_hour, shuffle_match, created_at, updated_at
		FROM user_settings
		WHERE user_id = $1
	`

	var settings entities.UserSettings
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&settings.UserID,
		&settings.RemindersEnabled,
		&settings.ReminderHour,
		&settings.ShuffleMatch,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &settings, nil
}

// UpdateRemindersEnabled turns streak reminders on or off.
func (r *SettingsRepository) UpdateRemindersEnabled(ctx context.Context, userID int64, enabled bool) error {
	return r.update(ctx, "reminders_enabled", userID, enabled)
}

// UpdateReminderHour sets the UTC hour reminders are sent at.
func (r *SettingsRepository) UpdateReminderHour(ctx context.Context, userID int64, hour int) error {
	return r.update(ctx, "reminder_hour", userID, hour)
}

// UpdateShuffleMatch toggles shuffling of the right match column.
func (r *SettingsRepository) UpdateShuffleMatch(ctx context.Context, userID int64, shuffle bool) error {
	return r.update(ctx, "shuffle_match", userID, shuffle)
}

// update sets one column. column is always a constant from this file.
func (r *SettingsRepository) update(ctx context.Context, column string, userID int64, value any) error {
	query := fmt.Sprintf(`
		UPDATE user_settings
		SET %s = $1, updated_at = $2
		WHERE user_id = $3
	`, column)

	result, err := r.db.Exec(ctx, query, value, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("update %s: %w", column, err)
	}

	if result.RowsAffected() == 0 {
		return ErrSettingsNotFound
	}

	return nil
}
