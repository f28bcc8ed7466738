package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/infra/postgres"
)

// ReminderRepository finds users to remind about their streak.
type ReminderRepository struct {
	db postgres.DBTX
}

// NewRemindersRepository creates a new ReminderRepository with the provided database pool.
func NewRemindersRepository(db postgres.DBTX) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// StreakAtRisk returns active users with reminders enabled for hour whose
// streak was last extended on the UTC day before today.
func (r *ReminderRepository) StreakAtRisk(ctx context.Context, today time.Time, hour int) ([]entities.ReminderTarget, error) {
	query := `
		SELECT u.id, u.chat_id, p.current_streak
		FROM users u
		JOIN user_settings s ON s.user_id = u.id
		JOIN user_progress p ON p.user_id = u.id
		WHERE u.is_active
		  AND s.reminders_enabled
		  AND s.reminder_hour = $1
		  AND p.current_streak > 0
		  AND p.last_streak_date = $2
		ORDER BY u.id
	`

	t := today.UTC()
	yesterday := time.Date(t.Year(), t.Month(), t.Day()-1, 0, 0, 0, 0, time.UTC)

	rows, err := r.db.Query(ctx, query, hour, pgtype.Date{Time: yesterday, Valid: true})
	if err != nil {
		return nil, fmt.Errorf("query reminder targets: %w", err)
	}
	defer rows.Close()

	var targets []entities.ReminderTarget
	for rows.Next() {
		var target entities.ReminderTarget
		if err := rows.Scan(&target.UserID, &target.ChatID, &target.CurrentStreak); err != nil {
			return nil, fmt.Errorf("scan reminder target: %w", err)
		}
		targets = append(targets, target)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reminder targets: %w", err)
	}

	return targets, nil
}
