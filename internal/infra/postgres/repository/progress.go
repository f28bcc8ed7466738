package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/infra/postgres"
)

var ErrProgressNotFound = errors.New("progress not found")

// ProgressRepository provides access to user progress data in the database.
type ProgressRepository struct {
	db postgres.DBTX
}

// NewProgressRepository creates a new ProgressRepository with the provided database pool.
func NewProgressRepository(db postgres.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Upsert creates or updates the progress record of a user.
func (r *ProgressRepository) Upsert(ctx context.Context, p *entities.UserProgress) error {
	query := `
		INSERT INTO user_progress (
			user_id, total_xp, lessons_completed, perfect_lessons,
			current_streak, longest_streak, last_streak_date, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			total_xp = EXCLUDED.total_xp,
			lessons_completed = EXCLUDED.lessons_completed,
			perfect_lessons = EXCLUDED.perfect_lessons,
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			last_streak_date = EXCLUDED.last_streak_date,
			updated_at = EXCLUDED.updated_at
	`

	var lastStreak pgtype.Date
	if p.LastStreakDate != nil {
		lastStreak = pgtype.Date{Time: *p.LastStreakDate, Valid: true}
	}

	_, err := r.db.Exec(ctx, query,
		p.UserID,
		p.TotalXP,
		p.LessonsCompleted,
		p.PerfectLessons,
		p.CurrentStreak,
		p.LongestStreak,
		lastStreak,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}

	return nil
}

// Get retrieves the progress record of a user.
func (r *ProgressRepository) Get(ctx context.Context, userID int64) (*entities.UserProgress, error) {
	return r.get(ctx, userID, false)
}

// GetForUpdate retrieves the progress record and locks its row. It must run
// inside a transaction.
func (r *ProgressRepository) GetForUpdate(ctx context.Context, userID int64) (*entities.UserProgress, error) {
	return r.get(ctx, userID, true)
}

func (r *ProgressRepository) get(ctx context.Context, userID int64, lock bool) (*entities.UserProgress, error) {
	query := `
		SELECT user_id, total_xp, lessons_completed, perfect_lessons,
		       current_streak, longest_streak, last_streak_date, updated_at
		FROM user_progress
		WHERE user_id = $1
	`
	if lock {
		query += " FOR UPDATE"
	}

	var p entities.UserProgress
	var lastStreak pgtype.Date

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.TotalXP,
		&p.LessonsCompleted,
		&p.PerfectLessons,
		&p.CurrentStreak,
		&p.LongestStreak,
		&lastStreak,
		&p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgressNotFound
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}

	if lastStreak.Valid {
		t := lastStreak.Time
		p.LastStreakDate = &t
	}

	return &p, nil
}
