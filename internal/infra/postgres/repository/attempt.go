package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/infra/postgres"
)

// AttemptRepository stores finished lesson attempts.
type AttemptRepository struct {
	db postgres.DBTX
}

func NewAttemptRepository(db postgres.DBTX) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// Save inserts a finished attempt.
func (r *AttemptRepository) Save(ctx context.Context, a *entities.LessonAttempt) error {
	query := `
		INSERT INTO lesson_attempts (
			id, user_id, lesson_id, outcome, correct, total, lives_left,
			score_percent, xp_earned, is_perfect, met_expected_threshold,
			started_at, finished_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	s := a.Summary
	_, err := r.db.Exec(ctx, query,
		a.ID,
		a.UserID,
		a.LessonID,
		string(s.Outcome),
		s.Correct,
		s.Total,
		s.LivesLeft,
		s.ScorePercent,
		s.XPEarned,
		s.IsPerfect,
		s.MetExpectedThreshold,
		a.StartedAt,
		a.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}

	return nil
}

// ListRecent returns the latest attempts of a user, newest first.
func (r *AttemptRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]*entities.LessonAttempt, error) {
	query := `
		SELECT id, user_id, lesson_id, outcome, correct, total, lives_left,
		       score_percent, xp_earned, is_perfect, met_expected_threshold,
		       started_at, finished_at
		FROM lesson_attempts
		WHERE user_id = $1
		ORDER BY finished_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []*entities.LessonAttempt
	for rows.Next() {
		var a entities.LessonAttempt
		var outcome string
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.LessonID,
			&outcome,
			&a.Summary.Correct,
			&a.Summary.Total,
			&a.Summary.LivesLeft,
			&a.Summary.ScorePercent,
			&a.Summary.XPEarned,
			&a.Summary.IsPerfect,
			&a.Summary.MetExpectedThreshold,
			&a.StartedAt,
			&a.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Summary.Outcome = entities.Outcome(outcome)
		attempts = append(attempts, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}

	return attempts, nil
}

// WeeklyLeaderboard ranks active users by XP earned since the given time.
func (r *AttemptRepository) WeeklyLeaderboard(ctx context.Context, since time.Time, limit int) ([]entities.LeaderboardEntry, error) {
	query := `
		SELECT u.id, u.display_name, SUM(a.xp_earned)::INTEGER AS weekly_xp
		FROM lesson_attempts a
		JOIN users u ON u.id = a.user_id
		WHERE a.finished_at >= $1 AND u.is_active
		GROUP BY u.id, u.display_name
		HAVING SUM(a.xp_earned) > 0
		ORDER BY weekly_xp DESC, u.id
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []entities.LeaderboardEntry
	for rows.Next() {
		e := entities.LeaderboardEntry{Rank: len(entries) + 1}
		if err := rows.Scan(&e.UserID, &e.DisplayName, &e.WeeklyXP); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaderboard: %w", err)
	}

	return entries, nil
}
