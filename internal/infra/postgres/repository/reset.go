package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/lingvo-bot/internal/infra/postgres"
)

// ResetRepository wipes the learning history of a user.
type ResetRepository struct {
	db postgres.DBTX
}

func NewResetRepository(db postgres.DBTX) *ResetRepository {
	return &ResetRepository{db: db}
}

// ResetUser deletes attempts and progress. Settings and the user row stay.
func (r *ResetRepository) ResetUser(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM lesson_attempts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete lesson_attempts: %w", err)
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM user_progress WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete user_progress: %w", err)
	}

	return nil
}
