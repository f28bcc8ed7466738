package service

import (
	"context"
	"fmt"

	"github.com/aliskhannn/lingvo-bot/internal/infra/postgres"
	"github.com/aliskhannn/lingvo-bot/internal/infra/postgres/repository"
)

type ResetService struct {
	tr    Transactor
	plays PlayStorage
	sent  ReminderStorage
}

func NewResetService(tr Transactor, plays PlayStorage, sent ReminderStorage) *ResetService {
	return &ResetService{
		tr:    tr,
		plays: plays,
		sent:  sent,
	}
}

// ResetUser drops the active lesson and the reminder history, then deletes
// the user's attempts and progress.
func (s *ResetService) ResetUser(ctx context.Context, userID int64) error {
	s.plays.Delete(userID)
	s.sent.Delete(userID)

	err := s.tr.WithinTx(ctx, func(ctx context.Context, tx postgres.DBTX) error {
		return repository.NewResetRepository(tx).ResetUser(ctx, userID)
	})
	if err != nil {
		return fmt.Errorf("reset user: %w", err)
	}
	return nil
}
