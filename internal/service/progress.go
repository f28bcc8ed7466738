package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/infra/postgres"
	"github.com/aliskhannn/lingvo-bot/internal/infra/postgres/repository"
)

const recentAttempts = 5

// ProgressSummary is the progress screen of a user.
type ProgressSummary struct {
	Progress     *entities.UserProgress
	ActiveStreak int
	StreakAtRisk bool
	Recent       []*entities.LessonAttempt
}

type ProgressService struct {
	progress ProgressRepository
	attempts AttemptRepository
	now      func() time.Time
}

func NewProgressService(progress ProgressRepository, attempts AttemptRepository) *ProgressService {
	return &ProgressService{
		progress: progress,
		attempts: attempts,
		now:      time.Now,
	}
}

// GetProgressSummary returns the progress of a user. A user without any
// recorded lesson gets an empty summary.
func (s *ProgressService) GetProgressSummary(ctx context.Context, userID int64) (*ProgressSummary, error) {
	p, err := s.progress.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrProgressNotFound) {
			return nil, fmt.Errorf("get progress: %w", err)
		}
		p = entities.NewUserProgress(userID)
	}

	recent, err := s.attempts.ListRecent(ctx, userID, recentAttempts)
	if err != nil {
		return nil, fmt.Errorf("list recent attempts: %w", err)
	}

	now := s.now()
	return &ProgressSummary{
		Progress:     p,
		ActiveStreak: p.ActiveStreak(now),
		StreakAtRisk: p.StreakAtRisk(now),
		Recent:       recent,
	}, nil
}

// WeeklyLeaderboard ranks users by XP earned since Monday 00:00 UTC.
func (s *ProgressService) WeeklyLeaderboard(ctx context.Context, limit int) ([]entities.LeaderboardEntry, error) {
	entries, err := s.attempts.WeeklyLeaderboard(ctx, startOfWeek(s.now()), limit)
	if err != nil {
		return nil, fmt.Errorf("weekly leaderboard: %w", err)
	}
	return entries, nil
}

// startOfWeek returns the Monday 00:00 UTC of the week containing t.
func startOfWeek(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7 // days since Monday
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, time.UTC)
}

// TxAttemptRecorder stores attempts and progress in one transaction.
type TxAttemptRecorder struct {
	tr Transactor
}

func NewTxAttemptRecorder(tr Transactor) *TxAttemptRecorder {
	return &TxAttemptRecorder{tr: tr}
}

// Record saves the attempt and applies it to the locked progress row.
func (r *TxAttemptRecorder) Record(ctx context.Context, attempt *entities.LessonAttempt, now time.Time) (*entities.UserProgress, error) {
	var progress *entities.UserProgress

	err := r.tr.WithinTx(ctx, func(ctx context.Context, tx postgres.DBTX) error {
		attemptRepo := repository.NewAttemptRepository(tx)
		progressRepo := repository.NewProgressRepository(tx)

		if err := attemptRepo.Save(ctx, attempt); err != nil {
			return err
		}

		p, err := progressRepo.GetForUpdate(ctx, attempt.UserID)
		if err != nil {
			if !errors.Is(err, repository.ErrProgressNotFound) {
				return err
			}
			p = entities.NewUserProgress(attempt.UserID)
		}

		p.ApplyAttempt(attempt.Summary, now)
		if err := progressRepo.Upsert(ctx, p); err != nil {
			return err
		}

		progress = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}

	return progress, nil
}
