package service

import (
	"context"
	"errors"
	"testing"
)

func TestSettingsService_GetOrCreate(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewSettingsService(repo)
	ctx := context.Background()

	s, err := svc.GetOrCreate(ctx, 1)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if !s.RemindersEnabled || !s.ShuffleMatch {
		t.Errorf("defaults = %+v", s)
	}

	if _, err := svc.GetOrCreate(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if repo.creates != 1 {
		t.Errorf("creates = %d; want 1", repo.creates)
	}
}

func TestSettingsService_Toggles(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewSettingsService(repo)
	ctx := context.Background()

	enabled, err := svc.ToggleReminders(ctx, 1)
	if err != nil || enabled {
		t.Fatalf("ToggleReminders = %v, %v; want false, nil", enabled, err)
	}
	enabled, err = svc.ToggleReminders(ctx, 1)
	if err != nil || !enabled {
		t.Fatalf("ToggleReminders = %v, %v; want true, nil", enabled, err)
	}

	shuffle, err := svc.ToggleShuffleMatch(ctx, 1)
	if err != nil || shuffle {
		t.Fatalf("ToggleShuffleMatch = %v, %v; want false, nil", shuffle, err)
	}
}

func TestSettingsService_SetReminderHour(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewSettingsService(repo)
	ctx := context.Background()

	if err := svc.SetReminderHour(ctx, 1, 24); !errors.Is(err, ErrInvalidReminderHour) {
		t.Errorf("hour 24 err = %v; want ErrInvalidReminderHour", err)
	}
	if err := svc.SetReminderHour(ctx, 1, 7); err != nil {
		t.Fatalf("SetReminderHour: %v", err)
	}

	s, _ := repo.GetByUserID(ctx, 1)
	if s.ReminderHour != 7 {
		t.Errorf("ReminderHour = %d; want 7", s.ReminderHour)
	}
}
