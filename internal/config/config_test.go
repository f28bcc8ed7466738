package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := writeConfig(t, `
env: production
catalog_dir: lessons
lesson_api:
  base_url: https://lessons.example.com
  timeout: 3s
  max_retries: 4
session:
  max_lives: 3
database:
  max_connections: 7
  max_conn_lifetime: 1m
reminders:
  schedule: "30 * * * *"
`)
	t.Setenv("TELEGRAM_API_TOKEN", "tg-token")
	t.Setenv("DATABASE_URL", "postgres://localhost/lingvo")
	t.Setenv("LESSON_API_TOKEN", "api-token")

	cfg, err := load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Env != "production" {
		t.Errorf("Env = %q; want %q", cfg.Env, "production")
	}
	if cfg.LessonAPI.BaseURL != "https://lessons.example.com" {
		t.Errorf("LessonAPI.BaseURL = %q", cfg.LessonAPI.BaseURL)
	}
	if cfg.LessonAPI.Timeout != 3*time.Second {
		t.Errorf("LessonAPI.Timeout = %v; want 3s", cfg.LessonAPI.Timeout)
	}
	if cfg.LessonAPI.MaxRetries != 4 {
		t.Errorf("LessonAPI.MaxRetries = %d; want 4", cfg.LessonAPI.MaxRetries)
	}
	if cfg.LessonAPI.Token != "api-token" {
		t.Errorf("LessonAPI.Token = %q; want %q", cfg.LessonAPI.Token, "api-token")
	}
	if cfg.Session.MaxLives != 3 {
		t.Errorf("Session.MaxLives = %d; want 3", cfg.Session.MaxLives)
	}
	if cfg.DB.MaxConnections != 7 || cfg.DB.MaxConnLifetime != time.Minute {
		t.Errorf("DB = %+v", cfg.DB)
	}
	if cfg.Reminders.Schedule != "30 * * * *" {
		t.Errorf("Reminders.Schedule = %q", cfg.Reminders.Schedule)
	}
	if cfg.TelegramAPIToken != "tg-token" {
		t.Errorf("TelegramAPIToken = %q; want %q", cfg.TelegramAPIToken, "tg-token")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "tg-token")
	t.Setenv("DATABASE_URL", "postgres://localhost/lingvo")

	cfg, err := load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Session.MaxLives != 5 {
		t.Errorf("Session.MaxLives = %d; want 5", cfg.Session.MaxLives)
	}
	if cfg.LessonAPI.BaseURL != "" {
		t.Errorf("LessonAPI.BaseURL = %q; want empty", cfg.LessonAPI.BaseURL)
	}
	if cfg.CatalogDir != "assets/lessons" {
		t.Errorf("CatalogDir = %q; want %q", cfg.CatalogDir, "assets/lessons")
	}
	if cfg.Reminders.Schedule != "0 * * * *" {
		t.Errorf("Reminders.Schedule = %q", cfg.Reminders.Schedule)
	}
}

func TestLoadMissingSecrets(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/lingvo")

	if _, err := load(t.TempDir()); !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Errorf("err = %v; want ErrMissingEnvironmentVariables", err)
	}

	t.Setenv("TELEGRAM_API_TOKEN", "tg-token")
	t.Setenv("DATABASE_URL", "")

	if _, err := load(t.TempDir()); !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Errorf("err = %v; want ErrMissingEnvironmentVariables", err)
	}
}

func TestDSN(t *testing.T) {
	if _, err := (DB{}).DSN(); !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Errorf("DSN() err = %v; want ErrMissingEnvironmentVariables", err)
	}
	dsn, err := DB{URL: "postgres://x"}.DSN()
	if err != nil || dsn != "postgres://x" {
		t.Errorf("DSN() = %q, %v", dsn, err)
	}
}
