package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingvo-bot/internal/config"
	"github.com/aliskhannn/lingvo-bot/internal/delivery/telegram"
	"github.com/aliskhannn/lingvo-bot/internal/infra/catalog"
	"github.com/aliskhannn/lingvo-bot/internal/infra/lessonapi"
	"github.com/aliskhannn/lingvo-bot/internal/infra/postgres"
	"github.com/aliskhannn/lingvo-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/lingvo-bot/internal/logger"
	"github.com/aliskhannn/lingvo-bot/internal/service"
	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		lg.Fatal("database is not configured", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		lg.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, lg); err != nil {
		lg.Fatal("failed to apply migrations", zap.Error(err))
	}

	lessons, err := newLessonSource(cfg, lg)
	if err != nil {
		lg.Fatal("failed to init lesson source", zap.Error(err))
	}

	// Initialize repositories and services.
	userRepo := repository.NewUserRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	progressRepo := repository.NewProgressRepository(pool)
	attemptRepo := repository.NewAttemptRepository(pool)
	reminderRepo := repository.NewRemindersRepository(pool)
	transactor := postgres.NewTransactor(pool)

	plays := storage.NewPlayStorage()
	sentReminders := storage.NewReminderStorage()

	settingsService := service.NewSettingsService(settingsRepo)
	userService := service.NewUserService(userRepo, settingsRepo)
	lessonService := service.NewLessonService(
		lessons,
		plays,
		settingsService,
		service.NewTxAttemptRecorder(transactor),
		lg,
		cfg.Session.MaxLives,
	)
	progressService := service.NewProgressService(progressRepo, attemptRepo)
	resetService := service.NewResetService(transactor, plays, sentReminders)
	reminderService := service.NewReminderService(
		reminderRepo,
		plays,
		sentReminders,
		userRepo,
		cfg.Reminders.Schedule,
		lg,
	)

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Env == "local"
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(botCommands()...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	handler := telegram.NewHandler(
		bot,
		lg,
		userService,
		lessonService,
		progressService,
		settingsService,
		resetService,
	)
	reminderService.SetNotifier(handler)

	go func() {
		if err := reminderService.Start(ctx); err != nil {
			lg.Error("reminder service failed", zap.Error(err))
		}
	}()

	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("telegram handler failed", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}

// newLessonSource serves lessons from the remote lesson API when it is
// configured and from the local catalog otherwise.
func newLessonSource(cfg *config.Config, lg *zap.Logger) (service.LessonSource, error) {
	if cfg.LessonAPI.BaseURL != "" {
		lg.Info("using remote lesson api", zap.String("base_url", cfg.LessonAPI.BaseURL))
		return lessonapi.New(lessonapi.Config{
			BaseURL:    cfg.LessonAPI.BaseURL,
			Token:      cfg.LessonAPI.Token,
			Timeout:    cfg.LessonAPI.Timeout,
			MaxRetries: cfg.LessonAPI.MaxRetries,
		}, lg)
	}

	lg.Info("using local lesson catalog", zap.String("dir", cfg.CatalogDir))
	return catalog.Load(cfg.CatalogDir, lg)
}

func botCommands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Запустить бота"},
		{Command: "lessons", Description: "Список уроков (можно указать тему)"},
		{Command: "lesson", Description: "Начать урок (использование: /lesson <id>)"},
		{Command: "stop", Description: "Прервать текущий урок"},
		{Command: "progress", Description: "Показать прогресс"},
		{Command: "leaderboard", Description: "Рейтинг недели"},
		{Command: "settings", Description: "Настройки"},
		{Command: "reset", Description: "Сбросить прогресс"},
		{Command: "help", Description: "Помощь"},
	}
}
