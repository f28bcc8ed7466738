package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string    `mapstructure:"env"` // current application environment (local, dev, production etc)
	TelegramAPIToken string    `mapstructure:"-"`   // Telegram API token loaded from environment
	CatalogDir       string    `mapstructure:"catalog_dir"`
	LessonAPI        LessonAPI `mapstructure:"lesson_api"`
	Session          Session   `mapstructure:"session"`
	DB               DB        `mapstructure:"database"`
	Reminders        Reminders `mapstructure:"reminders"`
}

// LessonAPI configures the remote lesson service. When BaseURL is empty the
// bot serves lessons from CatalogDir instead.
type LessonAPI struct {
	BaseURL    string        `mapstructure:"base_url"`
	Token      string        `mapstructure:"-"` // bearer token loaded from environment
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
}

// Session configures lesson sessions.
type Session struct {
	MaxLives int `mapstructure:"max_lives"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Reminders configures the streak reminder job.
type Reminders struct {
	Schedule string `mapstructure:"schedule"` // cron spec, evaluated in UTC
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from config files, a .env file and environment variables.
func Load() (*Config, error) {
	return load("./config")
}

func load(configPath string) (*Config, error) {
	// Variables already set in the environment take precedence over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	v.SetDefault("env", "local")
	v.SetDefault("catalog_dir", "assets/lessons")
	v.SetDefault("lesson_api.base_url", "")
	v.SetDefault("lesson_api.timeout", "10s")
	v.SetDefault("lesson_api.max_retries", 3)
	v.SetDefault("session.max_lives", 5)
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("reminders.schedule", "0 * * * *")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("lesson_api_token", "LESSON_API_TOKEN")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
	}

	cfg.LessonAPI.Token = v.GetString("lesson_api_token")

	return &cfg, nil
}
