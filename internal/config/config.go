// Package config читает параметры chorewheel из окружения.
//
// Обязательные переменные проверяются при старте: если хотя бы одной нет,
// бинарник завершается с ошибкой, перечисляющей все недостающие.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/shaiso/chorewheel/internal/scheduler"
)

// Значения по умолчанию.
const (
	DefaultDiscordAPIURL = "https://discord.com/api/v10"
	DefaultSchedule      = "0 9 * * 1" // понедельник, 9:00
	DefaultTimezone      = "UTC"
	defaultDiscordSec    = 30
)

// Getenv — источник переменных окружения (os.Getenv или подмена в тестах).
type Getenv func(key string) string

// Rotator — параметры запуска ротации.
// Теги json задают имена переменных в сообщениях об ошибках.
type Rotator struct {
	DatabaseURL      string        `json:"DB_URL"`
	DiscordToken     string        `json:"DISCORD_BOT_TOKEN"`
	DiscordChannelID string        `json:"DISCORD_CHANNEL_ID"`
	DiscordAPIURL    string        `json:"DISCORD_API_URL"`
	DiscordTimeout   time.Duration `json:"DISCORD_TIMEOUT_SEC"`
}

// Validate проверяет, что все обязательные параметры заданы.
func (c *Rotator) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DatabaseURL, validation.Required.Error("is required")),
		validation.Field(&c.DiscordToken, validation.Required.Error("is required")),
		validation.Field(&c.DiscordChannelID, validation.Required.Error("is required")),
		validation.Field(&c.DiscordAPIURL, validation.Required.Error("is required")),
		validation.Field(&c.DiscordTimeout, validation.Min(time.Second).Error("must be at least 1 second")),
	)
}

// LoadRotator читает параметры ротации из окружения процесса.
func LoadRotator() (*Rotator, error) {
	return LoadRotatorFrom(os.Getenv)
}

// LoadRotatorFrom читает параметры ротации из getenv.
func LoadRotatorFrom(getenv Getenv) (*Rotator, error) {
	timeoutSec, err := intEnv(getenv, "DISCORD_TIMEOUT_SEC", defaultDiscordSec)
	if err != nil {
		return nil, err
	}

	cfg := &Rotator{
		DatabaseURL:      strings.TrimSpace(getenv("DB_URL")),
		DiscordToken:     strings.TrimSpace(getenv("DISCORD_BOT_TOKEN")),
		DiscordChannelID: strings.TrimSpace(getenv("DISCORD_CHANNEL_ID")),
		DiscordAPIURL:    envOr(getenv, "DISCORD_API_URL", DefaultDiscordAPIURL),
		DiscordTimeout:   time.Duration(timeoutSec) * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Store — параметры подключения к хранилищу (для CLI).
type Store struct {
	DatabaseURL string `json:"DB_URL"`
}

// LoadStoreFrom читает DB_URL из getenv.
func LoadStoreFrom(getenv Getenv) (*Store, error) {
	cfg := &Store{DatabaseURL: strings.TrimSpace(getenv("DB_URL"))}
	err := validation.ValidateStruct(cfg,
		validation.Field(&cfg.DatabaseURL, validation.Required.Error("is required")),
	)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Schedule — параметры встроенного планировщика.
type Schedule struct {
	CronExpr string `json:"CHORE_SCHEDULE"`
	Timezone string `json:"CHORE_TIMEZONE"`
}

// LoadScheduleFrom читает расписание из getenv, подставляя значения по умолчанию.
// Некорректное cron-выражение — ошибка.
func LoadScheduleFrom(getenv Getenv) (*Schedule, error) {
	cfg := &Schedule{
		CronExpr: envOr(getenv, "CHORE_SCHEDULE", DefaultSchedule),
		Timezone: envOr(getenv, "CHORE_TIMEZONE", DefaultTimezone),
	}

	err := validation.ValidateStruct(cfg,
		validation.Field(&cfg.CronExpr, validation.By(func(v any) error {
			return scheduler.ValidateCronExpr(v.(string))
		})),
	)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// RabbitMQURL возвращает RABBITMQ_URL; пустая строка — брокер не используется.
func RabbitMQURL(getenv Getenv) string {
	return strings.TrimSpace(getenv("RABBITMQ_URL"))
}

// RequireRabbitMQURL возвращает RABBITMQ_URL или ошибку, если переменная не задана.
func RequireRabbitMQURL(getenv Getenv) (string, error) {
	url := RabbitMQURL(getenv)
	if url == "" {
		return "", fmt.Errorf("config: RABBITMQ_URL: is required")
	}
	return url, nil
}

// MetricsAddr возвращает адрес для /healthz и /metrics из METRICS_PORT.
func MetricsAddr(getenv Getenv, defaultPort string) string {
	return ":" + envOr(getenv, "METRICS_PORT", defaultPort)
}

func envOr(getenv Getenv, key, defaultValue string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return defaultValue
}

func intEnv(getenv Getenv, key string, defaultValue int) (int, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: must be an integer, got %q", key, v)
	}
	return n, nil
}
