package config

import (
	"fmt"
	"log"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config описывает все настройки процесса.
type Config struct {
	TelegramToken string        `envconfig:"TELEGRAM_TOKEN" required:"true" validate:"required"`
	Environment   string        `envconfig:"ENV" default:"development" validate:"oneof=development production"`
	Timezone      string        `envconfig:"TIMEZONE" default:"Asia/Kolkata" validate:"required"`
	TimetablePath string        `envconfig:"TIMETABLE_PATH"`
	DefaultGroup  string        `envconfig:"DEFAULT_GROUP" default:"Group-7" validate:"required"`
	ReminderLead  time.Duration `envconfig:"REMINDER_LEAD" default:"10m" validate:"gte=0"`
	StoreDriver   string        `envconfig:"STORE_DRIVER" default:"memory" validate:"oneof=memory postgres sqlite"`
	DBDSN         string        `envconfig:"DB_DSN" validate:"required_if=StoreDriver postgres"`
	SQLitePath    string        `envconfig:"SQLITE_PATH" default:"./data/classbot.db" validate:"required_if=StoreDriver sqlite"`
	Port          int           `envconfig:"PORT" default:"8080" validate:"gt=0,lte=65535"`
	NotifyRate    int           `envconfig:"NOTIFY_RATE" default:"25" validate:"gt=0"`
	PurgeSchedule string        `envconfig:"PURGE_SCHEDULE" default:"5 0 * * *" validate:"required"`
	DeveloperText string        `envconfig:"DEVELOPER_TEXT" default:"This bot is maintained by the class representatives."`

	// Location вычисляется из Timezone при загрузке.
	Location *time.Location `ignored:"true"`
}

var validate = validator.New()

// Load читает .env (если есть), затем переменные окружения.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	} else {
		log.Println("Loaded configuration from .env file")
	}
	return FromEnv()
}

// FromEnv собирает конфиг только из переменных окружения.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ListenAddr возвращает адрес keep-alive сервера.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
