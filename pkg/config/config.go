package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT"`
		Host    string `env:"POSTGRES_HOST"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Telegram struct {
		BotToken string `env:"TELEGRAM_TOKEN"`
	}
	Spark struct {
		BaseURL        string        `env:"SPARK_API_URL" env-default:"http://localhost:8000"`
		RequestTimeout time.Duration `env:"SPARK_REQUEST_TIMEOUT" env-default:"30s"`
	}
	Poller struct {
		TaskInterval     time.Duration `env:"POLLER_TASK_INTERVAL" env-default:"2s"`
		ReminderInterval time.Duration `env:"POLLER_REMINDER_INTERVAL" env-default:"15s"`
	}
	Studio struct {
		Workers int `env:"STUDIO_WORKERS" env-default:"5"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// GetDSN returns the postgres connection string used by goose and pgx.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}
