package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	DBDSN         string
	Environment   string

	// REST API клиники
	APIBaseURL   string
	APITimeout   time.Duration
	CaptchaToken string

	// Страницы возврата с платёжного шлюза
	HTTPAddr    string
	BotUsername string

	SessionSweepInterval time.Duration
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		Environment:   getEnv("ENV", "development"),
		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:8080/api"),
		CaptchaToken:  os.Getenv("CAPTCHA_TOKEN"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8081"),
		BotUsername:   os.Getenv("BOT_USERNAME"),
	}

	var err error
	if cfg.APITimeout, err = getDuration("API_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.SessionSweepInterval, err = getDuration("SESSION_SWEEP_INTERVAL", time.Hour); err != nil {
		return nil, err
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	return cfg, nil
}

// Validate проверяет поля, нужные только для запуска бота
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}
