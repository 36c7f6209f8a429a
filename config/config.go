package config

import (
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DbDsn      string
	TgToken    string
	HttpAddr   string
	PublicUrl  string
	UploadDir  string
	Location   *time.Location
	WeekStart  time.Weekday
	SessionTTL time.Duration
}

var (
	config *Config
	once   sync.Once
)

// GetConfig возвращает singleton экземпляр конфигурации
func GetConfig() *Config {
	once.Do(func() {
		// .env не обязателен, переменные могут прийти из окружения
		if err := godotenv.Load(); err != nil {
			log.Printf("[Warning] .env not loaded: %v", err)
		}
		config = FromEnv(os.Getenv)
	})
	return config
}

// FromEnv собирает конфигурацию из произвольного источника переменных
func FromEnv(getenv func(string) string) *Config {
	cfg := &Config{
		DbDsn:      getenv("DB_DSN"),
		TgToken:    getenv("TG_TOKEN"),
		HttpAddr:   valueOr(getenv("HTTP_ADDR"), ":8005"),
		PublicUrl:  strings.TrimRight(valueOr(getenv("PUBLIC_URL"), "http://localhost:8005"), "/"),
		UploadDir:  valueOr(getenv("UPLOAD_DIR"), "upload"),
		Location:   time.Local,
		WeekStart:  time.Monday,
		SessionTTL: 2 * time.Hour,
	}

	if name := getenv("TIMEZONE"); name != "" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			log.Printf("[Error] unknown TIMEZONE %q, using Local: %v", name, err)
		} else {
			cfg.Location = loc
		}
	}

	switch strings.ToLower(getenv("WEEK_START")) {
	case "", "monday":
	case "sunday":
		cfg.WeekStart = time.Sunday
	case "saturday":
		cfg.WeekStart = time.Saturday
	default:
		log.Printf("[Error] unsupported WEEK_START %q, using monday", getenv("WEEK_START"))
	}

	if raw := getenv("SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			log.Printf("[Error] bad SESSION_TTL %q: %v", raw, err)
		} else {
			cfg.SessionTTL = ttl
		}
	}
	return cfg
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
