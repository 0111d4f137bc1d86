package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	APIBaseURL    string
	APITimeout    time.Duration // 0 means no client-side timeout
	DBDSN         string
	Environment   string

	RedisAddr     string // empty disables the session cache
	RedisPassword string

	OpsAddr              string
	SessionSweepInterval time.Duration
	MigrationsDir        string // empty uses the embedded migrations
}

// Load reads .env if present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		TelegramToken: strings.TrimSpace(getenv("TELEGRAM_TOKEN")),
		APIBaseURL:    strings.TrimSpace(getenv("API_BASE_URL")),
		DBDSN:         strings.TrimSpace(getenv("DB_DSN")),
		Environment:   getenv("ENV"),
		RedisAddr:     getenv("REDIS_ADDR"),
		RedisPassword: getenv("REDIS_PASSWORD"),
		OpsAddr:       getenv("OPS_ADDR"),
		MigrationsDir: getenv("MIGRATIONS_DIR"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.OpsAddr == "" {
		cfg.OpsAddr = ":9090"
	}

	var err error
	if cfg.APITimeout, err = duration(getenv, "API_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.SessionSweepInterval, err = duration(getenv, "SESSION_SWEEP_INTERVAL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.SessionSweepInterval <= 0 {
		return nil, fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive")
	}

	var missing []string
	if cfg.TelegramToken == "" {
		missing = append(missing, "TELEGRAM_TOKEN")
	}
	if cfg.APIBaseURL == "" {
		missing = append(missing, "API_BASE_URL")
	}
	if cfg.DBDSN == "" {
		missing = append(missing, "DB_DSN")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s required but not set", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func duration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
