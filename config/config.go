package config

import (
	"os"
	"strconv"

	"go.uber.org/zap"
)

type Config struct {
	Port         string
	DatabaseURL  string
	JWTSecret    string
	ClientOrigin string
	UploadDir    string
	Stripe       Stripe
	SMTP         SMTP
	Redis        Redis
}

type Stripe struct {
	SecretKey     string
	WebhookSecret string
}

type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type Redis struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

func Load(log *zap.Logger) *Config {
	return &Config{
		Port:         getEnvDefault("APP_PORT", "5000"),
		DatabaseURL:  getEnv("DATABASE_URL", log),
		JWTSecret:    getEnv("JWT_SECRET", log),
		ClientOrigin: getEnvDefault("CLIENT_ORIGIN", "http://localhost:3000"),
		UploadDir:    getEnvDefault("UPLOAD_DIR", "uploads"),
		Stripe: Stripe{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", log),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", log),
		},
		SMTP: SMTP{
			Host:     getEnv("SMTP_HOST", log),
			Port:     atoiDefault(getEnvDefault("SMTP_PORT", "465"), 465),
			User:     getEnv("SMTP_USER", log),
			Password: getEnv("SMTP_PASSWORD", log),
			From:     getEnvDefault("SMTP_FROM", os.Getenv("SMTP_USER")),
		},
		Redis: Redis{
			Enabled:  getEnvDefault("REDIS_ENABLED", "false") == "true",
			Addr:     getEnvDefault("REDIS_ADDR", "localhost:6379"),
			Password: getEnvDefault("REDIS_PASSWORD", ""),
			DB:       atoiDefault(getEnvDefault("REDIS_DB", "0"), 0),
		},
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("required environment variable is not set", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return def
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
