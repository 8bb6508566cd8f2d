package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string
	Port   string

	StorageDriver     string
	MongoURI          string
	MongoDatabase     string
	MongoTransactions bool

	JWTSecret string
	JWTTTL    time.Duration

	CORSOrigins []string

	MailDriver       string
	PostmarkAPIToken string
	SendGridAPIKey   string
	EmailSender      string

	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Load reads .env when present, then the process environment
func Load() (*Config, error) {
	// a missing .env is fine; the environment may already be set
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from the environment only
func FromEnv() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8000"),
		StorageDriver:    strings.ToLower(getEnv("STORAGE_DRIVER", "mongo")),
		MongoURI:         os.Getenv("MONGODB_URI"),
		MongoDatabase:    getEnv("MONGODB_DATABASE", "foodorder"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		MailDriver:       strings.ToLower(getEnv("MAIL_DRIVER", "log")),
		PostmarkAPIToken: os.Getenv("POSTMARK_API_TOKEN"),
		SendGridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
		EmailSender:      getEnv("EMAIL_SENDER", "orders@foodorder.local"),
		AdminName:        getEnv("ADMIN_NAME", "Admin"),
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
	}

	var err error
	if cfg.MongoTransactions, err = strconv.ParseBool(getEnv("MONGODB_TRANSACTIONS", "true")); err != nil {
		return nil, fmt.Errorf("MONGODB_TRANSACTIONS: %w", err)
	}
	if cfg.JWTTTL, err = time.ParseDuration(getEnv("JWT_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("JWT_TTL: %w", err)
	}

	switch cfg.StorageDriver {
	case "mongo":
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGODB_URI is required")
		}
	case "memory":
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER must be mongo or memory, got %q", cfg.StorageDriver)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

// IsProduction reports whether APP_ENV names a production deployment
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
