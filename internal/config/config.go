package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv                string
	Addr                  string
	DbDsn                 string
	JwtSecret             string
	JwtAccessMinutes      int
	SessionTimeoutMinutes int
	TwilioAccountSid      string
	TwilioAuthToken       string
	TwilioFromNumber      string
	AllowedOriginsRaw     string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppEnv:                getEnv("APP_ENV", "local"),
		Addr:                  getEnv("APP_ADDR", ":4000"),
		DbDsn:                 os.Getenv("DB_DSN"),
		JwtSecret:             os.Getenv("JWT_SECRET"),
		JwtAccessMinutes:      getEnvInt("JWT_ACCESS_MINUTES", 60),
		SessionTimeoutMinutes: getEnvInt("SESSION_TIMEOUT_MINUTES", 1440),
		TwilioAccountSid:      os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:       os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber:      os.Getenv("TWILIO_FROM_NUMBER"),
		AllowedOriginsRaw:     getEnv("ALLOWED_ORIGINS", ""),
	}

	missing := []string{}
	if cfg.DbDsn == "" {
		missing = append(missing, "DB_DSN")
	}
	if cfg.JwtSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if cfg.TwilioAccountSid == "" {
		missing = append(missing, "TWILIO_ACCOUNT_SID")
	}
	if cfg.TwilioAuthToken == "" {
		missing = append(missing, "TWILIO_AUTH_TOKEN")
	}
	if cfg.TwilioFromNumber == "" {
		missing = append(missing, "TWILIO_FROM_NUMBER")
	}

	if len(missing) > 0 {
		return cfg, errors.New("missing env: " + strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
