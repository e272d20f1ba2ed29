// Package config centralizes environment-driven configuration. Values load
// from the process environment, with an optional .env file for local runs.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting. It is built once in main and passed
// down explicitly; nothing reads the environment after LoadConfig returns.
type Config struct {
	Port string

	// Firestore
	ProjectID  string
	Collection string

	// Gemini
	GeminiModel string

	// SMTP settings for maturity notifications
	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	SenderName string

	// Maturity sweep
	SweepHour int    // local hour of day, 24h clock
	Timezone  string // IANA name, e.g. "Asia/Kuala_Lumpur"

	// OwnerDirectory maps owner IDs to notification addresses,
	// "uid:email,uid:email".
	OwnerDirectory string
}

// LoadConfig reads configuration from the environment. A missing .env file
// is fine (expected in production); a malformed numeric value is not.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		ProjectID:   os.Getenv("GCP_PROJECT_ID"),
		Collection:  getEnv("FIRESTORE_COLLECTION", "fds"),
		GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		SMTPHost:    os.Getenv("SMTP_HOST"),
		SMTPUser:    os.Getenv("SMTP_USER"),
		SMTPPass:    os.Getenv("SMTP_PASSWORD"),
		SenderName:  getEnv("SENDER_NAME", "FD Tracker"),
		Timezone:    getEnv("SWEEP_TIMEZONE", "Asia/Kuala_Lumpur"),

		OwnerDirectory: os.Getenv("OWNER_DIRECTORY"),
	}

	var err error
	if cfg.SMTPPort, err = getEnvInt("SMTP_PORT", 587); err != nil {
		return nil, err
	}
	if cfg.SweepHour, err = getEnvInt("SWEEP_HOUR", 8); err != nil {
		return nil, err
	}
	if cfg.SweepHour < 0 || cfg.SweepHour > 23 {
		return nil, fmt.Errorf("config: SWEEP_HOUR %d out of range", cfg.SweepHour)
	}

	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("config: GCP_PROJECT_ID is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer, got %q", key, v)
	}
	return n, nil
}
