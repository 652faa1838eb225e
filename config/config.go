package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port        int
	WebhookPath string

	DatasetSource      string
	DatasetProfile     string
	DatasetSheet       string
	DatasetTable       string
	ColumnProfilesPath string

	ResultLimit     int // capped at services.DefaultLimit
	FetchTimeoutSec int
	MaxRetries      int

	LogLevel       string
	MetricsEnabled bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		Port:        getEnvInt("PORT", 8080),
		WebhookPath: getEnv("WEBHOOK_PATH", "/whatsapp"),

		DatasetSource:      getEnv("DATASET_SOURCE", "./data/projects.csv"),
		DatasetProfile:     strings.ToLower(getEnv("DATASET_PROFILE", "sheet")),
		DatasetSheet:       getEnv("DATASET_SHEET", ""),
		DatasetTable:       getEnv("DATASET_TABLE", "projects"),
		ColumnProfilesPath: getEnv("COLUMN_PROFILES_PATH", ""),

		ResultLimit:     getEnvInt("RESULT_LIMIT", 5),
		FetchTimeoutSec: getEnvInt("FETCH_TIMEOUT_SEC", 30),
		MaxRetries:      getEnvInt("MAX_RETRIES", 3),

		LogLevel:       getEnv("LOG_LEVEL", "info"),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}
}

// Addr returns the listen address for the webhook server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// FetchTimeout returns the per-attempt timeout for remote dataset fetches.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSec) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
