package app

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home               string // state directory, e.g. $HOME/.brightrec
	NodeURL            string // identity node base URL
	BackupURL          string // recovery store base URL
	KeystorePassphrase string // seals secret keys on disk
	RequestTimeout     time.Duration
	SessionTTL         time.Duration
	Concurrency        int
	LogLevel           string
	LogFile            string
	HTTP               *http.Client // optional; defaults to a client with RequestTimeout
}

// LoadConfig reads .env (when present) and BRIGHTREC_* variables.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	timeout, err := getEnvAsDuration("BRIGHTREC_REQUEST_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	ttl, err := getEnvAsDuration("BRIGHTREC_SESSION_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Home:               getEnv("BRIGHTREC_HOME", defaultHome()),
		NodeURL:            getEnv("BRIGHTREC_NODE_URL", "http://127.0.0.1:3000/brightid/v5"),
		BackupURL:          getEnv("BRIGHTREC_BACKUP_URL", "http://127.0.0.1:8080"),
		KeystorePassphrase: getEnv("BRIGHTREC_KEYSTORE_PASSPHRASE", ""),
		RequestTimeout:     timeout,
		SessionTTL:         ttl,
		Concurrency:        getEnvAsInt("BRIGHTREC_CONCURRENCY", 4),
		LogLevel:           getEnv("BRIGHTREC_LOG_LEVEL", "info"),
		LogFile:            getEnv("BRIGHTREC_LOG_FILE", "console"),
	}, nil
}

func defaultHome() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ".brightrec"
	}
	return filepath.Join(dir, ".brightrec")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
