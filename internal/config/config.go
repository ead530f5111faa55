package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Storage engine names accepted in DW_STORAGE_ENGINE.
const (
	EngineJSON   = "json"
	EngineSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	DataDir       string // root directory for the json engine
	StorageEngine string // "json" or "sqlite"
	SQLitePath    string // database file for the sqlite engine
	SeqURL        string // optional Seq ingestion endpoint
	LogLevel      slog.Level
}

// Load reads configuration from environment variables, with .env support.
func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("DW_DATA_DIR", defaultDataDir())

	return &Config{
		DataDir:       dataDir,
		StorageEngine: getEnv("DW_STORAGE_ENGINE", EngineJSON),
		SQLitePath:    getEnv("DW_SQLITE_PATH", filepath.Join(dataDir, "dataweave.db")),
		SeqURL:        getEnv("DW_SEQ_URL", ""),
		LogLevel:      parseLevel(getEnv("DW_LOG_LEVEL", "info")),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(home, ".dataweave")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLevel(value string) slog.Level {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
