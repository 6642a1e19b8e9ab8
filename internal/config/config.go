package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration for the application.
type Config struct {
	DataDir      string
	DatabasePath string
	UserID       string

	SyncEnabled  bool
	SyncInterval time.Duration

	// Telegram Config
	TelegramBotToken    string
	TelegramWebhookURL  string
	TelegramAllowUserID int64
}

// NewFromEnv creates a new Config object from environment variables. A .env
// file in the working directory is loaded if present.
func NewFromEnv() (*Config, error) {
	_ = godotenv.Load()

	dataDir := os.Getenv("SHOPMATE_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	dbPath := os.Getenv("SHOPMATE_DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "sync.db")
	}

	userID := os.Getenv("SHOPMATE_USER_ID")
	if userID == "" {
		userID = "default"
	}

	syncEnabled := false
	if v := os.Getenv("SHOPMATE_SYNC_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SHOPMATE_SYNC_ENABLED value %q: %w", v, err)
		}
		syncEnabled = b
	}

	syncInterval := 5 * time.Second
	if v := os.Getenv("SHOPMATE_SYNC_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SHOPMATE_SYNC_INTERVAL value %q: %w", v, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("SHOPMATE_SYNC_INTERVAL must be positive, got %q", v)
		}
		syncInterval = d
	}

	// Telegram Config (Optional for CLI, required for Bot)
	telegramBotToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	telegramWebhookURL := os.Getenv("TELEGRAM_WEBHOOK_URL")
	telegramAllowUserIDStr := os.Getenv("TELEGRAM_ALLOW_USER_ID")
	var telegramAllowUserID int64
	if telegramAllowUserIDStr != "" {
		id, err := strconv.ParseInt(telegramAllowUserIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ALLOW_USER_ID value %q: %w", telegramAllowUserIDStr, err)
		}
		telegramAllowUserID = id
	}

	return &Config{
		DataDir:             dataDir,
		DatabasePath:        dbPath,
		UserID:              userID,
		SyncEnabled:         syncEnabled,
		SyncInterval:        syncInterval,
		TelegramBotToken:    telegramBotToken,
		TelegramWebhookURL:  telegramWebhookURL,
		TelegramAllowUserID: telegramAllowUserID,
	}, nil
}
