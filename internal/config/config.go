package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMongoDB = "mongodb"
	StorageMemory  = "memory"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Storage StorageConfig
	MongoDB MongoDBConfig
	Alarms  AlarmsConfig
	Stream  StreamConfig
	Webhook WebhookConfig
	Sheets  SheetsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

type LogConfig struct {
	Level  string
	Format string
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AlarmsConfig controls the evaluation loop.
type AlarmsConfig struct {
	PollInterval time.Duration
}

// StreamConfig controls the server-sent events endpoint.
type StreamConfig struct {
	HeartbeatInterval time.Duration
	ClientBuffer      int
}

// WebhookConfig is the optional outbound alarm notification target.
type WebhookConfig struct {
	URL   string
	Token string
}

// Enabled reports whether alarm notifications should be forwarded.
func (w WebhookConfig) Enabled() bool { return w.URL != "" }

// SheetsConfig contains configuration required to export the production log to Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	ProductionRange string
}

// Enabled reports whether the production log export is configured.
func (s SheetsConfig) Enabled() bool { return s.CredentialsPath != "" && s.SpreadsheetID != "" }

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// missing .env is fine when configuration comes from the environment
		_ = godotenv.Load()
	}

	pollInterval, err := getDuration("ALARM_POLL_INTERVAL", 5*time.Second)
	if err != nil {
		return nil, err
	}
	heartbeat, err := getDuration("SSE_HEARTBEAT_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	clientBuffer, err := getInt("SSE_CLIENT_BUFFER", 16)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level:  getenvWithDefault("LOG_LEVEL", "info"),
			Format: getenvWithDefault("LOG_FORMAT", "json"),
		},
		Storage: StorageConfig{
			Driver: getenvWithDefault("STORAGE_DRIVER", StorageMongoDB),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "brewhouse"),
		},
		Alarms: AlarmsConfig{
			PollInterval: pollInterval,
		},
		Stream: StreamConfig{
			HeartbeatInterval: heartbeat,
			ClientBuffer:      clientBuffer,
		},
		Webhook: WebhookConfig{
			URL:   os.Getenv("ALARM_WEBHOOK_URL"),
			Token: os.Getenv("ALARM_WEBHOOK_TOKEN"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_PRODUCTION_ID"),
			ProductionRange: getenvWithDefault("PRODUCTION_LOG_RANGE", "Production!A:H"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Storage.Driver {
	case StorageMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must be provided")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageMongoDB, StorageMemory, c.Storage.Driver)
	}

	if c.Alarms.PollInterval <= 0 {
		return errors.New("ALARM_POLL_INTERVAL must be positive")
	}
	if c.Stream.HeartbeatInterval <= 0 {
		return errors.New("SSE_HEARTBEAT_INTERVAL must be positive")
	}
	if c.Stream.ClientBuffer <= 0 {
		return errors.New("SSE_CLIENT_BUFFER must be positive")
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_PRODUCTION_ID must be provided together")
	}
	if c.Sheets.Enabled() && c.Sheets.ProductionRange == "" {
		return errors.New("PRODUCTION_LOG_RANGE must not be empty")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, value, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q: %w", key, value, err)
	}
	return n, nil
}
