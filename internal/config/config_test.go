package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"APP_PORT", "LOG_LEVEL", "LOG_FORMAT", "STORAGE_DRIVER", "MONGODB_URI", "MONGODB_DB_NAME",
	"ALARM_POLL_INTERVAL", "SSE_HEARTBEAT_INTERVAL", "SSE_CLIENT_BUFFER",
	"ALARM_WEBHOOK_URL", "ALARM_WEBHOOK_TOKEN",
	"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_PRODUCTION_ID", "PRODUCTION_LOG_RANGE",
}

// clearEnv blanks every key for the duration of the test; empty values fall back to defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, StorageMongoDB, cfg.Storage.Driver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, "brewhouse", cfg.MongoDB.DBName)
	assert.Equal(t, 5*time.Second, cfg.Alarms.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.Stream.HeartbeatInterval)
	assert.Equal(t, 16, cfg.Stream.ClientBuffer)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Webhook.Enabled())
	assert.False(t, cfg.Sheets.Enabled())
}

func TestLoad_FromEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides variables that are already set, even to empty.
	for _, key := range []string{"STORAGE_DRIVER", "ALARM_POLL_INTERVAL", "ALARM_WEBHOOK_URL"} {
		require.NoError(t, os.Unsetenv(key))
	}
	t.Cleanup(func() {
		for _, key := range []string{"STORAGE_DRIVER", "ALARM_POLL_INTERVAL", "ALARM_WEBHOOK_URL"} {
			os.Unsetenv(key)
		}
	})

	path := filepath.Join(t.TempDir(), ".env")
	content := "STORAGE_DRIVER=memory\nALARM_POLL_INTERVAL=250ms\nALARM_WEBHOOK_URL=http://hooks.local/alarms\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, 250*time.Millisecond, cfg.Alarms.PollInterval)
	assert.True(t, cfg.Webhook.Enabled())
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "bad duration", key: "ALARM_POLL_INTERVAL", val: "often"},
		{name: "negative heartbeat", key: "SSE_HEARTBEAT_INTERVAL", val: "-1s"},
		{name: "bad buffer", key: "SSE_CLIENT_BUFFER", val: "many"},
		{name: "unknown driver", key: "STORAGE_DRIVER", val: "postgres"},
		{name: "half sheets config", key: "GOOGLE_SHEET_PRODUCTION_ID", val: "sheet-id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load(missingEnvFile(t))
			assert.Error(t, err)
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	var cfg *Config
	assert.Error(t, cfg.Validate())
}
